package app

import (
	"context"
	"strings"
	"time"

	"travelbook/internal/domain"
)

type TourRequestService struct {
	repo domain.TourRequestRepository
}

func NewTourRequestService(r domain.TourRequestRepository) *TourRequestService {
	return &TourRequestService{repo: r}
}

type CreateTourRequestInput struct {
	ArrivalDate   time.Time
	DepartureDate time.Time
	GroupSize     int
	Interests     []string
	BudgetMin     *float64
	BudgetMax     *float64
	Phone         string
	Whatsapp      string
	Notes         *string
}

func (s *TourRequestService) CreateRequest(ctx context.Context, sess domain.Session, in CreateTourRequestInput) (domain.TourRequest, error) {
	if in.ArrivalDate.IsZero() || in.DepartureDate.IsZero() {
		return domain.TourRequest{}, domain.Invalid("dateRange", "arrival and departure dates are required")
	}
	if in.DepartureDate.Before(in.ArrivalDate) {
		return domain.TourRequest{}, domain.Invalid("dateRange", "departure before arrival")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return domain.TourRequest{}, domain.Invalid("phone", "required")
	}
	if strings.TrimSpace(in.Whatsapp) == "" {
		return domain.TourRequest{}, domain.Invalid("whatsapp", "required")
	}
	if in.GroupSize <= 0 {
		return domain.TourRequest{}, domain.Invalid("groupSize", "must be positive")
	}
	if in.BudgetMin != nil && in.BudgetMax != nil && *in.BudgetMax < *in.BudgetMin {
		return domain.TourRequest{}, domain.Invalid("budget", "max below min")
	}

	return s.repo.CreateTourRequest(ctx, domain.TourRequest{
		RequesterID:   sess.UserID,
		ArrivalDate:   in.ArrivalDate,
		DepartureDate: in.DepartureDate,
		GroupSize:     in.GroupSize,
		Interests:     in.Interests,
		BudgetMin:     in.BudgetMin,
		BudgetMax:     in.BudgetMax,
		Phone:         strings.TrimSpace(in.Phone),
		Whatsapp:      strings.TrimSpace(in.Whatsapp),
		Notes:         in.Notes,
		Status:        domain.TourPending,
	})
}

// ListPending is the admin inbox view: unresolved requests only.
func (s *TourRequestService) ListPending(ctx context.Context, sess domain.Session) ([]domain.TourRequest, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListTourRequestsByStatus(ctx, domain.TourPending)
}

// ListAll returns every request including already-resolved ones. This is
// a distinct operation from ListPending, not a parameterization of it.
func (s *TourRequestService) ListAll(ctx context.Context, sess domain.Session) ([]domain.TourRequest, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListAllTourRequests(ctx)
}

// UpdateStatus sets the approval status to any value in the tour-request
// vocabulary. As with bookings, no transition graph is enforced.
func (s *TourRequestService) UpdateStatus(ctx context.Context, sess domain.Session, id int64, status domain.TourStatus) (domain.TourRequest, error) {
	if !sess.IsAdmin() {
		return domain.TourRequest{}, domain.ErrForbidden
	}
	if !domain.ValidTourStatus(status) {
		return domain.TourRequest{}, domain.Invalid("status", "must be pending, approved or rejected")
	}
	if _, err := s.repo.GetTourRequest(ctx, id); err != nil {
		return domain.TourRequest{}, err
	}
	if err := s.repo.UpdateTourRequestStatus(ctx, id, status); err != nil {
		return domain.TourRequest{}, err
	}
	return s.repo.GetTourRequest(ctx, id)
}
