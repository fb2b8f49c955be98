package app

import (
	"context"
	"strings"
	"time"

	"travelbook/internal/domain"
)

type BookingService struct {
	repo domain.BookingRepository
}

func NewBookingService(r domain.BookingRepository) *BookingService {
	return &BookingService{repo: r}
}

type CreateBookingInput struct {
	SubjectType    domain.SubjectType
	SubjectID      int64
	StartDate      time.Time
	EndDate        time.Time
	Rooms          *int
	PickupLocation *string
	Phone          string
	Whatsapp       string
}

// CreateBooking validates the request and stores a new booking with
// status=pending. No overlap check against existing bookings for the same
// subject is performed; see DESIGN.md.
func (s *BookingService) CreateBooking(ctx context.Context, sess domain.Session, in CreateBookingInput) (domain.Booking, error) {
	if in.SubjectType != domain.SubjectVehicle && in.SubjectType != domain.SubjectHotel {
		return domain.Booking{}, domain.Invalid("subjectType", "must be vehicle or hotel")
	}
	if in.SubjectID <= 0 {
		return domain.Booking{}, domain.Invalid("subjectId", "required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return domain.Booking{}, domain.Invalid("dateRange", "start and end dates are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return domain.Booking{}, domain.Invalid("dateRange", "end date before start date")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return domain.Booking{}, domain.Invalid("phone", "required")
	}
	if strings.TrimSpace(in.Whatsapp) == "" {
		return domain.Booking{}, domain.Invalid("whatsapp", "required")
	}
	if in.Rooms != nil && *in.Rooms <= 0 {
		return domain.Booking{}, domain.Invalid("rooms", "must be positive")
	}

	return s.repo.CreateBooking(ctx, domain.Booking{
		SubjectType:    in.SubjectType,
		SubjectID:      in.SubjectID,
		RequesterID:    sess.UserID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Rooms:          in.Rooms,
		PickupLocation: in.PickupLocation,
		Phone:          strings.TrimSpace(in.Phone),
		Whatsapp:       strings.TrimSpace(in.Whatsapp),
		Status:         domain.BookingPending,
	})
}

// ListBookings returns the caller's own bookings, newest first.
func (s *BookingService) ListBookings(ctx context.Context, sess domain.Session) ([]domain.Booking, error) {
	return s.repo.ListBookingsByRequester(ctx, sess.UserID)
}

// ListAllBookings returns every booking regardless of owner, optionally
// narrowed by the dashboard's status filter and id search.
func (s *BookingService) ListAllBookings(ctx context.Context, sess domain.Session, statusFilter, search string) ([]domain.Booking, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	bs, err := s.repo.ListAllBookings(ctx)
	if err != nil {
		return nil, err
	}
	return domain.VisibleBookings(bs, statusFilter, search), nil
}

// UpdateStatus sets the booking's status to any value in the booking
// vocabulary. Transition legality is intentionally not enforced, so e.g.
// cancelled→confirmed is accepted; the source system behaves the same way.
func (s *BookingService) UpdateStatus(ctx context.Context, sess domain.Session, id int64, status domain.BookingStatus) (domain.Booking, error) {
	if !sess.IsAdmin() {
		return domain.Booking{}, domain.ErrForbidden
	}
	if !domain.ValidBookingStatus(status) {
		return domain.Booking{}, domain.Invalid("status", "must be pending, confirmed or cancelled")
	}
	if _, err := s.repo.GetBooking(ctx, id); err != nil {
		return domain.Booking{}, err
	}
	if err := s.repo.UpdateBookingStatus(ctx, id, status); err != nil {
		return domain.Booking{}, err
	}
	return s.repo.GetBooking(ctx, id)
}

// GetBooking returns one booking. Non-admin callers may only read their own.
func (s *BookingService) GetBooking(ctx context.Context, sess domain.Session, id int64) (domain.Booking, error) {
	b, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if b.RequesterID != sess.UserID && !sess.IsAdmin() {
		return domain.Booking{}, domain.ErrForbidden
	}
	return b, nil
}
