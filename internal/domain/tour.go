package domain

import "time"

type TourStatus string

const (
	TourPending  TourStatus = "pending"
	TourApproved TourStatus = "approved"
	TourRejected TourStatus = "rejected"
)

func ValidTourStatus(s TourStatus) bool {
	switch s {
	case TourPending, TourApproved, TourRejected:
		return true
	}
	return false
}

// TourRequest is a custom tour enquiry. Unlike bookings it carries no
// subject reference; the itinerary is described by the payload itself.
type TourRequest struct {
	ID            int64
	RequesterID   int64
	ArrivalDate   time.Time
	DepartureDate time.Time
	GroupSize     int
	Interests     []string
	BudgetMin     *float64
	BudgetMax     *float64
	Phone         string
	Whatsapp      string
	Notes         *string
	Status        TourStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
