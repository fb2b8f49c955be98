package domain

import "time"

type SubjectType string

const (
	SubjectVehicle SubjectType = "vehicle"
	SubjectHotel   SubjectType = "hotel"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s belongs to the booking workflow
// vocabulary. Transition legality between values is deliberately not
// checked: any allowed value may overwrite any other.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID             int64
	SubjectType    SubjectType
	SubjectID      int64
	RequesterID    int64
	StartDate      time.Time
	EndDate        time.Time
	Rooms          *int    // hotel bookings only
	PickupLocation *string // vehicle bookings only
	Phone          string
	Whatsapp       string
	Status         BookingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
