package domain

import "context"

type BookingRepository interface {
	// Write paths
	CreateBooking(ctx context.Context, b Booking) (Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status BookingStatus) error

	// Read paths
	GetBooking(ctx context.Context, id int64) (Booking, error)
	ListBookingsByRequester(ctx context.Context, requesterID int64) ([]Booking, error)
	ListAllBookings(ctx context.Context) ([]Booking, error)
}

type TourRequestRepository interface {
	CreateTourRequest(ctx context.Context, tr TourRequest) (TourRequest, error)
	UpdateTourRequestStatus(ctx context.Context, id int64, status TourStatus) error

	GetTourRequest(ctx context.Context, id int64) (TourRequest, error)
	ListTourRequestsByStatus(ctx context.Context, status TourStatus) ([]TourRequest, error)
	ListAllTourRequests(ctx context.Context) ([]TourRequest, error)
}

type RatingRepository interface {
	// UpsertRating inserts or overwrites the row keyed by
	// (UserID, VehicleID) atomically and returns the stored row.
	UpsertRating(ctx context.Context, r Rating) (Rating, error)
	DeleteRating(ctx context.Context, userID, vehicleID int64) error

	GetRating(ctx context.Context, userID, vehicleID int64) (Rating, error)
	ListRatings(ctx context.Context, vehicleID int64, limit, offset int) ([]Rating, error)
	// GetRatingSummary returns the unrounded mean and count over every
	// rating of the vehicle.
	GetRatingSummary(ctx context.Context, vehicleID int64) (RatingSummary, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
