package domain

import "time"

// Rating is one user's score for one vehicle. At most one row exists per
// (UserID, VehicleID); resubmitting overwrites the existing row in place.
type Rating struct {
	ID        int64
	VehicleID int64
	UserID    int64
	Rating    int // 1..5
	Review    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingSummary is derived from the full rating set of a vehicle, never
// stored independently. AverageRating is rounded to one decimal for
// display; zero when no ratings exist.
type RatingSummary struct {
	AverageRating float64
	TotalRatings  int64
}

type RatingsPage struct {
	Items    []Rating
	Summary  RatingSummary // computed over ALL ratings, not just this page
	Page     int
	PageSize int
}
