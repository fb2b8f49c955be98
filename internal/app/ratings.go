package app

import (
	"context"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"travelbook/internal/domain"
)

const maxReviewLen = 500

type RatingService struct {
	repo     domain.RatingRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewRatingService(r domain.RatingRepository, c domain.Cache, ttl time.Duration) *RatingService {
	return &RatingService{repo: r, cache: c, cacheTTL: ttl}
}

// SubmitRating upserts the caller's rating for a vehicle. A second
// submission by the same user overwrites the first row in place; the
// storage layer's unique key on (user_id, vehicle_id) makes concurrent
// submissions resolve last-write-wins with no duplicate row.
func (s *RatingService) SubmitRating(ctx context.Context, sess domain.Session, vehicleID int64, rating int, review *string) (domain.Rating, error) {
	if vehicleID <= 0 {
		return domain.Rating{}, domain.Invalid("vehicleId", "required")
	}
	if rating < 1 || rating > 5 {
		return domain.Rating{}, domain.Invalid("rating", "must be an integer between 1 and 5")
	}
	if review != nil && utf8.RuneCountInString(*review) > maxReviewLen {
		return domain.Rating{}, domain.Invalid("review", fmt.Sprintf("longer than %d characters", maxReviewLen))
	}

	stored, err := s.repo.UpsertRating(ctx, domain.Rating{
		VehicleID: vehicleID,
		UserID:    sess.UserID,
		Rating:    rating,
		Review:    review,
	})
	if err != nil {
		return domain.Rating{}, err
	}
	s.invalidateSummary(ctx, vehicleID)
	return stored, nil
}

// GetVehicleRatings returns one page of ratings, newest first, plus the
// summary computed over the vehicle's full rating set.
func (s *RatingService) GetVehicleRatings(ctx context.Context, vehicleID int64, page, pageSize int) (domain.RatingsPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, err := s.repo.ListRatings(ctx, vehicleID, pageSize, (page-1)*pageSize)
	if err != nil {
		return domain.RatingsPage{}, err
	}
	sum, err := s.GetRatingSummary(ctx, vehicleID)
	if err != nil {
		return domain.RatingsPage{}, err
	}
	return domain.RatingsPage{Items: items, Summary: sum, Page: page, PageSize: pageSize}, nil
}

// GetRatingSummary serves the lightweight card/listing view. The summary
// is cached; every mutation invalidates the key, so reads after a write
// in the same process always see the recomputed value.
func (s *RatingService) GetRatingSummary(ctx context.Context, vehicleID int64) (domain.RatingSummary, error) {
	key := summaryKey(vehicleID)
	var sum domain.RatingSummary
	if ok, _ := s.cache.Get(ctx, key, &sum); ok {
		return sum, nil
	}
	sum, err := s.repo.GetRatingSummary(ctx, vehicleID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	sum.AverageRating = roundTenth(sum.AverageRating)
	_ = s.cache.Set(ctx, key, sum, int(s.cacheTTL.Seconds()))
	return sum, nil
}

// GetUserRating returns the caller's rating for the vehicle, or
// domain.ErrNotFound when none exists.
func (s *RatingService) GetUserRating(ctx context.Context, sess domain.Session, vehicleID int64) (domain.Rating, error) {
	return s.repo.GetRating(ctx, sess.UserID, vehicleID)
}

// DeleteRating removes the caller's own rating. Ownership is implicit:
// the row is keyed by the caller's user id, so no other actor's rating
// can be touched.
func (s *RatingService) DeleteRating(ctx context.Context, sess domain.Session, vehicleID int64) error {
	if err := s.repo.DeleteRating(ctx, sess.UserID, vehicleID); err != nil {
		return err
	}
	s.invalidateSummary(ctx, vehicleID)
	return nil
}

func (s *RatingService) invalidateSummary(ctx context.Context, vehicleID int64) {
	_ = s.cache.Del(ctx, summaryKey(vehicleID))
}

func summaryKey(vehicleID int64) string {
	return fmt.Sprintf("rating_summary:%d", vehicleID)
}

func roundTenth(f float64) float64 {
	return math.Round(f*10) / 10
}
