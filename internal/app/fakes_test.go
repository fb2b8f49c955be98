package app_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"travelbook/internal/domain"
)

// ---- fakes ----

type fakeBookingRepo struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{rows: map[int64]domain.Booking{}}
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	b.ID = f.seq
	b.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	b.UpdatedAt = b.CreatedAt
	f.rows[b.ID] = b
	return b, nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	f.rows[id] = b
	return nil
}

func (f *fakeBookingRepo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) ListBookingsByRequester(ctx context.Context, requesterID int64) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.rows {
		if b.RequesterID == requesterID {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeBookingRepo) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Booking, 0, len(f.rows))
	for _, b := range f.rows {
		out = append(out, b)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(bs []domain.Booking) {
	sort.Slice(bs, func(i, j int) bool { return bs[i].CreatedAt.After(bs[j].CreatedAt) })
}

type fakeTourRepo struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]domain.TourRequest
}

func newFakeTourRepo() *fakeTourRepo {
	return &fakeTourRepo{rows: map[int64]domain.TourRequest{}}
}

func (f *fakeTourRepo) CreateTourRequest(ctx context.Context, tr domain.TourRequest) (domain.TourRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	tr.ID = f.seq
	tr.CreatedAt = time.Now()
	tr.UpdatedAt = tr.CreatedAt
	f.rows[tr.ID] = tr
	return tr, nil
}

func (f *fakeTourRepo) UpdateTourRequestStatus(ctx context.Context, id int64, status domain.TourStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tr, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	tr.Status = status
	tr.UpdatedAt = time.Now()
	f.rows[id] = tr
	return nil
}

func (f *fakeTourRepo) GetTourRequest(ctx context.Context, id int64) (domain.TourRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tr, ok := f.rows[id]
	if !ok {
		return domain.TourRequest{}, domain.ErrNotFound
	}
	return tr, nil
}

func (f *fakeTourRepo) ListTourRequestsByStatus(ctx context.Context, status domain.TourStatus) ([]domain.TourRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TourRequest
	for _, tr := range f.rows {
		if tr.Status == status {
			out = append(out, tr)
		}
	}
	return out, nil
}

func (f *fakeTourRepo) ListAllTourRequests(ctx context.Context) ([]domain.TourRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.TourRequest, 0, len(f.rows))
	for _, tr := range f.rows {
		out = append(out, tr)
	}
	return out, nil
}

type fakeRatingRepo struct {
	mu   sync.Mutex
	seq  int64
	rows map[string]domain.Rating // keyed user|vehicle
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{rows: map[string]domain.Rating{}}
}

func ratingKey(userID, vehicleID int64) string {
	return fmt.Sprintf("%d|%d", userID, vehicleID)
}

func (f *fakeRatingRepo) UpsertRating(ctx context.Context, r domain.Rating) (domain.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ratingKey(r.UserID, r.VehicleID)
	now := time.Now()
	if old, ok := f.rows[key]; ok {
		old.Rating = r.Rating
		old.Review = r.Review
		old.UpdatedAt = now
		f.rows[key] = old
		return old, nil
	}
	f.seq++
	r.ID = f.seq
	r.CreatedAt = now
	r.UpdatedAt = now
	f.rows[key] = r
	return r, nil
}

func (f *fakeRatingRepo) DeleteRating(ctx context.Context, userID, vehicleID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ratingKey(userID, vehicleID)
	if _, ok := f.rows[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, key)
	return nil
}

func (f *fakeRatingRepo) GetRating(ctx context.Context, userID, vehicleID int64) (domain.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[ratingKey(userID, vehicleID)]
	if !ok {
		return domain.Rating{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRatingRepo) ListRatings(ctx context.Context, vehicleID int64, limit, offset int) ([]domain.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []domain.Rating
	for _, r := range f.rows {
		if r.VehicleID == vehicleID {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeRatingRepo) GetRatingSummary(ctx context.Context, vehicleID int64) (domain.RatingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum, n int64
	for _, r := range f.rows {
		if r.VehicleID == vehicleID {
			sum += int64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return domain.RatingSummary{}, nil
	}
	return domain.RatingSummary{AverageRating: float64(sum) / float64(n), TotalRatings: n}, nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok2 := dst.(*domain.RatingSummary); ok2 {
		*d = v.(domain.RatingSummary)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// ---- small helpers ----

func ptr[T any](v T) *T { return &v }

func user(id int64) domain.Session  { return domain.Session{UserID: id, Role: domain.RoleUser} }
func admin(id int64) domain.Session { return domain.Session{UserID: id, Role: domain.RoleAdmin} }
