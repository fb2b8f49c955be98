package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"travelbook/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		string(b.SubjectType),
		b.SubjectID,
		b.RequesterID,
		b.StartDate,
		b.EndDate,
		valInt(b.Rooms),
		valStr(b.PickupLocation),
		b.Phone,
		b.Whatsapp,
		string(b.Status),
	)
	if err != nil {
		return domain.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Booking{}, err
	}
	// Re-read for the server-assigned id and timestamps.
	return r.GetBooking(ctx, id)
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	_, err := r.db.ExecContext(ctx, updateBookingStatusSQL, string(status), id)
	return err
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

func (r *Repo) ListBookingsByRequester(ctx context.Context, requesterID int64) ([]domain.Booking, error) {
	return r.listBookings(ctx, listBookingsByRequesterSQL, requesterID)
}

func (r *Repo) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	return r.listBookings(ctx, listAllBookingsSQL)
}

func (r *Repo) listBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dst ...any) error }

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var subjectType, status string
	var rooms sql.NullInt64
	var pickup sql.NullString

	if err := row.Scan(
		&b.ID,
		&subjectType,
		&b.SubjectID,
		&b.RequesterID,
		&b.StartDate,
		&b.EndDate,
		&rooms,
		&pickup,
		&b.Phone,
		&b.Whatsapp,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return domain.Booking{}, err
	}
	b.SubjectType = domain.SubjectType(subjectType)
	b.Status = domain.BookingStatus(status)
	if rooms.Valid {
		n := int(rooms.Int64)
		b.Rooms = &n
	}
	if pickup.Valid {
		s := pickup.String
		b.PickupLocation = &s
	}
	return b, nil
}

// ---------------------------------------------------------------------------
// Tour requests
// ---------------------------------------------------------------------------

func (r *Repo) CreateTourRequest(ctx context.Context, tr domain.TourRequest) (domain.TourRequest, error) {
	interests, _ := json.Marshal(tr.Interests)
	res, err := r.db.ExecContext(ctx, insertTourRequestSQL,
		tr.RequesterID,
		tr.ArrivalDate,
		tr.DepartureDate,
		tr.GroupSize,
		string(interests),
		valF64(tr.BudgetMin),
		valF64(tr.BudgetMax),
		tr.Phone,
		tr.Whatsapp,
		valStr(tr.Notes),
		string(tr.Status),
	)
	if err != nil {
		return domain.TourRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.TourRequest{}, err
	}
	return r.GetTourRequest(ctx, id)
}

func (r *Repo) UpdateTourRequestStatus(ctx context.Context, id int64, status domain.TourStatus) error {
	_, err := r.db.ExecContext(ctx, updateTourRequestStatusSQL, string(status), id)
	return err
}

func (r *Repo) GetTourRequest(ctx context.Context, id int64) (domain.TourRequest, error) {
	tr, err := scanTourRequest(r.db.QueryRowContext(ctx, getTourRequestSQL, id))
	if err == sql.ErrNoRows {
		return domain.TourRequest{}, domain.ErrNotFound
	}
	return tr, err
}

func (r *Repo) ListTourRequestsByStatus(ctx context.Context, status domain.TourStatus) ([]domain.TourRequest, error) {
	return r.listTourRequests(ctx, listTourRequestsByStatusSQL, string(status))
}

func (r *Repo) ListAllTourRequests(ctx context.Context) ([]domain.TourRequest, error) {
	return r.listTourRequests(ctx, listAllTourRequestsSQL)
}

func (r *Repo) listTourRequests(ctx context.Context, query string, args ...any) ([]domain.TourRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TourRequest
	for rows.Next() {
		tr, err := scanTourRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

func scanTourRequest(row rowScanner) (domain.TourRequest, error) {
	var tr domain.TourRequest
	var status string
	var interestsJSON []byte
	var budgetMin, budgetMax sql.NullFloat64
	var notes sql.NullString

	if err := row.Scan(
		&tr.ID,
		&tr.RequesterID,
		&tr.ArrivalDate,
		&tr.DepartureDate,
		&tr.GroupSize,
		&interestsJSON,
		&budgetMin,
		&budgetMax,
		&tr.Phone,
		&tr.Whatsapp,
		&notes,
		&status,
		&tr.CreatedAt,
		&tr.UpdatedAt,
	); err != nil {
		return domain.TourRequest{}, err
	}
	tr.Status = domain.TourStatus(status)
	_ = json.Unmarshal(interestsJSON, &tr.Interests)
	if budgetMin.Valid {
		f := budgetMin.Float64
		tr.BudgetMin = &f
	}
	if budgetMax.Valid {
		f := budgetMax.Float64
		tr.BudgetMax = &f
	}
	if notes.Valid {
		s := notes.String
		tr.Notes = &s
	}
	return tr, nil
}

// ---------------------------------------------------------------------------
// Ratings
// ---------------------------------------------------------------------------

func (r *Repo) UpsertRating(ctx context.Context, rt domain.Rating) (domain.Rating, error) {
	if _, err := r.db.ExecContext(ctx, upsertRatingSQL,
		rt.VehicleID,
		rt.UserID,
		rt.Rating,
		valStr(rt.Review),
	); err != nil {
		return domain.Rating{}, err
	}
	// Fetch the canonical row: on update LastInsertId is unreliable, and
	// timestamps are set by the database.
	return r.GetRating(ctx, rt.UserID, rt.VehicleID)
}

func (r *Repo) DeleteRating(ctx context.Context, userID, vehicleID int64) error {
	res, err := r.db.ExecContext(ctx, deleteRatingSQL, userID, vehicleID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) GetRating(ctx context.Context, userID, vehicleID int64) (domain.Rating, error) {
	rt, err := scanRating(r.db.QueryRowContext(ctx, getRatingSQL, userID, vehicleID))
	if err == sql.ErrNoRows {
		return domain.Rating{}, domain.ErrNotFound
	}
	return rt, err
}

func (r *Repo) ListRatings(ctx context.Context, vehicleID int64, limit, offset int) ([]domain.Rating, error) {
	rows, err := r.db.QueryContext(ctx, listRatingsSQL, vehicleID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Rating
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *Repo) GetRatingSummary(ctx context.Context, vehicleID int64) (domain.RatingSummary, error) {
	var sum domain.RatingSummary
	err := r.db.QueryRowContext(ctx, ratingSummarySQL, vehicleID).
		Scan(&sum.AverageRating, &sum.TotalRatings)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return sum, nil
}

func scanRating(row rowScanner) (domain.Rating, error) {
	var rt domain.Rating
	var review sql.NullString

	if err := row.Scan(
		&rt.ID,
		&rt.VehicleID,
		&rt.UserID,
		&rt.Rating,
		&review,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	); err != nil {
		return domain.Rating{}, err
	}
	if review.Valid {
		s := review.String
		rt.Review = &s
	}
	return rt, nil
}
