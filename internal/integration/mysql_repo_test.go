//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"travelbook/internal/domain"
	mysqlrepo "travelbook/internal/storage/mysql"
)

// ---------- helpers ----------
func pstr(s string) *string { return &s }
func pint(i int) *int       { return &i }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=travelbook",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/travelbook?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// ---------- the tests ----------

func TestMySQL_BookingRoundTrip(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	created, err := repo.CreateBooking(ctx, domain.Booking{
		SubjectType:    domain.SubjectVehicle,
		SubjectID:      3,
		RequesterID:    11,
		StartDate:      day("2026-10-01"),
		EndDate:        day("2026-10-04"),
		PickupLocation: pstr("Amman downtown"),
		Phone:          "+962-7-9000-0000",
		Whatsapp:       "+962-7-9000-0000",
		Status:         domain.BookingPending,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if created.ID == 0 || created.Status != domain.BookingPending {
		t.Fatalf("unexpected created booking: %+v", created)
	}
	if created.PickupLocation == nil || *created.PickupLocation != "Amman downtown" {
		t.Fatalf("pickup location lost: %+v", created.PickupLocation)
	}

	hotel, err := repo.CreateBooking(ctx, domain.Booking{
		SubjectType: domain.SubjectHotel,
		SubjectID:   5,
		RequesterID: 11,
		StartDate:   day("2026-10-01"),
		EndDate:     day("2026-10-04"),
		Rooms:       pint(2),
		Phone:       "+962-7-9000-0000",
		Whatsapp:    "+962-7-9000-0000",
		Status:      domain.BookingPending,
	})
	if err != nil {
		t.Fatalf("CreateBooking hotel: %v", err)
	}
	if hotel.Rooms == nil || *hotel.Rooms != 2 {
		t.Fatalf("rooms lost: %+v", hotel.Rooms)
	}

	if err := repo.UpdateBookingStatus(ctx, created.ID, domain.BookingConfirmed); err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	got, err := repo.GetBooking(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if got.Status != domain.BookingConfirmed {
		t.Fatalf("status = %s, want confirmed", got.Status)
	}

	mine, err := repo.ListBookingsByRequester(ctx, 11)
	if err != nil {
		t.Fatalf("ListBookingsByRequester: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("requester sees %d bookings, want 2", len(mine))
	}

	if _, err := repo.GetBooking(ctx, 99999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing booking err = %v, want ErrNotFound", err)
	}
}

func TestMySQL_TourRequestRoundTrip(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	budget := 1200.0
	created, err := repo.CreateTourRequest(ctx, domain.TourRequest{
		RequesterID:   7,
		ArrivalDate:   day("2026-11-10"),
		DepartureDate: day("2026-11-15"),
		GroupSize:     4,
		Interests:     []string{"history", "diving"},
		BudgetMax:     &budget,
		Phone:         "+962-7-9000-0001",
		Whatsapp:      "+962-7-9000-0001",
		Notes:         pstr("vegetarian meals"),
		Status:        domain.TourPending,
	})
	if err != nil {
		t.Fatalf("CreateTourRequest: %v", err)
	}
	if len(created.Interests) != 2 || created.Interests[0] != "history" {
		t.Fatalf("interests lost in round trip: %+v", created.Interests)
	}

	pending, err := repo.ListTourRequestsByStatus(ctx, domain.TourPending)
	if err != nil {
		t.Fatalf("ListTourRequestsByStatus: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending count = %d, want 1", len(pending))
	}

	if err := repo.UpdateTourRequestStatus(ctx, created.ID, domain.TourApproved); err != nil {
		t.Fatalf("UpdateTourRequestStatus: %v", err)
	}
	pending, err = repo.ListTourRequestsByStatus(ctx, domain.TourPending)
	if err != nil {
		t.Fatalf("ListTourRequestsByStatus: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending count after approval = %d, want 0", len(pending))
	}
	all, err := repo.ListAllTourRequests(ctx)
	if err != nil {
		t.Fatalf("ListAllTourRequests: %v", err)
	}
	if len(all) != 1 || all[0].Status != domain.TourApproved {
		t.Fatalf("full listing = %+v", all)
	}
}

// The unique key on (user_id, vehicle_id) must collapse repeat submissions
// into a single row instead of accumulating duplicates.
func TestMySQL_RatingUpsertDedupeAndSummary(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	first, err := repo.UpsertRating(ctx, domain.Rating{VehicleID: 9, UserID: 1, Rating: 2, Review: pstr("meh")})
	if err != nil {
		t.Fatalf("UpsertRating: %v", err)
	}
	second, err := repo.UpsertRating(ctx, domain.Rating{VehicleID: 9, UserID: 1, Rating: 5, Review: pstr("improved a lot")})
	if err != nil {
		t.Fatalf("UpsertRating again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second submission created row %d, want update of %d", second.ID, first.ID)
	}
	if second.Rating != 5 {
		t.Fatalf("rating = %d, want 5", second.Rating)
	}

	if _, err := repo.UpsertRating(ctx, domain.Rating{VehicleID: 9, UserID: 2, Rating: 4}); err != nil {
		t.Fatalf("UpsertRating other user: %v", err)
	}

	sum, err := repo.GetRatingSummary(ctx, 9)
	if err != nil {
		t.Fatalf("GetRatingSummary: %v", err)
	}
	if sum.TotalRatings != 2 {
		t.Fatalf("total = %d, want 2", sum.TotalRatings)
	}
	if sum.AverageRating != 4.5 {
		t.Fatalf("average = %v, want 4.5", sum.AverageRating)
	}

	rows, err := repo.ListRatings(ctx, 9, 10, 0)
	if err != nil {
		t.Fatalf("ListRatings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("listed %d rows, want 2", len(rows))
	}

	if err := repo.DeleteRating(ctx, 1, 9); err != nil {
		t.Fatalf("DeleteRating: %v", err)
	}
	if err := repo.DeleteRating(ctx, 1, 9); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
	sum, err = repo.GetRatingSummary(ctx, 9)
	if err != nil {
		t.Fatalf("GetRatingSummary: %v", err)
	}
	if sum.TotalRatings != 1 || sum.AverageRating != 4 {
		t.Fatalf("summary after delete = %+v", sum)
	}

	empty, err := repo.GetRatingSummary(ctx, 777)
	if err != nil {
		t.Fatalf("GetRatingSummary empty: %v", err)
	}
	if empty.TotalRatings != 0 || empty.AverageRating != 0 {
		t.Fatalf("empty summary = %+v", empty)
	}
}
