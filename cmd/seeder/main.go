package main

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travelbook/internal/adapters/observability"
	redisad "travelbook/internal/adapters/redis"
	"travelbook/internal/app"
	"travelbook/internal/domain"
	"travelbook/internal/shared"
	mysqlrepo "travelbook/internal/storage/mysql"
)

// seedUserCount controls how many demo requesters get generated.
const seedUserCount = 25

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.SeedWorkers).
		Int("users", seedUserCount).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	bookings := app.NewBookingService(repo)
	tours := app.NewTourRequestService(repo)
	ratings := app.NewRatingService(repo, cache, cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for i := 1; i <= seedUserCount; i++ {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := seedUser(ctx, bookings, tours, ratings, userID); err != nil {
				log.Warn().Int64("user", userID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("user", userID).Msg("seed ok")
		}(int64(i))
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

// seedUser writes one vehicle booking, one hotel booking, one tour request
// and one rating on behalf of the given demo user.
func seedUser(ctx context.Context, bookings *app.BookingService, tours *app.TourRequestService, ratings *app.RatingService, userID int64) error {
	sess := domain.Session{UserID: userID, Role: domain.RoleUser}
	phone := fmt.Sprintf("+1-555-01%02d", userID%100)
	start := time.Now().AddDate(0, 0, int(userID))
	end := start.AddDate(0, 0, 3)

	pickup := "Queen Alia International Airport"
	if _, err := bookings.CreateBooking(ctx, sess, app.CreateBookingInput{
		SubjectType:    domain.SubjectVehicle,
		SubjectID:      1 + userID%5,
		StartDate:      start,
		EndDate:        end,
		PickupLocation: &pickup,
		Phone:          phone,
		Whatsapp:       phone,
	}); err != nil {
		return fmt.Errorf("vehicle booking: %w", err)
	}

	rooms := 1 + int(userID%3)
	if _, err := bookings.CreateBooking(ctx, sess, app.CreateBookingInput{
		SubjectType: domain.SubjectHotel,
		SubjectID:   1 + userID%7,
		StartDate:   start,
		EndDate:     end,
		Rooms:       &rooms,
		Phone:       phone,
		Whatsapp:    phone,
	}); err != nil {
		return fmt.Errorf("hotel booking: %w", err)
	}

	budgetMin, budgetMax := 500.0, 1500.0
	if _, err := tours.CreateRequest(ctx, sess, app.CreateTourRequestInput{
		ArrivalDate:   start,
		DepartureDate: end,
		GroupSize:     2 + int(userID%4),
		Interests:     []string{"history", "food"},
		BudgetMin:     &budgetMin,
		BudgetMax:     &budgetMax,
		Phone:         phone,
		Whatsapp:      phone,
	}); err != nil {
		return fmt.Errorf("tour request: %w", err)
	}

	review := "Smooth ride, would book again."
	if _, err := ratings.SubmitRating(ctx, sess, 1+userID%5, 1+int(userID%5), &review); err != nil {
		return fmt.Errorf("rating: %w", err)
	}
	return nil
}
