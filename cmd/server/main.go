package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"restaurant-reservations/internal/booking"
	"restaurant-reservations/internal/config"
	"restaurant-reservations/internal/database"
	"restaurant-reservations/internal/handler"
	"restaurant-reservations/internal/middleware"
	"restaurant-reservations/internal/queue"
	"restaurant-reservations/internal/repository"
	"restaurant-reservations/internal/router"
	"restaurant-reservations/internal/seating"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rules := booking.DefaultRules()
	if wd, err := booking.ParseWeekday(cfg.ClosedWeekday); err == nil {
		rules.ClosedWeekday = wd
	} else {
		log.Fatalf("config: %v", err)
	}
	if rules.OpenAt, err = booking.ParseClock(cfg.OpenTime); err != nil {
		log.Fatalf("config: %v", err)
	}
	if rules.CloseAt, err = booking.ParseClock(cfg.CloseTime); err != nil {
		log.Fatalf("config: %v", err)
	}

	reservations := repository.NewReservationRepo(db)
	tables := repository.NewTableRepo(db)
	coordinator := seating.NewCoordinator(db, tables, reservations)

	e := echo.New()
	e.HideBanner = true

	// Redis is optional; with no client both middlewares pass through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e,
		handler.NewReservationHandler(reservations, tables, rules),
		handler.NewTableHandler(tables, coordinator),
	)

	// Lifecycle events land in logs/reservations.log via the consumer.
	go func() {
		if err := queue.StartLifecycleConsumer(); err != nil {
			log.Printf("lifecycle consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
