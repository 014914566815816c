package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mstepanov/cinema-booking/internal/booking"
	"github.com/mstepanov/cinema-booking/internal/config"
	"github.com/mstepanov/cinema-booking/internal/database"
	"github.com/mstepanov/cinema-booking/internal/handler"
	"github.com/mstepanov/cinema-booking/internal/middleware"
	"github.com/mstepanov/cinema-booking/internal/queue"
	"github.com/mstepanov/cinema-booking/internal/repository"
	"github.com/mstepanov/cinema-booking/internal/router"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	halls := repository.NewHallRepo(db)
	seats := repository.NewSeatRepo(db)
	screenings := repository.NewScreeningRepo(db)
	bookings := repository.NewBookingRepo(db)

	svc := booking.NewService(screenings, seats, bookings,
		booking.WithPublisher(queue.NewPublisher(cfg.AMQPURL)))

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	// the limiter is group middleware, not e.Use: on authenticated
	// groups it has to run after JWTAuth to see the user id
	rate := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret, rate)
	router.RegisterPublic(e, handler.NewBrowseHandler(movies, screenings, svc), rate, cache)
	router.RegisterCustomer(e, handler.NewBookingHandler(svc, bookings), cfg.JWTSecret, rate)
	router.RegisterAdmin(e,
		handler.NewMovieAdminHandler(movies, cfg.MediaDir),
		handler.NewHallAdminHandler(halls, seats),
		handler.NewScreeningAdminHandler(screenings, movies, halls),
		cfg.JWTSecret, rate)

	// poster images are served straight off disk
	e.Static("/media/posters", cfg.MediaDir)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
