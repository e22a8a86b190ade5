package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/config"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/database"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/handler"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/middleware"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/queue"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/repository"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)

	e := echo.New()

	// Redis-backed rate limiting and response caching.  When Redis is
	// unreachable both middlewares become pass-throughs.  The limiter
	// covers everything; the response cache wraps only the public
	// browse routes, where responses carry no caller identity.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	browseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(roomRepo, reservationRepo, feedbackRepo), browseCache)
	router.RegisterClient(e, handler.NewClientHandler(roomRepo, reservationRepo, feedbackRepo), cfg.JWTSecret)
	router.RegisterOwner(e, handler.NewOwnerHandler(roomRepo, reservationRepo), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(userRepo, roomRepo, reservationRepo, feedbackRepo), cfg.JWTSecret)

	// Hourly janitor dropping refresh tokens well past their expiry.
	go func() {
		for {
			time.Sleep(time.Hour)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := tokenRepo.PurgeExpired(ctx, 24*time.Hour); err != nil {
				log.Printf("token purge: %v", err)
			}
			cancel()
		}
	}()

	// Background consumer mirroring created reservations to a log file.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
