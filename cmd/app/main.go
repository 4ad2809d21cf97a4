package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/bootstrap"
	"github.com/Domenick1991/airport/internal/cache"
	"github.com/Domenick1991/airport/internal/clock"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/media"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/crew"
	"github.com/Domenick1991/airport/internal/service/fleet"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/geo"
	"github.com/Domenick1991/airport/internal/service/users"
	"github.com/Domenick1991/airport/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using process environment")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.FlightsCacheDuration())
	defer redisCache.Close()

	checks := map[string]bootstrap.HealthCheck{
		"postgres": pool.Ping,
		"redis":    redisCache.Ping,
	}

	bookingOpts := []booking.BookingServiceOption{
		booking.WithSeatLockTTL(cfg.Booking.SeatLockDuration()),
	}
	// A nil *Producer must not end up inside the Producer interface.
	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer kafkaProducer.Close()
		producer = kafkaProducer
		checks["kafka"] = kafkaProducer.CheckConnection
		bookingOpts = append(bookingOpts, booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))
	} else {
		log.Printf("kafka brokers not configured, booking notifications disabled")
	}

	store := media.NewStore(cfg.Media.Root, cfg.Media.URLPrefix, int64(cfg.Media.MaxUploadMB)<<20)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), clock.NewSystem())

	geoRepo := repository.NewGeoRepository(pool)
	fleetRepo := repository.NewFleetRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	userService := users.NewUserService(userRepo, tokens)
	if cfg.Auth.AdminUsername != "" && cfg.Auth.AdminPassword != "" {
		if err := userService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			log.Fatalf("ensure admin: %v", err)
		}
	}

	services := api.Services{
		Geo:     geo.NewGeoService(geoRepo, redisCache),
		Fleet:   fleet.NewFleetService(fleetRepo, store, redisCache),
		Crew:    crew.NewCrewService(crewRepo, store, redisCache),
		Flights: flights.NewFlightService(flightRepo, redisCache),
		Booking: booking.NewBookingService(orderRepo, ticketRepo, flightRepo, redisCache, producer, bookingOpts...),
		Users:   userService,
		Tokens:  tokens,
		Media:   store,
	}

	router := bootstrap.NewRouter(cfg, services, checks)
	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
