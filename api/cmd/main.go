package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/rso-takle-mamo/booking-service/internal/application/booking"
	"github.com/rso-takle-mamo/booking-service/internal/application/replication"
	"github.com/rso-takle-mamo/booking-service/internal/config"
	"github.com/rso-takle-mamo/booking-service/internal/infrastructure/availability"
	"github.com/rso-takle-mamo/booking-service/internal/infrastructure/caching/redis"
	"github.com/rso-takle-mamo/booking-service/internal/infrastructure/db/postgres"
	"github.com/rso-takle-mamo/booking-service/internal/infrastructure/messaging/kafka"
	"github.com/rso-takle-mamo/booking-service/internal/logger"
	"github.com/rso-takle-mamo/booking-service/internal/transport/http/handlers"
	authmw "github.com/rso-takle-mamo/booking-service/internal/transport/http/middleware"
	"github.com/rso-takle-mamo/booking-service/internal/transport/http/router"
)

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Publisher   *kafka.Publisher
	Replicators []*kafka.Replicator
	Cache       *redis.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	app := NewApp(cfg, db)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
		if app.Cache != nil {
			_ = app.Cache.Close()
		}
	}()

	// One shared cancellation signal for every background loop.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, r := range app.Replicators {
		wg.Add(1)
		go func(r *kafka.Replicator) {
			defer wg.Done()
			r.Run(ctx)
		}(r)
	}

	go func() {
		<-ctx.Done()
		zlog.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Server.Shutdown(shutdownCtx)
	}()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}

	stop()
	wg.Wait()
	zlog.Info().Msg("stopped")
}

func NewApp(cfg *config.Config, db *sql.DB) *App {
	// 1) Infrastructure
	bookings := postgres.NewBookingRepo(db)
	services := postgres.NewServiceRepo(db)
	categories := postgres.NewCategoryRepo(db)
	tenants := postgres.NewTenantRepo(db)

	var cache *redis.Client
	if cfg.RedisURL != "" {
		c, err := redis.New(cfg.RedisURL)
		if err != nil {
			zlog.Fatal().Err(err).Msg("redis init failed")
		}
		cache = c
		zlog.Info().Msg("redis cache ready")
	} else {
		zlog.Warn().Msg("REDIS_URL empty: service catalog lookups go straight to the database")
	}

	avail := availability.NewClient(cfg.AvailabilityURL, cfg.AvailabilityTimeout)

	var pub booking.EventPublisher = booking.NoopPublisher{}
	var producer *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewPublisher(cfg.KafkaBrokers, cfg.BookingEventsTopic)
		pub = producer
		zlog.Info().Str("topic", cfg.BookingEventsTopic).Msg("kafka publisher ready")
	} else {
		zlog.Warn().Msg("KAFKA_BROKERS empty: booking events will not be published")
	}

	// 2) Application
	svcOpts := []booking.Option{}
	projOpts := []replication.Option{}
	if cache != nil {
		svcOpts = append(svcOpts, booking.WithCache(cache, cfg.CacheTTLService))
		projOpts = append(projOpts, replication.WithCache(cache))
	}
	svc := booking.NewService(bookings, services, avail, pub, svcOpts...)
	projector := replication.NewProjector(services, categories, tenants, projOpts...)

	var replicators []*kafka.Replicator
	if len(cfg.KafkaBrokers) > 0 {
		for _, topic := range []string{cfg.TenantEventsTopic, cfg.ServiceCatalogTopic} {
			replicators = append(replicators, kafka.NewReplicator(kafka.ReplicatorConfig{
				Name:           topic,
				Brokers:        cfg.KafkaBrokers,
				Topic:          topic,
				GroupID:        cfg.ConsumerGroupID,
				ConnectBackoff: cfg.ConsumerConnectBackoff,
				HandlerTimeout: cfg.ConsumerHandlerTimeout,
			}, projector))
		}
	} else {
		zlog.Warn().Msg("KAFKA_BROKERS empty: tenant and catalog replication disabled")
	}

	// 3) Transport
	h := handlers.NewBookingsHandler(svc)
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)
	z := handlers.NewHealthHandler(db)

	// 4) Router
	httpHandler := router.New(h, auth, z, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:      cfg,
		Server:      srv,
		DB:          db,
		Publisher:   producer,
		Replicators: replicators,
		Cache:       cache,
	}
}
