package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/event_booking/internal/adapter/cache"
	"github.com/srgjo27/event_booking/internal/adapter/handler"
	"github.com/srgjo27/event_booking/internal/adapter/queue"
	"github.com/srgjo27/event_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/event_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/event_booking/internal/adapter/repository/sqlite"
	"github.com/srgjo27/event_booking/internal/core/ports"
	"github.com/srgjo27/event_booking/internal/core/services"
	"github.com/srgjo27/event_booking/internal/platform/config"
	"github.com/srgjo27/event_booking/internal/platform/database"
)

func openLedger(ctx context.Context, cfg config.Config) (ports.LedgerRepository, *sql.DB, error) {
	switch cfg.LedgerBackend {
	case config.LedgerPostgres:
		db, err := database.NewPostgresDB(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewBookingRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db, nil
	case config.LedgerSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := sqlite.NewBookingRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db, nil
	default:
		log.Println("Using in-memory ledger; bookings are lost on restart.")
		return memory.NewLedger(), nil, nil
	}
}

func main() {
	cfg := config.Load(".env")
	ctx := context.Background()

	ledgerRepo, db, err := openLedger(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s ledger: %v", cfg.LedgerBackend, err)
	}
	if db != nil {
		defer db.Close()
	}

	var catalogCache ports.CatalogCache
	if cfg.RedisEnabled {
		log.Printf("Connecting to Redis at %s...", cfg.RedisAddr())

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Redis connected successfully!")
		defer redisClient.Close()

		catalogCache = cache.NewCatalogCache(redisClient, cfg.CatalogTTL)
	}

	var notifier ports.BookingNotifier
	if cfg.AMQPURL != "" {
		notifier = queue.NewPublisher(cfg.AMQPURL)
		log.Printf("Publishing confirmations to queue %q", queue.BookingConfirmedQueue)
	}

	catalogService := services.NewCatalogService(memory.NewCatalog(), catalogCache)
	if cfg.SeedCatalog {
		if err := catalogService.SeedDefaults(ctx); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	bookingLedger := services.NewBookingLedger(ledgerRepo)
	sessionService := services.NewSessionService(catalogService, bookingLedger, notifier, cfg.SessionTTL)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()

	go func() {
		sessionService.RunBackgroundCleanup(workerCtx, cfg.SessionCleanupInterval)
	}()

	router := handler.NewRouter(
		handler.NewBookingHandler(sessionService),
		handler.NewAdminHandler(catalogService, bookingLedger),
		cfg.AllowedOrigins,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
