// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/courtbook/internal/blockeddays"
	"github.com/codr1/courtbook/internal/clients"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/config"
	"github.com/codr1/courtbook/internal/courts"
	"github.com/codr1/courtbook/internal/db"
	"github.com/codr1/courtbook/internal/email"
	"github.com/codr1/courtbook/internal/pricing"
	"github.com/codr1/courtbook/internal/ratelimit"
	"github.com/codr1/courtbook/internal/reservations"
	"github.com/codr1/courtbook/internal/scheduler"
	"github.com/codr1/courtbook/internal/settings"
	"github.com/codr1/courtbook/internal/stats"
)

func setupLogger(environment string, debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	zerolog.DefaultContextLogger = &log.Logger
}

func main() {
	configPath := flag.String("config", "config/app.yaml", "Path to the application config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment, cfg.Features.EnableDebug)

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()
	log.Info().Str("driver", cfg.Database.Driver).Msg("Database ready")

	deps, err := buildServices(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer deps.limiter.Close()

	if cfg.Features.EnableScheduler {
		if err := startScheduler(cfg, deps); err != nil {
			return err
		}
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Error().Err(err).Msg("Failed to stop scheduler")
			}
		}()
	}

	// Create server instance
	server := newServer(cfg, deps)

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// services holds everything the HTTP layer and the scheduler are wired to.
type services struct {
	db        *db.DB
	clock     clock.Clock
	settings  *settings.DBStore
	lifecycle *reservations.Lifecycle
	courts    *courts.Service
	clients   *clients.Service
	registry  *blockeddays.Registry
	reporter  *stats.Reporter
	limiter   *ratelimit.Limiter
}

func buildServices(ctx context.Context, cfg *config.Config, database *db.DB) (*services, error) {
	location := cfg.Location()
	clk := clock.System{Location: location}

	store := settings.NewStore(database.Queries)
	booking := settings.NewBooking(store, cfg.Booking)

	var notifier reservations.Notifier
	if cfg.EmailEnabled() {
		sender, err := email.NewSESClient(ctx, cfg.Email)
		if err != nil {
			log.Warn().Err(err).Msg("Email disabled: SES client not configured")
		} else {
			notifier = email.NewNotifier(sender, cfg.App.Name)
			log.Info().Str("sender", cfg.Email.Sender).Msg("Email notifications enabled")
		}
	}

	lifecycle, err := reservations.NewLifecycle(database, clk, location, booking, pricing.NewEngine(booking), notifier)
	if err != nil {
		return nil, fmt.Errorf("build reservation lifecycle: %w", err)
	}

	return &services{
		db:        database,
		clock:     clk,
		settings:  store,
		lifecycle: lifecycle,
		courts:    courts.NewService(database, clk),
		clients:   clients.NewService(database, cfg.App.PhoneRegion),
		registry:  blockeddays.NewRegistry(database, clk),
		reporter:  stats.NewReporter(database, clk),
		limiter:   ratelimit.New(ratelimit.FromConfig(cfg.RateLimit)),
	}, nil
}

func startScheduler(cfg *config.Config, deps *services) error {
	if err := scheduler.Init(cfg.Location()); err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	if err := scheduler.RegisterJobs(cfg.Scheduler, deps.lifecycle, deps.clients, deps.clock); err != nil {
		return fmt.Errorf("register scheduler jobs: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	log.Info().
		Str("stale_pending_cron", cfg.Scheduler.StalePendingCron).
		Str("tier_review_cron", cfg.Scheduler.TierReviewCron).
		Msg("Scheduler started")
	return nil
}
