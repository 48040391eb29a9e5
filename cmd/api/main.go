// Package main is the entry point for the schedule registry API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"

	"github.com/citymetro/schedule-registry/internal/config"
	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/handler"
	"github.com/citymetro/schedule-registry/internal/metrics"
	"github.com/citymetro/schedule-registry/internal/middleware"
	"github.com/citymetro/schedule-registry/internal/repo"
	"github.com/citymetro/schedule-registry/internal/service"
	"github.com/citymetro/schedule-registry/migrations"
	"github.com/citymetro/schedule-registry/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Migrations -------------------------------------------------------
	// goose needs database/sql; the pgx stdlib driver bridges to it.
	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Repositories and services ---------------------------------------
	planners := repo.NewPlannerRepo(pool)
	admins := repo.NewAdminRepo(pool)
	routes := repo.NewRouteRepo(pool)
	versions := repo.NewVersionRepo(pool)
	routeSchedules := repo.NewRouteScheduleRepo(pool)
	departures := repo.NewDepartureRepo(pool)
	adjustments := repo.NewAdjustmentRepo(pool)
	transitions := repo.NewTransitionRepo(pool)

	// Seed the admin row on first startup; a no-op afterwards, so a later
	// transfer-admin is never overridden by a restart.
	if err := admins.Ensure(context.Background(), domain.Principal(cfg.AdminPrincipal)); err != nil {
		slog.Error("failed to seed admin control", "error", err)
		os.Exit(1)
	}

	plannerSvc := service.NewPlannerService(planners, admins)
	routeSvc := service.NewRouteService(routes, planners, admins)
	versionSvc := service.NewVersionService(versions, transitions, planners, admins)
	scheduleSvc := service.NewScheduleService(versions, routes, routeSchedules, departures, planners, admins)
	adjustmentSvc := service.NewAdjustmentService(adjustments, routes, planners, admins)

	collector := metrics.NewCollector()

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Principal →
	// Logger → Metrics → CORS → MaxBodySize → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewPrincipalExtractor())
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetrics(collector))
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(1 << 20)) // 1 MiB
	r.Use(chimiddleware.Recoverer)

	server := handler.NewServer(plannerSvc, routeSvc, versionSvc, scheduleSvc, adjustmentSvc, collector)
	r.Mount("/", server.Routes())
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	// --- Metrics listener -------------------------------------------------
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			slog.Info("metrics listener starting", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				slog.Error("metrics listener error", "error", err)
			}
		}()
	}

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all pending goose migrations from the embedded FS.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "source", res.Source.Path, "duration_ms", res.Duration.Milliseconds())
	}
	return nil
}
