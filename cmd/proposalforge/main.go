package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/dlriva/proposalforge/internal/adapter/fsblob"
	pfhttp "github.com/dlriva/proposalforge/internal/adapter/http"
	pfotel "github.com/dlriva/proposalforge/internal/adapter/otel"
	"github.com/dlriva/proposalforge/internal/adapter/postgres"
	"github.com/dlriva/proposalforge/internal/adapter/ristretto"
	"github.com/dlriva/proposalforge/internal/config"
	"github.com/dlriva/proposalforge/internal/logger"
	"github.com/dlriva/proposalforge/internal/middleware"
	"github.com/dlriva/proposalforge/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---

	otelShutdown, err := pfotel.Setup(ctx, cfg.Logging.Service, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(flushCtx); err != nil {
			slog.Warn("telemetry shutdown", "error", err)
		}
	}()

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	renderCache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer renderCache.Close()

	blobs, err := fsblob.New(cfg.Blob.Dir, cfg.Blob.BaseURL)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}

	// --- Services ---

	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, cfg.Auth)
	proposalSvc := service.NewProposalService(store, renderCache)
	draftSvc := service.NewDraftService(proposalSvc, cfg.Draft.TTL)
	draftSvc.StartSweeper(ctx, cfg.Draft.SweepInterval)
	renderSvc := service.NewRenderService(proposalSvc, renderCache, cfg.Cache, cfg.Branding)
	uploadSvc := service.NewUploadService(blobs)

	metrics, err := pfotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metric instruments: %w", err)
	}
	proposalSvc.SetMetrics(metrics)
	renderSvc.SetMetrics(metrics)
	uploadSvc.SetMetrics(metrics)

	// --- HTTP ---

	handlers := &pfhttp.Handlers{
		Auth:      authSvc,
		Proposals: proposalSvc,
		Drafts:    draftSvc,
		Renders:   renderSvc,
		Uploads:   uploadSvc,
	}

	authLimiter := middleware.NewRateLimiter(1, 10)
	authLimiter.StartCleanup(ctx, 10*time.Minute, time.Hour)

	r := chi.NewRouter()

	r.Use(pfhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(pfhttp.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(pfotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(pfhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authLimiter.Protect("/api/v1/auth/login", "/api/v1/auth/register"))
	r.Use(middleware.Auth(authSvc))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", readyHandler(pool))

	// Uploaded logos are served as static assets so exported documents can
	// reference them.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(blobs.Dir()))))

	pfhttp.MountRoutes(r, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// readyHandler reports readiness including database reachability.
func readyHandler(pool *pgxpool.Pool) http.HandlerFunc {
	type healthStatus struct {
		Status   string `json:"status"`
		Postgres string `json:"postgres"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{Status: "ok", Postgres: "ok"}
		code := http.StatusOK
		if err := pool.Ping(r.Context()); err != nil {
			status.Status = "degraded"
			status.Postgres = err.Error()
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
