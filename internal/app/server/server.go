package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"shiftpay/internal/domain/adjustment"
	"shiftpay/internal/domain/audit"
	"shiftpay/internal/domain/payroll"
	"shiftpay/internal/domain/report"
	"shiftpay/internal/domain/roster"
	"shiftpay/internal/domain/schedule"
	"shiftpay/internal/platform/config"
	"shiftpay/internal/platform/crypto"
	"shiftpay/internal/platform/delivery"
	"shiftpay/internal/platform/i18n"
	"shiftpay/internal/platform/jobs"
	"shiftpay/internal/platform/kv"
	"shiftpay/internal/platform/logging"
	"shiftpay/internal/platform/metrics"
	"shiftpay/internal/platform/source"
	"shiftpay/internal/transport/http/api"
	adjustmentshandler "shiftpay/internal/transport/http/handlers/adjustments"
	audithandler "shiftpay/internal/transport/http/handlers/audit"
	jobshandler "shiftpay/internal/transport/http/handlers/jobs"
	payrollhandler "shiftpay/internal/transport/http/handlers/payroll"
	reportshandler "shiftpay/internal/transport/http/handlers/reports"
	schedulehandler "shiftpay/internal/transport/http/handlers/schedule"
	"shiftpay/internal/transport/http/middleware"
)

// ErrNoSchedule is returned when no schedule location is configured.
var ErrNoSchedule = errors.New("SCHEDULE_URL is required")

// App holds every wired component. The CLI and the HTTP server share it.
type App struct {
	Config     config.Config
	Roster     roster.Roster
	Holder     *schedule.Holder
	Store      *adjustment.Store
	Audit      *audit.Log
	Payroll    *payroll.Service
	Formatter  *report.Formatter
	Dispatcher *report.Dispatcher
	Translator *i18n.Translator
	Jobs       *jobs.Service
	Metrics    *metrics.Collector
	backend    kv.Backend
}

// New wires the application from cfg. Close releases the store backend.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	src, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}
	people, err := roster.Load(cfg.RosterFile)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	tr, err := i18n.New(cfg.DefaultLang)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	sealer, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	backend, err := kv.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var (
		storeOpts []adjustment.Option
		auditOpts []audit.Option
	)
	if sealer.Configured() {
		storeOpts = append(storeOpts, adjustment.WithSealer(sealer))
		auditOpts = append(auditOpts, audit.WithSealer(sealer))
	}
	history := audit.New(backend, auditOpts...)
	store := adjustment.NewStore(backend, append(storeOpts, adjustment.WithRecorder(history))...)
	holder := schedule.NewHolder(src)
	payrollSvc := payroll.NewService(holder, people, store)
	formatter := report.NewFormatter(tr, people)
	collector := metrics.New()

	app := &App{
		Config:     cfg,
		Roster:     people,
		Holder:     holder,
		Store:      store,
		Audit:      history,
		Payroll:    payrollSvc,
		Formatter:  formatter,
		Dispatcher: report.NewDispatcher(payrollSvc, formatter, delivery.New(cfg)),
		Translator: tr,
		Metrics:    collector,
		backend:    backend,
	}
	app.Jobs = jobs.New(cfg.ScheduleRefreshInterval, app.refreshSchedule, collector)
	return app, nil
}

// NewSource picks an HTTP source for http(s) locations and a file source
// otherwise.
func NewSource(cfg config.Config) (schedule.Source, error) {
	location := strings.TrimSpace(cfg.ScheduleURL)
	if location == "" {
		return nil, ErrNoSchedule
	}
	format, err := source.ParseFormat(cfg.ScheduleFormat)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return source.NewHTTP(location, format, cfg.ScheduleTimeout), nil
	}
	return source.File{Path: location, Format: format}, nil
}

func (a *App) refreshSchedule(ctx context.Context) (any, error) {
	table, err := a.Holder.Reload(ctx)
	a.Metrics.RecordScheduleReload(err)
	if err != nil {
		return nil, err
	}
	return map[string]any{"rows": len(table.Employees()), "columns": len(table.Header())}, nil
}

func (a *App) Close() error {
	if a.backend == nil {
		return nil
	}
	return a.backend.Close()
}

// Router builds the HTTP handler tree.
func (a *App) Router() http.Handler {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Lang(a.Translator))
	router.Use(middleware.MutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := a.Holder.Current(); err != nil {
			http.Error(w, "schedule not loaded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		schedulehandler.NewHandler(a.Holder, a.Formatter, a.Metrics).RegisterRoutes(r)
		payrollhandler.NewHandler(a.Payroll, a.Formatter).RegisterRoutes(r)
		adjustmentshandler.NewHandler(a.Store).RegisterRoutes(r)
		audithandler.NewHandler(a.Audit).RegisterRoutes(r)
		reportshandler.NewHandler(a.Dispatcher, a.Jobs, a.Translator, a.Metrics).RegisterRoutes(r)
		jobshandler.NewHandler(a.Jobs).RegisterRoutes(r)
	})

	return router
}

// Serve runs the HTTP server until ctx is cancelled, then drains it.
func (a *App) Serve(ctx context.Context) error {
	a.Jobs.Start(ctx)
	if _, err := a.Holder.Reload(ctx); err != nil {
		// Not fatal: /readyz stays 503 until a later refresh succeeds.
		slog.Warn("initial schedule load failed", "err", err)
	}

	httpServer := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("shiftpay server listening", "addr", a.Config.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		a.Jobs.Wait()
		return err
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Run is the server entry point: config, logging, wiring, serve until a
// termination signal arrives.
func Run() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logging.Fatal("invalid configuration", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := ServeConfig(ctx, cfg); err != nil {
		logging.Fatal("server failed", "err", err)
	}
	slog.Info("server stopped")
}

// ServeConfig wires an App from cfg, serves it and releases it.
func ServeConfig(ctx context.Context, cfg config.Config) error {
	app, err := New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Warn("store close failed", "err", err)
		}
	}()
	return app.Serve(ctx)
}
