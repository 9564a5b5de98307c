package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // pprof is intentionally exposed when pprofAddr is configured
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/api"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/api/handlers"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/auth"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/frontend"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/observability"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/scheduler"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/signalk"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/storage"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Service encapsulates the settings service lifecycle
type Service struct {
	config *Config
	log    *logrus.Logger

	medium    storage.Medium
	store     *settings.Store
	syncer    *scheduler.Syncer
	scheduler scheduler.Service
	api       api.Service

	// Servers
	healthServer *http.Server
	pprofServer  *http.Server

	ready  atomic.Bool
	cancel context.CancelFunc
	group  *errgroup.Group
}

// OpenStore creates the configured persistence medium and a document store on top of it
func OpenStore(log logrus.FieldLogger, cfg *storage.Config) (*settings.Store, storage.Medium, error) {
	medium, err := storage.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage medium: %w", err)
	}

	return settings.NewStore(log, medium), medium, nil
}

// NewService creates the settings service
func NewService(log *logrus.Logger, cfg *Config) (*Service, error) {
	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, medium, err := OpenStore(log, &cfg.Storage)
	if err != nil {
		return nil, err
	}

	var client signalk.ClientInterface
	if cfg.SignalK.URL != "" {
		client, err = signalk.NewClient(log, &cfg.SignalK)
		if err != nil {
			return nil, fmt.Errorf("failed to create signalk client: %w", err)
		}
	}

	authenticator, err := auth.New(&cfg.Auth, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	svc := &Service{
		log:    log,
		config: cfg,
		medium: medium,
		store:  store,
	}

	// Manual sync through the API only needs the Signal K client; the cron
	// job additionally needs sync.enabled.
	var apiSyncer handlers.Syncer
	if client != nil {
		svc.syncer, err = scheduler.NewSyncer(log, store, client, cfg.Sync.URLTemplate)
		if err != nil {
			return nil, fmt.Errorf("failed to create catalog syncer: %w", err)
		}

		apiSyncer = svc.syncer

		if cfg.Sync.Enabled {
			svc.scheduler, err = scheduler.NewService(log, &cfg.Sync, svc.syncer)
			if err != nil {
				return nil, fmt.Errorf("failed to create scheduler service: %w", err)
			}
		}
	}

	// Create frontend handler if enabled
	var frontendHandler http.Handler
	if cfg.Frontend.Enabled {
		frontendHandler, err = frontend.NewHandler()
		if err != nil {
			return nil, fmt.Errorf("failed to create frontend handler: %w", err)
		}
	}

	svc.api = api.NewService(&cfg.API, store, apiSyncer, authenticator, frontendHandler, log)

	return svc, nil
}

// Run starts the service, blocks until ctx is canceled or SIGINT/SIGTERM
// arrives, then shuts everything down.
func (a *Service) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	return a.Stop()
}

// Start initializes and starts every component
func (a *Service) Start(ctx context.Context) error {
	a.log.Info("Starting FairWindSK settings service...")

	ctx, a.cancel = context.WithCancel(ctx)
	a.group, ctx = errgroup.WithContext(ctx)

	// Start metrics server
	observability.StartMetricsServer(a.log, a.config.MetricsAddr)

	// Start health check server if configured
	if a.config.HealthCheckAddr != "" {
		a.startHealthCheck()
	}

	// Start pprof server if configured
	if a.config.PProfAddr != "" {
		a.startPProf()
	}

	// Materialize the document so a fresh installation persists its defaults
	doc := a.store.Load(ctx)
	observability.SetCatalogSize(len(doc.Apps), len(doc.Folders))
	a.log.WithFields(logrus.Fields{
		"medium":  a.medium.Describe(),
		"apps":    len(doc.Apps),
		"folders": len(doc.Folders),
	}).Info("Settings document loaded")

	if file, ok := a.medium.(*storage.File); ok && a.config.Storage.File.Watch {
		a.group.Go(func() error {
			return file.Watch(ctx, a.log, func() { a.store.Reload(ctx) })
		})
	}

	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	// Start API and frontend service
	if err := a.api.Start(ctx); err != nil {
		return fmt.Errorf("failed to start API and frontend service: %w", err)
	}

	a.ready.Store(true)
	a.log.Info("FairWindSK settings service started successfully")

	return nil
}

// Stop gracefully shuts down every component
func (a *Service) Stop() error {
	a.log.Info("Shutting down...")
	a.ready.Store(false)

	// Create a timeout context for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Helper function to stop a service
	stopService := func(name string, stopFunc func() error) {
		if err := stopFunc(); err != nil {
			a.log.WithError(err).Errorf("Failed to stop %s", name)
		}
	}

	// 1. Stop scheduler first (no new syncs)
	if a.scheduler != nil {
		stopService("scheduler service", a.scheduler.Stop)
	}

	// 2. Stop API/frontend
	if a.api != nil {
		stopService("API and frontend service", a.api.Stop)
	}

	// 3. Stop background goroutines (file watcher)
	if a.cancel != nil {
		a.cancel()
	}

	var groupErr error
	if a.group != nil {
		groupErr = a.group.Wait()
	}

	// 4. Release the medium (Redis connection pool)
	if closer, ok := a.medium.(io.Closer); ok {
		stopService("storage medium", closer.Close)
	}

	// Stop HTTP servers
	if a.healthServer != nil {
		stopService("health check server", func() error { return a.healthServer.Shutdown(ctx) })
	}

	if a.pprofServer != nil {
		stopService("pprof server", func() error { return a.pprofServer.Shutdown(ctx) })
	}

	stopService("metrics server", func() error { return observability.StopMetricsServer(ctx) })

	return groupErr
}

func (a *Service) startHealthCheck() {
	a.log.WithField("addr", a.config.HealthCheckAddr).Info("Starting health check server")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/ready", a.handleReady)

	a.healthServer = &http.Server{
		Addr:              a.config.HealthCheckAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := a.healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("Health check server failed")
		}
	}()
}

// handleReady reports 200 once the document is loaded and the API is up
func (a *Service) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !a.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("NOT READY"))

		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (a *Service) startPProf() {
	a.log.WithField("addr", a.config.PProfAddr).Info("Starting pprof server")

	a.pprofServer = &http.Server{
		Addr:              a.config.PProfAddr,
		ReadHeaderTimeout: 120 * time.Second,
	}

	go func() {
		if err := a.pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("Pprof server failed")
		}
	}()
}
