// Command kinship-server runs the relationship journal API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kinshiphq/kinship/internal/api"
	"github.com/kinshiphq/kinship/internal/config"
	"github.com/kinshiphq/kinship/internal/service"
	"github.com/kinshiphq/kinship/internal/store"
	"github.com/kinshiphq/kinship/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}

	log.Info("shutdown complete")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	// Validated by config.Load.
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.WithError(err).Warn("closing storage backend")
		}
	}()

	st := store.New(backend, log)
	st.Load(ctx)

	hub := ws.NewHub(log)
	events := service.NewEventWorker(hub, log, cfg.EventQueueSize)

	g, gctx := errgroup.WithContext(ctx)

	handler := api.NewRouter(gctx, &api.RouterDeps{
		Log:            log,
		Backend:        backend,
		Hub:            hub,
		Contacts:       service.NewContactService(st, events, log),
		Relationships:  service.NewRelationshipService(st, events, log),
		Journal:        service.NewJournalService(st, events, log),
		Graph:          service.NewGraphService(st, log),
		Analytics:      service.NewAnalyticsService(st),
		ExportImport:   service.NewExportImportService(st, events, log),
		APIKey:         cfg.APIKey.Value(),
		CORSOrigins:    cfg.CORSOrigins,
		Version:        config.Version,
		Storage:        cfg.StorageBackend,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		events.Run(gctx)
		return nil
	})

	g.Go(func() error { return serve(gctx, srv, log, "api") })
	g.Go(func() error { return serve(gctx, metricsSrv, log, "metrics") })

	log.WithFields(logrus.Fields{
		"addr":    cfg.Addr(),
		"metrics": cfg.MetricsAddr(),
		"storage": cfg.StorageBackend,
		"version": config.Version,
		"auth":    cfg.APIKey.Value() != "",
	}).Info("kinship server started")

	return g.Wait()
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, log *logrus.Logger, name string) error {
	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s server: %w", name, err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.WithField("server", name).Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s server shutdown: %w", name, err)
	}

	return nil
}
