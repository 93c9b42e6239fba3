package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fernandezvara/passcheck"
	"github.com/fernandezvara/passcheck/internal/config"
	"github.com/fernandezvara/passcheck/internal/httpapi"
)

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, wordlists *passcheck.Wordlists) error {
	if err := wordlists.Preload(ctx, cfg.PreloadSizes()...); err != nil {
		// lookups retry the load on demand
		log.Warn("wordlist preload failed", zap.Error(err))
	}

	metrics, err := httpapi.NewMetrics(httpapi.MetricsOptions{Registerer: prometheus.DefaultRegisterer})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	handler := httpapi.NewHandler(httpapi.Options{
		Policy:            cfg.Policy(),
		Wordlists:         wordlists,
		Generator:         passcheck.NewGenerator(nil),
		GeneratorDefaults: cfg.Generator,
		DefaultSize:       cfg.DefaultListSize(),
		Reference:         cfg.Strength.Reference,
		Metrics:           metrics,
	})

	router := httpapi.NewRouter(httpapi.Dependencies{
		Server:   cfg.Server,
		Logger:   log,
		Metrics:  metrics,
		Gatherer: prometheus.DefaultGatherer,
		Handler:  handler,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("starting passcheck API",
		zap.String("env", cfg.Server.Environment),
		zap.String("address", srv.Addr),
		zap.String("wordlist_source", cfg.Wordlists.Source),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down", zap.Duration("timeout", cfg.Server.GracefulTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
