// Package main provides the entry point for rudis-server.
//
// rudis-server is the core service process: an in-memory, RESP-protocol
// compatible key-value store.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kvlabs/rudis/internal/buildinfo"
	"github.com/kvlabs/rudis/internal/config"
	"github.com/kvlabs/rudis/internal/server"
	"github.com/kvlabs/rudis/internal/shutdown"
	"github.com/kvlabs/rudis/internal/store"
	"github.com/kvlabs/rudis/internal/telemetry/logger"
	"github.com/kvlabs/rudis/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "path to configuration file")
		showVersion = flag.Bool("version", false, "show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting rudis-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	st := store.New()

	metrics := metric.Global()
	metrics.RegisterCollector(metric.NewCollector(st))

	srv := server.New(&server.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
		RateLimit:    cfg.RateLimit,
	}, st, metrics, log)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	var metricsServer *http.Server
	if cfg.Metrics.Addr != "" {
		metricsServer = &http.Server{Addr: cfg.Metrics.Addr, Handler: metrics.Handler()}

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down metrics server")
			return metricsServer.Shutdown(ctx)
		})

		go func() {
			log.Info("metrics server listening", "addr", cfg.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server error", "error", err)
			}
		}()
	}

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down rudis server")
		return srv.Shutdown(ctx)
	})

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from defaults, an optional file, and
// RUDIS_-prefixed environment variables, in that priority order.
func loadConfig(configFile string) (*config.Config, error) {
	cfg := config.Default()

	var opts []config.Option
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}

	loader := config.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
