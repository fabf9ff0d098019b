package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mbenaiss/wati-mcp/api"
	"github.com/mbenaiss/wati-mcp/config"
	"github.com/mbenaiss/wati-mcp/metric"
	"github.com/mbenaiss/wati-mcp/services"
	"github.com/mbenaiss/wati-mcp/wati"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	setupLogger(cfg.LogLevel)

	if cfg.AuthToken == "" {
		log.Warn("WATI_AUTH_TOKEN is not set, API calls will fail")
	}

	metrics, err := metric.NewPrometheusService()
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	client := wati.NewClient(cfg)
	service := services.NewService(client, metrics)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	apiServer := api.NewServer(service, cfg.Port)

	go func() {
		<-c
		log.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := apiServer.Stop(ctx); err != nil {
			log.Errorf("HTTP server shutdown error: %v", err)
		}

		log.Info("Server gracefully stopped")
	}()

	log.Infof("WATI bridge starting on port %s", cfg.Port)
	if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}
}

func setupLogger(logLevel string) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		level = log.InfoLevel
		log.Errorf("unable to parse log level: %v, falling back to %s", err, level)
	}
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:     false,
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
}
