/*
main.go - Application entry point

PURPOSE:
  Starts the leave accounting server: loads configuration, opens the
  JSON document store, wires the engine and router, and shuts down
  gracefully on SIGINT/SIGTERM.

CONFIGURATION:
  Environment variables (defaults in parentheses), overridable by flags:
    APP_ADDR           (:8080)            listen address       -addr
    DATA_FILE          (data/state.json)  document location    -data
    LOG_FORMAT         (text)             text or json
    APP_READ_TIMEOUT   (15s)
    APP_WRITE_TIMEOUT  (15s)
    CORS_ORIGINS       (localhost dev origins)
    RATE_LIMIT_PER_MIN (120)

EXAMPLES:
  ./server -data=./data/state.json
  APP_ADDR=:3000 LOG_FORMAT=json ./server

SEE ALSO:
  - api/server.go: router configuration
  - store/jsonfile: persistence
*/
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/novellusaahmad/HolidayDashboard/api"
	"github.com/novellusaahmad/HolidayDashboard/leave"
	"github.com/novellusaahmad/HolidayDashboard/store/jsonfile"
)

// Config holds runtime configuration for the server.
type Config struct {
	Addr            string        `envconfig:"APP_ADDR" default:":8080"`
	DataFile        string        `envconfig:"DATA_FILE" default:"data/state.json"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"text"`
	ReadTimeout     time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
	RateLimitPerMin int           `envconfig:"RATE_LIMIT_PER_MIN" default:"120"`
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	addr := flag.String("addr", "", "listen address (overrides APP_ADDR)")
	dataFile := flag.String("data", "", "state file path (overrides DATA_FILE)")
	flag.Parse()
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	store := jsonfile.New(cfg.DataFile)
	if _, err := store.Load(); err != nil {
		logger.Error("initialize state file", slog.String("path", cfg.DataFile), slog.Any("error", err))
		os.Exit(1)
	}

	service := leave.NewService(store)
	service.Log = logger
	handler := api.NewHandler(service, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		AllowedOrigins: cfg.CORSOrigins,
		RequestsPerMin: cfg.RateLimitPerMin,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr), slog.String("state_file", cfg.DataFile))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
