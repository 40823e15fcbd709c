// cmd/symbolic-server/main.go — HTTP tool server for the symbolic kernel
//
// Usage:
//
//	go run ./cmd/symbolic-server -config server.yaml -port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// flags are the command-line overrides for Config.
type flags struct {
	set        *flag.FlagSet
	configPath string
	port       int
	logLevel   string
	compact    bool
}

func newFlags(name string, handling flag.ErrorHandling) *flags {
	f := &flags{set: flag.NewFlagSet(name, handling)}
	f.set.StringVar(&f.configPath, "config", "", "YAML configuration file")
	f.set.IntVar(&f.port, "port", 0, "Port to listen on (overrides config)")
	f.set.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	f.set.BoolVar(&f.compact, "compact", false, "Render tool results compactly (overrides config)")
	return f
}

// apply copies only the flags given on the command line into cfg, so an
// explicit -compact=false still overrides the file.
func (f *flags) apply(cfg *Config) {
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "port":
			cfg.Port = f.port
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "compact":
			cfg.Compact = f.compact
		}
	})
}

func main() {
	f := newFlags(os.Args[0], flag.ExitOnError)
	_ = f.set.Parse(os.Args[1:])

	cfg, err := LoadConfig(f.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	f.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newServer(cfg, logger).routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("symbolic server listening", "addr", srv.Addr,
			"endpoints", []string{"POST /tool", "GET /schema", "GET /health", "GET /metrics"})
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdown)
}
