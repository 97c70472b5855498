package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/ncexporter/ncexporter/exporter/internal/api"
	"github.com/ncexporter/ncexporter/exporter/internal/config"
	"github.com/ncexporter/ncexporter/exporter/internal/replace"
	"github.com/ncexporter/ncexporter/exporter/internal/scraper"
)

func main() {
	cmd := &cli.Command{
		Name:  "nc-exporter",
		Usage: "Expose the Nextcloud serverinfo status page as Prometheus metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "nc_exporter.yaml",
				Usage:   "path to configuration file",
				Sources: cli.EnvVars("NCE_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file loaded before the configuration (e.g. for password_env)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "debug | info | warn | error",
				Sources: cli.EnvVars("NCE_LOG"),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "json",
				Usage: "json | text",
			},
		},
		Action: serve,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.String("log-level"), cmd.String("log-format"))
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	configPath := cmd.String("config")
	slog.Info("nc-exporter starting", "config", configPath)

	if envFile := cmd.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	for _, w := range cfg.Warnings() {
		slog.Warn("config: "+w, "path", cfg.Path())
	}
	slog.Debug("config loaded", "config", cfg.String())

	tables := replace.NewStore(loadReplacements(cfg.Exporter.Replacements))
	slog.Info("replacement table loaded",
		"path", cfg.Exporter.Replacements, "entries", tables.Current().Len())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Exporter.WatchReplacements && cfg.Exporter.Replacements != "" {
		go func() {
			if err := replace.Watch(ctx, cfg.Exporter.Replacements, tables); err != nil {
				slog.Error("replacement watcher stopped", "err", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Exporter.HTTPPort),
		Handler:           api.New(scraper.New(cfg.Nextcloud), tables),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Exporter.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("nc-exporter shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadReplacements loads the replacement table at path. An empty path is
// already reported by Config.Warnings and yields an empty table.
func loadReplacements(path string) *replace.Table {
	if path == "" {
		return replace.Empty()
	}
	return replace.LoadOrEmpty(path)
}

// newLogger builds the process logger from the --log-level and --log-format
// flags.
func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: want json|text", format)
	}
}
