package main

import (
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"record-mapper/internal/config"
)

// setupLogging installs the default logger: a text or JSON handler on w,
// fanned out to the OpenTelemetry log bridge when telemetry is enabled.
func setupLogging(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	if cfg.Telemetry.Enabled {
		handler = slogmulti.Fanout(handler, otelslog.NewHandler(cfg.Telemetry.ServiceName))
	}

	logger := slog.New(handler).With(slog.String("service", cfg.Telemetry.ServiceName))
	slog.SetDefault(logger)

	return logger, nil
}
