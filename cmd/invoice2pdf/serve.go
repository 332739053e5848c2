package main

import (
	"context"
	"errors"
	"fmt"
	"net"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/hints"
	"github.com/alnah/go-invoice2pdf/internal/metrics"
	"github.com/alnah/go-invoice2pdf/internal/server"
)

// runServeCmd runs the HTTP API until ctx is canceled.
func runServeCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, env.Stderr)
	if err != nil {
		return err
	}
	mergeSettings(flags.settings, flags.store, cfg)
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.metrics {
		cfg.Server.Metrics = true
	}
	if flags.maxConcurrent > 0 {
		cfg.Server.MaxConcurrent = flags.maxConcurrent
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := loggerFor(env.Stderr, flags.common)

	ts, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var m *metrics.Metrics
	var extra []invoice2pdf.Option
	if cfg.Server.Metrics {
		m = metrics.New()
		extra = append(extra, invoice2pdf.WithMetrics(m))
	}

	renderer, err := buildRenderer(cfg, ts, logger, extra...)
	if err != nil {
		return err
	}

	srv := server.New(renderer, server.Options{
		Addr:          cfg.Server.Addr,
		MaxBodyBytes:  cfg.Server.MaxBodyBytes,
		RenderTimeout: cfg.Server.RenderTimeout(),
		MaxConcurrent: cfg.Server.MaxConcurrent,
		Store:         ts,
		Metrics:       m,
		Logger:        logger,
	})
	if err := srv.ListenAndServe(ctx); err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "listen" {
			return fmt.Errorf("serving: %w%s", err, hints.ForListen(cfg.Server.Addr))
		}
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
