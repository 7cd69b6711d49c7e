package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/fchimpan/tgreet/internal/anim"
	"github.com/fchimpan/tgreet/internal/config"
	"github.com/fchimpan/tgreet/internal/greeter"
)

func run(ctx context.Context, deps Deps, opts options) error {
	if deps.LoadConfig == nil {
		return fmt.Errorf("deps.LoadConfig is nil")
	}
	if deps.Hostname == nil {
		return fmt.Errorf("deps.Hostname is nil")
	}
	if deps.RunTUI == nil {
		return fmt.Errorf("deps.RunTUI is nil")
	}
	if deps.RunTcell == nil {
		return fmt.Errorf("deps.RunTcell is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := deps.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, opts); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	info, err := deps.Hostname()
	if err != nil {
		logger.Warn("hostname unavailable", "error", err)
		info = ""
	}

	s := greeter.New(greeter.Options{
		Config:   cfg,
		Auth:     deps.Auth,
		Rand:     rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15)),
		Logger:   logger,
		InfoLine: info,
	})

	runner := deps.RunTUI
	if opts.backend == backendTcell {
		runner = deps.RunTcell
	}
	logger.Info("starting greeter", "backend", opts.backend, "animation", cfg.AnimationKind().String(), "seed", opts.seed)

	action, err := runner(ctx, s, cfg.FrameRate)
	if err != nil {
		return fmt.Errorf("run %s backend: %w", opts.backend, err)
	}
	logger.Info("greeter finished", "action", action.String())
	if action != greeter.ActionNone && deps.Stdout != nil {
		fmt.Fprintln(deps.Stdout, action.String())
	}
	return nil
}

// applyFlags layers command-line overrides on top of the loaded config.
func applyFlags(cfg *config.Config, opts options) error {
	if opts.animation != "" {
		k, err := anim.ParseKind(opts.animation)
		if err != nil {
			return fmt.Errorf("invalid --animation: %w", err)
		}
		cfg.Animate = k != anim.Off
		if k != anim.Off {
			cfg.Animation = k.String()
		}
	}
	if opts.asciiSet {
		ascii := opts.ascii
		cfg.ASCIIBorders = &ascii
	}
	return nil
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), func() { _ = f.Close() }, nil
}
