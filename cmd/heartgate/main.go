// Package main provides the heartgate binary entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"heartgate/internal/card"
	"heartgate/internal/config"
	"heartgate/internal/gallery"
	"heartgate/internal/telemetry"
	"heartgate/internal/ui"
)

const (
	Version = "0.1.0"
	appName = "heartgate"
)

type flags struct {
	configPath  string
	logFile     string
	logLevel    string
	metricsFile string
	seed        uint64
	noMouse     bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "A greeting card for the terminal",
		Long: `heartgate opens with a password gate. The right date reveals a
question whose "no" button runs away, and "yes" leads to a photo gallery.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Write logs to this file (discarded when empty)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed for the no button (0 picks one)")
	cmd.Flags().BoolVar(&f.noMouse, "no-mouse", false, "Disable mouse reporting")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func run(ctx context.Context, f flags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closeLog, err := newLogger(f.logFile, f.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tracer, err := telemetry.NewTracer(ctx)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		tracer = telemetry.NopTracer()
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := tracer.Shutdown(shutdownCtx); serr != nil {
			logger.Warn("tracer shutdown", "error", serr)
		}
	}()

	metrics := telemetry.NewMetrics()
	observer := telemetry.NewObserver(ctx, tracer, metrics, logger)

	ctrl := card.NewController(controllerOptions(cfg, newRand(f.seed), observer))
	observer.Start(ctrl.Session())
	logger.Info("heartgate starting", "version", Version, "image_dir", cfg.ImageDir)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	changes := startWatcher(watchCtx, cfg, logger)

	model := ui.NewAppModel(ui.Options{
		Config:     cfg,
		Controller: ctrl,
		Loader:     gallery.Loader{},
		Rand:       newRand(f.seed),
		Logger:     logger,
	})
	model.PhotoChanges = changes

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !f.noMouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	_, runErr := tea.NewProgram(model.AsTeaModel(), opts...).Run()

	ctrl.Teardown()
	observer.End(ctrl.Session())
	if f.metricsFile != "" {
		if werr := metrics.WriteFile(f.metricsFile); werr != nil {
			logger.Warn("write metrics", "path", f.metricsFile, "error", werr)
		}
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run program: %w", runErr)
	}
	logger.Info("heartgate stopped")
	return nil
}

// controllerOptions maps the loaded configuration onto the card controller.
func controllerOptions(cfg config.Config, r *rand.Rand, obs card.Observer) card.Options {
	return card.Options{
		Secret:      cfg.Secret,
		ErrorFlash:  cfg.ErrorFlash,
		ScaleStep:   cfg.ScaleStep,
		Slots:       cfg.Slots,
		Image:       card.FormatRef(filepath.Join(cfg.ImageDir, cfg.ImagePattern)),
		Placeholder: card.FormatRef(cfg.PlaceholderURL),
		Burst: card.Burst{
			Particles: cfg.Burst.Particles,
			Spread:    cfg.Burst.Spread,
			OriginY:   cfg.Burst.OriginY,
			Colors:    cfg.Burst.Colors,
		},
		Rand:     r,
		Observer: obs,
	}
}

// startWatcher watches the photo directory when enabled. A missing
// directory is not an error; the gallery then shows placeholders.
func startWatcher(ctx context.Context, cfg config.Config, logger *slog.Logger) <-chan int {
	if !cfg.WatchImages {
		return nil
	}
	if info, err := os.Stat(cfg.ImageDir); err != nil || !info.IsDir() {
		logger.Debug("photo directory not found, not watching", "dir", cfg.ImageDir)
		return nil
	}
	w, err := gallery.NewWatcher(gallery.WatcherConfig{
		Dir:     cfg.ImageDir,
		Pattern: cfg.ImagePattern,
		Slots:   cfg.Slots,
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("photo watcher disabled", "error", err)
		return nil
	}
	w.Start(ctx)
	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()
	return w.Changes()
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// newLogger returns a text logger writing to path. The terminal belongs to
// the UI, so an empty path discards logs.
func newLogger(path, level string) (*slog.Logger, func(), error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closeFn, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
