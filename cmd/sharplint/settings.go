package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sharplint/internal/analysis"
	"sharplint/internal/checks"
	"sharplint/internal/config"
	"sharplint/internal/driver"
	"sharplint/internal/fix"
)

// settings: всё, что команды собирают из флагов и конфигурации.
type settings struct {
	cfg            config.Config
	registry       *analysis.Registry
	fixes          *fix.Set
	logger         *slog.Logger
	quiet          bool
	timings        bool
	jobs           int
	maxDiagnostics int
}

func loadSettings(cmd *cobra.Command, targets []string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return nil, err
	}

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(startDir(targets))
	}
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		logger.Debug("config loaded", slog.String("path", cfg.Path))
	}

	registry, err := config.Registry(cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", cfg.Path, err)
	}

	s := &settings{cfg: cfg, registry: registry, fixes: checks.Fixes(), logger: logger}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && cfg.Jobs > 0 {
		s.jobs = cfg.Jobs
	}
	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && cfg.MaxDiagnostics > 0 {
		s.maxDiagnostics = cfg.MaxDiagnostics
	}
	return s, nil
}

// driverOptions builds the driver configuration shared by diag and fix.
func (s *settings) driverOptions() driver.Options {
	return driver.Options{
		Registry:       s.registry,
		Fixes:          s.fixes,
		Jobs:           s.jobs,
		MaxDiagnostics: s.maxDiagnostics,
		Exclude:        s.cfg.Excluded,
		CacheSalt:      strings.Join(s.cfg.TestAttributes, ","),
		Logger:         s.logger,
	}
}

// startDir: откуда искать конфигурацию: каталог первой цели.
func startDir(targets []string) string {
	if len(targets) == 0 {
		return "."
	}
	info, err := os.Stat(targets[0])
	if err == nil && info.IsDir() {
		return targets[0]
	}
	return filepath.Dir(targets[0])
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("unknown log level %q (must be debug, info, warn or error)", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// useColor resolves --color for the given output stream.
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("unknown color value: %s (must be auto, on or off)", colorFlag)
}
