package driver

import (
	"io"
	"log/slog"
	"runtime"

	"sharplint/internal/analysis"
	"sharplint/internal/fix"
	"sharplint/internal/semantic"
)

// Options configures a driver run. Registry is required; the rest has
// usable zero values.
type Options struct {
	Registry *analysis.Registry
	Fixes    *fix.Set
	// Model: семантика для правил; nil означает синтаксическую модель.
	Model semantic.Model
	// Jobs ограничивает число параллельных проходов (0: GOMAXPROCS).
	Jobs int
	// MaxDiagnostics limits syntax errors collected per file (0 means no limit).
	MaxDiagnostics int
	// Exclude skips discovered files; explicit file arguments are never skipped.
	Exclude func(path string) bool
	// Cache stores rule diagnostics by content; nil disables caching.
	Cache *Cache
	// CacheSalt is mixed into cache keys for settings the registry does not
	// capture, such as the configured test attributes.
	CacheSalt string
	Logger    *slog.Logger
	// Observer получает события фаз (для --timings); может быть nil.
	Observer PhaseObserver
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o *Options) model() semantic.Model {
	if o.Model == nil {
		return semantic.NewSyntactic()
	}
	return o.Model
}

func (o *Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(min(jobs, n), 1)
}
