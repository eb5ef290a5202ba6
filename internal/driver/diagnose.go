package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sharplint/internal/analysis"
	"sharplint/internal/diag"
	"sharplint/internal/observ"
	"sharplint/internal/parser"
	"sharplint/internal/semantic"
	"sharplint/internal/source"
	"sharplint/internal/syntax"
)

// ErrNoRegistry is returned when Options.Registry is nil.
var ErrNoRegistry = errors.New("driver: no rule registry")

// FileResult is the outcome of analysing one file.
type FileResult struct {
	Path string
	File *source.File
	// Tree is nil when loading or parsing failed and on cache hits.
	Tree *syntax.Tree
	// Records holds rule diagnostics in traversal order, or the syntax
	// errors when the file did not parse.
	Records  []diag.Record
	Failures []analysis.RuleFailure
	// Err is a load error or a *parser.ParseError.
	Err    error
	Cached bool
	Timing observ.Report
}

// ParseFailed reports whether the file was read but is not well formed.
func (r *FileResult) ParseFailed() bool {
	return errors.Is(r.Err, parser.ErrParse)
}

// Report collects the results of a run in input order.
type Report struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timing  observ.Report
}

// Records returns every diagnostic of the run, file by file.
func (r *Report) Records() []diag.Record {
	var out []diag.Record
	for i := range r.Files {
		out = append(out, r.Files[i].Records...)
	}
	return out
}

// Counts returns the number of diagnostics per severity.
func (r *Report) Counts() (errs, warnings, infos int) {
	for _, rec := range r.Records() {
		switch rec.Severity {
		case diag.SevError.String():
			errs++
		case diag.SevWarning.String():
			warnings++
		default:
			infos++
		}
	}
	return errs, warnings, infos
}

// Failed reports whether some file could not be read or parsed.
func (r *Report) Failed() bool {
	for i := range r.Files {
		if r.Files[i].Err != nil {
			return true
		}
	}
	return false
}

// Diagnose analyses every path in parallel. Per-file problems are recorded
// in the FileResult; the returned error is reserved for setup problems and
// cancellation.
func Diagnose(ctx context.Context, paths []string, opts Options) (*Report, error) {
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}
	log := opts.logger()
	fs := source.NewFileSet()
	files := loadAll(fs, paths)
	report := &Report{FileSet: fs, Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		return report, nil
	}

	regKey := registryDigest(opts.Registry, opts.CacheSalt)
	model := opts.model()
	err := forEach(ctx, len(files), opts.jobs(len(files)), func(ctx context.Context, i int) error {
		res, err := analyzeFile(ctx, &opts, model, regKey, files[i])
		report.Files[i] = res
		opts.fileDone(res.Path, res.Err)
		return err
	})
	for i := range report.Files {
		report.Timing = report.Timing.Merge(report.Files[i].Timing)
	}
	if err != nil {
		return report, err
	}

	errs, warnings, infos := report.Counts()
	log.Info("diagnose finished",
		slog.Int("files", len(files)),
		slog.Int("errors", errs),
		slog.Int("warnings", warnings),
		slog.Int("infos", infos))
	return report, nil
}

func analyzeFile(ctx context.Context, opts *Options, model semantic.Model, regKey Digest, l loaded) (FileResult, error) {
	log := opts.logger().With(slog.String("path", l.path))
	res := FileResult{Path: l.path, File: l.file}
	tm := observ.NewTimer()

	if l.err != nil {
		log.Warn("load failed", slog.Any("err", l.err))
		res.Err = fmt.Errorf("load %s: %w", l.path, l.err)
		res.Timing = tm.Report()
		return res, nil
	}

	key := combineDigest(Digest(l.file.Hash), regKey)
	if recs, ok := lookupCache(opts, log, key, l.file.Path); ok {
		res.Records = recs
		res.Cached = true
		res.Timing = tm.Report()
		return res, nil
	}

	done := opts.phase(tm, l.path, "parse")
	tree, err := parser.ParseFile(l.file, parser.Options{MaxErrors: opts.MaxDiagnostics})
	done("")
	if err != nil {
		res.Err = err
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			res.Records = records(perr.Diagnostics, l.file.Path)
		}
		log.Debug("parse failed", slog.Any("err", err))
		res.Timing = tm.Report()
		return res, nil
	}
	res.Tree = tree

	done = opts.phase(tm, l.path, "analyze")
	pass, err := analysis.Dispatch(ctx, tree, opts.Registry, model)
	done(fmt.Sprintf("%d nodes", pass.Visited))
	res.Timing = tm.Report()
	if err != nil {
		return res, err
	}
	res.Records = records(pass.Diagnostics, l.file.Path)
	res.Failures = pass.Failures
	for _, f := range pass.Failures {
		log.Warn("rule failed", slog.String("rule", f.RuleID), slog.Any("err", f.Err))
	}
	if !pass.Degraded() {
		storeCache(opts, log, key, res.Records)
	}
	log.Debug("analyzed", slog.Int("diagnostics", len(res.Records)))
	return res, nil
}

func records(diags []diag.Diagnostic, path string) []diag.Record {
	if len(diags) == 0 {
		return nil
	}
	out := make([]diag.Record, len(diags))
	for i, d := range diags {
		out[i] = d.Record(path)
	}
	return out
}

func lookupCache(opts *Options, log *slog.Logger, key Digest, path string) ([]diag.Record, bool) {
	if opts.Cache == nil {
		return nil, false
	}
	recs, ok, err := opts.Cache.Get(key)
	if err != nil {
		log.Warn("cache read failed", slog.Any("err", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	// тот же контент мог лежать по другому пути
	for i := range recs {
		recs[i].Path = path
	}
	log.Debug("cache hit", slog.Int("diagnostics", len(recs)))
	return recs, true
}

func storeCache(opts *Options, log *slog.Logger, key Digest, recs []diag.Record) {
	if opts.Cache == nil {
		return
	}
	if err := opts.Cache.Put(key, recs); err != nil {
		log.Warn("cache write failed", slog.Any("err", err))
	}
}
