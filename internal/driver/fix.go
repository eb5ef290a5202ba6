package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"sharplint/internal/analysis"
	"sharplint/internal/diag"
	"sharplint/internal/fix"
	"sharplint/internal/observ"
	"sharplint/internal/parser"
	"sharplint/internal/semantic"
	"sharplint/internal/source"
	"sharplint/internal/syntax"
)

// DefaultMaxRounds bounds the re-analysis loop of a fix run.
const DefaultMaxRounds = 8

// ErrNoFixes is returned when Options.Fixes is nil.
var ErrNoFixes = errors.New("driver: no fix providers")

// FixOptions selects which fixes run and whether files are written.
type FixOptions struct {
	Select    fix.SelectOptions
	MaxRounds int
	DryRun    bool
}

// FileFix is the outcome of fixing one file. Before and After are the
// document texts without a byte order mark.
type FileFix struct {
	Path    string
	Before  string
	After   string
	Rounds  int
	Written bool
	// Skipped lists fixes left out by the selection in the last round.
	Skipped []fix.SkippedFix
	// Remaining holds the diagnostics of the final text.
	Remaining []diag.Record
	// Failures lists rules that faulted in any round, once per rule.
	Failures []analysis.RuleFailure
	Err      error
	Timing    observ.Report
}

// Changed reports whether the fixes produced a different text.
func (f *FileFix) Changed() bool { return f.Err == nil && f.Before != f.After }

// FixReport collects per-file fix results in input order.
type FixReport struct {
	FileSet *source.FileSet
	Files   []FileFix
	Timing  observ.Report
}

// Changed returns the number of files whose text changed.
func (r *FixReport) Changed() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Changed() {
			n++
		}
	}
	return n
}

// Failed reports whether some file could not be read, parsed or fixed.
func (r *FixReport) Failed() bool {
	for i := range r.Files {
		if r.Files[i].Err != nil {
			return true
		}
	}
	return false
}

// Fix applies fixes to every path in parallel and writes changed files
// back unless fo.DryRun is set. Every file is handled on its own; a file
// that fails is left untouched.
func Fix(ctx context.Context, paths []string, opts Options, fo FixOptions) (*FixReport, error) {
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}
	if opts.Fixes == nil {
		return nil, ErrNoFixes
	}
	if fo.MaxRounds <= 0 {
		fo.MaxRounds = DefaultMaxRounds
	}
	fs := source.NewFileSet()
	files := loadAll(fs, paths)
	report := &FixReport{FileSet: fs, Files: make([]FileFix, len(files))}
	if len(files) == 0 {
		return report, nil
	}

	model := opts.model()
	err := forEach(ctx, len(files), opts.jobs(len(files)), func(ctx context.Context, i int) error {
		res, err := fixFile(ctx, &opts, &fo, model, files[i])
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
	opts.logger().Info("fix finished",
		slog.Int("files", len(files)),
		slog.Int("changed", report.Changed()),
		slog.Bool("dry_run", fo.DryRun))
	return report, nil
}

func fixFile(ctx context.Context, opts *Options, fo *FixOptions, model semantic.Model, l loaded) (FileFix, error) {
	log := opts.logger().With(slog.String("path", l.path))
	res := FileFix{Path: l.path}
	tm := observ.NewTimer()
	if l.err != nil {
		res.Err = fmt.Errorf("load %s: %w", l.path, l.err)
		log.Warn("load failed", slog.Any("err", l.err))
		return res, nil
	}
	res.Before = string(l.file.Content)
	res.After = res.Before

	done := opts.phase(tm, l.path, "parse")
	tree, err := parser.ParseFile(l.file, parser.Options{MaxErrors: opts.MaxDiagnostics})
	done("")
	if err != nil {
		res.Err = err
		res.Timing = tm.Report()
		log.Debug("parse failed", slog.Any("err", err))
		return res, nil
	}

	diagnose := func(t *syntax.Tree) ([]diag.Diagnostic, error) {
		pass, err := analysis.Dispatch(ctx, t, opts.Registry, model)
		if err != nil {
			return nil, err
		}
		res.noteFailures(log, pass.Failures)
		selected, skipped := fix.Select(pass.Diagnostics, opts.Fixes, fo.Select)
		res.Skipped = skipped
		return selected, nil
	}

	done = opts.phase(tm, l.path, "fix")
	final, rounds, err := applyFixes(tree, diagnose, opts.Fixes, fo)
	done(fmt.Sprintf("%d rounds", rounds))
	res.Rounds = rounds
	res.Timing = tm.Report()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		res.Err = fmt.Errorf("fix %s: %w", l.path, err)
		log.Warn("fix failed", slog.Any("err", err))
		return res, nil
	}
	res.After = fix.RenderText(final)

	done = opts.phase(tm, l.path, "analyze")
	pass, err := analysis.Dispatch(ctx, final, opts.Registry, model)
	done("")
	if err != nil {
		return res, err
	}
	res.Remaining = records(pass.Diagnostics, l.file.Path)
	res.noteFailures(log, pass.Failures)

	if res.Changed() && !fo.DryRun {
		done = opts.phase(tm, l.path, "write")
		err = writeFile(l.path, l.file.WithBOM([]byte(res.After)))
		done("")
		if err != nil {
			res.Err = err
			log.Warn("write failed", slog.Any("err", err))
		} else {
			res.Written = true
		}
	}
	res.Timing = tm.Report()
	log.Debug("fixed", slog.Int("rounds", rounds), slog.Bool("changed", res.Changed()), slog.Int("remaining", len(res.Remaining)))
	return res, nil
}

// noteFailures records rule failures not seen in an earlier round.
func (f *FileFix) noteFailures(log *slog.Logger, failures []analysis.RuleFailure) {
	for _, rf := range failures {
		if slices.ContainsFunc(f.Failures, func(seen analysis.RuleFailure) bool { return seen.RuleID == rf.RuleID }) {
			continue
		}
		f.Failures = append(f.Failures, rf)
		log.Warn("rule failed", slog.String("rule", rf.RuleID), slog.Any("err", rf.Err))
	}
}

// applyFixes runs one batch in once mode and the converging loop otherwise.
func applyFixes(t *syntax.Tree, diagnose fix.DiagnoseFunc, set *fix.Set, fo *FixOptions) (*syntax.Tree, int, error) {
	if fo.Select.Mode != fix.ApplyModeOnce {
		return fix.Converge(t, diagnose, set, fo.MaxRounds)
	}
	diags, err := diagnose(t)
	if err != nil || len(diags) == 0 {
		return t, 0, err
	}
	next, res, err := fix.Apply(t, diags, set)
	if err != nil {
		return t, 0, err
	}
	if !res.Changed() {
		return t, 0, nil
	}
	return next, 1, nil
}

// writeFile заменяет файл атомарно, сохраняя права доступа.
func writeFile(path string, content []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".sharplint-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
