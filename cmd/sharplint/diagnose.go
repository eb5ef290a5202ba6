package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sharplint/internal/diag"
	"sharplint/internal/diagfmt"
	"sharplint/internal/driver"
	"sharplint/internal/trace"
	"sharplint/internal/version"
)

func newDiagCmd() *cobra.Command {
	diagCmd := &cobra.Command{
		Use:   "diag [flags] <file.cs|directory>...",
		Short: "Run diagnostics on C# source files or directories",
		Long:  `Run every enabled rule over the given files and all *.cs files within the given directories`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDiagnose,
	}
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings and infos in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Int("context", 1, "source lines shown before the reported line (pretty format)")
	diagCmd.Flags().Bool("cache", false, "reuse diagnostics of unchanged files from the disk cache")
	diagCmd.Flags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/sharplint)")
	diagCmd.Flags().String("ui", "auto", "progress view on stderr (auto|on|off)")
	return diagCmd
}

// runDiagnose executes the "diag" command: it runs the driver over the
// discovered files, prints the records in the chosen format and exits with
// status 1 when an error-level diagnostic is reported or a file could not be
// read or parsed.
func runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}

	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	opts := s.driverOptions()
	if opts.Cache, err = openCache(cmd); err != nil {
		return err
	}

	files, err := driver.Discover(args, s.cfg.Excluded)
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	tracer, stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer stopTrace()
	opts.Observer = phaseObserver(tracer)

	showUI, err := wantUI(cmd, s.quiet)
	if err != nil {
		return err
	}

	var report *driver.Report
	diagnose := func(o driver.Options) (err error) {
		report, err = driver.Diagnose(cmd.Context(), files, o)
		return err
	}
	run := trace.Begin(tracer, trace.ScopeRun, "diag", "")
	if showUI {
		err = runWithUI(cmd.ErrOrStderr(), "diag", files, opts, diagnose)
	} else {
		err = diagnose(opts)
	}
	run.End(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	for i := range report.Files {
		if f := &report.Files[i]; f.Err != nil && !f.ParseFailed() {
			fmt.Fprintf(errOut, "error: %v\n", f.Err)
		}
	}

	recs := filterRecords(report.Records(), noWarnings, warningsAsErrors)
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	colored, err := useColor(cmd, out)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(out, recs, report.FileSet, diagfmt.PrettyOpts{
			Color:    colored,
			Context:  int8(max(min(contextLines, 10), 0)),
			PathMode: pathMode,
			Max:      s.maxDiagnostics,
		})
		if !s.quiet {
			printSummary(out, recs, len(files))
		}
	case "short":
		diagfmt.Short(out, recs, diagfmt.PrettyOpts{Color: colored, PathMode: pathMode, Max: s.maxDiagnostics})
	case "json":
		if err := diagfmt.JSON(out, recs, diagfmt.JSONOpts{PathMode: pathMode, Max: s.maxDiagnostics}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		if err := diagfmt.Sarif(out, recs, sarifMeta(s, os.Args)); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if s.timings {
		printTimings(errOut, report.Timing)
	}
	if report.Failed() || hasErrors(recs) {
		return exitError{code: 1}
	}
	return nil
}

func openCache(cmd *cobra.Command) (*driver.Cache, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	switch {
	case dir != "":
		return driver.NewCache(dir)
	case enabled:
		return driver.OpenCache("sharplint")
	}
	return nil, nil
}

// filterRecords applies --no-warnings and --warnings-as-errors.
func filterRecords(recs []diag.Record, noWarnings, warningsAsErrors bool) []diag.Record {
	out := make([]diag.Record, 0, len(recs))
	for _, rec := range recs {
		isError := rec.Severity == diag.SevError.String()
		if noWarnings && !isError {
			continue
		}
		if warningsAsErrors && rec.Severity == diag.SevWarning.String() {
			rec.Severity = diag.SevError.String()
		}
		out = append(out, rec)
	}
	return out
}

func hasErrors(recs []diag.Record) bool {
	for _, rec := range recs {
		if rec.Severity == diag.SevError.String() {
			return true
		}
	}
	return false
}

func printSummary(w io.Writer, recs []diag.Record, files int) {
	var errs, warnings int
	for _, rec := range recs {
		switch rec.Severity {
		case diag.SevError.String():
			errs++
		case diag.SevWarning.String():
			warnings++
		}
	}
	if len(recs) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d error(s), %d warning(s) in %d file(s)\n", errs, warnings, files)
}

func sarifMeta(s *settings, args []string) diagfmt.SarifRunMeta {
	meta := diagfmt.SarifRunMeta{
		ToolName:       "sharplint",
		ToolVersion:    version.Version,
		InvocationArgs: args,
	}
	for _, r := range s.registry.Rules() {
		meta.Rules = append(meta.Rules, diagfmt.SarifRule{ID: r.ID, Title: r.Title, Help: r.MessageFormat})
	}
	return meta
}
