package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sharplint/internal/diagfmt"
	"sharplint/internal/driver"
	"sharplint/internal/fix"
	"sharplint/internal/trace"
)

func newFixCmd() *cobra.Command {
	fixCmd := &cobra.Command{
		Use:   "fix [flags] <file.cs|directory>...",
		Short: "Apply available fixes to source files or directories",
		Long:  "Run diagnostics, apply their fixes according to the chosen strategy and re-analyse until nothing changes.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFix,
	}
	fixCmd.Flags().Bool("all", false, "apply all safe fixes until the text converges (default)")
	fixCmd.Flags().Bool("once", false, "apply the first available fix of each file")
	fixCmd.Flags().String("rule", "", "apply only fixes of the rule with this id")
	fixCmd.Flags().Bool("unsafe", false, "also apply fixes that rely on heuristics")
	fixCmd.Flags().Bool("dry-run", false, "print a unified diff instead of writing files")
	fixCmd.Flags().Int("max-rounds", driver.DefaultMaxRounds, "maximum analyse-and-fix rounds per file")
	fixCmd.Flags().String("ui", "auto", "progress view on stderr (auto|on|off)")
	return fixCmd
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	ruleID, err := cmd.Flags().GetString("rule")
	if err != nil {
		return err
	}
	unsafe, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	maxRounds, err := cmd.Flags().GetInt("max-rounds")
	if err != nil {
		return err
	}

	if ruleID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--rule cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	sel := fix.SelectOptions{Mode: fix.ApplyModeAll, Unsafe: unsafe}
	switch {
	case ruleID != "":
		if _, ok := s.registry.Lookup(ruleID); !ok {
			return fmt.Errorf("fix: unknown or disabled rule %q", ruleID)
		}
		if !s.fixes.Has(ruleID) {
			return fmt.Errorf("fix: rule %s has no fix", ruleID)
		}
		sel.Mode = fix.ApplyModeRule
		sel.RuleID = ruleID
	case applyOnce:
		sel.Mode = fix.ApplyModeOnce
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
	opts := s.driverOptions()
	opts.Observer = phaseObserver(tracer)

	showUI, err := wantUI(cmd, s.quiet)
	if err != nil {
		return err
	}

	var report *driver.FixReport
	fixAll := func(o driver.Options) (err error) {
		report, err = driver.Fix(cmd.Context(), files, o, driver.FixOptions{
			Select:    sel,
			MaxRounds: maxRounds,
			DryRun:    dryRun,
		})
		return err
	}
	run := trace.Begin(tracer, trace.ScopeRun, "fix", "")
	if showUI {
		err = runWithUI(cmd.ErrOrStderr(), "fix", files, opts, fixAll)
	} else {
		err = fixAll(opts)
	}
	run.End(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fmt.Errorf("fix failed: %w", err)
	}

	printFixReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), report, dryRun, s.quiet)
	if s.timings {
		printTimings(cmd.ErrOrStderr(), report.Timing)
	}
	if report.Failed() {
		return exitError{code: 1}
	}
	return nil
}

func printFixReport(out, errOut io.Writer, report *driver.FixReport, dryRun, quiet bool) {
	remaining := 0
	for i := range report.Files {
		ff := &report.Files[i]
		if ff.Err != nil {
			fmt.Fprintf(errOut, "error: %v\n", ff.Err)
			continue
		}
		remaining += len(ff.Remaining)
		if ff.Changed() {
			if dryRun {
				fmt.Fprint(out, diagfmt.Unified("a/"+ff.Path, "b/"+ff.Path, ff.Before, ff.After))
			} else if !quiet {
				fmt.Fprintf(out, "fixed %s (%d round(s))\n", ff.Path, ff.Rounds)
			}
		}
		if quiet {
			continue
		}
		for _, sk := range ff.Skipped {
			fmt.Fprintf(errOut, "%s: skipped %s: %s\n", ff.Path, sk.RuleID, sk.Reason)
		}
	}
	if quiet {
		return
	}
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	fmt.Fprintf(errOut, "%s %d of %d file(s), %d diagnostic(s) remaining\n", verb, report.Changed(), len(report.Files), remaining)
}
