package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sharplint/internal/version"
)

// exitError carries a process exit status without an error message:
// the command has already reported what went wrong.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sharplint",
		Short:         "Rule-based analyzer and fixer for C# sources",
		Long:          `sharplint reports style and correctness issues in C# source files and rewrites them with trivia-preserving fixes`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "configuration file (default: nearest sharplint.toml or .sharplint.yaml)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=auto)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write runtime trace to file")
	rootCmd.PersistentFlags().String("trace", "", "write phase trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "phase", "trace level (off|run|phase)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")

	// Добавляем команды
	rootCmd.AddCommand(newDiagCmd())
	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main executes the root command. Commands that already reported their
// findings exit with their own status; other errors are printed and exit 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
