package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sharplint/internal/diag"
	"sharplint/internal/diagfmt"
	"sharplint/internal/driver"
	"sharplint/internal/parser"
	"sharplint/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	tokenizeCmd := &cobra.Command{
		Use:   "tokenize [flags] file.cs",
		Short: "Tokenize a C# source file",
		Long:  `Tokenize breaks down a C# source file into tokens with their leading and trailing trivia`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return tokenizeCmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		if err := printSyntaxErrors(cmd, result.Bag.Items(), result.FileSet, result.File.Path); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.File)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

// printSyntaxErrors печатает ошибки лексера/парсера в stderr.
func printSyntaxErrors(cmd *cobra.Command, diags []diag.Diagnostic, fs *source.FileSet, path string) error {
	colored, err := useColor(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	recs := make([]diag.Record, len(diags))
	for i, d := range diags {
		recs[i] = d.Record(path)
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), recs, fs, diagfmt.PrettyOpts{Color: colored, Context: 1})
	return nil
}

// reportParseError prints the syntax errors of a ParseError and converts
// it into an exit status; other errors are returned unchanged.
func reportParseError(cmd *cobra.Command, err error, fs *source.FileSet, path string) error {
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		return err
	}
	if printErr := printSyntaxErrors(cmd, perr.Diagnostics, fs, path); printErr != nil {
		return printErr
	}
	return exitError{code: 1}
}
