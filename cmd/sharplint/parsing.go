package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sharplint/internal/driver"
	"sharplint/internal/fix"
	"sharplint/internal/syntax"
)

func newParseCmd() *cobra.Command {
	parseCmd := &cobra.Command{
		Use:   "parse [flags] file.cs",
		Short: "Parse a C# source file and output its syntax tree",
		Long:  `Parse builds the lossless syntax tree of a C# source file and prints it`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().String("format", "tree", "output format (tree|text)")
	return parseCmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "text" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		if result == nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		return reportParseError(cmd, err, result.FileSet, result.File.Path)
	}

	if format == "text" {
		// печать обратно в текст: проверка полноты дерева
		_, err = fmt.Fprint(cmd.OutOrStdout(), fix.RenderText(result.Tree))
		return err
	}
	return syntax.Dump(cmd.OutOrStdout(), result.Tree)
}
