package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sharplint/internal/checks"
)

type ruleInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Enabled  bool   `json:"enabled"`
	Fixable  bool   `json:"fixable"`
	Message  string `json:"message"`
}

func newRulesCmd() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules [directory]",
		Short: "List the shipped rules and their effective configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRules,
	}
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return rulesCmd
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	var infos []ruleInfo
	for _, r := range checks.Rules(s.cfg.CheckOptions()) {
		info := ruleInfo{
			ID:       r.ID,
			Title:    r.Title,
			Category: r.Category,
			Severity: strings.ToLower(s.registry.Severity(r.ID).String()),
			Fixable:  s.fixes.Has(r.ID),
			Message:  r.MessageFormat,
		}
		_, info.Enabled = s.registry.Lookup(r.ID)
		infos = append(infos, info)
	}

	switch format {
	case "pretty":
		renderRulesPretty(cmd.OutOrStdout(), infos)
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	return fmt.Errorf("unknown format: %s", format)
}

func renderRulesPretty(out io.Writer, infos []ruleInfo) {
	width := 0
	for _, info := range infos {
		width = max(width, len(info.ID))
	}
	for _, info := range infos {
		state := info.Severity
		if !info.Enabled {
			state = "off"
		}
		fix := ""
		if info.Fixable {
			fix = "fix"
		}
		fmt.Fprintf(out, "%-*s  %-10s  %-7s  %-3s  %s\n", width, info.ID, info.Category, state, fix, info.Title)
	}
}
