package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"sharplint/internal/diag"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string                `json:"name"`
	Version string                `json:"version,omitempty"`
	Rules   []sarifRuleDescriptor `json:"rules,omitempty"`
}

type sarifRuleDescriptor struct {
	ID               string     `json:"id"`
	ShortDescription *sarifText `json:"shortDescription,omitempty"`
	Help             *sarifText `json:"help,omitempty"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

func sarifLevel(sev string) string {
	switch sev {
	case diag.SevError.String():
		return "error"
	case diag.SevWarning.String():
		return "warning"
	}
	return "note"
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, recs []diag.Record, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    meta.ToolName,
			Version: meta.ToolVersion,
		}},
		Results: make([]sarifResult, 0, len(recs)),
	}
	for _, r := range meta.Rules {
		desc := sarifRuleDescriptor{ID: r.ID}
		if r.Title != "" {
			desc.ShortDescription = &sarifText{Text: r.Title}
		}
		if r.Help != "" {
			desc.Help = &sarifText{Text: r.Help}
		}
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, desc)
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}}
	}
	for _, rec := range recs {
		run.Results = append(run.Results, sarifResult{
			RuleID:  rec.RuleID,
			Level:   sarifLevel(rec.Severity),
			Message: sarifText{Text: rec.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
				ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(rec.Path)},
				Region: sarifRegion{
					StartLine:   rec.Start.Line,
					StartColumn: rec.Start.Col,
					EndLine:     rec.End.Line,
					EndColumn:   rec.End.Col,
				},
			}}},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sarifLog{Schema: sarifSchema, Version: "2.1.0", Runs: []sarifRun{run}}); err != nil {
		return fmt.Errorf("encode sarif: %w", err)
	}
	return nil
}
