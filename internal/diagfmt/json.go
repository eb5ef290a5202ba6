package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sharplint/internal/diag"
)

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []diag.Record `json:"diagnostics"`
	Count       int           `json:"count"`
	Omitted     int           `json:"omitted,omitempty"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(recs []diag.Record, opts JSONOpts) DiagnosticsOutput {
	shown := limit(recs, opts.Max)
	out := DiagnosticsOutput{
		Diagnostics: make([]diag.Record, len(shown)),
		Count:       len(shown),
		Omitted:     len(recs) - len(shown),
	}
	for i, rec := range shown {
		rec.Path = formatPath(rec.Path, opts.PathMode, opts.BaseDir)
		out.Diagnostics[i] = rec
	}
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, recs []diag.Record, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildDiagnosticsOutput(recs, opts)); err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}
	return nil
}
