package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"sharplint/internal/diag"
	"sharplint/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	rule, path      *color.Color
	gutter, caret   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		rule:   color.New(color.Bold),
		path:   color.New(color.FgBlue),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.rule, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s string) *color.Color {
	switch s {
	case diag.SevError.String():
		return p.err
	case diag.SevWarning.String():
		return p.warn
	}
	return p.info
}

// Pretty печатает диагностики с фрагментом исходника и подчёркиванием.
// Источник ищется в fs по пути записи; без него печатается только заголовок.
func Pretty(w io.Writer, recs []diag.Record, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, rec := range limit(recs, opts.Max) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s: %s\n",
			p.severity(rec.Severity).Sprint(rec.Severity),
			p.rule.Sprint(rec.RuleID),
			rec.Message)
		fmt.Fprintf(w, "  --> %s\n", p.path.Sprintf("%s:%d:%d",
			formatPath(rec.Path, opts.PathMode, opts.BaseDir), rec.Start.Line, rec.Start.Col))

		ex, ok := buildExcerpt(lookup(fs, rec.Path), rec, int(opts.Context))
		if !ok {
			continue
		}
		width := len(strconv.FormatUint(uint64(ex.lines[len(ex.lines)-1].num), 10))
		blank := strings.Repeat(" ", width)
		fmt.Fprintf(w, "%s %s\n", blank, p.gutter.Sprint("|"))
		for _, l := range ex.lines {
			fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, l.num), l.text)
		}
		fmt.Fprintf(w, "%s %s %s%s\n", blank, p.gutter.Sprint("|"),
			ex.caretPad, p.caret.Sprint(strings.Repeat("^", ex.caretLen)))
	}
	if n := len(recs) - len(limit(recs, opts.Max)); n > 0 {
		fmt.Fprintf(w, "\n... and %d more diagnostic(s)\n", n)
	}
}

// Short печатает по одной строке на диагностику:
// path:line:col: severity RuleID: message
func Short(w io.Writer, recs []diag.Record, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, rec := range limit(recs, opts.Max) {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d", formatPath(rec.Path, opts.PathMode, opts.BaseDir), rec.Start.Line, rec.Start.Col),
			p.severity(rec.Severity).Sprint(strings.ToLower(rec.Severity)),
			p.rule.Sprint(rec.RuleID),
			rec.Message)
	}
}

func lookup(fs *source.FileSet, path string) *source.File {
	if fs == nil {
		return nil
	}
	id, ok := fs.GetLatest(path)
	if !ok {
		return nil
	}
	return fs.Get(id)
}

func limit(recs []diag.Record, maxCount int) []diag.Record {
	if maxCount > 0 && len(recs) > maxCount {
		return recs[:maxCount]
	}
	return recs
}
