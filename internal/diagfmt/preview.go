package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"sharplint/internal/diag"
	"sharplint/internal/source"
)

type excerptLine struct {
	num  uint32
	text string
}

// excerpt is the source preview printed under a diagnostic: a few lines of
// context and a caret underline for the reported span.
type excerpt struct {
	lines    []excerptLine
	caretPad string
	caretLen int
}

func buildExcerpt(f *source.File, rec diag.Record, context int) (excerpt, bool) {
	if f == nil || rec.Start.Line == 0 {
		return excerpt{}, false
	}
	line := f.GetLine(rec.Start.Line)
	first := rec.Start.Line
	for i := 0; i < context && first > 1; i++ {
		first--
	}
	var ex excerpt
	for n := first; n <= rec.Start.Line; n++ {
		ex.lines = append(ex.lines, excerptLine{num: n, text: f.GetLine(n)})
	}

	col := min(int(rec.Start.Col)-1, len(line))
	col = max(col, 0)
	ex.caretPad = padFor(line[:col])

	end := len(line)
	if rec.End.Line == rec.Start.Line && int(rec.End.Col)-1 < end {
		end = max(int(rec.End.Col)-1, col)
	}
	ex.caretLen = max(runewidth.StringWidth(line[col:end]), 1)
	return ex, true
}

// padFor returns whitespace of the same display width as prefix; tabs are
// kept so the caret lines up whatever the terminal tab width is.
func padFor(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
