package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharplint/internal/source"
)

func TestBagSortAndDedup(t *testing.T) {
	f := source.NewFile(0, "a.cs", []byte("abc\ndef\n"), source.FileVirtual)
	mk := func(rule string, sev Severity, start, end uint32) Diagnostic {
		d := NewSyntax(SynUnexpectedToken, sev, f, source.Span{Start: start, End: end}, "x")
		d.RuleID = rule
		return d
	}

	b := NewBag(0)
	b.Add(mk("B", SevWarning, 4, 5))
	b.Add(mk("A", SevWarning, 0, 1))
	b.Add(mk("A", SevError, 4, 5))
	b.Add(mk("A", SevWarning, 0, 1))
	b.Sort()
	b.Dedup()

	require.Equal(t, 3, b.Len())
	assert.Equal(t, "A", b.Items()[0].RuleID)
	assert.Equal(t, SevError, b.Items()[1].Severity, "higher severity first on equal spans")
	assert.Equal(t, "B", b.Items()[2].RuleID)
	assert.Equal(t, source.LineCol{Line: 2, Col: 1}, b.Items()[1].Start)
	assert.True(t, b.HasErrors())
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	assert.True(t, b.Add(Diagnostic{RuleID: "A"}))
	assert.False(t, b.Add(Diagnostic{RuleID: "B"}))
	assert.Equal(t, 1, b.Len())
	assert.False(t, b.HasWarnings())
}

func TestParseSeverity(t *testing.T) {
	sev, err := ParseSeverity("Warn")
	require.NoError(t, err)
	assert.Equal(t, SevWarning, sev)

	_, err = ParseSeverity("fatal")
	assert.Error(t, err)
	assert.Equal(t, "ERROR", SevError.String())
}

func TestCodeID(t *testing.T) {
	assert.Equal(t, "LEX1002", LexUnterminatedString.ID())
	assert.Equal(t, "SYN2012", SynExpectSemicolon.ID())
	assert.Equal(t, "[IO4001]: Failed to load file", IOLoadFileError.String())
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexUnknownChar, SevError, sp, "unknown character")
	r.Report(LexUnknownChar, SevError, sp, "unknown character")
	r.Report(LexUnknownChar, SevError, source.Span{Start: 3, End: 4}, "unknown character")
	assert.Equal(t, 2, bag.Len())
}
