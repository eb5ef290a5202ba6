package observ

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("parse")
	done("12 nodes")
	tm.End(tm.Begin("analyze"), "")

	rep := tm.Report()
	require.Len(t, rep.Phases, 2)
	assert.Equal(t, "parse", rep.Phases[0].Name)
	assert.Equal(t, "12 nodes", rep.Phases[0].Note)
	assert.Equal(t, "analyze", rep.Phases[1].Name)
	assert.GreaterOrEqual(t, rep.TotalMS, 0.0)
	assert.Contains(t, tm.Summary(), "// 12 nodes")
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("load")("")
	assert.Equal(t, Report{}, tm.Report())
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1, Count: 1, Note: "a.cs"}, {Name: "analyze", DurationMS: 2, Count: 1}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "analyze", DurationMS: 4, Count: 1}}}

	got := Report{}.Merge(a).Merge(b)
	assert.InDelta(t, 7.0, got.TotalMS, 1e-9)
	require.Len(t, got.Phases, 2)
	assert.Equal(t, PhaseReport{Name: "parse", DurationMS: 1, Count: 1}, got.Phases[0])
	assert.Equal(t, PhaseReport{Name: "analyze", DurationMS: 6, Count: 2}, got.Phases[1])
	assert.True(t, strings.Contains(got.Summary(), "x2"))
}
