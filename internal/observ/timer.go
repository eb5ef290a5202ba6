package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and metadata of one step of a file pass
// (load, parse, analyze, fix, write).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of multiple phases. A Timer belongs to
// one goroutine; reports of parallel passes are combined with Report.Merge.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Track starts a phase and returns the function that ends it.
func (t *Timer) Track(name string) func(note string) {
	idx := t.Begin(name)
	return func(note string) { t.End(idx, note) }
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	return t.Report().Summary()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Count:      1,
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Merge складывает фазы с одинаковым именем; порядок: первое появление.
// Notes are dropped: they describe a single file.
func (r Report) Merge(other Report) Report {
	out := Report{
		TotalMS: r.TotalMS + other.TotalMS,
		Phases:  make([]PhaseReport, 0, len(r.Phases)+len(other.Phases)),
	}
	index := make(map[string]int)
	for _, list := range [][]PhaseReport{r.Phases, other.Phases} {
		for _, p := range list {
			if i, ok := index[p.Name]; ok {
				out.Phases[i].DurationMS += p.DurationMS
				out.Phases[i].Count += max(p.Count, 1)
				continue
			}
			index[p.Name] = len(out.Phases)
			out.Phases = append(out.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS, Count: max(p.Count, 1)})
		}
	}
	return out
}

// Summary renders the report as an aligned table.
func (r Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&sb, "  x%d", p.Count)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
