package diag

import (
	"fmt"
	"sort"
)

type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics (max <= 0 means unlimited).
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 64
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddAll добавляет диагностики по порядку, пока не упрётся в лимит.
func (b *Bag) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		if !b.Add(d) {
			return
		}
	}
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag, игнорируя лимит.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	if b.max > 0 && len(b.items) > b.max {
		b.max = len(b.items)
	}
}

// Sort сортирует диагностики по: file, start, end, severity (desc), rule (asc).
// Порядок обхода для диагностик одного узла сохраняется (стабильная сортировка).
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		si, sj := b.items[i].Anchor.Span, b.items[j].Anchor.Span
		if si.File != sj.File {
			return si.File < sj.File
		}
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		if si.End != sj.End {
			return si.End < sj.End
		}
		di, dj := b.items[i], b.items[j]
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.RuleID < dj.RuleID
	})
}

// простая дедупликация (по RuleID+Span)
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.RuleID, d.Anchor.Span.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}

// Filter keeps the diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	out := b.items[:0]
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}
