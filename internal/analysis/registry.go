package analysis

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"sharplint/internal/diag"
	"sharplint/internal/syntax"
)

var (
	// ErrInvalidRule reports a rule without id, kinds or check.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrDuplicateRule reports two rules with the same id.
	ErrDuplicateRule = errors.New("duplicate rule id")
	// ErrUnknownRule reports a rule id that is not registered.
	ErrUnknownRule = errors.New("unknown rule")
)

// Registry is the immutable rule table of a process. It is built once and
// shared read-only by every pass; derived registries are new values.
type Registry struct {
	rules    []Rule
	byID     map[string]int
	byKind   map[syntax.Kind][]int
	severity map[string]diag.Severity
}

// NewRegistry validates rules and indexes them in the given order.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{
		rules:  make([]Rule, 0, len(rules)),
		byID:   make(map[string]int, len(rules)),
		byKind: make(map[syntax.Kind][]int),
	}
	for _, rule := range rules {
		if err := rule.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[rule.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, rule.ID)
		}
		rule.Kinds = slices.Clone(rule.Kinds)
		idx := len(r.rules)
		r.rules = append(r.rules, rule)
		r.byID[rule.ID] = idx
		seen := make(map[syntax.Kind]bool, len(rule.Kinds))
		for _, k := range rule.Kinds {
			if seen[k] {
				continue
			}
			seen[k] = true
			r.byKind[k] = append(r.byKind[k], idx)
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for static rule tables.
func MustRegistry(rules ...Rule) *Registry {
	r, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of rules.
func (r *Registry) Len() int { return len(r.rules) }

// Rules returns the rules in registration order.
func (r *Registry) Rules() []Rule { return slices.Clone(r.rules) }

// IDs returns rule ids sorted alphabetically.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		ids = append(ids, rule.ID)
	}
	sort.Strings(ids)
	return ids
}

// Lookup finds a rule by id.
func (r *Registry) Lookup(id string) (Rule, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// Severity returns the effective severity of rule id: an override when one
// was set, the rule default otherwise.
func (r *Registry) Severity(id string) diag.Severity {
	if sev, ok := r.severity[id]; ok {
		return sev
	}
	if idx, ok := r.byID[id]; ok {
		return r.rules[idx].Severity
	}
	return diag.SevWarning
}

// forKind returns indexes of rules observing k, in registration order.
func (r *Registry) forKind(k syntax.Kind) []int { return r.byKind[k] }

// Subset builds a registry with the rules keep accepts, registration order
// and severity overrides preserved.
func (r *Registry) Subset(keep func(Rule) bool) *Registry {
	kept := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if keep(rule) {
			kept = append(kept, rule)
		}
	}
	sub := MustRegistry(kept...)
	for id, sev := range r.severity {
		if _, ok := sub.byID[id]; ok {
			if sub.severity == nil {
				sub.severity = make(map[string]diag.Severity)
			}
			sub.severity[id] = sev
		}
	}
	return sub
}

// WithSeverities returns a registry whose rules report with the given
// severities. Unknown ids are an error.
func (r *Registry) WithSeverities(overrides map[string]diag.Severity) (*Registry, error) {
	out := &Registry{
		rules:    r.rules,
		byID:     r.byID,
		byKind:   r.byKind,
		severity: make(map[string]diag.Severity, len(r.severity)+len(overrides)),
	}
	for id, sev := range r.severity {
		out.severity[id] = sev
	}
	for id, sev := range overrides {
		if _, ok := r.byID[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, id)
		}
		out.severity[id] = sev
	}
	return out, nil
}
