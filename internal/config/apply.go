package config

import (
	"fmt"

	"sharplint/internal/analysis"
	"sharplint/internal/checks"
	"sharplint/internal/diag"
)

// CheckOptions returns the rule table options the configuration sets.
func (c Config) CheckOptions() checks.Options {
	return checks.Options{TestAttributes: c.TestAttributes}
}

// Apply derives the registry the configuration asks for from reg: disabled
// rules are dropped and severities overridden. Unknown rule ids and bad
// severities are errors.
func Apply(reg *analysis.Registry, cfg Config) (*analysis.Registry, error) {
	overrides := make(map[string]diag.Severity)
	disabled := make(map[string]bool)
	for id, rc := range cfg.Rules {
		if _, ok := reg.Lookup(id); !ok {
			return nil, fmt.Errorf("%w: %s", analysis.ErrUnknownRule, id)
		}
		if rc.Enabled != nil && !*rc.Enabled {
			disabled[id] = true
		}
		if rc.Severity != "" {
			sev, err := diag.ParseSeverity(rc.Severity)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", id, err)
			}
			overrides[id] = sev
		}
	}
	out, err := reg.WithSeverities(overrides)
	if err != nil {
		return nil, err
	}
	if len(disabled) == 0 {
		return out, nil
	}
	return out.Subset(func(r analysis.Rule) bool { return !disabled[r.ID] }), nil
}

// Registry builds the shipped rules under cfg.
func Registry(cfg Config) (*analysis.Registry, error) {
	base, err := analysis.NewRegistry(checks.Rules(cfg.CheckOptions())...)
	if err != nil {
		return nil, err
	}
	return Apply(base, cfg)
}
