package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"sharplint/internal/diag"
	"sharplint/internal/syntax"
)

// CheckFunc inspects node id and returns the findings for it.
type CheckFunc func(ctx *Context, id syntax.NodeID) []diag.Diagnostic

// Rule describes one check. All fields are data except Check.
type Rule struct {
	ID       string
	Title    string
	Category string
	Severity diag.Severity
	// MessageFormat uses positional placeholders {0}, {1}, ...
	MessageFormat string
	Kinds         []syntax.Kind
	Check         CheckFunc
}

// Message substitutes args into MessageFormat. Placeholders without an
// argument are left as written.
func (r Rule) Message(args ...any) string {
	return formatMessage(r.MessageFormat, args)
}

// Interested reports whether the rule wants nodes of kind k.
func (r Rule) Interested(k syntax.Kind) bool {
	for _, want := range r.Kinds {
		if want == k {
			return true
		}
	}
	return false
}

func (r Rule) validate() error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidRule)
	case len(r.Kinds) == 0:
		return fmt.Errorf("%w: %s observes no node kinds", ErrInvalidRule, r.ID)
	case r.Check == nil:
		return fmt.Errorf("%w: %s has no check", ErrInvalidRule, r.ID)
	}
	return nil
}

func formatMessage(format string, args []any) string {
	if !strings.Contains(format, "{") {
		return format
	}
	var sb strings.Builder
	sb.Grow(len(format))
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '{' {
			sb.WriteByte(c)
			continue
		}
		end := strings.IndexByte(format[i:], '}')
		if end < 0 {
			sb.WriteString(format[i:])
			break
		}
		n, err := strconv.Atoi(format[i+1 : i+end])
		if err != nil || n < 0 || n >= len(args) {
			sb.WriteString(format[i : i+end+1])
		} else {
			fmt.Fprint(&sb, args[n])
		}
		i += end
	}
	return sb.String()
}
