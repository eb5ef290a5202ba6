package diagfmt

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Unified returns a unified diff between two texts; empty when they are equal.
func Unified(fromName, toName, from, to string) string {
	if from == to {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("--- %s\n+++ %s\n%d bytes -> %d bytes\n", fromName, toName, len(from), len(to))
	}
	return text
}
