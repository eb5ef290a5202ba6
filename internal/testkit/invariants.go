// Package testkit holds structural checks shared by parser, fix and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// CheckTreeInvariants runs the span invariants of a syntax tree:
// 1) the root full span covers the file content exactly
// 2) children full spans are contiguous and cover their parent
// 3) every token renders to the document text under its full span
// 4) a node span lies within its full span
func CheckTreeInvariants(t *syntax.Tree) error {
	if t == nil || t.File() == nil {
		return fmt.Errorf("nil tree or file")
	}
	sf := t.File()
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) root covers the file
	root := t.FullSpan(t.Root())
	if root.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.File, sf.ID)
	}
	if root.Start != 0 || root.End != lenContent {
		return fmt.Errorf("root span %v does not cover content of %d bytes", root, lenContent)
	}

	for i := 1; i <= t.Len(); i++ {
		id := syntax.NodeID(i)
		full := t.FullSpan(id)
		sp := t.Span(id)
		// 4) span inside full span
		if sp.Start < full.Start || sp.End > full.End {
			return fmt.Errorf("node %d (%v): span %v is outside full span %v", id, t.Kind(id), sp, full)
		}

		n := t.Node(id)
		if n.IsToken() {
			// 3) token text matches the document
			want := token.TriviaText(n.Leading()) + n.Text() + token.TriviaText(n.Trailing())
			if got := t.Text(id); got != want {
				return fmt.Errorf("token %d: document text %q, token renders %q", id, got, want)
			}
			continue
		}

		// 2) children are contiguous and cover the parent
		off := full.Start
		for _, c := range t.Children(id) {
			if p := t.Parent(c); p != id {
				return fmt.Errorf("node %d: parent is %d, want %d", c, p, id)
			}
			cs := t.FullSpan(c)
			if cs.Start != off {
				return fmt.Errorf("node %d: child %d starts at %d, want %d", id, c, cs.Start, off)
			}
			off = cs.End
		}
		if off != full.End {
			return fmt.Errorf("node %d (%v): children end at %d, full span ends at %d", id, t.Kind(id), off, full.End)
		}
	}
	return nil
}
