package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the tree: one line per node with its
// kind, span and, for tokens, the quoted text.
func Dump(w io.Writer, t *Tree) error {
	depth := make(map[NodeID]int, t.Len())
	var err error
	t.Walk(func(id NodeID, n *Node) bool {
		if err != nil {
			return false
		}
		d := 0
		if p := t.Parent(id); p != NoNode {
			d = depth[p] + 1
		}
		depth[id] = d
		sp := t.Span(id)
		start := t.Position(sp.Start)
		indent := strings.Repeat("  ", d)
		if n.IsToken() {
			_, err = fmt.Fprintf(w, "%s%s %q @%d:%d\n", indent, n.TokenKind(), n.Text(), start.Line, start.Col)
		} else {
			_, err = fmt.Fprintf(w, "%s%s [%d,%d)\n", indent, n.Kind(), sp.Start, sp.End)
		}
		return true
	})
	return err
}
