package syntax

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrOverlap is wrapped by OverlapError.
	ErrOverlap = errors.New("overlapping edits")
	// ErrInvalidEdit reports an edit with an unknown target or no replacement.
	ErrInvalidEdit = errors.New("invalid edit")
)

// Edit replaces the subtree rooted at Target with Replacement.
type Edit struct {
	Target      NodeID
	Replacement *Node
}

// OverlapError reports two edits of one batch whose targets are the same node
// or where one target lies inside the other.
type OverlapError struct {
	First  Edit
	Second Edit
	Kinds  [2]Kind
}

func (e *OverlapError) Error() string {
	if e.First.Target == e.Second.Target {
		return fmt.Sprintf("syntax: two edits target the same %s node #%d", e.Kinds[0], e.First.Target)
	}
	return fmt.Sprintf("syntax: edit of %s #%d nests edit of %s #%d", e.Kinds[0], e.First.Target, e.Kinds[1], e.Second.Target)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

// CheckDisjoint validates that no two edits target the same node or nested nodes.
// Edits are compared in pre-order; the first violation is returned.
func (t *Tree) CheckDisjoint(edits []Edit) error {
	sorted, err := t.sortEdits(edits)
	if err != nil {
		return err
	}
	return t.checkSorted(sorted)
}

func (t *Tree) sortEdits(edits []Edit) ([]Edit, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	for _, e := range sorted {
		if !t.Valid(e.Target) {
			return nil, fmt.Errorf("%w: target #%d is not a node of this tree", ErrInvalidEdit, e.Target)
		}
		if e.Replacement == nil {
			return nil, fmt.Errorf("%w: target #%d has no replacement", ErrInvalidEdit, e.Target)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Target < sorted[j].Target })
	return sorted, nil
}

func (t *Tree) checkSorted(sorted []Edit) error {
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		// pre-order: cur вложен в prev тогда и только тогда, когда cur <= prev.Last
		if cur.Target <= t.ref(prev.Target).Last {
			return &OverlapError{
				First:  prev,
				Second: cur,
				Kinds:  [2]Kind{t.Kind(prev.Target), t.Kind(cur.Target)},
			}
		}
	}
	return nil
}

// Replace returns a new tree where every edit target is substituted by its
// replacement. Subtrees without targets are shared with t. The receiver is
// left untouched; the result has a new generation and a re-rendered file.
func (t *Tree) Replace(edits []Edit) (*Tree, error) {
	sorted, err := t.sortEdits(edits)
	if err != nil {
		return nil, err
	}
	if err := t.checkSorted(sorted); err != nil {
		return nil, err
	}
	if len(sorted) == 0 {
		return NewTree(t.file, t.root), nil
	}
	root := t.rebuild(t.Root(), sorted)
	return NewTreeFromRoot(t.file.ID, t.file.Path, root, t.file.Flags), nil
}

// rebuild returns the green node for id with all edits inside its subtree applied.
// edits are sorted by target and all lie inside the subtree of id.
func (t *Tree) rebuild(id NodeID, edits []Edit) *Node {
	if len(edits) == 0 {
		return t.Node(id)
	}
	if edits[0].Target == id {
		return edits[0].Replacement
	}
	r := t.ref(id)
	children := make([]*Node, 0, len(r.Node.children))
	rest := edits
	for c := id + 1; c <= r.Last; c = t.ref(c).Last + 1 {
		end := t.ref(c).Last
		n := sort.Search(len(rest), func(i int) bool { return rest[i].Target > end })
		children = append(children, t.rebuild(c, rest[:n]))
		rest = rest[n:]
	}
	return NewNode(r.Node.kind, children...)
}
