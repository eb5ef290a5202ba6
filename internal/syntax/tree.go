package syntax

import (
	"iter"
	"sync/atomic"

	"sharplint/internal/source"
)

// NodeID indexes a node inside one Tree (1-based, pre-order). NoNode is 0.
type NodeID uint32

const NoNode NodeID = 0

// Ref places a green node inside a tree.
type Ref struct {
	Node   *Node
	Parent NodeID
	Start  uint32 // абсолютное смещение начала FullSpan
	Last   NodeID // последний узел поддерева в pre-order
}

var generations atomic.Uint64

// Tree is an immutable syntax tree bound to the text it renders to.
type Tree struct {
	gen  uint64
	file *source.File
	root *Node
	refs *Arena[Ref]
}

// NewTree indexes root. file must hold exactly Render(root); parser and
// Replace guarantee that, other callers should use NewTreeFromRoot.
func NewTree(file *source.File, root *Node) *Tree {
	t := &Tree{
		gen:  generations.Add(1),
		file: file,
		root: root,
		refs: NewArena[Ref](uint(root.Size())),
	}
	t.index(root, NoNode, 0)
	return t
}

// NewTreeFromRoot renders root into a fresh standalone file and indexes it.
func NewTreeFromRoot(id source.FileID, path string, root *Node, flags source.FileFlags) *Tree {
	file := source.NewFile(id, path, []byte(Render(root)), flags)
	return NewTree(file, root)
}

func (t *Tree) index(n *Node, parent NodeID, start uint32) NodeID {
	id := NodeID(t.refs.Allocate(Ref{Node: n, Parent: parent, Start: start}))
	off := start
	for _, c := range n.children {
		t.index(c, id, off)
		off += c.fullWidth
	}
	t.refs.Get(uint32(id)).Last = NodeID(t.refs.Len())
	return id
}

// Generation is unique per tree in the process; a rewrite always yields a new one.
func (t *Tree) Generation() uint64 { return t.gen }

// File is the document the tree renders to.
func (t *Tree) File() *source.File { return t.file }

// Root returns the id of the root node.
func (t *Tree) Root() NodeID { return 1 }

// RootNode returns the green root.
func (t *Tree) RootNode() *Node { return t.root }

// Len is the number of nodes in the tree.
func (t *Tree) Len() int { return int(t.refs.Len()) }

// Valid reports whether id names a node of this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id != NoNode && uint32(id) <= t.refs.Len()
}

func (t *Tree) ref(id NodeID) *Ref {
	r := t.refs.Get(uint32(id))
	if r == nil {
		panic("syntax: node id out of range")
	}
	return r
}

// Ref returns placement data for id.
func (t *Tree) Ref(id NodeID) Ref { return *t.ref(id) }

// Node returns the green node for id.
func (t *Tree) Node(id NodeID) *Node { return t.ref(id).Node }

func (t *Tree) Kind(id NodeID) Kind { return t.ref(id).Node.kind }

func (t *Tree) Parent(id NodeID) NodeID { return t.ref(id).Parent }

// Children returns the ids of the direct children of id in order.
func (t *Tree) Children(id NodeID) []NodeID {
	r := t.ref(id)
	out := make([]NodeID, 0, len(r.Node.children))
	for c := id + 1; c <= r.Last; c = t.ref(c).Last + 1 {
		out = append(out, c)
	}
	return out
}

// Child returns the i-th child of id, or NoNode.
func (t *Tree) Child(id NodeID, i int) NodeID {
	for n, c := range t.Children(id) {
		if n == i {
			return c
		}
	}
	return NoNode
}

// ChildOfKind returns the first direct child of the given kind, or NoNode.
func (t *Tree) ChildOfKind(id NodeID, kind Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == kind {
			return c
		}
	}
	return NoNode
}

// Contains reports whether inner lies in the subtree rooted at outer (outer included).
func (t *Tree) Contains(outer, inner NodeID) bool {
	return outer <= inner && inner <= t.ref(outer).Last
}

// SubtreeEnd returns the last id of the subtree rooted at id.
func (t *Tree) SubtreeEnd(id NodeID) NodeID { return t.ref(id).Last }

// FullSpan covers the node including all its trivia.
func (t *Tree) FullSpan(id NodeID) source.Span {
	r := t.ref(id)
	return source.Span{File: t.file.ID, Start: r.Start, End: r.Start + r.Node.fullWidth}
}

// Span covers the node without the leading trivia of its first token and the
// trailing trivia of its last token.
func (t *Tree) Span(id NodeID) source.Span {
	r := t.ref(id)
	start := r.Start + r.Node.leadWidth
	return source.Span{File: t.file.ID, Start: start, End: start + r.Node.width}
}

// Text returns the exact document text covered by the node's full span.
func (t *Tree) Text(id NodeID) string {
	sp := t.FullSpan(id)
	return string(t.file.Content[sp.Start:sp.End])
}

// TrimmedText returns the document text covered by Span.
func (t *Tree) TrimmedText(id NodeID) string {
	sp := t.Span(id)
	return string(t.file.Content[sp.Start:sp.End])
}

// FirstToken returns the first token in the subtree of id, or NoNode.
func (t *Tree) FirstToken(id NodeID) NodeID {
	last := t.ref(id).Last
	for c := id; c <= last; c++ {
		if t.ref(c).Node.kind == KindToken {
			return c
		}
	}
	return NoNode
}

// LastToken returns the last token in the subtree of id, or NoNode.
func (t *Tree) LastToken(id NodeID) NodeID {
	for c := t.ref(id).Last; c >= id; c-- {
		if t.ref(c).Node.kind == KindToken {
			return c
		}
	}
	return NoNode
}

// Position converts an absolute offset into a line/column pair.
func (t *Tree) Position(off uint32) source.LineCol {
	return t.file.Position(off)
}

// Ancestor returns the nearest proper ancestor of id with the given kind, or NoNode.
func (t *Tree) Ancestor(id NodeID, kind Kind) NodeID {
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		if t.Kind(p) == kind {
			return p
		}
	}
	return NoNode
}

// Preorder yields every node id in depth-first pre-order.
func (t *Tree) Preorder() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for id := NodeID(1); uint32(id) <= t.refs.Len(); id++ {
			if !yield(id) {
				return
			}
		}
	}
}

// Walk visits nodes in pre-order. Returning false from fn skips the subtree
// of the visited node.
func (t *Tree) Walk(fn func(id NodeID, n *Node) bool) {
	for id := NodeID(1); uint32(id) <= t.refs.Len(); {
		r := t.ref(id)
		if fn(id, r.Node) {
			id++
			continue
		}
		id = r.Last + 1
	}
}

// Render returns the text of the whole tree.
func (t *Tree) Render() string {
	return Render(t.root)
}

// Indentation returns the run of spaces and tabs that starts the line holding
// the first character of id (trivia excluded).
func (t *Tree) Indentation(id NodeID) string {
	return t.file.Indentation(t.Span(id).Start)
}
