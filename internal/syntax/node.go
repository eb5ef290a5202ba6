package syntax

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"sharplint/internal/token"
)

// Node is an immutable green node. Token nodes have no children; inner nodes
// have no text of their own. Never modify a Node after construction: trees
// share nodes by pointer.
type Node struct {
	kind     Kind
	tok      token.Kind
	text     string
	leading  []token.Trivia
	trailing []token.Trivia
	children []*Node

	width       uint32 // без внешних trivia
	fullWidth   uint32
	leadWidth   uint32 // leading trivia первого токена
	trailWidth  uint32 // trailing trivia последнего токена
	hasTokens   bool
	tokenCount  uint32
	descendants uint32 // количество узлов в поддереве, включая сам узел
}

// NewToken builds a token node. Trivia slices are copied.
func NewToken(kind token.Kind, text string, leading, trailing []token.Trivia) *Node {
	n := &Node{
		kind:     KindToken,
		tok:      kind,
		text:     text,
		leading:  cloneTrivia(leading),
		trailing: cloneTrivia(trailing),
	}
	n.leadWidth = strLen(token.TriviaText(n.leading))
	n.trailWidth = strLen(token.TriviaText(n.trailing))
	n.width = strLen(text)
	n.fullWidth = n.leadWidth + n.width + n.trailWidth
	n.hasTokens = true
	n.tokenCount = 1
	n.descendants = 1
	return n
}

// FromToken converts a lexer token into a token node.
func FromToken(t token.Token) *Node {
	return NewToken(t.Kind, t.Text, t.Leading, t.Trailing)
}

// NewNode builds an inner node. Nil children are dropped.
func NewNode(kind Kind, children ...*Node) *Node {
	if kind == KindToken {
		panic("syntax: NewNode cannot build token nodes, use NewToken")
	}
	kept := make([]*Node, 0, len(children))
	for _, c := range children {
		if c != nil {
			kept = append(kept, c)
		}
	}
	n := &Node{kind: kind, children: kept, descendants: 1}
	first, last := -1, -1
	for i, c := range kept {
		n.fullWidth += c.fullWidth
		n.tokenCount += c.tokenCount
		n.descendants += c.descendants
		if c.hasTokens {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first >= 0 {
		n.hasTokens = true
		n.leadWidth = kept[first].leadWidth
		n.trailWidth = kept[last].trailWidth
		// узлы без токенов нулевой ширины, поэтому достаточно вычесть крайние trivia
		n.width = n.fullWidth - n.leadWidth - n.trailWidth
	}
	return n
}

func (n *Node) Kind() Kind { return n.kind }

// IsToken reports whether n is a token leaf.
func (n *Node) IsToken() bool { return n.kind == KindToken }

// TokenKind returns the lexical kind of a token node (token.Invalid for inner nodes).
func (n *Node) TokenKind() token.Kind {
	if n.kind != KindToken {
		return token.Invalid
	}
	return n.tok
}

// Text returns the token text without trivia; empty for inner nodes.
func (n *Node) Text() string { return n.text }

// Leading returns the leading trivia of the first token in the subtree.
func (n *Node) Leading() []token.Trivia {
	if ft := n.FirstToken(); ft != nil {
		return ft.leading
	}
	return nil
}

// Trailing returns the trailing trivia of the last token in the subtree.
func (n *Node) Trailing() []token.Trivia {
	if lt := n.LastToken(); lt != nil {
		return lt.trailing
	}
	return nil
}

// Children returns the child list. READONLY.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) NumChildren() int { return len(n.children) }

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Width is the length of the node text without the outer trivia.
func (n *Node) Width() uint32 { return n.width }

// FullWidth is the length of the node text including all trivia.
func (n *Node) FullWidth() uint32 { return n.fullWidth }

// LeadingWidth is the length of the leading trivia of the first token.
func (n *Node) LeadingWidth() uint32 { return n.leadWidth }

// TrailingWidth is the length of the trailing trivia of the last token.
func (n *Node) TrailingWidth() uint32 { return n.trailWidth }

// HasTokens reports whether the subtree contains at least one token.
func (n *Node) HasTokens() bool { return n.hasTokens }

// Size is the number of nodes in the subtree, n included.
func (n *Node) Size() uint32 { return n.descendants }

// FirstToken returns the first token of the subtree, or nil.
func (n *Node) FirstToken() *Node {
	if n.kind == KindToken {
		return n
	}
	for _, c := range n.children {
		if c.hasTokens {
			return c.FirstToken()
		}
	}
	return nil
}

// LastToken returns the last token of the subtree, or nil.
func (n *Node) LastToken() *Node {
	if n.kind == KindToken {
		return n
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if n.children[i].hasTokens {
			return n.children[i].LastToken()
		}
	}
	return nil
}

// Tokens returns every token of the subtree in document order.
func (n *Node) Tokens() []*Node {
	out := make([]*Node, 0, n.tokenCount)
	var walk func(*Node)
	walk = func(x *Node) {
		if x.kind == KindToken {
			out = append(out, x)
			return
		}
		for _, c := range x.children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// WithChildren returns a copy of an inner node with a new child list.
func (n *Node) WithChildren(children ...*Node) *Node {
	if n.kind == KindToken {
		panic("syntax: WithChildren on a token node")
	}
	return NewNode(n.kind, children...)
}

// WithText returns a copy of a token node with new text and the same trivia.
func (n *Node) WithText(text string) *Node {
	if n.kind != KindToken {
		panic("syntax: WithText on an inner node")
	}
	return NewToken(n.tok, text, n.leading, n.trailing)
}

// WithLeading replaces the leading trivia of the first token of the subtree.
// The spine down to that token is rebuilt, every other node is shared.
func (n *Node) WithLeading(trivia []token.Trivia) *Node {
	if n.kind == KindToken {
		return NewToken(n.tok, n.text, trivia, n.trailing)
	}
	for i, c := range n.children {
		if !c.hasTokens {
			continue
		}
		children := append([]*Node(nil), n.children...)
		children[i] = c.WithLeading(trivia)
		return NewNode(n.kind, children...)
	}
	return n
}

// WithTrailing replaces the trailing trivia of the last token of the subtree.
func (n *Node) WithTrailing(trivia []token.Trivia) *Node {
	if n.kind == KindToken {
		return NewToken(n.tok, n.text, n.leading, trivia)
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		c := n.children[i]
		if !c.hasTokens {
			continue
		}
		children := append([]*Node(nil), n.children...)
		children[i] = c.WithTrailing(trivia)
		return NewNode(n.kind, children...)
	}
	return n
}

// ReplaceFirstLeading is WithLeading for callers holding a possibly nil node.
func ReplaceFirstLeading(n *Node, trivia []token.Trivia) *Node {
	if n == nil {
		return nil
	}
	return n.WithLeading(trivia)
}

// ReplaceLastTrailing is WithTrailing for callers holding a possibly nil node.
func ReplaceLastTrailing(n *Node, trivia []token.Trivia) *Node {
	if n == nil {
		return nil
	}
	return n.WithTrailing(trivia)
}

// MapTokens rebuilds the subtree passing every token through fn.
// Subtrees where fn returned every token unchanged are shared.
func (n *Node) MapTokens(fn func(tok *Node) *Node) *Node {
	if n.kind == KindToken {
		return fn(n)
	}
	var children []*Node
	for i, c := range n.children {
		nc := c.MapTokens(fn)
		if nc != c && children == nil {
			children = append([]*Node(nil), n.children...)
		}
		if children != nil {
			children[i] = nc
		}
	}
	if children == nil {
		return n
	}
	return NewNode(n.kind, children...)
}

// Render returns the exact text of the subtree: leading trivia, text and
// trailing trivia of every token in document order.
func Render(n *Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(n.fullWidth))
	writeNode(&sb, n)
	return sb.String()
}

// RenderTrimmed returns the subtree text without its outer trivia.
func RenderTrimmed(n *Node) string {
	full := Render(n)
	return full[n.leadWidth : n.fullWidth-n.trailWidth]
}

func writeNode(sb *strings.Builder, n *Node) {
	if n.kind == KindToken {
		for _, tv := range n.leading {
			sb.WriteString(tv.Text)
		}
		sb.WriteString(n.text)
		for _, tv := range n.trailing {
			sb.WriteString(tv.Text)
		}
		return
	}
	for _, c := range n.children {
		writeNode(sb, c)
	}
}

func (n *Node) String() string {
	if n.kind == KindToken {
		return fmt.Sprintf("%s %q", n.tok, n.text)
	}
	return fmt.Sprintf("%s[%d]", n.kind, len(n.children))
}

func cloneTrivia(list []token.Trivia) []token.Trivia {
	if len(list) == 0 {
		return nil
	}
	out := make([]token.Trivia, len(list))
	copy(out, list)
	return out
}

func strLen(s string) uint32 {
	n, err := safecast.Conv[uint32](len(s))
	if err != nil {
		panic(fmt.Errorf("text length overflow: %w", err))
	}
	return n
}
