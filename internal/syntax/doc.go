// Package syntax is the lossless syntax tree model.
//
// A tree has two layers:
//
//   - Green nodes (*Node) are immutable values. A token node carries its kind,
//     text and the trivia attached to its leading and trailing edges; an inner
//     node carries an ordered list of children and cached widths. Green nodes
//     know nothing about their position, so an edit can reuse every untouched
//     subtree by pointer.
//   - A Tree pins a green root to a document. It owns the rendered text (as a
//     source.File) and an arena of Refs in depth-first pre-order: NodeID i is
//     the i-th node visited (1-based, 0 means "no node"), every Ref records its
//     parent, its absolute start offset and the last NodeID of its subtree.
//
// Rendering concatenates leading trivia, text and trailing trivia of every
// token in document order. For a tree produced by the parser the rendered text
// is byte-for-byte the input.
//
// Trees are never mutated. Tree.Replace returns a new tree with a fresh
// generation number; anchors into the old tree stay valid only for the old tree.
package syntax
