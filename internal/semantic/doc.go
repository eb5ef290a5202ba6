// Package semantic answers the read-only symbol questions rules ask about a
// tree: what a declaration or type reference names, whether a type derives
// from another, whether a method is asynchronous and which attributes it
// carries.
//
// The Model interface is what the dispatcher hands to rules. Syntactic is the
// bundled implementation; it looks only at the tree itself plus a small table
// of well-known framework types, so it works without a compiler front end.
package semantic
