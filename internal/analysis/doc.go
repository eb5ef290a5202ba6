// Package analysis holds rule descriptors, the immutable rule registry and
// the dispatcher that runs rules over a syntax tree.
//
// A pass is one pre-order traversal of one tree. For every node the rules
// interested in its kind run in registration order, so the diagnostic list is
// ordered by traversal first and registration second. Rules are plain data
// plus a Check function; they must not keep state between calls.
package analysis
