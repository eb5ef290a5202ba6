// Package diag defines the diagnostic model shared by the front end, the rule
// dispatcher and the fix applier.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - RuleID – the rule identifier, or a front-end code ID (LEX1002, SYN2012).
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Message – human oriented text; keep it short and actionable.
//   - Anchor – the tree, node and span the finding is about.
//   - Start/End – line/column of the anchor span, resolved at construction.
//
// An Anchor references a node of one tree generation. It never holds a bare
// offset: a fix provider compares Anchor.Tree with the tree it is asked to
// rewrite and refuses to act on a stale diagnostic.
//
// Diagnostics are data only. Severity levels and message formats carry no
// behaviour, so rules can be added without touching the dispatcher or the
// fix applier.
//
// # Emitting
//
// Rules return diagnostics from their check functions (see internal/analysis);
// ReportBuilder helps attaching notes. The lexer and the parser emit through a
// Reporter; BagReporter stores into a Bag, which supports sorting, dedup and
// filtering.
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt, orchestration in internal/driver.
package diag
