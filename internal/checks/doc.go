// Package checks holds the rules shipped with sharplint and the fixes for
// them. Rules are plain data built by Rules; nothing here registers itself
// globally, callers build a registry from the table they want.
package checks
