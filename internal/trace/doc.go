// Package trace records run and per-file phase boundaries of a sharplint
// run as a stream of events.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	sharplint diag --trace=- --trace-level=phase src/
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelRun: Command boundaries only
//   - LevelPhase: Command boundaries plus parse/analyze/fix/write of each file
//
// # Formats
//
// Events are written as text lines or as newline-delimited JSON. A path
// ending in .ndjson selects JSON when no format is given.
package trace
