package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"sharplint/internal/fix"
	"sharplint/internal/parser"
	"sharplint/internal/source"
	"sharplint/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserRoundTrip checks that a parsed tree renders back to the input
// and that malformed input is reported as a ParseError.
func FuzzParserRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.cs", input))

		tree, err := parser.ParseFile(file, parser.Options{MaxErrors: 128})
		if err != nil {
			if !errors.Is(err, parser.ErrParse) {
				t.Fatalf("unexpected parser failure: %v", err)
			}
			return
		}
		if got := fix.RenderText(tree); got != string(file.Content) {
			t.Fatalf("parser round trip mismatch\ninput: %q\ngot:   %q", file.Content, got)
		}
		if err := testkit.CheckTreeInvariants(tree); err != nil {
			t.Fatalf("tree invariants: %v\ninput: %q", err, file.Content)
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases for error recovery
	f.Add([]byte("class C { void M() { int x = 1\nint y = 2; } }"))         // missing semicolon
	f.Add([]byte("class C { void M() { if (x { } } }"))                     // unclosed condition
	f.Add([]byte("class C { async Task<List<int> M() { } }"))               // unbalanced generics
	f.Add([]byte("{ { { { } } } }"))                                        // blocks at top level
	f.Add([]byte("class C { void M() { for (int i = 0 i < 10 i++) {} } }")) // for without semicolons

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		// Create a context with timeout to detect hangs
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.cs", input))
			_, _ = parser.ParseFile(file, parser.Options{MaxErrors: 128})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
