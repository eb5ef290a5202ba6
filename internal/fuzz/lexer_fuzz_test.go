package fuzztests

import (
	"strings"
	"testing"

	"sharplint/internal/diag"
	"sharplint/internal/lexer"
	"sharplint/internal/source"
	"sharplint/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// FuzzLexerRoundTrip checks that tokens with their trivia reproduce the input.
func FuzzLexerRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.cs", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag, File: file}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})

		var sb strings.Builder
		for _, tok := range lx.All() {
			sb.WriteString(tok.FullText())
		}
		if sb.String() != string(file.Content) {
			t.Fatalf("lexer round trip mismatch\ninput: %q\ngot:   %q", file.Content, sb.String())
		}
		// после EOF лексер возвращает только EOF
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("token after EOF: %v", tok.Kind)
		}
	})
}
