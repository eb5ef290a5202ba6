package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharplint/internal/diag"
	"sharplint/internal/lexer"
	"sharplint/internal/source"
	"sharplint/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(src string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	bag := diag.NewBag(0)
	f := fs.Get(id)
	lx := lexer.New(f, lexer.Options{Reporter: diag.BagReporter{Bag: bag, File: f}})
	return lx, bag
}

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(src)
	toks := lx.All()
	require.Zero(t, bag.Len(), "unexpected lexer diagnostics: %v", bag.Items())
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"class A { }",
		"if(true) /* comments */ Console.WriteLine(\"true\");\r\n",
		"#region x\nvoid M() { var s = @\"a\"\"b\nc\"; }\n#endregion\n// tail",
		"var s = $\"{x} and {{literal}} {y.Select(z => \"q\")}\";",
		"char c = '\\''; double d = 1.5e-3; long l = 0xFFul; var r = 1..ToString();",
		"\uFEFFvar ключ = 1;",
	}
	for _, src := range inputs {
		lx, _ := makeTestLexer(src)
		var sb strings.Builder
		for _, tk := range lx.All() {
			sb.WriteString(tk.FullText())
		}
		assert.Equal(t, src, sb.String())
	}
}

func TestTrailingTriviaStopsAfterFirstNewline(t *testing.T) {
	toks := lexAll(t, "if(true) // c\n\n    x;")
	require.Equal(t, []token.Kind{token.KwIf, token.LParen, token.KwTrue, token.RParen, token.Ident, token.Semicolon, token.EOF}, kinds(toks))

	rparen := toks[3]
	require.Len(t, rparen.Trailing, 3)
	assert.Equal(t, token.TriviaSpace, rparen.Trailing[0].Kind)
	assert.Equal(t, token.TriviaLineComment, rparen.Trailing[1].Kind)
	assert.Equal(t, "\n", rparen.Trailing[2].Text)

	x := toks[4]
	require.Len(t, x.Leading, 2)
	assert.Equal(t, token.TriviaNewline, x.Leading[0].Kind)
	assert.Equal(t, "    ", x.Leading[1].Text)
}

func TestEOFCarriesFinalTrivia(t *testing.T) {
	toks := lexAll(t, "x;\n\n// end\n")
	eof := toks[len(toks)-1]
	require.Equal(t, token.EOF, eof.Kind)
	assert.Equal(t, "\n// end\n", token.TriviaText(eof.Leading))
	assert.Equal(t, "\n", token.TriviaText(toks[1].Trailing))
}

func TestCRLFKeptAsSingleNewline(t *testing.T) {
	toks := lexAll(t, "a\r\nb")
	require.Len(t, toks[0].Trailing, 1)
	assert.Equal(t, "\r\n", toks[0].Trailing[0].Text)
	assert.Equal(t, token.TriviaNewline, toks[0].Trailing[0].Kind)
}

func TestPreprocessorAndDocComments(t *testing.T) {
	toks := lexAll(t, "#if DEBUG\n/// <summary>\n//// plain\nx")
	x := toks[0]
	require.Equal(t, token.Ident, x.Kind)
	var got []token.TriviaKind
	for _, tv := range x.Leading {
		got = append(got, tv.Kind)
	}
	assert.Equal(t, []token.TriviaKind{
		token.TriviaPreprocessor, token.TriviaNewline,
		token.TriviaDocLine, token.TriviaNewline,
		token.TriviaLineComment, token.TriviaNewline,
	}, got)
}

func TestLiteralsAndOperators(t *testing.T) {
	toks := lexAll(t, `@class $"a{b}" @"c" 'd' 1.5f 10UL a?.b ?? c => List<List<int>>`)
	assert.Equal(t, []token.Kind{
		token.Ident, token.StringLit, token.StringLit, token.CharLit, token.RealLit, token.IntLit,
		token.Ident, token.QuestionDot, token.Ident, token.QuestionQuestion, token.Ident, token.FatArrow,
		token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt, token.EOF,
	}, kinds(toks))
}

func TestErrorsAreReported(t *testing.T) {
	lx, bag := makeTestLexer("var s = \"open\n; /* never closed")
	toks := lx.All()
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)
	require.Equal(t, 2, bag.Len())
	assert.Equal(t, diag.LexUnterminatedString.ID(), bag.Items()[0].RuleID)
	assert.Equal(t, diag.LexUnterminatedBlockComment.ID(), bag.Items()[1].RuleID)
}

func TestUnicodeIdentifiers(t *testing.T) {
	toks := lexAll(t, "e\u0301x _a1 x\u200By ключ \u216B")
	require.Equal(t, []token.Kind{token.Ident, token.Ident, token.Ident, token.Ident, token.Ident, token.EOF}, kinds(toks))
	assert.Equal(t, "e\u0301x", toks[0].Text)
	assert.Equal(t, "x\u200By", toks[2].Text)

	// BOM внутри текста не идентификатор
	lx, bag := makeTestLexer("\uFEFFx")
	got := lx.All()
	require.Equal(t, []token.Kind{token.Invalid, token.Ident, token.EOF}, kinds(got))
	assert.Equal(t, "\uFEFF", got[0].Text)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.LexUnknownChar.ID(), bag.Items()[0].RuleID)
}
