package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sharplint/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	k, ok := token.LookupKeyword("foreach")
	assert.True(t, ok)
	assert.Equal(t, token.KwForeach, k)
	assert.Equal(t, "foreach", k.String())

	_, ok = token.LookupKeyword("If")
	assert.False(t, ok, "keywords are case-sensitive")
	_, ok = token.LookupKeyword("async")
	assert.False(t, ok, "async is contextual")
}

func TestModifiers(t *testing.T) {
	assert.True(t, token.Token{Kind: token.KwVirtual, Text: "virtual"}.IsModifier())
	assert.True(t, token.Token{Kind: token.Ident, Text: "async"}.IsModifier())
	assert.False(t, token.Token{Kind: token.Ident, Text: "Task"}.IsModifier())
	assert.False(t, token.Token{Kind: token.KwVoid, Text: "void"}.IsModifier())

	assert.True(t, token.KwProtected.IsAccessibility())
	assert.False(t, token.KwStatic.IsAccessibility())
	assert.True(t, token.KwClass.IsKeyword())
	assert.False(t, token.Semicolon.IsKeyword())
}

func TestFullText(t *testing.T) {
	tok := token.Token{
		Kind:     token.KwIf,
		Text:     "if",
		Leading:  []token.Trivia{token.Space("    ")},
		Trailing: []token.Trivia{{Kind: token.TriviaBlockComment, Text: "/* c */"}, token.Newline("\n")},
	}
	assert.Equal(t, "    if/* c */\n", tok.FullText())
	assert.True(t, token.HasNewline(tok.Trailing))
	assert.False(t, token.HasNewline(tok.Leading))
	assert.True(t, tok.Trailing[0].IsComment())
	assert.Equal(t, "(", token.LParen.String())
}
