package token

import (
	"sharplint/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// FullText returns leading trivia, text and trailing trivia concatenated.
func (t Token) FullText() string {
	return TriviaText(t.Leading) + t.Text + TriviaText(t.Trailing)
}

// IsLiteral reports whether the token is a numeric, boolean, null, char or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, StringLit, CharLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool {
	return t.Kind > keywordBegin && t.Kind < keywordEnd
}

// IsModifier reports whether the token can appear in a modifier list.
func (t Token) IsModifier() bool {
	if t.Kind == Ident {
		return IsContextualModifier(t.Text)
	}
	return t.Kind.IsModifier()
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
