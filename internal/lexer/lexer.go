package lexer

import (
	"sharplint/internal/source"
	"sharplint/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	done   bool

	stringClosed bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранными Leading и Trailing.
// EOF несёт хвостовые trivia файла в Leading; после EOF всегда возвращает пустой EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
		if !lx.done {
			tok.Leading = lx.takeHold()
			lx.done = true
		}
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '@' || ch == '$':
		tok = lx.scanPrefixed()

	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '\'':
		tok = lx.scanChar()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.takeHold()
	tok.Trailing = lx.collectTrailingTrivia()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the whole file, EOF included.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := make([]token.Trivia, len(lx.hold))
	copy(out, lx.hold)
	lx.hold = lx.hold[:0]
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
