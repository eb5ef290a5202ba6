package lexer

import (
	"sharplint/internal/diag"
	"sharplint/internal/token"
)

// scanPrefixed разбирает формы с префиксом '@' или '$':
// @"..." (verbatim), $"..." / $@"..." / @$"..." (интерполяция), @ident (verbatim identifier).
func (lx *Lexer) scanPrefixed() token.Token {
	start := lx.cursor.Mark()
	verbatim, interpolated := false, false
	for range 2 {
		switch lx.cursor.Peek() {
		case '@':
			if verbatim {
				break
			}
			verbatim = true
			lx.cursor.Bump()
		case '$':
			if interpolated {
				break
			}
			interpolated = true
			lx.cursor.Bump()
		}
	}

	if lx.cursor.Peek() == '"' {
		lx.scanStringBody(verbatim, interpolated)
		return lx.finishString(start)
	}

	if verbatim && !interpolated && lx.cursor.Mark() == start+1 {
		identStart := lx.cursor.Mark()
		lx.eatIdentRunes()
		if lx.cursor.Mark() != identStart {
			return lx.emit(token.Ident, start)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.scanStringBody(false, false)
	return lx.finishString(start)
}

func (lx *Lexer) finishString(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	kind := token.StringLit
	if !lx.stringClosed {
		kind = token.Invalid
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// scanStringBody потребляет строку начиная с открывающей кавычки.
// В интерполяции '{' ... '}' могут содержать вложенные строки; "{{" и "}}": экранирование.
func (lx *Lexer) scanStringBody(verbatim, interpolated bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	lx.stringClosed = false
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if depth > 0 {
			switch b {
			case '{':
				depth++
			case '}':
				depth--
			case '"':
				saved := lx.stringClosed
				lx.scanStringBody(false, false)
				lx.stringClosed = saved
				continue
			case '@', '$':
				if b0, b1, ok := lx.cursor.Peek2(); ok && (b1 == '"' || (b0 == '$' && b1 == '@') || (b0 == '@' && b1 == '$')) {
					saved := lx.stringClosed
					lx.scanPrefixed()
					lx.stringClosed = saved
					continue
				}
			}
			lx.cursor.Bump()
			continue
		}

		switch {
		case b == '"':
			lx.cursor.Bump()
			if verbatim && lx.cursor.Peek() == '"' {
				lx.cursor.Bump()
				continue
			}
			lx.stringClosed = true
			return
		case b == '\\' && !verbatim:
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		case (b == '\n' || b == '\r') && !verbatim:
			lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "newline in string literal")
			return
		case b == '{' && interpolated:
			lx.cursor.Bump()
			if lx.cursor.Peek() == '{' {
				lx.cursor.Bump()
				continue
			}
			depth = 1
			continue
		}
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
}

// scanChar: 'a', '\n', 'A'.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '\'':
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		case '\n', '\r':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "newline in character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
