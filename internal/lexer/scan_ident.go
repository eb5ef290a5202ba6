package lexer

import (
	"sharplint/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase). Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.eatIdentRunes()
	if lx.cursor.Mark() == start {
		// не идентификатор: пусть разбирается как оператор
		return lx.scanOperatorOrPunct()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// eatIdentRunes consumes an identifier: ASCII fast-path, Unicode letters otherwise.
func (lx *Lexer) eatIdentRunes() {
	r, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return
		}
		lx.bumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if lx.cursor.EOF() || !isIdentContinueByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			return
		}
		lx.bumpRune()
	}
}
