package lexer

import (
	"sharplint/internal/diag"
	"sharplint/internal/token"
)

// Поддержка: 0, 123, 1_000, 0x..., 0b..., 1.0, .5, 1e-3, 1.0e+10 и суффиксы u/l/ul/f/d/m.
// Неверные формы: репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			switch b1 {
			case 'x', 'X':
				lx.cursor.Bump()
				lx.cursor.Bump()
				for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
					lx.cursor.Bump()
				}
				lx.eatIntSuffix()
				return lx.emit(kind, start)
			case 'b', 'B':
				lx.cursor.Bump()
				lx.cursor.Bump()
				for b := lx.cursor.Peek(); b == '0' || b == '1' || b == '_'; b = lx.cursor.Peek() {
					lx.cursor.Bump()
				}
				lx.eatIntSuffix()
				return lx.emit(kind, start)
			}
		}
	}

	lx.eatDigits()

	// дробная часть: только если за точкой цифра (иначе это member access: 1.ToString())
	if lx.isNumberAfterDot() {
		kind = token.RealLit
		lx.cursor.Bump()
		lx.eatDigits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.RealLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.eatDigits()
	}

	switch lx.cursor.Peek() {
	case 'f', 'F', 'd', 'D', 'm', 'M':
		lx.cursor.Bump()
		kind = token.RealLit
	default:
		if kind == token.IntLit {
			lx.eatIntSuffix()
		}
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatIntSuffix() {
	for range 2 {
		switch lx.cursor.Peek() {
		case 'u', 'U', 'l', 'L':
			lx.cursor.Bump()
		default:
			return
		}
	}
}
