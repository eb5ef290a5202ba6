package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// peekRune decodes the rune under the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.cursor.Rest()
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

// bumpRune consumes the rune under the cursor. Invalid UTF-8 is consumed one
// byte at a time.
func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	step, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("lexer: rune size %d: %w", size, err))
	}
	lx.cursor.Off += step
}

// Идентификаторы C#: начало буква или '_', дальше ещё цифры, combining marks,
// connector и formatting символы.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentContinueRune(r rune) bool {
	if isIdentStartRune(r) || unicode.IsDigit(r) {
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Cf)
}

// isSpace: горизонтальные пробелы; переводы строк разбираются отдельно.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\f':
		return true
	}
	return false
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || ('a' <= b|0x20 && b|0x20 <= 'f')
}

// isNumberAfterDot: ".5" начинает литерал, а не member access.
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

// try2 consumes a two-byte operator a b.
func (lx *Lexer) try2(a, b byte) bool {
	if b0, b1, ok := lx.cursor.Peek2(); !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}
