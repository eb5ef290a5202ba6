package lexer

import (
	"sharplint/internal/diag"
	"sharplint/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\v', '\f' коалесцируются в один TriviaSpace
// - каждый перевод строки ("\n", "\r\n" или одиночный "\r"): отдельный TriviaNewline
// - //... до конца строки -> TriviaLineComment, ///... -> TriviaDocLine
// - /* ... */ -> TriviaBlockComment (без вложенности; если не закрыт: репорт и обрезаем на EOF)
// - #... в начале строки -> TriviaPreprocessor
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		if lx.scanSpace() || lx.scanNewline() || lx.scanComment() {
			continue
		}
		if lx.cursor.Peek() == '#' && lx.atLineStart() {
			lx.scanPreprocessor()
			continue
		}
		break
	}
}

// collectTrailingTrivia забирает trivia до первого перевода строки включительно.
// Всё остальное станет leading следующего токена.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	base := len(lx.hold)
	for !lx.cursor.EOF() {
		if lx.scanSpace() || lx.scanComment() {
			continue
		}
		lx.scanNewline()
		break
	}
	if len(lx.hold) == base {
		return nil
	}
	out := make([]token.Trivia, len(lx.hold)-base)
	copy(out, lx.hold[base:])
	lx.hold = lx.hold[:base]
	return out
}

func (lx *Lexer) push(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanSpace() bool {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	if lx.cursor.Mark() == start {
		return false
	}
	lx.push(token.TriviaSpace, start)
	return true
}

func (lx *Lexer) scanNewline() bool {
	start := lx.cursor.Mark()
	switch lx.cursor.Peek() {
	case '\r':
		lx.cursor.Bump()
		lx.cursor.Eat('\n')
	case '\n':
		lx.cursor.Bump()
	default:
		return false
	}
	lx.push(token.TriviaNewline, start)
	return true
}

// //... , /*...*/ , ///...
func (lx *Lexer) scanComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	start := lx.cursor.Mark()
	switch b1 {
	case '/':
		lx.cursor.Bump()
		lx.cursor.Bump()
		kind := token.TriviaLineComment
		// "///" но не "////"
		if lx.cursor.Peek() == '/' {
			if _, c, ok := lx.cursor.Peek2(); !ok || c != '/' {
				kind = token.TriviaDocLine
			}
		}
		lx.skipToLineEnd()
		lx.push(kind, start)
		return true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if b, c, ok := lx.cursor.Peek2(); ok && b == '*' && c == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.push(token.TriviaBlockComment, start)
		return true
	}
	return false
}

func (lx *Lexer) scanPreprocessor() {
	start := lx.cursor.Mark()
	lx.skipToLineEnd()
	lx.push(token.TriviaPreprocessor, start)
}

func (lx *Lexer) skipToLineEnd() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			return
		}
		lx.cursor.Bump()
	}
}

// atLineStart reports whether only whitespace precedes the cursor on its line.
func (lx *Lexer) atLineStart() bool {
	for i := int(lx.cursor.Off) - 1; i >= 0; i-- {
		switch lx.file.Content[i] {
		case ' ', '\t':
			continue
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}
