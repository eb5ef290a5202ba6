package token

import (
	"strings"

	"sharplint/internal/source"
)

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	TriviaPreprocessor
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLine:
		return "DocLine"
	case TriviaPreprocessor:
		return "Preprocessor"
	}
	return "Unknown"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span // zero for synthesized trivia
	Text string
}

// IsComment reports whether the trivia piece is any kind of comment.
func (t Trivia) IsComment() bool {
	switch t.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine:
		return true
	}
	return false
}

// Space builds a synthesized whitespace trivia piece.
func Space(text string) Trivia { return Trivia{Kind: TriviaSpace, Text: text} }

// Newline builds a synthesized line-break trivia piece.
func Newline(text string) Trivia { return Trivia{Kind: TriviaNewline, Text: text} }

// TriviaText concatenates the text of every piece.
func TriviaText(list []Trivia) string {
	switch len(list) {
	case 0:
		return ""
	case 1:
		return list[0].Text
	}
	var sb strings.Builder
	for _, tv := range list {
		sb.WriteString(tv.Text)
	}
	return sb.String()
}

// HasNewline reports whether any piece is a line break.
func HasNewline(list []Trivia) bool {
	for _, tv := range list {
		if tv.Kind == TriviaNewline {
			return true
		}
	}
	return false
}
