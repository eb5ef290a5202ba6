package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input; it carries the final trivia.
	EOF

	// Ident represents an identifier token (including contextual keywords).
	Ident

	// IntLit represents an integer literal.
	IntLit
	// RealLit represents a real literal.
	RealLit
	// StringLit represents a regular, verbatim or interpolated string literal.
	StringLit
	// CharLit represents a character literal.
	CharLit

	keywordBegin
	KwAbstract
	KwAs
	KwBase
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDefault
	KwDelegate
	KwDo
	KwElse
	KwEnum
	KwEvent
	KwExtern
	KwFalse
	KwFinally
	KwFor
	KwForeach
	KwGoto
	KwIf
	KwIn
	KwInterface
	KwInternal
	KwIs
	KwLock
	KwNamespace
	KwNew
	KwNull
	KwOperator
	KwOut
	KwOverride
	KwParams
	KwPrivate
	KwProtected
	KwPublic
	KwReadonly
	KwRef
	KwReturn
	KwSealed
	KwStatic
	KwStruct
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwUnsafe
	KwUsing
	KwVirtual
	KwVoid
	KwVolatile
	KwWhile
	keywordEnd

	// punctuation and operators
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	EqEq
	Bang
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	Amp
	Pipe
	Caret
	Tilde
	AndAnd
	OrOr
	PlusPlus
	MinusMinus
	Question
	QuestionQuestion
	QuestionDot
	Colon
	ColonColon
	Semicolon
	Comma
	Dot
	FatArrow
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
)

var kindNames = map[Kind]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	IntLit:           "IntLit",
	RealLit:          "RealLit",
	StringLit:        "StringLit",
	CharLit:          "CharLit",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	Assign:           "=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	EqEq:             "==",
	Bang:             "!",
	BangEq:           "!=",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	AndAnd:           "&&",
	OrOr:             "||",
	PlusPlus:         "++",
	MinusMinus:       "--",
	Question:         "?",
	QuestionQuestion: "??",
	QuestionDot:      "?.",
	Colon:            ":",
	ColonColon:       "::",
	Semicolon:        ";",
	Comma:            ",",
	Dot:              ".",
	FatArrow:         "=>",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
}

func init() {
	for text, k := range keywords {
		kindNames[k] = text
	}
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsKeyword reports whether k is a reserved keyword.
func (k Kind) IsKeyword() bool {
	return k > keywordBegin && k < keywordEnd
}

// IsAccessibility reports whether k is one of the accessibility modifiers.
func (k Kind) IsAccessibility() bool {
	switch k {
	case KwPublic, KwPrivate, KwProtected, KwInternal:
		return true
	}
	return false
}

// IsModifier reports whether k is a reserved keyword that can appear in a modifier list.
func (k Kind) IsModifier() bool {
	switch k {
	case KwPublic, KwPrivate, KwProtected, KwInternal, KwStatic, KwVirtual, KwOverride,
		KwAbstract, KwSealed, KwReadonly, KwExtern, KwUnsafe, KwVolatile, KwNew, KwConst:
		return true
	}
	return false
}
