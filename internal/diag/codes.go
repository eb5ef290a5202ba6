package diag

import (
	"fmt"
)

// Code identifies diagnostics produced by the front end and the driver.
// Rule diagnostics are identified by their rule ID instead.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Парсерные
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2006
	SynUnclosedBrace    Code = 2007
	SynUnclosedBracket  Code = 2008
	SynExpectSemicolon  Code = 2012
	SynExpectIdentifier Code = 2020
	SynExpectType       Code = 2021
	SynTooManyErrors    Code = 2099

	// IO
	IOLoadFileError Code = 4001
	IOWriteError    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid numeric literal",
	LexUnterminatedChar:         "Unterminated character literal",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectSemicolon:          "Expected semicolon",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynTooManyErrors:            "Too many syntax errors",
	IOLoadFileError:             "Failed to load file",
	IOWriteError:                "Failed to write file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
