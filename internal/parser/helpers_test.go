package parser_test

import (
	"sharplint/internal/diag"
	"sharplint/internal/source"
)

type collect struct {
	msgs []string
}

func (c *collect) Report(_ diag.Code, _ diag.Severity, _ source.Span, msg string) {
	c.msgs = append(c.msgs, msg)
}

func virtual(text string) *source.File {
	return source.NewFile(0, "test.cs", []byte(text), source.FileVirtual)
}
