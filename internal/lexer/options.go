package lexer

import (
	"sharplint/internal/diag"
	"sharplint/internal/source"
)

// Reporter: тонкий интерфейс, чтобы не тянуть Bag сюда.
// Лексер **только вызывает** его с параметрами; форматирует diag внешний слой.
type Reporter interface {
	Report(code diag.Code, sev diag.Severity, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg)
	}
}
