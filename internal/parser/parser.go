package parser

import (
	"errors"
	"fmt"
	"slices"

	"sharplint/internal/diag"
	"sharplint/internal/lexer"
	"sharplint/internal/source"
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// ErrParse is wrapped by ParseError.
var ErrParse = errors.New("parse failure")

// ParseError reports input that is not well formed. No rule diagnostics are
// produced for such input.
type ParseError struct {
	Path        string
	Diagnostics []diag.Diagnostic
}

func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("parse %s: malformed input", e.Path)
	}
	first := e.Diagnostics[0]
	return fmt.Sprintf("parse %s:%s: %s (%d syntax error(s))", e.Path, first.Location(), first.Message, len(e.Diagnostics))
}

func (e *ParseError) Unwrap() error { return ErrParse }

type Options struct {
	// MaxErrors останавливает разбор после N ошибок (0: без лимита).
	MaxErrors int
	// Reporter получает каждую синтаксическую ошибку по мере обнаружения (может быть nil).
	Reporter diag.Reporter
}

// Parse разбирает файл из FileSet.
func Parse(fs *source.FileSet, id source.FileID, opts Options) (*syntax.Tree, error) {
	return ParseFile(fs.Get(id), opts)
}

// ParseText разбирает текст как виртуальный файл с именем name.
func ParseText(name, text string) (*syntax.Tree, error) {
	return ParseFile(source.NewFile(0, name, []byte(text), source.FileVirtual), Options{})
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(file *source.File, opts Options) (*syntax.Tree, error) {
	bag := diag.NewBag(0)
	var rep diag.Reporter = diag.BagReporter{Bag: bag, File: file}
	if opts.Reporter != nil {
		rep = multiReporter{rep, opts.Reporter}
	}
	rep = diag.NewDedupReporter(rep)

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	p := &Parser{
		file:      file,
		toks:      lx.All(),
		reporter:  rep,
		maxErrors: opts.MaxErrors,
	}
	root := p.parseCompilationUnit()

	if bag.Len() > 0 {
		return nil, &ParseError{Path: file.Path, Diagnostics: bag.Items()}
	}
	if int(root.FullWidth()) != len(file.Content) {
		return nil, fmt.Errorf("parser: tree covers %d of %d bytes of %s", root.FullWidth(), len(file.Content), file.Path)
	}
	return syntax.NewTree(file, root), nil
}

type multiReporter []diag.Reporter

func (m multiReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string) {
	for _, r := range m {
		r.Report(code, sev, primary, msg)
	}
}

// Parser: состояние парсера на один файл. Токены уже разобраны лексером
// целиком, поэтому просмотр вперёд и откат: это просто индекс.
type Parser struct {
	file      *source.File
	toks      []token.Token
	pos       int
	reporter  diag.Reporter
	errors    int
	maxErrors int
}

func (p *Parser) peek() token.Token { return p.peekN(0) }

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atContextual reports whether the current token is the identifier text (var, async, where, ...).
func (p *Parser) atContextual(text string) bool {
	t := p.peek()
	return t.Kind == token.Ident && t.Text == text
}

func (p *Parser) done() bool {
	return p.at(token.EOF) || p.enough()
}

func (p *Parser) enough() bool {
	return p.maxErrors > 0 && p.errors >= p.maxErrors
}

// advance: съедает текущий токен и возвращает его узел. EOF не съедается.
func (p *Parser) advance() *syntax.Node {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return syntax.FromToken(tok)
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем nil.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) *syntax.Node {
	if p.at(k) {
		return p.advance()
	}
	p.err(code, msg)
	return nil
}

// репортует ошибку на текущем токене
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.errors++
	if p.maxErrors > 0 && p.errors > p.maxErrors {
		return
	}
	if p.maxErrors > 0 && p.errors == p.maxErrors {
		msg += " (too many errors, giving up)"
	}
	p.reporter.Report(code, diag.SevError, sp, msg)
}

// diagnosticSpan: span текущего токена; для EOF: позиция сразу после предыдущего.
func (p *Parser) diagnosticSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.pos > 0 {
		prev := p.toks[p.pos-1].Span
		return source.Span{File: prev.File, Start: prev.End, End: prev.End}
	}
	return tok.Span
}

// skip упаковывает текущий токен в Skipped-узел, чтобы ни один байт не потерялся.
func (p *Parser) skip(msg string) *syntax.Node {
	p.err(diag.SynUnexpectedToken, fmt.Sprintf("%s, got %q", msg, p.peek().Text))
	return syntax.NewNode(syntax.KindSkipped, p.advance())
}

// parseCompilationUnit: основной цикл верхнего уровня: using, namespace, типы; EOF в конце.
func (p *Parser) parseCompilationUnit() *syntax.Node {
	kids := p.parseNamespaceBody(false)
	for !p.at(token.EOF) {
		// после лимита ошибок оставшиеся токены всё равно должны попасть в дерево
		kids = append(kids, syntax.NewNode(syntax.KindSkipped, p.advance()))
	}
	kids = append(kids, p.advance())
	return syntax.NewNode(syntax.KindCompilationUnit, kids...)
}
