package parser

import (
	"sharplint/internal/diag"
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// parseNamespaceBody разбирает члены пространства имён до '}' (inBraces) или EOF.
func (p *Parser) parseNamespaceBody(inBraces bool) []*syntax.Node {
	var kids []*syntax.Node
	for !p.done() {
		if inBraces && p.at(token.RBrace) {
			break
		}
		start := p.pos
		switch {
		case p.at(token.KwUsing), p.atContextual("global") && p.peekN(1).Kind == token.KwUsing:
			kids = append(kids, p.parseUsingDirective())
		case p.at(token.KwNamespace):
			kids = append(kids, p.parseNamespace())
		case p.atGlobalAttribute():
			kids = append(kids, p.parseAttributeList())
		default:
			kids = append(kids, p.parseMember())
		}
		if p.pos == start {
			kids = append(kids, p.skip("expected a declaration"))
		}
	}
	return kids
}

// [assembly: X] / [module: X]
func (p *Parser) atGlobalAttribute() bool {
	if !p.at(token.LBracket) || p.peekN(2).Kind != token.Colon {
		return false
	}
	t := p.peekN(1)
	return t.Kind == token.Ident && (t.Text == "assembly" || t.Text == "module")
}

// using X.Y; / using static X; / using A = B; / global using X;
func (p *Parser) parseUsingDirective() *syntax.Node {
	kids := []*syntax.Node{}
	if p.atContextual("global") {
		kids = append(kids, p.advance())
	}
	kids = append(kids, p.advance()) // using
	kids = append(kids, p.parseExprUntil(stopAt(token.Semicolon)))
	kids = append(kids, p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after using directive"))
	return syntax.NewNode(syntax.KindUsingDirective, kids...)
}

// namespace A.B { ... } или file-scoped namespace A.B;
func (p *Parser) parseNamespace() *syntax.Node {
	kids := []*syntax.Node{p.advance()}
	kids = append(kids, p.parseQualifiedName())
	if p.at(token.Semicolon) {
		kids = append(kids, p.advance())
		return syntax.NewNode(syntax.KindNamespaceDeclaration, kids...)
	}
	kids = append(kids, p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after namespace name"))
	kids = append(kids, p.parseNamespaceBody(true)...)
	kids = append(kids, p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close namespace"))
	if p.at(token.Semicolon) {
		kids = append(kids, p.advance())
	}
	return syntax.NewNode(syntax.KindNamespaceDeclaration, kids...)
}

func (p *Parser) parseQualifiedName() *syntax.Node {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentifier, "expected name")
		return nil
	}
	kids := []*syntax.Node{p.advance()}
	for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
		kids = append(kids, p.advance(), p.advance())
	}
	return syntax.NewNode(syntax.KindTypeRef, kids...)
}

// parseMember разбирает объявление типа или члена класса:
// атрибуты, модификаторы и дальше по первому значимому токену.
func (p *Parser) parseMember() *syntax.Node {
	start := p.pos
	attrs := p.parseAttributeLists()
	mods := p.parseModifiers()
	head := append(attrs, mods)

	switch {
	case p.atOr(token.KwClass, token.KwStruct, token.KwInterface),
		p.atContextual("record") && p.peekN(1).Kind != token.LParen:
		return p.parseClass(head)
	case p.at(token.KwEnum):
		return p.parseEnum(head)
	case p.at(token.Ident) && p.peekN(1).Kind == token.LParen,
		p.at(token.Tilde) && p.peekN(1).Kind == token.Ident:
		return p.parseConstructor(head)
	case p.atOr(token.KwDelegate, token.KwEvent), p.atContextual("implicit"), p.atContextual("explicit"):
		return p.parseLooseMember(head, nil)
	}

	typ := p.parseType()
	if typ == nil {
		if p.pos == start {
			return nil
		}
		p.err(diag.SynExpectType, "expected type")
		return syntax.NewNode(syntax.KindFieldDeclaration, head...)
	}

	if end, ok := p.scanMemberName(p.pos); ok {
		if k := p.toks[end].Kind; k == token.LParen || k == token.Lt {
			return p.parseMethod(head, typ)
		}
	}
	return p.parseLooseMember(head, typ)
}

// scanMemberName: Ident ('.' Ident)*, имя метода, в том числе явная реализация интерфейса.
func (p *Parser) scanMemberName(i int) (int, bool) {
	if p.tokAt(i).Kind != token.Ident {
		return i, false
	}
	i++
	for p.tokAt(i).Kind == token.Dot && p.tokAt(i+1).Kind == token.Ident {
		i += 2
	}
	return i, true
}

func (p *Parser) tokAt(i int) token.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) parseAttributeLists() []*syntax.Node {
	var lists []*syntax.Node
	for p.at(token.LBracket) && !p.done() {
		lists = append(lists, p.parseAttributeList())
	}
	return lists
}

// [target: Attr, Attr(args)]
func (p *Parser) parseAttributeList() *syntax.Node {
	kids := []*syntax.Node{p.advance()}
	if (p.at(token.Ident) || p.peek().Kind.IsKeyword()) && p.peekN(1).Kind == token.Colon {
		kids = append(kids, p.advance(), p.advance())
	}
	for !p.done() && !p.at(token.RBracket) {
		attr := p.parseAttribute()
		if attr == nil {
			kids = append(kids, p.skip("expected attribute"))
			continue
		}
		kids = append(kids, attr)
		if p.at(token.Comma) {
			kids = append(kids, p.advance())
			continue
		}
		break
	}
	kids = append(kids, p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close attribute list"))
	return syntax.NewNode(syntax.KindAttributeList, kids...)
}

func (p *Parser) parseAttribute() *syntax.Node {
	name := p.parseType()
	if name == nil {
		return nil
	}
	kids := []*syntax.Node{name}
	if p.at(token.LParen) {
		args := []*syntax.Node{p.advance()}
		args = append(args, p.parseExprUntil(stopAt(token.RParen)))
		args = append(args, p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after attribute arguments"))
		kids = append(kids, syntax.NewNode(syntax.KindAttributeArguments, args...))
	}
	return syntax.NewNode(syntax.KindAttribute, kids...)
}

// parseModifiers всегда возвращает ModifierList, возможно пустой:
// фиксы вставляют модификаторы именно в него.
func (p *Parser) parseModifiers() *syntax.Node {
	var kids []*syntax.Node
	for !p.done() {
		tok := p.peek()
		if !tok.IsModifier() {
			break
		}
		if tok.Kind == token.Ident {
			// async/partial: модификаторы, только если дальше идёт ещё часть объявления
			next := p.peekN(1)
			if next.Kind != token.Ident && !next.Kind.IsKeyword() {
				break
			}
		}
		kids = append(kids, p.advance())
	}
	return syntax.NewNode(syntax.KindModifierList, kids...)
}

// class/struct/interface/record Name<T> : Base, IFoo where T : new() { members }
func (p *Parser) parseClass(head []*syntax.Node) *syntax.Node {
	kids := append(head, p.advance())
	if p.atOr(token.KwClass, token.KwStruct) {
		kids = append(kids, p.advance()) // record class / record struct
	}
	kids = append(kids, p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name"))
	if p.at(token.Lt) {
		kids = append(kids, p.parseTypeParameterList())
	}
	if p.at(token.LParen) {
		kids = append(kids, p.parseParameterList())
	}
	if p.at(token.Colon) {
		kids = append(kids, p.parseBaseList())
	}
	kids = append(kids, p.parseConstraints()...)
	if p.at(token.Semicolon) {
		kids = append(kids, p.advance())
		return syntax.NewNode(syntax.KindClassDeclaration, kids...)
	}
	kids = append(kids, p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start type body"))
	for !p.done() && !p.at(token.RBrace) {
		start := p.pos
		kids = append(kids, p.parseMember())
		if p.pos == start {
			kids = append(kids, p.skip("expected member declaration"))
		}
	}
	kids = append(kids, p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close type body"))
	if p.at(token.Semicolon) {
		kids = append(kids, p.advance())
	}
	return syntax.NewNode(syntax.KindClassDeclaration, kids...)
}

// ': Base, IFoo<T>'
func (p *Parser) parseBaseList() *syntax.Node {
	kids := []*syntax.Node{p.advance()}
	for !p.done() {
		typ := p.parseType()
		if typ == nil {
			p.err(diag.SynExpectType, "expected base type")
			break
		}
		kids = append(kids, typ)
		if p.at(token.LParen) {
			// record Foo(int X) : Base(X)
			kids = append(kids, p.parseExprUntil(func(t token.Token) bool { return t.Kind == token.Comma || t.Kind == token.LBrace }))
		}
		if !p.at(token.Comma) {
			break
		}
		kids = append(kids, p.advance())
	}
	return syntax.NewNode(syntax.KindBaseList, kids...)
}

func (p *Parser) parseConstraints() []*syntax.Node {
	var out []*syntax.Node
	for p.atContextual("where") && !p.done() {
		where := p.advance()
		out = append(out, syntax.NewNode(syntax.KindConstraintClause, where,
			p.parseExprUntil(func(t token.Token) bool {
				return t.Kind == token.LBrace || t.Kind == token.Semicolon || t.Kind == token.FatArrow ||
					(t.Kind == token.Ident && t.Text == "where")
			})))
	}
	return out
}

// enum Name : byte { A, B = 2 }
func (p *Parser) parseEnum(head []*syntax.Node) *syntax.Node {
	kids := append(head, p.advance())
	kids = append(kids, p.expect(token.Ident, diag.SynExpectIdentifier, "expected enum name"))
	if p.at(token.Colon) {
		kids = append(kids, p.parseBaseList())
	}
	kids = append(kids, p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start enum body"))
	kids = append(kids, p.parseExprUntil(stopAt(token.RBrace)))
	kids = append(kids, p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close enum body"))
	if p.at(token.Semicolon) {
		kids = append(kids, p.advance())
	}
	return syntax.NewNode(syntax.KindEnumDeclaration, kids...)
}

// Name(params) : base(args) { body }  /  ~Name() { body }
func (p *Parser) parseConstructor(head []*syntax.Node) *syntax.Node {
	kids := head
	if p.at(token.Tilde) {
		kids = append(kids, p.advance())
	}
	kids = append(kids, p.advance()) // имя
	kids = append(kids, p.parseParameterList())
	if p.at(token.Colon) {
		kids = append(kids, p.parseExprUntil(func(t token.Token) bool {
			return t.Kind == token.LBrace || t.Kind == token.FatArrow || t.Kind == token.Semicolon
		}))
	}
	kids = append(kids, p.parseBody()...)
	return syntax.NewNode(syntax.KindConstructorDeclaration, kids...)
}

// ReturnType Name<T>(params) where ... { body } | => expr; | ;
func (p *Parser) parseMethod(head []*syntax.Node, typ *syntax.Node) *syntax.Node {
	kids := append(head, typ)
	kids = append(kids, p.advance())
	for p.at(token.Dot) {
		kids = append(kids, p.advance(), p.advance())
	}
	if p.at(token.Lt) {
		kids = append(kids, p.parseTypeParameterList())
	}
	kids = append(kids, p.parseParameterList())
	kids = append(kids, p.parseConstraints()...)
	kids = append(kids, p.parseBody()...)
	return syntax.NewNode(syntax.KindMethodDeclaration, kids...)
}

// parseBody: блок, '=> expr;' или ';' (abstract/interface/extern).
func (p *Parser) parseBody() []*syntax.Node {
	switch {
	case p.at(token.LBrace):
		return []*syntax.Node{p.parseBlock()}
	case p.at(token.FatArrow):
		arrow := p.advance()
		expr := p.parseExprUntil(stopAt(token.Semicolon))
		return []*syntax.Node{arrow, expr, p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression body")}
	case p.at(token.Semicolon):
		return []*syntax.Node{p.advance()}
	}
	p.err(diag.SynUnexpectedToken, "expected method body")
	return nil
}

// <T, in U, out V>
func (p *Parser) parseTypeParameterList() *syntax.Node {
	kids := []*syntax.Node{p.advance()}
	depth := 1
	for !p.done() && depth > 0 {
		switch p.peek().Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.LParen, token.LBrace, token.Semicolon:
			p.err(diag.SynUnexpectedToken, "expected '>' to close type parameter list")
			return syntax.NewNode(syntax.KindTypeParameterList, kids...)
		}
		kids = append(kids, p.advance())
	}
	return syntax.NewNode(syntax.KindTypeParameterList, kids...)
}

// (int a, ref string b, params object[] rest, int c = 1)
func (p *Parser) parseParameterList() *syntax.Node {
	kids := []*syntax.Node{p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")}
	for !p.done() && !p.at(token.RParen) {
		start := p.pos
		kids = append(kids, p.parseParameter())
		if p.at(token.Comma) {
			kids = append(kids, p.advance())
			continue
		}
		if p.pos == start {
			kids = append(kids, p.skip("expected parameter"))
			continue
		}
		break
	}
	kids = append(kids, p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"))
	return syntax.NewNode(syntax.KindParameterList, kids...)
}

func (p *Parser) parseParameter() *syntax.Node {
	kids := p.parseAttributeLists()
	for p.atOr(token.KwRef, token.KwOut, token.KwIn, token.KwParams, token.KwThis, token.KwReadonly) || p.atContextual("scoped") {
		kids = append(kids, p.advance())
	}
	typ := p.parseType()
	if typ == nil {
		if len(kids) == 0 {
			return nil
		}
		p.err(diag.SynExpectType, "expected parameter type")
		return syntax.NewNode(syntax.KindParameter, kids...)
	}
	kids = append(kids, typ)
	// лямбда-подобные списки могут не иметь имени: (int, string)
	if p.at(token.Ident) {
		kids = append(kids, p.advance())
	}
	if p.at(token.Assign) {
		kids = append(kids, p.advance())
		kids = append(kids, p.parseExprUntil(stopAt(token.Comma, token.RParen)))
	}
	return syntax.NewNode(syntax.KindParameter, kids...)
}

// parseLooseMember: поля, свойства, индексаторы, события, операторы:
// токены до ';' или до закрытой '{...}' без инициализатора.
func (p *Parser) parseLooseMember(head []*syntax.Node, typ *syntax.Node) *syntax.Node {
	kids := append(head, typ)
	kind := syntax.KindFieldDeclaration
	var run []*syntax.Node
	depth := 0
loop:
	for !p.done() {
		t := p.peek()
		switch t.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.LBrace:
			if depth == 0 {
				kind = syntax.KindPropertyDeclaration
			}
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.RBrace:
			if depth == 0 {
				break loop
			}
			depth--
			if depth == 0 {
				run = append(run, p.advance())
				if !p.at(token.Assign) {
					break loop
				}
				continue
			}
		case token.FatArrow:
			if depth == 0 {
				kind = syntax.KindPropertyDeclaration
			}
		case token.Semicolon:
			if depth == 0 {
				run = append(run, p.advance())
				break loop
			}
		}
		run = append(run, p.advance())
	}
	if len(run) == 0 || run[len(run)-1].TokenKind() != token.Semicolon && run[len(run)-1].TokenKind() != token.RBrace {
		p.err(diag.SynExpectSemicolon, "expected ';' or '}' after member declaration")
	}
	if len(run) > 0 {
		kids = append(kids, syntax.NewNode(syntax.KindExpression, run...))
	}
	return syntax.NewNode(kind, kids...)
}
