package parser

import (
	"sharplint/internal/diag"
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

func (p *Parser) expectParen() *syntax.Node {
	return p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
}

func (p *Parser) expectCloseParen() *syntax.Node {
	return p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
}

func (p *Parser) expectSemicolon() *syntax.Node {
	return p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
}

// { stmt* }
func (p *Parser) parseBlock() *syntax.Node {
	kids := []*syntax.Node{p.advance()}
	for !p.done() && !p.at(token.RBrace) {
		start := p.pos
		kids = append(kids, p.parseStatement())
		if p.pos == start {
			kids = append(kids, p.skip("expected statement"))
		}
	}
	kids = append(kids, p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"))
	return syntax.NewNode(syntax.KindBlock, kids...)
}

// parseStatement возвращает nil, если текущий токен не может начать оператор.
func (p *Parser) parseStatement() *syntax.Node {
	if p.done() {
		return nil
	}
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		return syntax.NewNode(syntax.KindEmptyStatement, p.advance())
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		kids := append([]*syntax.Node{p.advance()}, p.parseParenExpr()...)
		kids = append(kids, p.parseEmbedded())
		return syntax.NewNode(syntax.KindWhileStatement, kids...)
	case token.KwDo:
		return p.parseDo()
	case token.KwFor:
		return p.parseFor()
	case token.KwForeach:
		return p.parseForEach(nil)
	case token.KwReturn:
		return p.parseSimple(syntax.KindReturnStatement)
	case token.KwThrow:
		return p.parseSimple(syntax.KindThrowStatement)
	case token.KwBreak:
		return p.parseSimple(syntax.KindBreakStatement)
	case token.KwContinue:
		return p.parseSimple(syntax.KindContinueStatement)
	case token.KwTry:
		return p.parseTry()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwLock:
		kids := append([]*syntax.Node{p.advance()}, p.parseParenExpr()...)
		kids = append(kids, p.parseEmbedded())
		return syntax.NewNode(syntax.KindLockStatement, kids...)
	case token.KwUsing:
		if p.peekN(1).Kind == token.LParen {
			kids := append([]*syntax.Node{p.advance()}, p.parseParenExpr()...)
			kids = append(kids, p.parseEmbedded())
			return syntax.NewNode(syntax.KindUsingStatement, kids...)
		}
		// using var x = ...;
		using := p.advance()
		return p.parseLocalDeclaration(using)
	case token.KwConst:
		return p.parseLocalDeclaration(p.advance())
	case token.RBrace:
		return nil
	}
	if p.atContextual("await") && p.peekN(1).Kind == token.KwForeach {
		return p.parseForEach(p.advance())
	}
	if p.atContextual("yield") && p.peekN(1).Kind == token.KwReturn {
		yield := p.advance()
		kids := []*syntax.Node{yield, p.advance(), p.parseExprUntil(stopAt(token.Semicolon)), p.expectSemicolon()}
		return syntax.NewNode(syntax.KindReturnStatement, kids...)
	}
	if p.isLocalFunction() {
		return p.parseMember()
	}
	if p.isLocalDeclaration() {
		return p.parseLocalDeclaration(nil)
	}
	expr := p.parseExprUntil(stopAt(token.Semicolon))
	if expr == nil {
		return nil
	}
	return syntax.NewNode(syntax.KindExpressionStatement, expr, p.expectSemicolon())
}

// parseEmbedded: тело if/else/цикла: любой оператор, не обязательно блок.
func (p *Parser) parseEmbedded() *syntax.Node {
	stmt := p.parseStatement()
	if stmt == nil {
		p.err(diag.SynUnexpectedToken, "expected statement")
	}
	return stmt
}

// return/throw/break/continue [expr] ;
func (p *Parser) parseSimple(kind syntax.Kind) *syntax.Node {
	kw := p.advance()
	expr := p.parseExprUntil(stopAt(token.Semicolon))
	return syntax.NewNode(kind, kw, expr, p.expectSemicolon())
}

// if (cond) stmt [else stmt]; else-if: это ElseClause с вложенным IfStatement.
func (p *Parser) parseIf() *syntax.Node {
	kids := append([]*syntax.Node{p.advance()}, p.parseParenExpr()...)
	kids = append(kids, p.parseEmbedded())
	if p.at(token.KwElse) {
		kw := p.advance()
		kids = append(kids, syntax.NewNode(syntax.KindElseClause, kw, p.parseEmbedded()))
	}
	return syntax.NewNode(syntax.KindIfStatement, kids...)
}

// do stmt while (cond);
func (p *Parser) parseDo() *syntax.Node {
	kids := []*syntax.Node{p.advance(), p.parseEmbedded()}
	kids = append(kids, p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"))
	kids = append(kids, p.parseParenExpr()...)
	kids = append(kids, p.expectSemicolon())
	return syntax.NewNode(syntax.KindDoStatement, kids...)
}

// for (init; cond; step) stmt
func (p *Parser) parseFor() *syntax.Node {
	kids := []*syntax.Node{p.advance()}
	open := p.expectParen()
	kids = append(kids, open)
	if open != nil {
		kids = append(kids, p.parseExprUntil(stopAt(token.Semicolon)), p.expectSemicolon())
		kids = append(kids, p.parseExprUntil(stopAt(token.Semicolon)), p.expectSemicolon())
		kids = append(kids, p.parseExprUntil(stopAt(token.RParen)), p.expectCloseParen())
	}
	kids = append(kids, p.parseEmbedded())
	return syntax.NewNode(syntax.KindForStatement, kids...)
}

// [await] foreach (var x in xs) stmt
func (p *Parser) parseForEach(await *syntax.Node) *syntax.Node {
	kids := []*syntax.Node{await, p.advance()}
	kids = append(kids, p.parseParenExpr()...)
	kids = append(kids, p.parseEmbedded())
	return syntax.NewNode(syntax.KindForEachStatement, kids...)
}

// try { } catch (T e) when (...) { } finally { }
func (p *Parser) parseTry() *syntax.Node {
	kids := []*syntax.Node{p.advance(), p.parseRequiredBlock("try")}
	for p.at(token.KwCatch) {
		kids = append(kids, p.parseCatch())
	}
	if p.at(token.KwFinally) {
		kw := p.advance()
		kids = append(kids, syntax.NewNode(syntax.KindFinallyClause, kw, p.parseRequiredBlock("finally")))
	}
	return syntax.NewNode(syntax.KindTryStatement, kids...)
}

func (p *Parser) parseCatch() *syntax.Node {
	kids := []*syntax.Node{p.advance()}
	if p.at(token.LParen) {
		decl := []*syntax.Node{p.advance()}
		if typ := p.parseType(); typ != nil {
			decl = append(decl, typ)
		} else {
			p.err(diag.SynExpectType, "expected exception type")
		}
		if p.at(token.Ident) {
			decl = append(decl, p.advance())
		}
		decl = append(decl, p.expectCloseParen())
		kids = append(kids, syntax.NewNode(syntax.KindCatchDeclaration, decl...))
	}
	if p.atContextual("when") {
		kids = append(kids, p.advance())
		kids = append(kids, p.parseParenExpr()...)
	}
	kids = append(kids, p.parseRequiredBlock("catch"))
	return syntax.NewNode(syntax.KindCatchClause, kids...)
}

func (p *Parser) parseRequiredBlock(what string) *syntax.Node {
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' after "+what)
		return nil
	}
	return p.parseBlock()
}

// switch (x) { case 1: case 2: stmt*; default: stmt* }
func (p *Parser) parseSwitch() *syntax.Node {
	kids := append([]*syntax.Node{p.advance()}, p.parseParenExpr()...)
	kids = append(kids, p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch"))
	for !p.done() && !p.at(token.RBrace) {
		if !p.atOr(token.KwCase, token.KwDefault) {
			kids = append(kids, p.skip("expected 'case' or 'default'"))
			continue
		}
		kids = append(kids, p.parseSwitchSection())
	}
	kids = append(kids, p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch"))
	return syntax.NewNode(syntax.KindSwitchStatement, kids...)
}

func (p *Parser) parseSwitchSection() *syntax.Node {
	var kids []*syntax.Node
	for p.atOr(token.KwCase, token.KwDefault) && !p.done() {
		label := []*syntax.Node{p.advance()}
		label = append(label, p.parseExprUntil(stopAt(token.Colon)))
		label = append(label, p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after case label"))
		kids = append(kids, syntax.NewNode(syntax.KindSwitchLabel, label...))
	}
	for !p.done() && !p.atOr(token.KwCase, token.KwDefault, token.RBrace) {
		start := p.pos
		kids = append(kids, p.parseStatement())
		if p.pos == start {
			kids = append(kids, p.skip("expected statement"))
		}
	}
	return syntax.NewNode(syntax.KindSwitchSection, kids...)
}

// isLocalDeclaration: Type Ident ('=' | ';' | ','), без отката, только просмотр вперёд.
func (p *Parser) isLocalDeclaration() bool {
	end, ok := p.scanType(p.pos)
	if !ok || p.tokAt(end).Kind != token.Ident {
		return false
	}
	switch p.tokAt(end + 1).Kind {
	case token.Assign, token.Semicolon, token.Comma:
		return true
	}
	return false
}

// isLocalFunction: [модификаторы] Type Name[<T>](...) затем '{', '=>' или where.
func (p *Parser) isLocalFunction() bool {
	i := p.pos
	for p.tokAt(i).IsModifier() && p.tokAt(i+1).Kind != token.Assign {
		i++
	}
	end, ok := p.scanType(i)
	if !ok || p.tokAt(end).Kind != token.Ident {
		return false
	}
	i = end + 1
	if p.tokAt(i).Kind == token.Lt {
		j, ok := p.scanTypeArgs(i)
		if !ok {
			return false
		}
		i = j
	}
	if p.tokAt(i).Kind != token.LParen {
		return false
	}
	i, ok = p.skipBalanced(i)
	if !ok {
		return false
	}
	next := p.tokAt(i)
	return next.Kind == token.LBrace || next.Kind == token.FatArrow || next.Kind == token.Ident && next.Text == "where"
}

// [const|using] Type name [= init] (, name [= init])* ;
func (p *Parser) parseLocalDeclaration(prefix *syntax.Node) *syntax.Node {
	kids := []*syntax.Node{prefix}
	if typ := p.parseType(); typ != nil {
		kids = append(kids, typ)
	} else {
		p.err(diag.SynExpectType, "expected type")
	}
	kids = append(kids, p.parseExprUntil(stopAt(token.Semicolon)))
	kids = append(kids, p.expectSemicolon())
	return syntax.NewNode(syntax.KindLocalDeclaration, kids...)
}
