package parser

import (
	"slices"

	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// Выражения не разбираются в дерево: правилам достаточно плоского
// Expression-узла с токенами. Важно только корректно найти его конец.

func stopAt(kinds ...token.Kind) func(token.Token) bool {
	return func(t token.Token) bool { return slices.Contains(kinds, t.Kind) }
}

// parseExprUntil собирает токены до stop-токена на нулевой глубине скобок.
// Закрывающая скобка без пары тоже завершает выражение. nil, если токенов нет.
func (p *Parser) parseExprUntil(stop func(token.Token) bool) *syntax.Node {
	var run []*syntax.Node
	depth := 0
	for !p.done() {
		t := p.peek()
		if depth == 0 && stop(t) {
			break
		}
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				return exprNode(run)
			}
			depth--
		}
		run = append(run, p.advance())
	}
	return exprNode(run)
}

func exprNode(run []*syntax.Node) *syntax.Node {
	if len(run) == 0 {
		return nil
	}
	return syntax.NewNode(syntax.KindExpression, run...)
}

// parseParenExpr: '(' expr ')', условие if/while/switch и т.п.
func (p *Parser) parseParenExpr() []*syntax.Node {
	open := p.expectParen()
	if open == nil {
		return nil
	}
	expr := p.parseExprUntil(stopAt(token.RParen))
	return []*syntax.Node{open, expr, p.expectCloseParen()}
}
