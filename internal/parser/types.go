package parser

import (
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// Типы распознаются просмотром вперёд без построения узлов (scanType),
// а затем одним проходом упаковываются в TypeRef (parseType).

// parseType возвращает TypeRef или nil, если с текущей позиции тип не начинается.
func (p *Parser) parseType() *syntax.Node {
	end, ok := p.scanType(p.pos)
	if !ok {
		return nil
	}
	kids := make([]*syntax.Node, 0, end-p.pos)
	for p.pos < end {
		kids = append(kids, p.advance())
	}
	return syntax.NewNode(syntax.KindTypeRef, kids...)
}

// scanType возвращает индекс первого токена после типа.
//
//	type   := core suffix*
//	core   := '(' type [Ident] (',' type [Ident])* ')' | name ('.' name)* | 'void'
//	name   := Ident ['::' Ident] [typeArgs]
//	suffix := '?' | '*' | '[' ','* ']'
func (p *Parser) scanType(i int) (int, bool) {
	t := p.tokAt(i)
	switch {
	case t.Kind == token.KwVoid:
		i++
	case t.Kind == token.LParen:
		j, ok := p.scanTupleType(i)
		if !ok {
			return i, false
		}
		i = j
	case t.Kind == token.Ident:
		j, ok := p.scanName(i)
		if !ok {
			return i, false
		}
		i = j
		for p.tokAt(i).Kind == token.Dot && p.tokAt(i+1).Kind == token.Ident {
			j, ok := p.scanName(i + 1)
			if !ok {
				return i, false
			}
			i = j
		}
	default:
		return i, false
	}
	for {
		switch p.tokAt(i).Kind {
		case token.Question, token.Star:
			i++
			continue
		case token.LBracket:
			j := i + 1
			for p.tokAt(j).Kind == token.Comma {
				j++
			}
			if p.tokAt(j).Kind == token.RBracket {
				i = j + 1
				continue
			}
		}
		return i, true
	}
}

func (p *Parser) scanName(i int) (int, bool) {
	if p.tokAt(i).Kind != token.Ident {
		return i, false
	}
	i++
	if p.tokAt(i).Kind == token.ColonColon && p.tokAt(i+1).Kind == token.Ident {
		i += 2
	}
	if p.tokAt(i).Kind == token.Lt {
		if j, ok := p.scanTypeArgs(i); ok {
			return j, true
		}
	}
	return i, true
}

// '<' type (',' type)* '>' или '<' ','* '>' для typeof(Dictionary<,>)
func (p *Parser) scanTypeArgs(i int) (int, bool) {
	i++
	if p.tokAt(i).Kind == token.Comma || p.tokAt(i).Kind == token.Gt {
		for p.tokAt(i).Kind == token.Comma {
			i++
		}
		if p.tokAt(i).Kind != token.Gt {
			return i, false
		}
		return i + 1, true
	}
	for {
		for p.tokAt(i).Kind == token.KwIn || p.tokAt(i).Kind == token.KwOut {
			i++
		}
		j, ok := p.scanType(i)
		if !ok {
			return i, false
		}
		i = j
		switch p.tokAt(i).Kind {
		case token.Comma:
			i++
		case token.Gt:
			return i + 1, true
		default:
			return i, false
		}
	}
}

// (int, string name)
func (p *Parser) scanTupleType(i int) (int, bool) {
	i++
	n := 0
	for {
		j, ok := p.scanType(i)
		if !ok {
			return i, false
		}
		i = j
		if p.tokAt(i).Kind == token.Ident {
			i++
		}
		n++
		switch p.tokAt(i).Kind {
		case token.Comma:
			i++
		case token.RParen:
			return i + 1, n >= 2
		default:
			return i, false
		}
	}
}

// skipBalanced: i указывает на открывающую скобку; возвращает индекс после парной.
func (p *Parser) skipBalanced(i int) (int, bool) {
	depth := 0
	for ; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		case token.EOF:
			return i, false
		}
	}
	return i, false
}
