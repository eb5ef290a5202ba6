package fix

import (
	"bytes"
	"fmt"
	"strings"

	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// IndentUnit is one nesting level for code that fixes introduce.
const IndentUnit = "    "

// WrapInBlock braces the embedded statement stmt of a clause.
//
// clause is the token the clause indentation is taken from (if, else, while,
// do, ...), header is the last token before the statement. The result puts
// '{' and '}' on their own lines at the clause indentation and the statement
// one level deeper. Comments on the header line move before '{'; comments on
// their own lines stay in front of the statement.
func WrapInBlock(t *syntax.Tree, clause, header, stmt syntax.NodeID) ([]syntax.Edit, error) {
	body := t.Node(stmt)
	if body.IsToken() || !body.HasTokens() {
		return nil, fmt.Errorf("%w: %s is not a statement", ErrNotApplicable, body.Kind())
	}
	if body.Kind() == syntax.KindBlock {
		return nil, fmt.Errorf("%w: statement is already a block", ErrNotApplicable)
	}
	hdr := t.Node(header)
	if !hdr.IsToken() {
		return nil, fmt.Errorf("%w: clause header is %s", ErrNotApplicable, hdr.Kind())
	}

	eol := lineEnding(t)
	indent := t.Indentation(clause)
	inner := indent + indentUnit(indent)

	openLead := trimRightSpaces(withoutNewlines(hdr.Trailing()))
	openLead = append(openLead, token.Newline(eol))
	openLead = append(openLead, spaces(indent)...)

	first := body.FirstToken()
	delta := len(inner) - len(t.Indentation(stmt))
	afterNL := false
	shifted := body.MapTokens(func(tok *syntax.Node) *syntax.Node {
		out := tok
		if tok != first && delta != 0 {
			if lead, changed := shiftIndent(tok.Leading(), afterNL, delta); changed {
				out = tok.WithLeading(lead)
			}
		}
		afterNL = token.HasNewline(tok.Trailing())
		return out
	})

	stmtTrail, closeTrail := splitTrailing(body.LastToken().Trailing(), eol)
	shifted = shifted.WithLeading(statementLeading(first.Leading(), inner, eol)).WithTrailing(stmtTrail)

	open := syntax.NewToken(token.LBrace, "{", openLead, []token.Trivia{token.Newline(eol)})
	closing := syntax.NewToken(token.RBrace, "}", spaces(indent), closeTrail)
	block := syntax.NewNode(syntax.KindBlock, open, shifted, closing)

	edits := make([]syntax.Edit, 0, 2)
	if len(hdr.Trailing()) > 0 {
		edits = append(edits, syntax.Edit{Target: header, Replacement: hdr.WithTrailing(nil)})
	}
	return append(edits, syntax.Edit{Target: stmt, Replacement: block}), nil
}

// statementLeading переносит комментарии, стоявшие на отдельных строках перед
// оператором, на новый уровень отступа; пустые строки пропадают.
func statementLeading(lead []token.Trivia, inner, eol string) []token.Trivia {
	lines := splitLines(lead)
	var out []token.Trivia
	for i, line := range lines {
		content := trimRightSpaces(trimLeftSpaces(line))
		if i == len(lines)-1 {
			out = append(out, spaces(inner)...)
			if len(content) > 0 {
				out = append(out, content...)
				out = append(out, token.Space(" "))
			}
			break
		}
		if len(content) == 0 {
			continue
		}
		if content[0].Kind != token.TriviaPreprocessor {
			out = append(out, spaces(inner)...)
		}
		out = append(out, content...)
		out = append(out, token.Newline(eol))
	}
	return out
}

// splitTrailing делит хвост оператора: всё до перевода строки остаётся на
// строке оператора, '}' получает свой перевод строки (или пробел, если за
// оператором на той же строке шёл код, например else).
func splitTrailing(trail []token.Trivia, eol string) (stmt, closing []token.Trivia) {
	nl := ""
	for _, tr := range trail {
		if tr.Kind == token.TriviaNewline {
			nl = tr.Text
			break
		}
		stmt = append(stmt, tr)
	}
	stmt = trimRightSpaces(stmt)
	if nl != "" {
		return append(stmt, token.Newline(nl)), []token.Trivia{token.Newline(nl)}
	}
	if len(trail) > 0 {
		closing = []token.Trivia{token.Space(" ")}
	}
	return append(stmt, token.Newline(eol)), closing
}

// shiftIndent сдвигает отступ строк, начинающихся внутри списка trivia.
// nl: начинается ли список с начала строки.
func shiftIndent(list []token.Trivia, nl bool, delta int) ([]token.Trivia, bool) {
	out := make([]token.Trivia, 0, len(list)+1)
	changed := false
	for _, tr := range list {
		if nl && tr.Kind == token.TriviaSpace {
			changed = true
			nl = false
			if text := reindent(tr.Text, delta); text != "" {
				out = append(out, token.Space(text))
			}
			continue
		}
		if nl && delta > 0 && tr.Kind != token.TriviaNewline && tr.Kind != token.TriviaPreprocessor {
			out = append(out, token.Space(strings.Repeat(" ", delta)))
			changed = true
		}
		nl = tr.Kind == token.TriviaNewline
		out = append(out, tr)
	}
	if nl && delta > 0 {
		out = append(out, token.Space(strings.Repeat(" ", delta)))
		changed = true
	}
	return out, changed
}

func reindent(text string, delta int) string {
	if delta >= 0 {
		return strings.Repeat(" ", delta) + text
	}
	drop := min(-delta, len(text))
	return text[drop:]
}

func splitLines(list []token.Trivia) [][]token.Trivia {
	lines := [][]token.Trivia{nil}
	for _, tr := range list {
		if tr.Kind == token.TriviaNewline {
			lines = append(lines, nil)
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], tr)
	}
	return lines
}

func withoutNewlines(list []token.Trivia) []token.Trivia {
	out := make([]token.Trivia, 0, len(list))
	for _, tr := range list {
		if tr.Kind != token.TriviaNewline {
			out = append(out, tr)
		}
	}
	return out
}

func trimRightSpaces(list []token.Trivia) []token.Trivia {
	end := len(list)
	for end > 0 && list[end-1].Kind == token.TriviaSpace {
		end--
	}
	return list[:end]
}

func trimLeftSpaces(list []token.Trivia) []token.Trivia {
	start := 0
	for start < len(list) && list[start].Kind == token.TriviaSpace {
		start++
	}
	return list[start:]
}

func spaces(text string) []token.Trivia {
	if text == "" {
		return nil
	}
	return []token.Trivia{token.Space(text)}
}

func lineEnding(t *syntax.Tree) string {
	if bytes.Contains(t.File().Content, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}

func indentUnit(indent string) string {
	if indent != "" && strings.Trim(indent, "\t") == "" {
		return "\t"
	}
	return IndentUnit
}

// ReplaceAccessibility makes decl carry exactly one accessibility modifier,
// required. The first existing accessibility modifier is replaced in place
// and the others are removed; other modifiers keep their order and spacing.
// Without accessibility modifiers, required is inserted before the first
// token that follows the attributes.
func ReplaceAccessibility(t *syntax.Tree, decl syntax.NodeID, required token.Kind) ([]syntax.Edit, error) {
	list := t.ChildOfKind(decl, syntax.KindModifierList)
	if list == syntax.NoNode {
		return nil, fmt.Errorf("%w: %s has no modifier list", ErrNotApplicable, t.Kind(decl))
	}
	text := required.String()
	listNode := t.Node(list)
	mods := listNode.Children()

	var access []int
	for i, m := range mods {
		if m.TokenKind().IsAccessibility() {
			access = append(access, i)
		}
	}

	if len(access) == 0 {
		if len(mods) > 0 {
			first := mods[0]
			kw := syntax.NewToken(required, text, first.Leading(), []token.Trivia{token.Space(" ")})
			kids := append([]*syntax.Node{kw, first.WithLeading(nil)}, mods[1:]...)
			return []syntax.Edit{{Target: list, Replacement: listNode.WithChildren(kids...)}}, nil
		}
		next := nextWithTokens(t, decl, list)
		if next == syntax.NoNode {
			return nil, fmt.Errorf("%w: nothing follows the modifier list", ErrNotApplicable)
		}
		n := t.Node(next)
		kw := syntax.NewToken(required, text, n.FirstToken().Leading(), []token.Trivia{token.Space(" ")})
		return []syntax.Edit{
			{Target: list, Replacement: listNode.WithChildren(kw)},
			{Target: next, Replacement: n.WithLeading(nil)},
		}, nil
	}

	if len(access) == 1 && mods[access[0]].TokenKind() == required {
		return nil, fmt.Errorf("%w: already %s", ErrNotApplicable, text)
	}

	kids := make([]*syntax.Node, 0, len(mods))
	var carry []token.Trivia
	for i, m := range mods {
		switch {
		case i == access[0]:
			kids = append(kids, syntax.NewToken(required, text, m.Leading(), m.Trailing()))
		case m.TokenKind().IsAccessibility():
			// комментарии перед удаляемым модификатором переезжают к следующему токену вместе с разметкой строк
			if hasComment(m.Leading()) {
				carry = append(carry, m.Leading()...)
			}
		default:
			if len(carry) > 0 {
				m = m.WithLeading(append(carry, m.Leading()...))
				carry = nil
			}
			kids = append(kids, m)
		}
	}
	if len(carry) > 0 {
		last := kids[len(kids)-1]
		kids[len(kids)-1] = last.WithTrailing(append(append([]token.Trivia(nil), last.Trailing()...), carry...))
	}
	return []syntax.Edit{{Target: list, Replacement: listNode.WithChildren(kids...)}}, nil
}

func nextWithTokens(t *syntax.Tree, parent, after syntax.NodeID) syntax.NodeID {
	for _, c := range t.Children(parent) {
		if c > after && t.Node(c).HasTokens() {
			return c
		}
	}
	return syntax.NoNode
}

func hasComment(list []token.Trivia) bool {
	for _, tr := range list {
		if tr.IsComment() || tr.Kind == token.TriviaPreprocessor {
			return true
		}
	}
	return false
}
