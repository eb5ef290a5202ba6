package semantic

import (
	"strings"

	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// Syntactic is a Model that resolves names inside the tree being analysed and
// falls back to a table of framework types. It keeps no per-tree state, so
// one value is shared by every pass.
type Syntactic struct {
	bases map[string]string
}

// NewSyntactic returns the syntactic model with the built-in framework table.
func NewSyntactic() *Syntactic {
	return &Syntactic{bases: frameworkBases}
}

// WithBases returns a copy of the model that also knows the given
// type -> direct base pairs (for project specific hierarchies).
func (m *Syntactic) WithBases(extra map[string]string) *Syntactic {
	merged := make(map[string]string, len(m.bases)+len(extra))
	for k, v := range m.bases {
		merged[k] = v
	}
	for k, v := range extra {
		merged[SimpleName(k)] = SimpleName(v)
	}
	return &Syntactic{bases: merged}
}

var _ Model = (*Syntactic)(nil)

func (m *Syntactic) ResolveSymbol(t *syntax.Tree, id syntax.NodeID) Symbol {
	if t == nil || !t.Valid(id) {
		return Symbol{}
	}
	switch t.Kind(id) {
	case syntax.KindMethodDeclaration, syntax.KindConstructorDeclaration:
		return Symbol{Kind: SymbolMethod, Name: NameOf(t, id), Tree: t, Node: id}
	case syntax.KindClassDeclaration, syntax.KindEnumDeclaration:
		return Symbol{Kind: SymbolType, Name: NameOf(t, id), Tree: t, Node: id}
	case syntax.KindTypeRef:
		return m.resolveType(t, t.TrimmedText(id))
	case syntax.KindCatchDeclaration:
		if ref := t.ChildOfKind(id, syntax.KindTypeRef); ref != syntax.NoNode {
			return m.resolveType(t, t.TrimmedText(ref))
		}
	case syntax.KindCatchClause:
		if decl := t.ChildOfKind(id, syntax.KindCatchDeclaration); decl != syntax.NoNode {
			return m.ResolveSymbol(t, decl)
		}
	case syntax.KindToken:
		n := t.Node(id)
		if n.TokenKind() != token.Ident {
			return Symbol{}
		}
		if p := t.Parent(id); p != syntax.NoNode && NameToken(t, p) == id {
			return m.ResolveSymbol(t, p)
		}
		return m.resolveType(t, n.Text())
	}
	return Symbol{}
}

// resolveType ищет объявление типа в дереве по простому имени.
func (m *Syntactic) resolveType(t *syntax.Tree, name string) Symbol {
	simple := SimpleName(name)
	if simple == "" {
		return Symbol{}
	}
	for id := range t.Preorder() {
		switch t.Kind(id) {
		case syntax.KindClassDeclaration, syntax.KindEnumDeclaration:
			if NameOf(t, id) == simple {
				return Symbol{Kind: SymbolType, Name: simple, Tree: t, Node: id}
			}
		}
	}
	return Symbol{Kind: SymbolExternal, Name: simple}
}

// InheritsFrom reports whether sym is base or derives from it, directly or
// through base lists declared in the tree and the framework table.
func (m *Syntactic) InheritsFrom(sym Symbol, base string) bool {
	target := SimpleName(base)
	if sym.IsZero() || target == "" {
		return false
	}
	return m.inherits(sym, target, make(map[string]bool))
}

func (m *Syntactic) inherits(sym Symbol, target string, seen map[string]bool) bool {
	name := SimpleName(sym.Name)
	if name == target {
		return true
	}
	if seen[name] {
		return false
	}
	seen[name] = true

	switch sym.Kind {
	case SymbolType:
		list := sym.Tree.ChildOfKind(sym.Node, syntax.KindBaseList)
		if list == syntax.NoNode {
			return false
		}
		for _, c := range sym.Tree.Children(list) {
			if sym.Tree.Kind(c) != syntax.KindTypeRef {
				continue
			}
			if m.inherits(m.resolveType(sym.Tree, sym.Tree.TrimmedText(c)), target, seen) {
				return true
			}
		}
	case SymbolExternal:
		if parent, ok := m.bases[name]; ok {
			return m.inherits(Symbol{Kind: SymbolExternal, Name: parent}, target, seen)
		}
	}
	return false
}

// asyncReturnTypes: типы, возврат которых делает метод асинхронным.
var asyncReturnTypes = map[string]bool{
	"Task":      true,
	"ValueTask": true,
}

// IsAsynchronous reports whether a method symbol is marked async or returns
// Task, Task<T>, ValueTask or ValueTask<T>.
func (m *Syntactic) IsAsynchronous(sym Symbol) bool {
	if sym.Kind != SymbolMethod || sym.Tree == nil {
		return false
	}
	if HasModifier(sym.Tree, sym.Node, "async") {
		return true
	}
	ret := ReturnType(sym.Tree, sym.Node)
	if ret == syntax.NoNode {
		return false
	}
	return asyncReturnTypes[SimpleName(sym.Tree.TrimmedText(ret))]
}

// HasAttribute reports whether the declaration id carries an attribute whose
// simple name satisfies pred. Names are tried as written and, when they end
// with "Attribute", without that suffix.
func (m *Syntactic) HasAttribute(t *syntax.Tree, id syntax.NodeID, pred func(name string) bool) bool {
	if t == nil || !t.Valid(id) || pred == nil {
		return false
	}
	for _, list := range t.Children(id) {
		if t.Kind(list) != syntax.KindAttributeList {
			continue
		}
		for _, attr := range t.Children(list) {
			if t.Kind(attr) != syntax.KindAttribute {
				continue
			}
			ref := t.ChildOfKind(attr, syntax.KindTypeRef)
			if ref == syntax.NoNode {
				continue
			}
			name := SimpleName(t.TrimmedText(ref))
			if pred(name) {
				return true
			}
			if short, ok := strings.CutSuffix(name, "Attribute"); ok && short != "" && pred(short) {
				return true
			}
		}
	}
	return false
}
