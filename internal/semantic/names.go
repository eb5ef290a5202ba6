package semantic

import (
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// NameToken returns the identifier token naming a declaration (method,
// constructor, type, enum), or NoNode when id is not a named declaration.
//
// Имя: последний идентификатор среди прямых детей до списка параметров,
// параметров типа, базового списка или тела: так покрываются и
// "record struct P", и явная реализация интерфейса "IFoo.Bar".
func NameToken(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	switch t.Kind(id) {
	case syntax.KindMethodDeclaration, syntax.KindConstructorDeclaration,
		syntax.KindClassDeclaration, syntax.KindEnumDeclaration:
	default:
		return syntax.NoNode
	}
	name := syntax.NoNode
loop:
	for _, c := range t.Children(id) {
		n := t.Node(c)
		if !n.IsToken() {
			switch n.Kind() {
			case syntax.KindAttributeList, syntax.KindModifierList, syntax.KindTypeRef:
				continue
			}
			break loop
		}
		switch n.TokenKind() {
		case token.Ident:
			name = c
			continue
		case token.Dot, token.Tilde, token.KwClass, token.KwStruct, token.KwInterface, token.KwEnum:
			continue
		}
		break loop
	}
	return name
}

// NameOf returns the text of NameToken, or "".
func NameOf(t *syntax.Tree, id syntax.NodeID) string {
	tok := NameToken(t, id)
	if tok == syntax.NoNode {
		return ""
	}
	return t.Node(tok).Text()
}

// ReturnType returns the TypeRef child of a method declaration, or NoNode.
func ReturnType(t *syntax.Tree, method syntax.NodeID) syntax.NodeID {
	if t.Kind(method) != syntax.KindMethodDeclaration {
		return syntax.NoNode
	}
	return t.ChildOfKind(method, syntax.KindTypeRef)
}

// Modifiers returns the modifier tokens of a declaration in source order.
func Modifiers(t *syntax.Tree, decl syntax.NodeID) []syntax.NodeID {
	list := t.ChildOfKind(decl, syntax.KindModifierList)
	if list == syntax.NoNode {
		return nil
	}
	return t.Children(list)
}

// HasModifier reports whether decl carries a modifier with the given text.
func HasModifier(t *syntax.Tree, decl syntax.NodeID, text string) bool {
	for _, m := range Modifiers(t, decl) {
		if t.Node(m).Text() == text {
			return true
		}
	}
	return false
}
