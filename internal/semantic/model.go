package semantic

import (
	"strings"

	"sharplint/internal/syntax"
)

// SymbolKind classifies a resolved symbol.
type SymbolKind uint8

const (
	SymbolNone SymbolKind = iota
	// SymbolType: тип, объявленный в дереве (class/struct/interface/record/enum).
	SymbolType
	// SymbolMethod: метод, объявленный в дереве.
	SymbolMethod
	// SymbolExternal: тип, упомянутый по имени, но не объявленный в дереве.
	SymbolExternal
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolType:
		return "type"
	case SymbolMethod:
		return "method"
	case SymbolExternal:
		return "external"
	default:
		return "none"
	}
}

// Symbol is a handle to a declaration. Node is NoNode for external symbols.
type Symbol struct {
	Kind SymbolKind
	Name string
	Tree *syntax.Tree
	Node syntax.NodeID
}

// IsZero reports whether resolution failed.
func (s Symbol) IsZero() bool { return s.Kind == SymbolNone }

// Model is the semantic capability injected into analysis passes.
// Implementations must be safe for concurrent use and free of side effects.
type Model interface {
	ResolveSymbol(t *syntax.Tree, id syntax.NodeID) Symbol
	InheritsFrom(sym Symbol, base string) bool
	IsAsynchronous(sym Symbol) bool
	HasAttribute(t *syntax.Tree, id syntax.NodeID, pred func(name string) bool) bool
}

// SimpleName strips namespace qualification, the global:: alias and generic
// arguments: "System.Collections.Generic.List<int>" -> "List".
func SimpleName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimRight(name, "?[],* \t")
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(strings.TrimSpace(name), "@")
}
