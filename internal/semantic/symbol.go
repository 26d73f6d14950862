package semantic

import "cs2kt.dev/pkg/cs2kt/internal/ast"

type symbol struct {
	name      string
	kind      SymbolKind
	container *symbol
	static    bool
	source    bool
	// typ is the value type of fields, properties, locals and parameters and
	// the return type of methods.
	typ  *TypeDescriptor
	info *TypeInfo
	decl ast.Node
}

func (s *symbol) Name() string     { return s.name }
func (s *symbol) Kind() SymbolKind { return s.kind }
func (s *symbol) IsStatic() bool   { return s.static }

func (s *symbol) ContainingType() Symbol {
	if s.container == nil {
		return nil
	}

	return s.container
}

// TypeOfSymbol returns the value type recorded for sym, or an unresolved
// descriptor when sym was not produced by this package.
func TypeOfSymbol(sym Symbol) *TypeDescriptor {
	s, ok := sym.(*symbol)
	if !ok || s.typ == nil {
		return UnresolvedType("")
	}

	return s.typ
}

// ContainingTypeName returns the simple name of the type declaring sym, or
// an empty string.
func ContainingTypeName(sym Symbol) string {
	if sym == nil {
		return ""
	}

	container := sym.ContainingType()
	if container == nil {
		return ""
	}

	return container.Name()
}
