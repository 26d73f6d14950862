package semantic

import (
	"strings"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

// Resolver implements Facade for one compilation unit. All binding happens
// in NewResolver; afterwards the resolver is only read.
type Resolver struct {
	index     *Index
	binds     map[ast.Node]*symbol
	refs      map[ast.TypeRef]*TypeDescriptor
	selfTypes map[ast.Node]*TypeInfo
}

// ResolverOption customizes NewResolver.
type ResolverOption func(*resolverConfig)

type resolverConfig struct {
	index   *Index
	catalog *Catalog
}

// WithIndex resolves against a project index that already contains unit.
func WithIndex(index *Index) ResolverOption {
	return func(c *resolverConfig) {
		c.index = index
	}
}

// WithCatalog sets the library catalog used when no index is given.
func WithCatalog(catalog *Catalog) ResolverOption {
	return func(c *resolverConfig) {
		c.catalog = catalog
	}
}

// NewResolver binds every name in unit.
func NewResolver(unit *ast.CompilationUnit, options ...ResolverOption) *Resolver {
	cfg := resolverConfig{}
	for _, option := range options {
		option(&cfg)
	}

	index := cfg.index
	if index == nil {
		index = NewIndex(cfg.catalog, unit)
	}

	r := &Resolver{
		index:     index,
		binds:     map[ast.Node]*symbol{},
		refs:      map[ast.TypeRef]*TypeDescriptor{},
		selfTypes: map[ast.Node]*TypeInfo{},
	}

	if unit != nil {
		b := &binder{r: r}
		b.push()

		for _, d := range unit.Members {
			b.decl(d)
		}
	}

	return r
}

// SymbolOf implements Facade.
func (r *Resolver) SymbolOf(node ast.Node) Symbol {
	if node == nil {
		return nil
	}

	if sym, ok := r.binds[node]; ok {
		return sym
	}

	if sym, ok := r.index.declared[node]; ok {
		return sym
	}

	if p, ok := node.(*ast.Paren); ok {
		return r.SymbolOf(p.X)
	}

	return nil
}

// TypeOf implements Facade.
func (r *Resolver) TypeOf(ref ast.TypeRef) *TypeDescriptor {
	if ref == nil {
		return UnresolvedType("")
	}

	if desc, ok := r.refs[ref]; ok {
		return desc
	}

	return r.index.describe(ref, nil)
}

// TypeOfExpr implements Facade.
//
//nolint:gocyclo,cyclop // one case per expression kind
func (r *Resolver) TypeOfExpr(x ast.Expr) *TypeDescriptor {
	switch x := x.(type) {
	case nil:
		return UnresolvedType("")
	case *ast.Literal:
		return r.literalType(x)
	case *ast.Interpolated:
		return r.named("String")
	case *ast.Ident, *ast.MemberAccess, *ast.GenericName:
		sym := r.binds[x]
		if sym == nil {
			return UnresolvedType(x.Span().Text)
		}

		if sym.kind == TypeSymbol {
			return r.index.descriptorFor(sym.info, nil)
		}

		if sym.typ != nil {
			return sym.typ
		}
	case *ast.Invocation:
		if sym := r.binds[x.Fn]; sym != nil && sym.typ != nil {
			return sym.typ
		}
	case *ast.Paren:
		return r.TypeOfExpr(x.X)
	case *ast.Cast:
		return r.TypeOf(x.Type)
	case *ast.As:
		return r.TypeOf(x.Type)
	case *ast.ObjectCreation:
		return r.TypeOf(x.Type)
	case *ast.ArrayCreation:
		if x.Elem != nil {
			return &TypeDescriptor{Kind: Array, Name: "Array", Elem: r.TypeOf(x.Elem)}
		}
	case *ast.Conditional:
		return r.TypeOfExpr(x.Then)
	case *ast.Binary:
		return r.binaryType(x)
	case *ast.Unary:
		if x.Op == "!" {
			return r.named("Boolean")
		}

		return r.TypeOfExpr(x.X)
	case *ast.Assign:
		return r.TypeOfExpr(x.L)
	case *ast.Await:
		inner := r.TypeOfExpr(x.X)
		if inner.Kind == Async {
			if len(inner.Args) == 1 {
				return inner.Args[0]
			}

			return r.named("Void")
		}
	case *ast.ElementAccess:
		return r.elementType(r.TypeOfExpr(x.X))
	case *ast.This, *ast.Super:
		if info := r.selfTypes[x]; info != nil {
			return r.index.descriptorFor(info, nil)
		}
	case *ast.IsType:
		return r.named("Boolean")
	case *ast.TypeOf:
		return r.named("Type")
	case *ast.Default:
		return r.TypeOf(x.Type)
	case *ast.Tuple:
		args := make([]*TypeDescriptor, 0, len(x.Elems))
		for _, elem := range x.Elems {
			args = append(args, r.TypeOfExpr(elem.X))
		}

		return &TypeDescriptor{Kind: Generic, Name: "ValueTuple", Args: args}
	}

	return UnresolvedType(x.Span().Text)
}

// IsStatic implements Facade.
func (r *Resolver) IsStatic(sym Symbol) bool {
	return sym != nil && sym.IsStatic()
}

// ImplementedMembers implements Facade.
func (r *Resolver) ImplementedMembers(sym Symbol) []Symbol {
	s, ok := sym.(*symbol)
	if !ok || s.container == nil || s.container.info == nil {
		return nil
	}

	if s.kind != MethodSymbol && s.kind != PropertySymbol {
		return nil
	}

	var out []Symbol

	seen := map[*TypeInfo]bool{}

	var visit func(info *TypeInfo)
	visit = func(info *TypeInfo) {
		for _, base := range info.Bases {
			baseInfo, ok := r.index.Lookup(base)
			if !ok || seen[baseInfo] {
				continue
			}

			seen[baseInfo] = true

			if baseInfo.Kind == Interface {
				if member, ok := baseInfo.members[s.name]; ok {
					out = append(out, member)
				}
			}

			visit(baseInfo)
		}
	}
	visit(s.container.info)

	return out
}

// InSource implements Facade.
func (r *Resolver) InSource(sym Symbol) bool {
	s, ok := sym.(*symbol)

	return ok && s.source
}

func (r *Resolver) named(name string) *TypeDescriptor {
	return r.index.describeNamed(name, nil, name)
}

func (r *Resolver) literalType(l *ast.Literal) *TypeDescriptor {
	switch l.Kind {
	case ast.IntLiteral:
		if strings.HasSuffix(strings.ToLower(l.Value), "l") {
			return r.named("Int64")
		}

		return r.named("Int32")
	case ast.RealLiteral:
		switch {
		case strings.HasSuffix(strings.ToLower(l.Value), "f"):
			return r.named("Single")
		case strings.HasSuffix(strings.ToLower(l.Value), "m"):
			return r.named("Decimal")
		}

		return r.named("Double")
	case ast.StringLiteral, ast.VerbatimStringLiteral:
		return r.named("String")
	case ast.CharLiteral:
		return r.named("Char")
	case ast.BoolLiteral:
		return r.named("Boolean")
	case ast.NullLiteral:
		return UnresolvedType("null")
	}

	return UnresolvedType(l.Value)
}

func (r *Resolver) binaryType(b *ast.Binary) *TypeDescriptor {
	switch b.Op {
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||", "is":
		return r.named("Boolean")
	case "??":
		left := r.TypeOfExpr(b.L)
		if left.Kind == Nullable && left.Elem != nil {
			return left.Elem
		}

		return left
	case "+":
		left, right := r.TypeOfExpr(b.L), r.TypeOfExpr(b.R)
		if left.IsNamed("String") || right.IsNamed("String") {
			return r.named("String")
		}

		return left
	}

	return r.TypeOfExpr(b.L)
}

func (r *Resolver) elementType(container *TypeDescriptor) *TypeDescriptor {
	switch {
	case container.Kind == Array && container.Elem != nil:
		return container.Elem
	case container.Kind == Generic && len(container.Args) == 2:
		return container.Args[1]
	case container.Kind == Generic && len(container.Args) == 1:
		return container.Args[0]
	case container.IsNamed("String"):
		return r.named("Char")
	}

	return UnresolvedType("")
}
