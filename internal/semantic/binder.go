package semantic

import "cs2kt.dev/pkg/cs2kt/internal/ast"

// binder walks a unit once, keeping lexical scopes, and records the symbol
// every name refers to.
type binder struct {
	r       *Resolver
	scopes  []map[string]*symbol
	types   []*TypeInfo
	tparams []map[string]bool
}

func (b *binder) push() { b.scopes = append(b.scopes, map[string]*symbol{}) }
func (b *binder) pop()  { b.scopes = b.scopes[:len(b.scopes)-1] }

func (b *binder) declare(name string, kind SymbolKind, typ *TypeDescriptor, decl ast.Node) *symbol {
	sym := &symbol{name: name, kind: kind, source: true, typ: typ, decl: decl}
	if typ == nil {
		sym.typ = UnresolvedType("")
	}

	if decl != nil {
		b.r.binds[decl] = sym
	}

	if name != "" && name != "_" {
		b.scopes[len(b.scopes)-1][name] = sym
	}

	return sym
}

func (b *binder) currentType() *TypeInfo {
	if len(b.types) == 0 {
		return nil
	}

	return b.types[len(b.types)-1]
}

func (b *binder) currentParams() map[string]bool {
	if len(b.tparams) == 0 {
		return nil
	}

	return b.tparams[len(b.tparams)-1]
}

func (b *binder) pushParams(names []string) {
	b.tparams = append(b.tparams, typeParamSet(b.currentParams(), names))
}

func (b *binder) popParams() { b.tparams = b.tparams[:len(b.tparams)-1] }

func (b *binder) describe(ref ast.TypeRef) *TypeDescriptor {
	if ref == nil {
		return nil
	}

	desc := b.r.index.describe(ref, b.currentParams())
	b.r.refs[ref] = desc

	ast.Walk(ref, func(n ast.Node) bool {
		if inner, ok := n.(ast.TypeRef); ok && inner != ref {
			b.r.refs[inner] = b.r.index.describe(inner, b.currentParams())
		}

		return true
	})

	return desc
}

// lookup resolves a simple name: locals and parameters, then members of the
// enclosing types, then type names.
func (b *binder) lookup(name string) *symbol {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if sym, ok := b.scopes[i][name]; ok {
			return sym
		}
	}

	for i := len(b.types) - 1; i >= 0; i-- {
		if sym := b.r.index.member(b.types[i], name); sym != nil {
			return sym
		}
	}

	if info, ok := b.r.index.Lookup(name); ok {
		return info.self
	}

	return nil
}

func (b *binder) memberOf(x ast.Expr, name string) *symbol {
	switch x.(type) {
	case *ast.This:
		return b.r.index.member(b.currentType(), name)
	case *ast.Super:
		return b.r.index.member(b.r.index.baseClass(b.currentType()), name)
	}

	if receiver := b.r.binds[x]; receiver != nil && receiver.kind == TypeSymbol {
		return b.r.index.member(receiver.info, name)
	}

	desc := b.r.TypeOfExpr(x)
	if desc.Kind == Nullable && desc.Elem != nil {
		desc = desc.Elem
	}

	typeName := desc.Name
	if desc.Kind == Array {
		typeName = "Array"
	}

	if info, ok := b.r.index.Lookup(typeName); ok && typeName != "" {
		if sym := b.r.index.member(info, name); sym != nil {
			return sym
		}
	}

	// Namespace qualified names such as System.Console leave the qualifier
	// unresolved; the member name itself may still be a type.
	if b.r.binds[x] == nil && desc.Kind == Unresolved {
		switch x.(type) {
		case *ast.Ident, *ast.MemberAccess:
			if info, ok := b.r.index.Lookup(name); ok {
				return info.self
			}
		}
	}

	return nil
}

func (b *binder) node(n ast.Node) {
	switch n := n.(type) {
	case nil, *ast.Unsupported:
	case ast.Decl:
		b.decl(n)
	case ast.Stmt:
		b.stmt(n)
	case ast.Expr:
		b.expr(n)
	case ast.TypeRef:
		b.describe(n)
	default:
		for _, child := range ast.Children(n) {
			b.node(child)
		}
	}
}

func (b *binder) children(n ast.Node) {
	for _, child := range ast.Children(n) {
		b.node(child)
	}
}

//nolint:gocyclo,cyclop // one case per declaration kind
func (b *binder) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.Namespace:
		for _, member := range d.Members {
			b.decl(member)
		}
	case *ast.TypeDecl:
		b.typeDecl(d)
	case *ast.EnumDecl:
		for _, member := range d.Members {
			if member.Value != nil {
				b.expr(member.Value)
			}
		}
	case *ast.DelegateDecl:
		b.pushParams(d.TypeParams)
		b.describe(d.Return)

		for _, p := range d.Params {
			b.describe(p.Type)
		}

		b.popParams()
	case *ast.FieldDecl:
		b.describe(d.Type)

		for _, v := range d.Vars {
			if v.Init != nil {
				b.expr(v.Init)
			}
		}
	case *ast.PropertyDecl:
		typ := b.describe(d.Type)

		for _, accessor := range d.Accessors {
			b.push()

			if accessor.Kind == "set" || accessor.Kind == "init" {
				b.declare("value", ParameterSymbol, typ, nil)
			}

			if accessor.Body != nil {
				b.stmt(accessor.Body)
			}

			if accessor.Expr != nil {
				b.expr(accessor.Expr)
			}

			b.pop()
		}

		if d.ExprBody != nil {
			b.expr(d.ExprBody)
		}

		if d.Init != nil {
			b.expr(d.Init)
		}
	case *ast.MethodDecl:
		b.method(d)
	case *ast.ConstructorDecl:
		b.push()
		b.params(d.Params)

		if d.Init != nil {
			for _, arg := range d.Init.Args {
				b.expr(arg.X)
			}
		}

		if d.Body != nil {
			b.stmt(d.Body)
		}

		if d.ExprBody != nil {
			b.expr(d.ExprBody)
		}

		b.pop()
	case *ast.CompilationUnit:
		for _, member := range d.Members {
			b.decl(member)
		}
	case *ast.Unsupported:
	}
}

func (b *binder) typeDecl(d *ast.TypeDecl) {
	info, _ := b.r.index.Lookup(d.Name)
	if declared := b.r.index.declared[d]; declared != nil && declared.info != nil {
		info = declared.info
	}

	b.types = append(b.types, info)
	b.pushParams(d.TypeParams)

	for _, base := range d.Bases {
		b.describe(base)
	}

	for _, p := range d.Params {
		b.describe(p.Type)

		if p.Default != nil {
			b.expr(p.Default)
		}
	}

	for _, member := range d.Members {
		b.decl(member)
	}

	b.popParams()
	b.types = b.types[:len(b.types)-1]
}

func (b *binder) method(d *ast.MethodDecl) {
	b.pushParams(d.TypeParams)
	b.describe(d.Return)
	b.push()
	b.params(d.Params)

	if d.Body != nil {
		b.stmt(d.Body)
	}

	if d.ExprBody != nil {
		b.expr(d.ExprBody)
	}

	b.pop()
	b.popParams()
}

func (b *binder) params(params []*ast.Parameter) {
	for _, p := range params {
		if p.Default != nil {
			b.expr(p.Default)
		}

		b.declare(p.Name, ParameterSymbol, b.describe(p.Type), p)
	}
}

//nolint:gocyclo,cyclop // one case per statement kind
func (b *binder) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Block:
		b.push()

		for _, inner := range s.Stmts {
			if fn, ok := inner.(*ast.LocalFunc); ok && fn.Method != nil {
				b.declare(fn.Method.Name, MethodSymbol, b.r.index.describe(fn.Method.Return, b.currentParams()), fn.Method)
			}
		}

		for _, inner := range s.Stmts {
			b.stmt(inner)
		}

		b.pop()
	case *ast.LocalDecl:
		typ := b.describe(s.Type)

		for _, v := range s.Vars {
			if v.Init != nil {
				b.expr(v.Init)
			}

			varType := typ
			if varType == nil && v.Init != nil {
				varType = b.r.TypeOfExpr(v.Init)
			}

			b.declare(v.Name, LocalSymbol, varType, v)
		}
	case *ast.For:
		b.push()

		if s.Decl != nil {
			b.stmt(s.Decl)
		}

		for _, x := range s.Init {
			b.expr(x)
		}

		if s.Cond != nil {
			b.expr(s.Cond)
		}

		for _, x := range s.Update {
			b.expr(x)
		}

		if s.Body != nil {
			b.stmt(s.Body)
		}

		b.pop()
	case *ast.ForEach:
		b.expr(s.Collection)
		b.push()

		typ := b.describe(s.Type)
		if typ == nil {
			typ = b.r.TypeOfExpr(s.Collection).ElementType()
		}

		b.declare(s.Name, LocalSymbol, typ, s)

		if s.Body != nil {
			b.stmt(s.Body)
		}

		b.pop()
	case *ast.Switch:
		b.expr(s.Value)

		for _, section := range s.Sections {
			b.push()

			for _, label := range section.Labels {
				if label.Value != nil {
					b.expr(label.Value)
				}

				typ := b.describe(label.PatternType)
				if label.PatternName != "" {
					b.declare(label.PatternName, LocalSymbol, typ, label)
				}
			}

			for _, inner := range section.Body {
				b.stmt(inner)
			}

			b.pop()
		}
	case *ast.Try:
		b.stmt(s.Body)

		for _, c := range s.Catches {
			b.push()

			typ := b.describe(c.Type)
			if c.Name != "" {
				b.declare(c.Name, LocalSymbol, typ, c)
			}

			if c.Filter != nil {
				b.expr(c.Filter)
			}

			if c.Body != nil {
				b.stmt(c.Body)
			}

			b.pop()
		}

		if s.Finally != nil {
			b.stmt(s.Finally)
		}
	case *ast.LocalFunc:
		if s.Method != nil {
			if _, ok := b.r.binds[s.Method]; !ok {
				b.declare(s.Method.Name, MethodSymbol, b.r.index.describe(s.Method.Return, b.currentParams()), s.Method)
			}

			b.method(s.Method)
		}
	case *ast.Unsupported:
	default:
		b.children(s)
	}
}

//nolint:gocyclo,cyclop // one case per expression kind
func (b *binder) expr(x ast.Expr) {
	switch x := x.(type) {
	case nil:
	case *ast.Ident:
		if sym := b.lookup(x.Name); sym != nil {
			b.r.binds[x] = sym
		}
	case *ast.GenericName:
		for _, t := range x.TypeArgs {
			b.describe(t)
		}

		if sym := b.lookup(x.Name); sym != nil {
			b.r.binds[x] = sym
		}
	case *ast.MemberAccess:
		b.expr(x.X)

		for _, t := range x.TypeArgs {
			b.describe(t)
		}

		if sym := b.memberOf(x.X, x.Name); sym != nil {
			b.r.binds[x] = sym
		}
	case *ast.This, *ast.Super:
		if info := b.currentType(); info != nil {
			b.r.selfTypes[x] = info
		}

		if x, ok := x.(*ast.Super); ok {
			if base := b.r.index.baseClass(b.currentType()); base != nil {
				b.r.selfTypes[x] = base
			}
		}
	case *ast.Lambda:
		b.push()

		for _, p := range x.Params {
			b.declare(p.Name, ParameterSymbol, b.describe(p.Type), p)
		}

		switch body := x.Body.(type) {
		case *ast.Block:
			b.stmt(body)
		case ast.Expr:
			b.expr(body)
		}

		b.pop()
	case *ast.IsType:
		b.expr(x.X)

		typ := b.describe(x.Type)
		if x.Name != "" {
			b.declare(x.Name, LocalSymbol, typ, x)
		}
	case *ast.Invocation:
		b.expr(x.Fn)

		for _, arg := range x.Args {
			b.argument(arg)
		}
	case *ast.ObjectCreation:
		typ := b.describe(x.Type)

		for _, arg := range x.Args {
			b.argument(arg)
		}

		if x.Init != nil {
			b.initializer(x.Init, typ)
		}
	case *ast.Unsupported:
	default:
		b.children(x)
	}
}

// initializer binds the assignment targets of an object initializer to the
// members of the created type.
func (b *binder) initializer(init *ast.Initializer, typ *TypeDescriptor) {
	var info *TypeInfo
	if typ != nil && typ.Name != "" {
		info, _ = b.r.index.Lookup(typ.Name)
	}

	for _, el := range init.Elems {
		assign, ok := el.(*ast.Assign)
		if !ok || info == nil {
			b.expr(el)
			continue
		}

		target, ok := assign.L.(*ast.Ident)
		if !ok {
			b.expr(el)
			continue
		}

		if sym := b.r.index.member(info, target.Name); sym != nil {
			b.r.binds[target] = sym
		}

		b.expr(assign.R)
	}
}

func (b *binder) argument(arg *ast.Argument) {
	if id, ok := arg.X.(*ast.Ident); ok && arg.Modifier == "out" && b.lookup(id.Name) == nil {
		b.r.binds[id] = b.declare(id.Name, LocalSymbol, nil, nil)
		return
	}

	b.expr(arg.X)
}
