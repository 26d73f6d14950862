package adapter

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

var typeKinds = map[string]ast.TypeKind{
	"class_declaration":         ast.ClassKind,
	"struct_declaration":        ast.StructKind,
	"interface_declaration":     ast.InterfaceKind,
	"record_declaration":        ast.RecordKind,
	"record_struct_declaration": ast.RecordKind,
}

//nolint:cyclop // one case per declaration kind
func (l *lowering) decl(n sitter.Node) ast.Decl {
	if kind, ok := typeKinds[n.Type()]; ok {
		return l.typeDecl(n, kind)
	}

	switch n.Type() {
	case "comment", "attribute_list", "using_directive", "extern_alias_directive":
		return nil
	case "namespace_declaration":
		ns := &ast.Namespace{Pos: l.pos(n)}
		if name, ok := field(n, "name"); ok {
			ns.Name = l.text(name)
		}

		if body, ok := field(n, "body"); ok {
			ns.Members = l.declList(body)
		}

		return ns
	case "enum_declaration":
		return l.enumDecl(n)
	case "delegate_declaration":
		return l.delegateDecl(n)
	case "field_declaration":
		return l.fieldDecl(n)
	case "property_declaration":
		return l.propertyDecl(n)
	case "method_declaration":
		return l.methodDecl(n)
	case "constructor_declaration":
		return l.constructorDecl(n)
	default:
		return l.unsupported(n)
	}
}

func (l *lowering) declList(body sitter.Node) []ast.Decl {
	var out []ast.Decl

	for _, c := range named(body) {
		if d := l.decl(c); d != nil {
			out = append(out, d)
		}
	}

	return out
}

func (l *lowering) typeParams(n sitter.Node) []string {
	list, ok := field(n, "type_parameters")
	if !ok {
		if list, ok = firstOf(n, "type_parameter_list"); !ok {
			return nil
		}
	}

	var out []string

	for _, p := range named(list) {
		if p.Type() == "type_parameter" {
			if name := l.name(p); name != "" {
				out = append(out, name)
				continue
			}

			out = append(out, l.text(p))
		}
	}

	return out
}

func (l *lowering) typeDecl(n sitter.Node, kind ast.TypeKind) *ast.TypeDecl {
	d := &ast.TypeDecl{
		Pos:        l.pos(n),
		Kind:       kind,
		Name:       l.name(n),
		Modifiers:  l.modifiers(n),
		TypeParams: l.typeParams(n),
	}

	if bases, ok := firstOf(n, "base_list"); ok {
		for _, b := range named(bases) {
			switch b.Type() {
			case "argument_list":
			case "primary_constructor_base_type":
				if t, ok := field(b, "type"); ok {
					d.Bases = append(d.Bases, l.typeRef(t))
				} else if first := named(b); len(first) > 0 {
					d.Bases = append(d.Bases, l.typeRef(first[0]))
				}
			default:
				d.Bases = append(d.Bases, l.typeRef(b))
			}
		}
	}

	if params, ok := field(n, "parameters"); ok {
		d.Params = l.params(params)
	} else if params, ok := firstOf(n, "parameter_list"); ok {
		d.Params = l.params(params)
	}

	if body, ok := field(n, "body"); ok {
		d.Members = l.declList(body)
	} else if body, ok := firstOf(n, "declaration_list"); ok {
		d.Members = l.declList(body)
	}

	return d
}

func (l *lowering) enumDecl(n sitter.Node) *ast.EnumDecl {
	d := &ast.EnumDecl{Pos: l.pos(n), Name: l.name(n), Modifiers: l.modifiers(n)}

	body, ok := field(n, "body")
	if !ok {
		if body, ok = firstOf(n, "enum_member_declaration_list"); !ok {
			return d
		}
	}

	for _, c := range named(body) {
		if c.Type() != "enum_member_declaration" {
			continue
		}

		member := &ast.EnumMember{Pos: l.pos(c), Name: l.name(c)}
		if v, ok := field(c, "value"); ok {
			member.Value = l.expr(v)
		} else if eq, ok := firstOf(c, "equals_value_clause"); ok {
			member.Value = l.firstExpr(eq)
		}

		d.Members = append(d.Members, member)
	}

	return d
}

// returnType finds the declared type of a method like node. Grammar
// revisions disagree on the field name.
func (l *lowering) returnType(n sitter.Node) ast.TypeRef {
	for _, name := range []string{"returns", "type"} {
		if t, ok := field(n, name); ok {
			return l.typeRef(t)
		}
	}

	return nil
}

func (l *lowering) delegateDecl(n sitter.Node) *ast.DelegateDecl {
	d := &ast.DelegateDecl{
		Pos:        l.pos(n),
		Name:       l.name(n),
		Modifiers:  l.modifiers(n),
		TypeParams: l.typeParams(n),
		Return:     l.returnType(n),
	}

	if params, ok := field(n, "parameters"); ok {
		d.Params = l.params(params)
	}

	return d
}

func (l *lowering) fieldDecl(n sitter.Node) ast.Decl {
	vd, ok := firstOf(n, "variable_declaration")
	if !ok {
		return l.unsupported(n)
	}

	return &ast.FieldDecl{
		Pos:       l.pos(n),
		Modifiers: l.modifiers(n),
		Type:      l.declaredType(vd),
		Vars:      l.declarators(vd),
	}
}

// declaredType returns the type of a variable declaration, nil for var.
func (l *lowering) declaredType(vd sitter.Node) ast.TypeRef {
	t, ok := field(vd, "type")
	if !ok {
		return nil
	}

	return l.typeRef(t)
}

func (l *lowering) declarators(vd sitter.Node) []*ast.VarDeclarator {
	var out []*ast.VarDeclarator

	for _, c := range named(vd) {
		if c.Type() != "variable_declarator" {
			continue
		}

		v := &ast.VarDeclarator{Pos: l.pos(c)}
		nameNode, hasName := field(c, "name")

		for _, part := range named(c) {
			switch {
			case hasName && same(part, nameNode):
				v.Name = l.text(part)
			case !hasName && v.Name == "" && part.Type() == "identifier":
				v.Name = l.text(part)
			case part.Type() == "bracketed_argument_list":
			case part.Type() == "equals_value_clause":
				v.Init = l.firstExpr(part)
			case v.Init == nil:
				v.Init = l.expr(part)
			}
		}

		out = append(out, v)
	}

	return out
}

func (l *lowering) propertyDecl(n sitter.Node) *ast.PropertyDecl {
	d := &ast.PropertyDecl{
		Pos:       l.pos(n),
		Modifiers: l.modifiers(n),
		Type:      l.returnType(n),
		Name:      l.name(n),
	}

	if list, ok := field(n, "accessors"); ok {
		d.Accessors = l.accessors(list)
	} else if list, ok := firstOf(n, "accessor_list"); ok {
		d.Accessors = l.accessors(list)
	}

	if value, ok := field(n, "value"); ok {
		if value.Type() == "arrow_expression_clause" {
			d.ExprBody = l.firstExpr(value)
		} else {
			d.Init = l.expr(value)
		}
	} else if arrow, ok := firstOf(n, "arrow_expression_clause"); ok {
		d.ExprBody = l.firstExpr(arrow)
	} else if eq, ok := firstOf(n, "equals_value_clause"); ok {
		d.Init = l.firstExpr(eq)
	}

	return d
}

func (l *lowering) accessors(list sitter.Node) []*ast.Accessor {
	var out []*ast.Accessor

	for _, c := range named(list) {
		if c.Type() != "accessor_declaration" {
			continue
		}

		a := &ast.Accessor{Pos: l.pos(c), Modifiers: l.modifiers(c)}
		if name, ok := field(c, "name"); ok {
			a.Kind = l.text(name)
		} else {
			for _, t := range l.tokens(c) {
				if t == "get" || t == "set" || t == "init" {
					a.Kind = t
					break
				}
			}
		}

		if body, ok := field(c, "body"); ok {
			l.functionBody(body, &a.Body, &a.Expr)
		} else {
			for _, part := range named(c) {
				l.functionBody(part, &a.Body, &a.Expr)
			}
		}

		out = append(out, a)
	}

	return out
}

// functionBody stores n into block or expr when it is a body node.
func (l *lowering) functionBody(n sitter.Node, block **ast.Block, expr *ast.Expr) {
	switch n.Type() {
	case "block":
		*block = l.block(n)
	case "arrow_expression_clause":
		*expr = l.firstExpr(n)
	}
}

func (l *lowering) methodDecl(n sitter.Node) *ast.MethodDecl {
	d := &ast.MethodDecl{
		Pos:        l.pos(n),
		Modifiers:  l.modifiers(n),
		Return:     l.returnType(n),
		Name:       l.name(n),
		TypeParams: l.typeParams(n),
	}

	if params, ok := field(n, "parameters"); ok {
		d.Params = l.params(params)
	}

	for _, c := range named(n) {
		l.functionBody(c, &d.Body, &d.ExprBody)
	}

	return d
}

func (l *lowering) constructorDecl(n sitter.Node) *ast.ConstructorDecl {
	d := &ast.ConstructorDecl{Pos: l.pos(n), Modifiers: l.modifiers(n), Name: l.name(n)}

	if params, ok := field(n, "parameters"); ok {
		d.Params = l.params(params)
	}

	for _, c := range named(n) {
		if c.Type() == "constructor_initializer" {
			init := &ast.ConstructorInit{Pos: l.pos(c), Base: l.hasToken(c, "base")}
			if args, ok := firstOf(c, "argument_list"); ok {
				init.Args = l.args(args)
			}

			d.Init = init

			continue
		}

		l.functionBody(c, &d.Body, &d.ExprBody)
	}

	return d
}

var parameterKeywords = map[string]bool{"ref": true, "out": true, "in": true, "params": true, "this": true}

func (l *lowering) params(list sitter.Node) []*ast.Parameter {
	var out []*ast.Parameter

	for _, c := range named(list) {
		switch c.Type() {
		case "parameter", "parameter_array":
			out = append(out, l.param(c))
		case "identifier", "implicit_parameter":
			out = append(out, &ast.Parameter{Pos: l.pos(c), Name: l.text(c)})
		}
	}

	return out
}

func (l *lowering) param(n sitter.Node) *ast.Parameter {
	p := &ast.Parameter{Pos: l.pos(n), Modifiers: l.modifiers(n), Name: l.name(n)}
	if n.Type() == "parameter_array" {
		p.Modifiers = append(p.Modifiers, "params")
	}

	for _, t := range l.tokens(n) {
		if parameterKeywords[t] && !p.Modifiers.Has(t) {
			p.Modifiers = append(p.Modifiers, t)
		}
	}

	typeNode, hasType := field(n, "type")
	if hasType {
		p.Type = l.typeRef(typeNode)
	}

	nameNode, hasName := field(n, "name")

	for _, c := range named(n) {
		switch {
		case hasName && same(c, nameNode), hasType && same(c, typeNode):
		case c.Type() == "modifier", c.Type() == "parameter_modifier", c.Type() == "attribute_list":
		case c.Type() == "equals_value_clause":
			p.Default = l.firstExpr(c)
		case !hasType && p.Type == nil && isTypeNode(c.Type()) && !same(c, nameNode):
			p.Type = l.typeRef(c)
		case hasName && c.StartByte() > nameNode.StartByte() && p.Default == nil:
			p.Default = l.expr(c)
		}
	}

	return p
}

func isTypeNode(kind string) bool {
	switch kind {
	case "predefined_type", "generic_name", "qualified_name", "array_type", "nullable_type",
		"pointer_type", "tuple_type", "alias_qualified_name":
		return true
	}

	return strings.HasSuffix(kind, "_type")
}
