package adapter

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

func (l *lowering) optionalType(n sitter.Node, name string) ast.TypeRef {
	c, ok := field(n, name)
	if !ok || c.Type() == "implicit_type" {
		return nil
	}

	return l.typeRef(c)
}

//nolint:cyclop // one case per type kind
func (l *lowering) typeRef(n sitter.Node) ast.TypeRef {
	if n.IsNull() {
		return nil
	}

	pos := l.pos(n)

	switch n.Type() {
	case "implicit_type":
		return nil
	case "predefined_type":
		return &ast.PredefinedType{Pos: pos, Name: l.text(n)}
	case "identifier":
		return &ast.NamedType{Pos: pos, Name: l.text(n)}
	case "generic_name":
		return &ast.NamedType{Pos: pos, Name: l.name(n), Args: l.typeArgs(n)}
	case "qualified_name", "alias_qualified_name":
		t := &ast.NamedType{Pos: pos}
		if q, ok := field(n, "qualifier"); ok {
			t.Qualifier = l.text(q)
		} else if q, ok := field(n, "alias"); ok {
			t.Qualifier = l.text(q)
		}

		name, ok := field(n, "name")
		if !ok {
			list := named(n)
			if len(list) == 0 {
				return l.unsupported(n)
			}

			name = list[len(list)-1]
		}

		if inner, ok := l.typeRef(name).(*ast.NamedType); ok {
			t.Name, t.Args = inner.Name, inner.Args
		}

		return t
	case "array_type":
		rank := 1
		if spec, ok := field(n, "rank"); ok {
			rank += strings.Count(l.text(spec), ",")
		}

		return &ast.ArrayType{Pos: pos, Elem: l.optionalType(n, "type"), Rank: rank}
	case "nullable_type":
		inner := l.optionalType(n, "type")
		if inner == nil {
			inner = l.typeRef(l.firstNamed(n))
		}

		return &ast.NullableType{Pos: pos, Inner: inner}
	case "pointer_type":
		return &ast.PointerType{Pos: pos, Elem: l.optionalType(n, "type")}
	case "tuple_type":
		t := &ast.TupleType{Pos: pos}

		for _, el := range named(n) {
			if el.Type() == "tuple_element" {
				t.Elems = append(t.Elems, l.optionalType(el, "type"))
			}
		}

		return t
	case "ref_type", "scoped_type":
		return l.optionalType(n, "type")
	default:
		return l.unsupported(n)
	}
}

func (l *lowering) typeArgs(n sitter.Node) []ast.TypeRef {
	list, ok := field(n, "type_arguments")
	if !ok {
		if list, ok = firstOf(n, "type_argument_list"); !ok {
			return nil
		}
	}

	var out []ast.TypeRef

	for _, c := range named(list) {
		if t := l.typeRef(c); t != nil {
			out = append(out, t)
		}
	}

	return out
}

var literalKinds = map[string]ast.LiteralKind{
	"integer_literal":         ast.IntLiteral,
	"real_literal":            ast.RealLiteral,
	"string_literal":          ast.StringLiteral,
	"raw_string_literal":      ast.StringLiteral,
	"verbatim_string_literal": ast.VerbatimStringLiteral,
	"character_literal":       ast.CharLiteral,
	"boolean_literal":         ast.BoolLiteral,
	"null_literal":            ast.NullLiteral,
}

//nolint:gocyclo,cyclop,funlen // one case per expression kind
func (l *lowering) expr(n sitter.Node) ast.Expr {
	if n.IsNull() {
		return nil
	}

	pos := l.pos(n)

	if kind, ok := literalKinds[n.Type()]; ok {
		value := l.text(n)
		if kind == ast.StringLiteral && strings.HasPrefix(value, "@") {
			kind = ast.VerbatimStringLiteral
		}

		return &ast.Literal{Pos: pos, Kind: kind, Value: value}
	}

	switch n.Type() {
	case "identifier", "predefined_type":
		return &ast.Ident{Pos: pos, Name: l.text(n)}
	case "generic_name":
		return &ast.GenericName{Pos: pos, Name: l.name(n), TypeArgs: l.typeArgs(n)}
	case "qualified_name":
		access := &ast.MemberAccess{Pos: pos, X: l.optionalExpr(n, "qualifier")}
		if name, ok := field(n, "name"); ok {
			access.Name = l.simpleName(name)
			access.TypeArgs = l.typeArgs(name)
		}

		return access
	case "interpolated_string_expression":
		return l.interpolated(n)
	case "binary_expression":
		return &ast.Binary{Pos: pos, Op: l.operator(n), L: l.optionalExpr(n, "left"), R: l.optionalExpr(n, "right")}
	case "prefix_unary_expression":
		return &ast.Unary{Pos: pos, Op: l.operator(n), X: l.firstExpr(n)}
	case "postfix_unary_expression":
		tokens := l.tokens(n)
		op := ""

		if len(tokens) > 0 {
			op = tokens[len(tokens)-1]
		}

		return &ast.Unary{Pos: pos, Op: op, X: l.firstExpr(n), Postfix: true}
	case "assignment_expression":
		return &ast.Assign{Pos: pos, Op: l.operator(n), L: l.optionalExpr(n, "left"), R: l.optionalExpr(n, "right")}
	case "invocation_expression":
		call := &ast.Invocation{Pos: pos, Fn: l.optionalExpr(n, "function")}
		if args, ok := field(n, "arguments"); ok {
			call.Args = l.args(args)
		}

		return call
	case "member_access_expression":
		access := &ast.MemberAccess{Pos: pos, X: l.optionalExpr(n, "expression")}
		if name, ok := field(n, "name"); ok {
			access.Name = l.simpleName(name)
			access.TypeArgs = l.typeArgs(name)
		}

		return access
	case "conditional_access_expression":
		return l.conditionalAccess(n)
	case "member_binding_expression":
		recv := l.binding
		l.binding = nil

		if recv == nil {
			return l.unsupported(n)
		}

		access := &ast.MemberAccess{Pos: pos, X: recv, NullSafe: true}
		if name, ok := field(n, "name"); ok {
			access.Name = l.simpleName(name)
			access.TypeArgs = l.typeArgs(name)
		}

		return access
	case "element_binding_expression":
		recv := l.binding
		l.binding = nil

		// The arguments sit directly under the node, or in a bracketed list
		// in older grammar revisions. Without a receiver this is the key of
		// an index initializer.
		index := &ast.ElementAccess{Pos: pos, X: recv, Index: l.args(n)}
		if args, ok := firstOf(n, "bracketed_argument_list"); ok {
			index.Index = l.args(args)
		}

		if len(index.Index) == 0 {
			return l.unsupported(n)
		}

		return index
	case "element_access_expression":
		index := &ast.ElementAccess{Pos: pos, X: l.optionalExpr(n, "expression")}
		if args, ok := field(n, "subscript"); ok {
			index.Index = l.args(args)
		}

		return index
	case "conditional_expression":
		return &ast.Conditional{
			Pos:  pos,
			Cond: l.optionalExpr(n, "condition"),
			Then: l.optionalExpr(n, "consequence"),
			Else: l.optionalExpr(n, "alternative"),
		}
	case "parenthesized_expression":
		return &ast.Paren{Pos: pos, X: l.firstExpr(n)}
	case "cast_expression":
		return &ast.Cast{Pos: pos, Type: l.optionalType(n, "type"), X: l.optionalExpr(n, "value")}
	case "object_creation_expression":
		return l.objectCreation(n, l.optionalType(n, "type"))
	case "implicit_object_creation_expression":
		return l.objectCreation(n, nil)
	case "array_creation_expression":
		return l.arrayCreation(n)
	case "implicit_array_creation_expression":
		create := &ast.ArrayCreation{Pos: pos}
		if init, ok := firstOf(n, "initializer_expression"); ok {
			create.Init = l.initializer(init)
		}

		return create
	case "initializer_expression":
		return l.initializer(n)
	case "lambda_expression", "anonymous_method_expression":
		return l.lambda(n)
	case "this_expression", "this":
		return &ast.This{Pos: pos}
	case "base_expression", "base":
		return &ast.Super{Pos: pos}
	case "typeof_expression":
		t := l.optionalType(n, "type")
		if t == nil {
			t = l.typeRef(l.firstNamed(n))
		}

		return &ast.TypeOf{Pos: pos, Type: t}
	case "default_expression":
		d := &ast.Default{Pos: pos, Type: l.optionalType(n, "type")}
		if d.Type == nil {
			if list := named(n); len(list) > 0 {
				d.Type = l.typeRef(list[0])
			}
		}

		return d
	case "is_pattern_expression":
		return l.isPattern(n)
	case "is_expression":
		return &ast.IsType{Pos: pos, X: l.optionalExpr(n, "left"), Type: l.optionalType(n, "right")}
	case "as_expression":
		return &ast.As{Pos: pos, X: l.optionalExpr(n, "left"), Type: l.optionalType(n, "right")}
	case "await_expression":
		return &ast.Await{Pos: pos, X: l.firstExpr(n)}
	case "tuple_expression":
		t := &ast.Tuple{Pos: pos}

		for _, c := range named(n) {
			if c.Type() == "argument" {
				t.Elems = append(t.Elems, l.arg(c))
			}
		}

		return t
	case "throw_expression":
		return &ast.ThrowExpr{Pos: pos, X: l.firstExpr(n)}
	case "declaration_expression":
		return &ast.Ident{Pos: pos, Name: l.name(n)}
	case "ref_expression":
		return l.firstExpr(n)
	default:
		return l.unsupported(n)
	}
}

// simpleName spells a member name node without its type arguments.
func (l *lowering) simpleName(n sitter.Node) string {
	if n.Type() == "generic_name" {
		return l.name(n)
	}

	return l.text(n)
}

// conditionalAccess lowers `a?.b...`: the first member binding in the tail
// takes a as its null safe receiver.
func (l *lowering) conditionalAccess(n sitter.Node) ast.Expr {
	list := named(n)
	if len(list) < 2 {
		return l.unsupported(n)
	}

	cond := list[0]
	if c, ok := field(n, "condition"); ok {
		cond = c
	}

	outer := l.binding
	l.binding = l.expr(cond)

	var tail ast.Expr

	for _, c := range list {
		if !same(c, cond) {
			tail = l.expr(c)
			break
		}
	}

	pending := l.binding
	l.binding = outer

	if pending != nil || tail == nil {
		return l.unsupported(n)
	}

	return tail
}

func (l *lowering) args(list sitter.Node) []*ast.Argument {
	var out []*ast.Argument

	for _, c := range named(list) {
		if c.Type() == "argument" {
			out = append(out, l.arg(c))
		}
	}

	return out
}

func (l *lowering) arg(n sitter.Node) *ast.Argument {
	a := &ast.Argument{Pos: l.pos(n)}

	for _, t := range l.tokens(n) {
		if t == "ref" || t == "out" || t == "in" {
			a.Modifier = t
		}
	}

	nameNode, hasName := field(n, "name")
	if hasName {
		a.Name = l.text(nameNode)
	}

	for _, c := range named(n) {
		switch {
		case hasName && same(c, nameNode):
		case c.Type() == "name_colon":
			a.Name = l.name(c)
		default:
			a.X = l.expr(c)
		}
	}

	return a
}

func (l *lowering) objectCreation(n sitter.Node, typ ast.TypeRef) ast.Expr {
	create := &ast.ObjectCreation{Pos: l.pos(n), Type: typ}

	if args, ok := field(n, "arguments"); ok {
		create.Args = l.args(args)
	} else if args, ok := firstOf(n, "argument_list"); ok {
		create.Args = l.args(args)
	}

	if init, ok := field(n, "initializer"); ok {
		create.Init = l.initializer(init)
	} else if init, ok := firstOf(n, "initializer_expression"); ok {
		create.Init = l.initializer(init)
	}

	return create
}

func (l *lowering) arrayCreation(n sitter.Node) ast.Expr {
	create := &ast.ArrayCreation{Pos: l.pos(n)}

	arrayType, ok := field(n, "type")
	if !ok {
		arrayType, ok = firstOf(n, "array_type")
	}

	if ok && arrayType.Type() == "array_type" {
		create.Elem = l.optionalType(arrayType, "type")

		if rank, ok := field(arrayType, "rank"); ok {
			for _, size := range named(rank) {
				create.Sizes = append(create.Sizes, l.expr(size))
			}
		}
	}

	for _, c := range named(n) {
		switch c.Type() {
		case "initializer_expression":
			create.Init = l.initializer(c)
		case "array_rank_specifier":
			for _, size := range named(c) {
				create.Sizes = append(create.Sizes, l.expr(size))
			}
		}
	}

	return create
}

func (l *lowering) initializer(n sitter.Node) *ast.Initializer {
	init := &ast.Initializer{Pos: l.pos(n)}

	for _, c := range named(n) {
		init.Elems = append(init.Elems, l.expr(c))
	}

	return init
}

func (l *lowering) lambda(n sitter.Node) ast.Expr {
	lambda := &ast.Lambda{Pos: l.pos(n), Async: l.hasToken(n, "async") || l.modifiers(n).Has("async")}

	if params, ok := field(n, "parameters"); ok {
		switch params.Type() {
		case "identifier", "implicit_parameter":
			lambda.Params = []*ast.Parameter{{Pos: l.pos(params), Name: l.text(params)}}
		default:
			lambda.Params = l.params(params)
		}
	}

	body, ok := field(n, "body")
	if !ok {
		if body, ok = firstOf(n, "block"); !ok {
			return l.unsupported(n)
		}
	}

	if body.Type() == "block" {
		lambda.Body = l.block(body)
	} else {
		lambda.Body = l.expr(body)
	}

	return lambda
}

// isPattern lowers `x is P` for the patterns that have a direct rendering.
func (l *lowering) isPattern(n sitter.Node) ast.Expr {
	pos := l.pos(n)
	x := l.optionalExpr(n, "expression")

	p, ok := field(n, "pattern")
	if !ok || x == nil {
		return l.unsupported(n)
	}

	switch p.Type() {
	case "declaration_pattern":
		is := &ast.IsType{Pos: pos, X: x, Type: l.optionalType(p, "type")}
		if name, ok := field(p, "name"); ok {
			is.Name = l.text(name)
		}

		return is
	case "type_pattern":
		t := l.optionalType(p, "type")
		if t == nil {
			t = l.typeRef(l.firstNamed(p))
		}

		return &ast.IsType{Pos: pos, X: x, Type: t}
	case "identifier", "generic_name", "qualified_name", "predefined_type":
		return &ast.IsType{Pos: pos, X: x, Type: l.typeRef(p)}
	case "constant_pattern":
		return &ast.Binary{Pos: pos, Op: "==", L: x, R: l.firstExpr(p)}
	case "null_literal", "integer_literal", "string_literal", "boolean_literal", "character_literal":
		return &ast.Binary{Pos: pos, Op: "==", L: x, R: l.expr(p)}
	case "negated_pattern":
		inner := l.firstNamed(p)
		if !inner.IsNull() && (inner.Type() == "null_literal" || inner.Type() == "constant_pattern") {
			value := l.expr(inner)
			if inner.Type() == "constant_pattern" {
				value = l.firstExpr(inner)
			}

			return &ast.Binary{Pos: pos, Op: "!=", L: x, R: value}
		}
	}

	return l.unsupported(n)
}

// interpolated splits the source between the delimiters into text runs and
// holes. Text keeps its escapes; the emitter rewrites them.
func (l *lowering) interpolated(n sitter.Node) ast.Expr {
	text := l.text(n)

	var start, end int

	s := &ast.Interpolated{Pos: l.pos(n)}

	switch {
	case strings.HasPrefix(text, "$$"):
		return l.unsupported(n)
	case strings.HasPrefix(text, `$"""`):
		s.Verbatim, start, end = true, 4, 3
	case strings.HasPrefix(text, `$@"`), strings.HasPrefix(text, `@$"`):
		s.Verbatim, start, end = true, 3, 1
	case strings.HasPrefix(text, `$"`):
		start, end = 2, 1
	default:
		return l.unsupported(n)
	}

	if len(text) < start+end {
		return l.unsupported(n)
	}

	base := int(n.StartByte())
	cursor := base + start
	stop := int(n.EndByte()) - end

	for _, c := range named(n) {
		if c.Type() != "interpolation" {
			continue
		}

		if from := int(c.StartByte()); from > cursor {
			s.Parts = append(s.Parts, ast.InterpolationPart{Text: string(l.src[cursor:from])})
		}

		s.Parts = append(s.Parts, l.hole(c))
		cursor = int(c.EndByte())
	}

	if stop > cursor {
		s.Parts = append(s.Parts, ast.InterpolationPart{Text: string(l.src[cursor:stop])})
	}

	return s
}

func (l *lowering) hole(n sitter.Node) ast.InterpolationPart {
	var part ast.InterpolationPart

	for _, c := range named(n) {
		switch c.Type() {
		case "interpolation_brace":
		case "interpolation_alignment_clause":
			part.Alignment = strings.TrimSpace(strings.TrimPrefix(l.text(c), ","))
		case "interpolation_format_clause":
			part.Format = strings.TrimSpace(strings.TrimPrefix(l.text(c), ":"))
		default:
			if part.X == nil {
				part.X = l.expr(c)
			}
		}
	}

	return part
}
