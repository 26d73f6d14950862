package emitter

import (
	"errors"
	"fmt"
	"strings"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
	"cs2kt.dev/pkg/cs2kt/internal/domain/rules"
	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

var binaryOps = map[string]string{
	"&":   "and",
	"|":   "or",
	"^":   "xor",
	"<<":  "shl",
	">>":  "shr",
	">>>": "ushr",
	"??":  "?:",
}

var compoundOps = map[string]string{
	"&=":   "and",
	"|=":   "or",
	"^=":   "xor",
	"<<=":  "shl",
	">>=":  "shr",
	">>>=": "ushr",
	"??=":  "?:",
}

// numericConversions maps primitive cast targets to Kotlin conversion calls.
var numericConversions = map[string]string{
	"Byte":   "toByte",
	"SByte":  "toByte",
	"Int16":  "toShort",
	"UInt16": "toUShort",
	"Int32":  "toInt",
	"UInt32": "toUInt",
	"Int64":  "toLong",
	"UInt64": "toULong",
	"Single": "toFloat",
	"Double": "toDouble",
	"Char":   "toChar",
}

//nolint:gocyclo,cyclop // one case per expression kind
func (e *Emitter) expr(x ast.Expr) {
	switch x := x.(type) {
	case nil:
	case *ast.Ident:
		e.w.Write(e.identText(x))
	case *ast.Literal:
		e.literal(x)
	case *ast.Interpolated:
		e.interpolated(x)
	case *ast.Binary:
		e.binary(x)
	case *ast.Unary:
		e.unary(x)
	case *ast.Assign:
		e.assign(x)
	case *ast.Invocation:
		e.invocation(x)
	case *ast.MemberAccess:
		e.memberAccess(x)
	case *ast.GenericName:
		if sym := e.symbol(x); sym != nil && sym.Kind() == semantic.TypeSymbol {
			e.w.Write(e.mapper.MapType(e.typeOfExpr(x)))
			return
		}

		e.w.Write(e.nameOf(e.symbol(x), x.Name) + typeArgSuffix(e.typeList(x.TypeArgs)))
	case *ast.ElementAccess:
		if x.X == nil {
			e.w.Raw(e.marker("index initializer", x))
			return
		}

		e.expr(x.X)
		e.w.Write("[")
		e.Args(x.Index)
		e.w.Write("]")
	case *ast.Conditional:
		e.w.Write("if (")
		e.expr(x.Cond)
		e.w.Write(") ")
		e.expr(x.Then)
		e.w.Write(" else ")
		e.expr(x.Else)
	case *ast.Paren:
		e.w.Write("(")
		e.expr(x.X)
		e.w.Write(")")
	case *ast.Cast:
		e.cast(x)
	case *ast.Initializer:
		e.w.Write("arrayOf(")
		e.exprList(x.Elems)
		e.w.Write(")")
	case *ast.ObjectCreation:
		e.objectCreation(x)
	case *ast.ArrayCreation:
		e.arrayCreation(x)
	case *ast.Lambda:
		e.lambda(x)
	case *ast.This:
		e.w.Write("this")
	case *ast.Super:
		e.w.Write("super")
	case *ast.TypeOf:
		e.w.Write(e.typeText(x.Type) + "::class")
	case *ast.Default:
		if value, ok := e.mapper.DefaultValue(e.typeOf(x.Type)); ok && x.Type != nil {
			e.w.Write(value)
			return
		}

		e.w.Write("null")
	case *ast.IsType:
		e.isType(x)
	case *ast.As:
		e.atom(x.X)
		e.w.Write(" as? " + e.typeText(x.Type))
	case *ast.Await:
		e.expr(x.X)
	case *ast.Tuple:
		e.tuple(x)
	case *ast.ThrowExpr:
		e.w.Write("throw ")
		e.expr(x.X)
	case *ast.Unsupported:
		e.w.Raw(e.marker(x.Construct, x))
	default:
		e.fail("expression", x)
	}
}

func (e *Emitter) exprList(xs []ast.Expr) {
	for i, x := range xs {
		if i > 0 {
			e.w.Write(", ")
		}

		e.expr(x)
	}
}

// atom writes x, parenthesized unless it binds tighter than any operator.
func (e *Emitter) atom(x ast.Expr) {
	switch x.(type) {
	case *ast.Ident, *ast.Literal, *ast.MemberAccess, *ast.Invocation, *ast.Paren,
		*ast.ElementAccess, *ast.This, *ast.Super, *ast.GenericName, *ast.Interpolated:
		e.expr(x)
	default:
		e.w.Write("(")
		e.expr(x)
		e.w.Write(")")
	}
}

func (e *Emitter) identText(x *ast.Ident) string {
	sym := e.symbol(x)
	if sym != nil {
		if alias, ok := e.aliases[sym]; ok {
			return alias
		}

		if sym.Kind() == semantic.TypeSymbol {
			return e.mapper.MapType(e.typeOfExpr(x))
		}
	}

	return e.nameOf(sym, x.Name)
}

// nameOf spells a referenced name. Methods and properties are renamed to
// Kotlin member case; everything else keeps its spelling.
func (e *Emitter) nameOf(sym semantic.Symbol, name string) string {
	if sym == nil {
		return ident(name)
	}

	switch sym.Kind() {
	case semantic.MethodSymbol, semantic.PropertySymbol:
		return lowerFirst(name)
	}

	return ident(name)
}

func typeArgSuffix(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return "<" + strings.Join(args, ", ") + ">"
}

func (e *Emitter) binary(b *ast.Binary) {
	switch b.Op {
	case "is":
		e.expr(b.L)
		e.w.Write(" is ")
		e.expr(b.R)

		return
	case "as":
		e.atom(b.L)
		e.w.Write(" as? ")
		e.expr(b.R)

		return
	}

	op := b.Op
	if mapped, ok := binaryOps[op]; ok {
		op = mapped
	}

	e.expr(b.L)
	e.w.Write(" " + op + " ")
	e.expr(b.R)
}

func (e *Emitter) unary(u *ast.Unary) {
	switch {
	case u.Postfix && u.Op == "!":
		e.expr(u.X)
		e.w.Write("!!")
	case u.Postfix:
		e.expr(u.X)
		e.w.Write(u.Op)
	case u.Op == "~":
		e.atom(u.X)
		e.w.Write(".inv()")
	default:
		e.w.Write(u.Op)
		e.expr(u.X)
	}
}

func (e *Emitter) assign(a *ast.Assign) {
	if op, ok := compoundOps[a.Op]; ok {
		e.expr(a.L)
		e.w.Write(" = ")
		e.expr(a.L)
		e.w.Write(" " + op + " ")
		e.atom(a.R)

		return
	}

	e.expr(a.L)
	e.w.Write(" " + a.Op + " ")
	e.expr(a.R)
}

func (e *Emitter) memberAccess(m *ast.MemberAccess) {
	if m.X == nil {
		e.fail("member access", m)
		return
	}

	sym := e.symbol(m)
	if sym != nil && sym.Kind() == semantic.TypeSymbol {
		e.w.Write(e.mapper.MapType(e.typeOfExpr(m)))
		return
	}

	dot := "."
	if m.NullSafe {
		dot = "?."
	}

	if e.IsTypeName(m.X) {
		if text, ok := e.staticConstant(m); ok {
			e.w.Write(text)
			return
		}
	}

	if size, ok := e.sizeProperty(m, sym); ok {
		e.expr(m.X)
		e.w.Write(dot + size)

		return
	}

	e.expr(m.X)
	e.w.Write(dot + e.nameOf(sym, m.Name) + typeArgSuffix(e.typeList(m.TypeArgs)))
}

// staticConstant spells well-known constants of library value types.
func (e *Emitter) staticConstant(m *ast.MemberAccess) (string, bool) {
	receiver := e.typeOfExpr(m.X)

	switch {
	case receiver.IsNamed("String") && m.Name == "Empty":
		return `""`, true
	case receiver.Kind == semantic.Primitive && m.Name == "MaxValue":
		return e.mapper.MapType(receiver) + ".MAX_VALUE", true
	case receiver.Kind == semantic.Primitive && m.Name == "MinValue":
		return e.mapper.MapType(receiver) + ".MIN_VALUE", true
	}

	return "", false
}

// sizeProperty maps Length and Count to length on strings and size on arrays
// and containers.
func (e *Emitter) sizeProperty(m *ast.MemberAccess, sym semantic.Symbol) (string, bool) {
	if m.Name != "Length" && m.Name != "Count" {
		return "", false
	}

	if sym != nil && sym.Kind() != semantic.PropertySymbol {
		return "", false
	}

	receiver := e.typeOfExpr(m.X)
	if receiver.Kind == semantic.Nullable && receiver.Elem != nil {
		receiver = receiver.Elem
	}

	switch {
	case receiver.IsNamed("String"):
		return "length", true
	case receiver.Kind == semantic.Array, receiver.Kind == semantic.Generic:
		return "size", true
	}

	return "", false
}

func (e *Emitter) invocation(call *ast.Invocation) {
	switch fn := call.Fn.(type) {
	case *ast.MemberAccess:
		sym := e.symbol(fn)
		if fn.X == nil {
			e.fail("invocation", call)
			return
		}

		if e.applyRule(call, fn, sym, fn.Name) {
			return
		}

		dot := "."
		if fn.NullSafe {
			dot = "?."
		}

		if fn.Name == "Invoke" && e.typeOfExpr(fn.X).Is(semantic.Delegate) {
			e.expr(fn.X)

			if fn.NullSafe {
				e.w.Write(dot + "invoke")
			}

			e.CallArgs(call.Args)

			return
		}

		e.expr(fn.X)
		e.w.Write(dot + e.nameOf(sym, fn.Name) + typeArgSuffix(e.typeList(fn.TypeArgs)))
		e.CallArgs(call.Args)
	case *ast.Ident:
		sym := e.symbol(fn)
		if sym == nil && fn.Name == "nameof" && len(call.Args) == 1 {
			e.w.Write(`"` + lastSegment(call.Args[0].X.Span().Text) + `"`)
			return
		}

		if e.applyRule(call, nil, sym, fn.Name) {
			return
		}

		e.w.Write(e.identText(fn))
		e.CallArgs(call.Args)
	case *ast.GenericName:
		sym := e.symbol(fn)
		if e.applyRule(call, nil, sym, fn.Name) {
			return
		}

		e.w.Write(e.nameOf(sym, fn.Name) + typeArgSuffix(e.typeList(fn.TypeArgs)))
		e.CallArgs(call.Args)
	case *ast.Paren, *ast.Invocation, *ast.ElementAccess, *ast.Unsupported:
		e.expr(fn)
		e.CallArgs(call.Args)
	default:
		e.fail("invocation", call)
	}
}

func lastSegment(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.LastIndex(text, "."); i >= 0 {
		return text[i+1:]
	}

	return text
}

// applyRule runs the registry handler for a call, if any. Members declared
// in the project only match their fully qualified signature. A declining
// handler leaves no output behind.
func (e *Emitter) applyRule(call *ast.Invocation, access *ast.MemberAccess, sym semantic.Symbol, name string) bool {
	if e.registry == nil {
		return false
	}

	containing := semantic.ContainingTypeName(sym)

	var (
		h  rules.Handler
		ok bool
	)

	if sym != nil && e.facade != nil && e.facade.InSource(sym) {
		h, ok = e.registry.ResolveExact(containing, name)
	} else {
		h, ok = e.registry.Resolve(containing, name)
	}

	if !ok {
		return false
	}

	saved := e.save()

	err := h(e, call, access)

	switch {
	case err == nil:
		return true
	case errors.Is(err, rules.ErrNotApplicable):
		e.restore(saved)
		return false
	default:
		e.restore(saved)

		if e.err == nil {
			e.err = fmt.Errorf("rule %s: %w", name, err)
		}

		return false
	}
}

func (e *Emitter) lambda(l *ast.Lambda) {
	if len(l.Params) == 1 {
		if bin, ok := l.Body.(*ast.Binary); ok {
			if sym := e.symbol(l.Params[0]); sym != nil {
				e.aliases[sym] = "it"
				defer delete(e.aliases, sym)
			}

			e.w.Write("{ ")
			e.binary(bin)
			e.w.Write(" }")

			return
		}
	}

	params := make([]string, 0, len(l.Params))
	for _, p := range l.Params {
		text := ident(p.Name)
		if p.Type != nil {
			text += " : " + e.typeText(p.Type)
		}

		params = append(params, text)
	}

	header := "{"
	if len(params) > 0 {
		header = "{ " + strings.Join(params, ", ") + " ->"
	}

	savedScopes := e.scopes
	e.scopes = nil

	defer func() { e.scopes = savedScopes }()

	switch body := l.Body.(type) {
	case *ast.Block:
		list := statements(body)
		if len(list) == 0 {
			e.w.Write(header + " }")
			return
		}

		e.w.Line(header)
		e.w.Enter()

		for i, st := range list {
			if r, ok := st.(*ast.Return); ok && r.X != nil && i == len(list)-1 {
				e.expr(r.X)
				e.w.Line("")

				continue
			}

			e.stmt(st)
		}

		e.w.Leave()
		e.w.Write("}")
	case ast.Expr:
		e.w.Write(header + " ")
		e.expr(body)
		e.w.Write(" }")
	default:
		e.w.Write(header + " }")
	}
}

func (e *Emitter) cast(c *ast.Cast) {
	target := e.typeOf(c.Type)

	if conv, ok := numericConversions[target.Name]; ok && target.Kind == semantic.Primitive {
		source := e.typeOfExpr(c.X)
		if _, numeric := numericConversions[source.Name]; numeric && source.Kind == semantic.Primitive {
			e.atom(c.X)

			if source.Name != target.Name {
				e.w.Write("." + conv + "()")
			}

			return
		}
	}

	e.w.Write("(")
	e.expr(c.X)
	e.w.Write(" as " + e.mapper.MapType(target) + ")")
}

type collectionKind struct {
	factory  string
	concrete string
}

var collectionFactories = map[string]collectionKind{
	"MutableList": {factory: "mutableListOf", concrete: "ArrayList"},
	"MutableSet":  {factory: "mutableSetOf", concrete: "HashSet"},
	"MutableMap":  {factory: "mutableMapOf", concrete: "HashMap"},
}

func (e *Emitter) objectCreation(x *ast.ObjectCreation) {
	if x.Type == nil {
		e.w.Raw(e.marker("implicit object creation", x))
		return
	}

	typ := e.typeText(x.Type)

	container, generics := typ, ""
	if i := strings.Index(typ, "<"); i >= 0 {
		container, generics = typ[:i], typ[i:]
	}

	if kind, ok := collectionFactories[container]; ok {
		switch {
		case x.Init != nil && len(x.Init.Elems) > 0:
			e.w.Write(kind.factory + "(")
			e.collectionElems(x.Init, kind.factory == "mutableMapOf")
			e.w.Write(")")
		case len(x.Args) == 0:
			e.w.Write(kind.factory + generics + "()")
		default:
			e.w.Write(kind.concrete + generics + "(")
			e.Args(x.Args)
			e.w.Write(")")
		}

		return
	}

	e.w.Write(typ + "(")
	e.Args(x.Args)
	e.w.Write(")")

	if x.Init == nil || len(x.Init.Elems) == 0 {
		return
	}

	e.w.Write(".apply { ")

	for i, el := range x.Init.Elems {
		if i > 0 {
			e.w.Write("; ")
		}

		e.expr(el)
	}

	e.w.Write(" }")
}

func (e *Emitter) collectionElems(init *ast.Initializer, pairs bool) {
	for i, el := range init.Elems {
		if i > 0 {
			e.w.Write(", ")
		}

		if !pairs {
			e.expr(el)
			continue
		}

		switch el := el.(type) {
		case *ast.Initializer:
			if len(el.Elems) == 2 {
				e.expr(el.Elems[0])
				e.w.Write(" to ")
				e.expr(el.Elems[1])

				continue
			}
		case *ast.Assign:
			if index, ok := el.L.(*ast.ElementAccess); ok && index.X == nil && len(index.Index) == 1 {
				e.expr(index.Index[0].X)
				e.w.Write(" to ")
				e.expr(el.R)

				continue
			}
		}

		e.expr(el)
	}
}

func (e *Emitter) arrayCreation(x *ast.ArrayCreation) {
	switch {
	case x.Init != nil:
		e.w.Write("arrayOf(")
		e.exprList(x.Init.Elems)
		e.w.Write(")")
	case len(x.Sizes) > 0:
		e.sizedArray(e.typeOf(x.Elem), x.Sizes)
	default:
		e.w.Write("arrayOf()")
	}
}

// sizedArray writes `Array(n) { default }`, nesting one level per
// dimension, or arrayOfNulls when the element type has no default.
func (e *Emitter) sizedArray(elem *semantic.TypeDescriptor, sizes []ast.Expr) {
	if len(sizes) > 1 {
		e.w.Write("Array(")
		e.expr(sizes[0])
		e.w.Write(") { ")
		e.sizedArray(elem, sizes[1:])
		e.w.Write(" }")

		return
	}

	if value, ok := e.mapper.DefaultValue(elem); ok {
		e.w.Write("Array(")
		e.expr(sizes[0])
		e.w.Write(") { " + value + " }")

		return
	}

	e.w.Write("arrayOfNulls<" + e.mapper.MapType(elem) + ">(")
	e.expr(sizes[0])
	e.w.Write(")")
}

// isType writes `x is T`. A declared pattern variable becomes an alias of
// the tested expression, which Kotlin smart casts.
func (e *Emitter) isType(x *ast.IsType) {
	if x.Name != "" {
		if sym := e.symbol(x); sym != nil {
			e.aliases[sym] = strings.TrimSpace(e.capture(func() { e.expr(x.X) }))
		}
	}

	e.expr(x.X)
	e.w.Write(" is " + e.typeText(x.Type))
}

func (e *Emitter) tuple(x *ast.Tuple) {
	var name string

	switch len(x.Elems) {
	case 2:
		name = "Pair"
	case 3:
		name = "Triple"
	default:
		e.w.Raw(e.marker("tuple expression", x))
		return
	}

	e.w.Write(name + "(")

	for i, elem := range x.Elems {
		if i > 0 {
			e.w.Write(", ")
		}

		e.expr(elem.X)
	}

	e.w.Write(")")
}
