package emitter

import (
	"strconv"
	"strings"
	"unicode"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

func (e *Emitter) unit(u *ast.CompilationUnit) {
	e.decls(u.Members)
}

func (e *Emitter) decls(decls []ast.Decl) {
	for i, d := range decls {
		if i > 0 {
			e.w.Line("")
		}

		e.decl(d)
	}
}

//nolint:gocyclo,cyclop // one case per declaration kind
func (e *Emitter) decl(d ast.Decl) {
	switch d := d.(type) {
	case nil:
	case *ast.CompilationUnit:
		e.decls(d.Members)
	case *ast.Namespace:
		e.namespace(d)
	case *ast.TypeDecl:
		e.typeDecl(d)
	case *ast.EnumDecl:
		e.enumDecl(d)
	case *ast.DelegateDecl:
		e.delegateDecl(d)
	case *ast.FieldDecl:
		e.field(d)
	case *ast.PropertyDecl:
		e.property(d)
	case *ast.MethodDecl:
		e.function(d, true)
	case *ast.ConstructorDecl:
		e.constructor(d)
	case *ast.Unsupported:
		e.markerLine(d.Construct, d)
	default:
		e.fail("declaration", d)
	}
}

func (e *Emitter) namespace(ns *ast.Namespace) {
	if !e.pkg {
		e.pkg = true
		e.w.Line("package " + strings.ToLower(ns.Name))
		e.w.Line("")
	}

	e.decls(ns.Members)
}

func (e *Emitter) typeDecl(d *ast.TypeDecl) {
	o := owner{
		decl:      d,
		iface:     d.Kind == ast.InterfaceKind,
		singleton: d.Modifiers.Has("static"),
	}
	o.baseClass = !o.iface && len(d.Bases) > 0 && e.isClassBase(d.Bases[0])

	var statics, instance []ast.Decl

	for _, member := range d.Members {
		if !o.singleton && e.isStaticMember(member) {
			statics = append(statics, member)
		} else {
			instance = append(instance, member)
		}
	}

	e.typeHeader(d, o)

	if len(statics) == 0 && len(instance) == 0 {
		e.w.Line("")
		return
	}

	e.owners = append(e.owners, o)
	defer func() { e.owners = e.owners[:len(e.owners)-1] }()

	e.w.Line(" {")
	e.w.Enter()

	if len(statics) > 0 {
		e.w.Line("companion object {")
		e.w.Enter()
		e.members(statics)
		e.w.Leave()
		e.w.Line("}")

		if len(instance) > 0 {
			e.w.Line("")
		}
	}

	e.members(instance)
	e.w.Leave()
	e.w.Line("}")
}

// typeHeader writes the declaration line of d up to, but excluding, its body.
func (e *Emitter) typeHeader(d *ast.TypeDecl, o owner) {
	var parts []string
	if v := visibility(d.Modifiers); v != "" {
		parts = append(parts, v)
	}

	switch {
	case o.singleton:
		parts = append(parts, "object")
	case o.iface:
		parts = append(parts, "interface")
	case d.Kind == ast.RecordKind:
		parts = append(parts, "data class")
	default:
		switch {
		case d.Modifiers.Has("abstract"):
			parts = append(parts, "abstract")
		case d.Modifiers.Has("sealed"), d.Kind == ast.StructKind:
		default:
			parts = append(parts, "open")
		}

		parts = append(parts, "class")
	}

	name := ident(d.Name)
	if o.iface && looksLikeInterface(d.Name) {
		name = ident(d.Name[1:])
	}

	e.w.Write(strings.Join(parts, " ") + " " + name)

	if len(d.TypeParams) > 0 && !o.singleton {
		e.w.Write("<" + strings.Join(d.TypeParams, ", ") + ">")
	}

	if d.Kind == ast.RecordKind {
		e.w.Write("(")

		for i, p := range d.Params {
			if i > 0 {
				e.w.Write(", ")
			}

			e.w.Write("val " + lowerFirst(p.Name) + " : " + e.typeText(p.Type))

			if p.Default != nil {
				e.w.Write(" = ")
				e.expr(p.Default)
			}
		}

		e.w.Write(")")
	}

	if len(d.Bases) == 0 {
		return
	}

	secondary := false

	for _, member := range d.Members {
		if c, ok := member.(*ast.ConstructorDecl); ok && !c.Modifiers.Has("static") {
			secondary = true
		}
	}

	bases := make([]string, 0, len(d.Bases))
	for i, base := range d.Bases {
		text := e.typeText(base)
		if i == 0 && o.baseClass && !secondary {
			text += "()"
		}

		bases = append(bases, text)
	}

	e.w.Write(" : " + strings.Join(bases, ", "))
}

// isClassBase reports whether a base list entry names a class rather than
// an interface.
func (e *Emitter) isClassBase(base ast.TypeRef) bool {
	desc := e.typeOf(base)

	switch {
	case desc.Kind == semantic.Class:
		return true
	case desc.Kind == semantic.Generic:
		return desc.Container == semantic.Class
	case desc.Kind == semantic.Unresolved:
		name := ""
		if named, ok := base.(*ast.NamedType); ok {
			name = named.Name
		}

		return !looksLikeInterface(name)
	}

	return false
}

func looksLikeInterface(name string) bool {
	runes := []rune(name)

	return len(runes) >= 2 && runes[0] == 'I' && unicode.IsUpper(runes[1])
}

func (e *Emitter) isStaticMember(d ast.Decl) bool {
	switch d.(type) {
	case *ast.TypeDecl, *ast.EnumDecl, *ast.DelegateDecl, *ast.Unsupported:
		return false
	}

	member, ok := d.(ast.Member)

	return ok && e.table.IsStatic(member)
}

func (e *Emitter) members(decls []ast.Decl) {
	for i, d := range decls {
		if i > 0 && (!compact(decls[i-1]) || !compact(d)) {
			e.w.Line("")
		}

		e.decl(d)
	}
}

// compact reports whether a member renders on a single line, so that runs of
// such members need no blank lines between them.
func compact(d ast.Decl) bool {
	switch d := d.(type) {
	case *ast.FieldDecl:
		return true
	case *ast.PropertyDecl:
		if d.ExprBody != nil {
			return false
		}

		for _, a := range d.Accessors {
			if a.Body != nil || a.Expr != nil {
				return false
			}
		}

		return true
	}

	return false
}

func (e *Emitter) enumDecl(d *ast.EnumDecl) {
	head := prefixed(visibility(d.Modifiers), "enum class "+ident(d.Name))

	valued := false

	for _, member := range d.Members {
		if member.Value != nil {
			valued = true
		}
	}

	if valued {
		head += "(val value : Int)"
	}

	if len(d.Members) == 0 {
		e.w.Line(head)
		return
	}

	e.w.Line(head + " {")
	e.w.Enter()

	next, known := 0, true

	for i, member := range d.Members {
		if i > 0 {
			e.w.Write(", ")
		}

		e.w.Write(ident(member.Name))

		if !valued {
			continue
		}

		e.w.Write("(")

		switch {
		case member.Value != nil:
			e.expr(member.Value)

			next, known = enumValue(member.Value)
		case known:
			e.w.Write(strconv.Itoa(next))
		default:
			e.w.Write(strconv.Itoa(i))
		}

		e.w.Write(")")

		next++
	}

	e.w.Line("")
	e.w.Leave()
	e.w.Line("}")
}

func enumValue(x ast.Expr) (int, bool) {
	lit, ok := x.(*ast.Literal)
	if !ok || lit.Kind != ast.IntLiteral {
		return 0, false
	}

	v, err := strconv.Atoi(lit.Value)
	if err != nil {
		return 0, false
	}

	return v, true
}

func (e *Emitter) delegateDecl(d *ast.DelegateDecl) {
	shape := &semantic.TypeDescriptor{Kind: semantic.Delegate, Name: d.Name, Return: e.typeOf(d.Return)}
	for _, p := range d.Params {
		shape.Params = append(shape.Params, e.typeOf(p.Type))
	}

	name := ident(d.Name)
	if len(d.TypeParams) > 0 {
		name += "<" + strings.Join(d.TypeParams, ", ") + ">"
	}

	e.w.Line(prefixed(visibility(d.Modifiers), "typealias "+name+" = "+e.mapper.MapType(shape)))
}

func (e *Emitter) field(d *ast.FieldDecl) {
	desc := e.typeOf(d.Type)
	typ := e.mapper.MapType(desc)

	var mods []string
	if d.Modifiers.Has("volatile") {
		mods = append(mods, "@Volatile")
	}

	if v := visibility(d.Modifiers); v != "" && !e.currentOwner().iface {
		mods = append(mods, v)
	}

	prefix := strings.Join(mods, " ")

	for _, v := range d.Vars {
		binding := "var"
		if d.Modifiers.Any("readonly", "const") || !e.isMutated(v) {
			binding = "val"
		}

		name := ident(v.Name) + " : " + typ

		switch {
		case v.Init != nil:
			if d.Modifiers.Has("const") && constable(desc) {
				binding = "const val"
			}

			e.w.Write(prefixed(prefix, binding+" "+name+" = "))
			e.expr(v.Init)
			e.w.Line("")
		default:
			if value, ok := e.mapper.DefaultValue(desc); ok {
				e.w.Line(prefixed(prefix, binding+" "+name+" = "+value))
				continue
			}

			if desc.Kind == semantic.Nullable {
				e.w.Line(prefixed(prefix, binding+" "+name+" = null"))
				continue
			}

			e.w.Line(prefixed(prefix, "lateinit var "+name))
		}
	}
}

// constable reports whether a constant of type d can be a Kotlin const val.
func constable(d *semantic.TypeDescriptor) bool {
	switch d.Name {
	case "Boolean", "Char", "Byte", "SByte", "Int16", "UInt16", "Int32", "UInt32",
		"Int64", "UInt64", "Single", "Double", "String":
		return true
	}

	return false
}

func (e *Emitter) property(d *ast.PropertyDecl) {
	mods := e.memberModifiers(d.Modifiers, e.symbol(d))

	binding := "val"
	if d.HasSetter() {
		binding = "var"
	}

	head := prefixed(strings.Join(mods, " "), binding+" "+lowerFirst(d.Name)+" : "+e.typeText(d.Type))

	if d.Init != nil {
		e.w.Write(head + " = ")
		e.expr(d.Init)
		e.w.Line("")
	} else {
		e.w.Line(head)
	}

	e.w.Enter()
	defer e.w.Leave()

	if d.ExprBody != nil {
		e.w.Line("get() {")
		e.w.Enter()
		e.w.Write("return ")
		e.expr(d.ExprBody)
		e.w.Line("")
		e.w.Leave()
		e.w.Line("}")

		return
	}

	for _, a := range d.Accessors {
		e.accessor(a)
	}
}

func (e *Emitter) accessor(a *ast.Accessor) {
	kind := a.Kind
	if kind == "init" {
		kind = "set"
	}

	vis := visibility(a.Modifiers)

	if a.Body == nil && a.Expr == nil {
		if vis != "" {
			e.w.Line(vis + " " + kind)
		}

		return
	}

	header := "get() "
	if kind == "set" {
		header = "set(value) "
	}

	e.w.Write(prefixed(vis, header))

	switch {
	case a.Body != nil:
		e.body(a.Body)
	case kind == "get":
		e.w.Line("{")
		e.w.Enter()
		e.w.Write("return ")
		e.expr(a.Expr)
		e.w.Line("")
		e.w.Leave()
		e.w.Write("}")
	default:
		e.w.Line("{")
		e.w.Enter()
		e.expr(a.Expr)
		e.w.Line("")
		e.w.Leave()
		e.w.Write("}")
	}

	e.w.Line("")
}

// memberModifiers maps the visibility and inheritance modifiers of a member.
func (e *Emitter) memberModifiers(mods ast.Modifiers, sym semantic.Symbol) []string {
	o := e.currentOwner()

	var out []string

	if v := visibility(mods); v != "" && !o.iface {
		out = append(out, v)
	}

	switch {
	case mods.Has("override"):
		out = append(out, "override")
	case !o.iface && e.implementsInterface(sym):
		out = append(out, "override")
	case mods.Has("abstract") && !o.iface:
		out = append(out, "abstract")
	case mods.Has("virtual") && !o.iface:
		out = append(out, "open")
	}

	return out
}

func (e *Emitter) implementsInterface(sym semantic.Symbol) bool {
	if e.facade == nil || sym == nil || sym.IsStatic() {
		return false
	}

	return len(e.facade.ImplementedMembers(sym)) > 0
}

func (e *Emitter) function(d *ast.MethodDecl, member bool) {
	ret := e.typeOf(d.Return)

	var mods []string
	if member {
		mods = e.memberModifiers(d.Modifiers, e.symbol(d))
	}

	if e.mapper.IsAsync(ret) || d.Modifiers.Has("async") {
		mods = append(mods, "suspend")
	}

	if member && d.Name == "Main" && d.Modifiers.Has("static") {
		e.w.Line("@JvmStatic")
	}

	head := "fun "
	if len(d.TypeParams) > 0 {
		head += "<" + strings.Join(d.TypeParams, ", ") + "> "
	}

	e.w.Write(prefixed(strings.Join(mods, " "), head+lowerFirst(d.Name)+"("))
	e.params(d.Params)
	e.w.Write(")")

	retText := ""
	if !e.mapper.IsUnit(ret) {
		retText = e.mapper.MapType(ret)
		e.w.Write(" : " + retText)
	}

	switch {
	case d.Body == nil && d.ExprBody == nil:
		e.w.Line("")
	case d.ExprBody != nil:
		e.w.Write(" = ")
		e.expr(d.ExprBody)
		e.w.Line("")
	case yields(d.Body):
		saved := e.sequence
		e.sequence = true

		e.w.Write(" = sequence ")
		e.body(d.Body)

		e.sequence = saved

		if strings.HasPrefix(retText, "Iterable<") {
			e.w.Line(".asIterable()")
		} else {
			e.w.Line("")
		}
	default:
		e.w.Write(" ")
		e.body(d.Body)
		e.w.Line("")
	}
}

// yields reports whether body contains a yield outside nested lambdas and
// local functions.
func yields(body *ast.Block) bool {
	if body == nil {
		return false
	}

	found := false

	ast.Walk(body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Yield:
			found = true
		case *ast.Lambda, *ast.LocalFunc:
			return false
		}

		return !found
	})

	return found
}

func (e *Emitter) params(params []*ast.Parameter) {
	for i, p := range params {
		if i > 0 {
			e.w.Write(", ")
		}

		if p.Modifiers.Has("params") {
			elem := e.typeOf(p.Type).ElementType()
			e.w.Write("vararg " + ident(p.Name) + " : " + e.mapper.MapType(elem))
		} else {
			e.w.Write(ident(p.Name) + " : " + e.typeText(p.Type))
		}

		if p.Default != nil {
			e.w.Write(" = ")
			e.expr(p.Default)
		}
	}
}

func (e *Emitter) constructor(d *ast.ConstructorDecl) {
	if d.Modifiers.Has("static") {
		e.w.Write("init ")
		e.body(d.Body)
		e.w.Line("")

		return
	}

	e.w.Write(prefixed(visibility(d.Modifiers), "constructor("))
	e.params(d.Params)
	e.w.Write(")")

	switch {
	case d.Init != nil && d.Init.Base:
		e.w.Write(" : super")
		e.CallArgs(d.Init.Args)
	case d.Init != nil:
		e.w.Write(" : this")
		e.CallArgs(d.Init.Args)
	case e.currentOwner().baseClass:
		e.w.Write(" : super()")
	}

	switch {
	case d.ExprBody != nil:
		e.w.Write(" ")
		e.body(&ast.ExprStmt{X: d.ExprBody})
	case d.Body != nil:
		e.w.Write(" ")
		e.body(d.Body)
	}

	e.w.Line("")
}

func visibility(mods ast.Modifiers) string {
	switch {
	case mods.Has("private"):
		return "private"
	case mods.Has("protected"):
		return "protected"
	case mods.Has("internal"):
		return "internal"
	}

	return ""
}

func prefixed(prefix, text string) string {
	if prefix == "" {
		return text
	}

	return prefix + " " + text
}
