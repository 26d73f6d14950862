package semantic

import (
	"strings"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

// keywordTypes maps C# keyword types to their CLR names.
var keywordTypes = map[string]string{
	"bool":    "Boolean",
	"byte":    "Byte",
	"sbyte":   "SByte",
	"char":    "Char",
	"short":   "Int16",
	"ushort":  "UInt16",
	"int":     "Int32",
	"uint":    "UInt32",
	"long":    "Int64",
	"ulong":   "UInt64",
	"nint":    "IntPtr",
	"float":   "Single",
	"double":  "Double",
	"decimal": "Decimal",
	"string":  "String",
	"object":  "Object",
	"dynamic": "Object",
	"void":    "Void",
}

// ClrName returns the CLR name for a C# keyword type, or name unchanged.
func ClrName(name string) string {
	if clr, ok := keywordTypes[name]; ok {
		return clr
	}

	return name
}

// TypeInfo describes a type known to an Index.
type TypeInfo struct {
	Name        string
	Kind        Kind
	Static      bool
	Source      bool
	Bases       []string
	TypeParams  []string
	EnumMembers []string

	delegate *TypeDescriptor
	members  map[string]*symbol
	self     *symbol
	decls    []ast.Decl
}

// Index is the table of types visible to every unit of a project: library
// types from a Catalog and types declared in the parsed sources. It is
// read-only once built and may be shared across goroutines.
type Index struct {
	types    map[string]*TypeInfo
	declared map[ast.Node]*symbol
}

// NewIndex builds an index from a catalog and the given units. A nil catalog
// means the embedded default.
func NewIndex(catalog *Catalog, units ...*ast.CompilationUnit) *Index {
	idx := &Index{
		types:    map[string]*TypeInfo{},
		declared: map[ast.Node]*symbol{},
	}

	if catalog == nil {
		catalog, _ = DefaultCatalog()
	}

	var catalogTypes []CatalogType
	if catalog != nil {
		catalogTypes = catalog.Types
	}

	for _, t := range catalogTypes {
		kind, _ := ParseKind(t.Kind)
		info := &TypeInfo{
			Name:        t.Name,
			Kind:        kind,
			Static:      t.Static,
			Bases:       t.Bases,
			EnumMembers: t.EnumMembers,
			members:     map[string]*symbol{},
		}
		info.self = &symbol{name: t.Name, kind: TypeSymbol, static: t.Static, info: info}
		idx.types[t.Name] = info
	}

	for _, unit := range units {
		if unit == nil {
			continue
		}

		for _, d := range unit.Members {
			idx.collect(d)
		}
	}

	for _, t := range catalogTypes {
		info := idx.types[t.Name]
		if info == nil || info.Source {
			continue
		}

		for _, member := range t.Members {
			kind, _ := parseMemberKind(member.Kind)
			info.addMember(&symbol{
				name:      member.Name,
				kind:      kind,
				container: info.self,
				static:    member.Static || t.Static,
				typ:       idx.describeName(member.Type),
			})
		}
	}

	for _, info := range idx.types {
		if !info.Source {
			continue
		}

		for _, d := range info.decls {
			idx.resolveMembers(info, d)
		}
	}

	return idx
}

// Lookup returns the type with the given simple name.
func (idx *Index) Lookup(name string) (*TypeInfo, bool) {
	info, ok := idx.types[ClrName(name)]

	return info, ok
}

func (idx *Index) collect(d ast.Decl) {
	switch d := d.(type) {
	case *ast.Namespace:
		for _, member := range d.Members {
			idx.collect(member)
		}
	case *ast.TypeDecl:
		kind := Class

		switch d.Kind {
		case ast.StructKind:
			kind = Struct
		case ast.InterfaceKind:
			kind = Interface
		case ast.ClassKind, ast.RecordKind:
		}

		info := idx.sourceType(d.Name, kind, d)
		info.Static = info.Static || d.Modifiers.Has("static")
		info.self.static = info.Static
		info.TypeParams = d.TypeParams

		for _, base := range d.Bases {
			if name := typeRefName(base); name != "" {
				info.Bases = append(info.Bases, name)
			}
		}

		for _, member := range d.Members {
			switch member.(type) {
			case *ast.TypeDecl, *ast.EnumDecl, *ast.DelegateDecl:
				idx.collect(member)
			}
		}
	case *ast.EnumDecl:
		info := idx.sourceType(d.Name, Enum, d)
		for _, member := range d.Members {
			info.EnumMembers = append(info.EnumMembers, member.Name)
		}
	case *ast.DelegateDecl:
		info := idx.sourceType(d.Name, Delegate, d)
		info.TypeParams = d.TypeParams
	}
}

// sourceType returns the source TypeInfo for name, replacing any library
// type of the same name. Partial declarations share one TypeInfo.
func (idx *Index) sourceType(name string, kind Kind, decl ast.Decl) *TypeInfo {
	info, ok := idx.types[name]
	if !ok || !info.Source {
		info = &TypeInfo{
			Name:    name,
			Kind:    kind,
			Source:  true,
			members: map[string]*symbol{},
		}
		info.self = &symbol{name: name, kind: TypeSymbol, source: true, info: info}
		idx.types[name] = info
	}

	info.decls = append(info.decls, decl)
	idx.declared[decl] = info.self

	return info
}

func (idx *Index) resolveMembers(info *TypeInfo, d ast.Decl) {
	switch d := d.(type) {
	case *ast.TypeDecl:
		params := typeParamSet(nil, d.TypeParams)

		for _, p := range d.Params {
			sym := &symbol{
				name:      p.Name,
				kind:      PropertySymbol,
				container: info.self,
				source:    true,
				typ:       idx.describe(p.Type, params),
				decl:      p,
			}
			idx.declared[p] = sym
			info.addMember(sym)
		}

		for _, member := range d.Members {
			idx.resolveMember(info, member, params)
		}
	case *ast.EnumDecl:
		self := idx.descriptorFor(info, nil)

		for _, member := range d.Members {
			sym := &symbol{
				name:      member.Name,
				kind:      EnumMemberSymbol,
				container: info.self,
				static:    true,
				source:    true,
				typ:       self,
				decl:      member,
			}
			idx.declared[member] = sym
			info.addMember(sym)
		}
	case *ast.DelegateDecl:
		params := typeParamSet(nil, d.TypeParams)
		shape := &TypeDescriptor{Kind: Delegate, Name: d.Name, Return: idx.describe(d.Return, params)}

		for _, p := range d.Params {
			shape.Params = append(shape.Params, idx.describe(p.Type, params))
		}

		info.delegate = shape
	}
}

func (idx *Index) resolveMember(info *TypeInfo, member ast.Decl, params map[string]bool) {
	newSymbol := func(name string, kind SymbolKind, mods ast.Modifiers, typ *TypeDescriptor, decl ast.Node) *symbol {
		sym := &symbol{
			name:      name,
			kind:      kind,
			container: info.self,
			static:    info.Static || mods.Any("static", "const"),
			source:    true,
			typ:       typ,
			decl:      decl,
		}
		idx.declared[decl] = sym

		return sym
	}

	switch m := member.(type) {
	case *ast.FieldDecl:
		typ := idx.describe(m.Type, params)
		for _, v := range m.Vars {
			info.addMember(newSymbol(v.Name, FieldSymbol, m.Modifiers, typ, v))
		}
	case *ast.PropertyDecl:
		info.addMember(newSymbol(m.Name, PropertySymbol, m.Modifiers, idx.describe(m.Type, params), m))
	case *ast.MethodDecl:
		methodParams := typeParamSet(params, m.TypeParams)
		info.addMember(newSymbol(m.Name, MethodSymbol, m.Modifiers, idx.describe(m.Return, methodParams), m))
	}
}

func (t *TypeInfo) addMember(sym *symbol) {
	if _, exists := t.members[sym.name]; !exists {
		t.members[sym.name] = sym
	}
}

// member finds name on info or, breadth first, on its bases.
func (idx *Index) member(info *TypeInfo, name string) *symbol {
	seen := map[*TypeInfo]bool{}
	queue := []*TypeInfo{info}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == nil || seen[current] {
			continue
		}

		seen[current] = true

		if sym, ok := current.members[name]; ok {
			return sym
		}

		for _, base := range current.Bases {
			if baseInfo, ok := idx.Lookup(base); ok {
				queue = append(queue, baseInfo)
			}
		}
	}

	return nil
}

// baseClass returns the first base of info that is not an interface.
func (idx *Index) baseClass(info *TypeInfo) *TypeInfo {
	if info == nil {
		return nil
	}

	for _, base := range info.Bases {
		if baseInfo, ok := idx.Lookup(base); ok && baseInfo.Kind != Interface {
			return baseInfo
		}
	}

	return nil
}

// describe resolves a syntactic type. params holds the type parameters in
// scope at the reference.
func (idx *Index) describe(ref ast.TypeRef, params map[string]bool) *TypeDescriptor {
	switch t := ref.(type) {
	case nil:
		return UnresolvedType("")
	case *ast.PredefinedType:
		return idx.describeNamed(ClrName(t.Name), nil, t.Span().Text)
	case *ast.NamedType:
		if params[t.Name] && len(t.Args) == 0 {
			return &TypeDescriptor{Kind: TypeParam, Name: t.Name}
		}

		args := make([]*TypeDescriptor, 0, len(t.Args))
		for _, arg := range t.Args {
			args = append(args, idx.describe(arg, params))
		}

		text := t.Span().Text
		if text == "" {
			text = t.Name
		}

		return idx.describeNamed(ClrName(t.Name), args, text)
	case *ast.ArrayType:
		desc := idx.describe(t.Elem, params)
		for range max(t.Rank, 1) {
			desc = &TypeDescriptor{Kind: Array, Name: "Array", Elem: desc}
		}

		return desc
	case *ast.NullableType:
		inner := idx.describe(t.Inner, params)
		if inner.Kind == Nullable {
			return inner
		}

		return &TypeDescriptor{Kind: Nullable, Elem: inner}
	case *ast.TupleType:
		args := make([]*TypeDescriptor, 0, len(t.Elems))
		for _, elem := range t.Elems {
			args = append(args, idx.describe(elem, params))
		}

		return &TypeDescriptor{Kind: Generic, Name: "ValueTuple", Args: args}
	case *ast.PointerType:
		return UnresolvedType(t.Span().Text)
	case *ast.Unsupported:
		return UnresolvedType(t.Span().Text)
	}

	return UnresolvedType(ref.Span().Text)
}

// describeName resolves a catalog type spelling such as "Int32" or "Byte[]".
func (idx *Index) describeName(name string) *TypeDescriptor {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		return &TypeDescriptor{Kind: Array, Name: "Array", Elem: idx.describeName(elem)}
	}

	return idx.describeNamed(ClrName(name), nil, name)
}

func (idx *Index) describeNamed(name string, args []*TypeDescriptor, text string) *TypeDescriptor {
	info, ok := idx.types[name]
	if !ok {
		return UnresolvedType(text)
	}

	return idx.descriptorFor(info, args)
}

func (idx *Index) descriptorFor(info *TypeInfo, args []*TypeDescriptor) *TypeDescriptor {
	switch {
	case info.Kind == Async:
		return &TypeDescriptor{Kind: Async, Name: info.Name, Args: args}
	case info.Kind == Delegate:
		return delegateShape(info, args)
	case info.Name == "Nullable" && len(args) == 1:
		return &TypeDescriptor{Kind: Nullable, Elem: args[0]}
	case len(args) > 0:
		return &TypeDescriptor{Kind: Generic, Container: info.Kind, Name: info.Name, Args: args}
	}

	return &TypeDescriptor{Kind: info.Kind, Name: info.Name, EnumMembers: info.EnumMembers}
}

func delegateShape(info *TypeInfo, args []*TypeDescriptor) *TypeDescriptor {
	void := &TypeDescriptor{Kind: Primitive, Name: "Void"}

	switch {
	case info.delegate != nil:
		shape := *info.delegate
		return &shape
	case info.Name == "Func" && len(args) > 0:
		return &TypeDescriptor{Kind: Delegate, Name: info.Name, Params: args[:len(args)-1], Return: args[len(args)-1]}
	case info.Name == "Predicate" && len(args) == 1:
		return &TypeDescriptor{Kind: Delegate, Name: info.Name, Params: args, Return: &TypeDescriptor{Kind: Primitive, Name: "Boolean"}}
	default:
		return &TypeDescriptor{Kind: Delegate, Name: info.Name, Params: args, Return: void}
	}
}

func typeParamSet(outer map[string]bool, names []string) map[string]bool {
	set := make(map[string]bool, len(outer)+len(names))
	for k := range outer {
		set[k] = true
	}

	for _, name := range names {
		set[name] = true
	}

	return set
}

func typeRefName(ref ast.TypeRef) string {
	switch t := ref.(type) {
	case *ast.NamedType:
		return t.Name
	case *ast.PredefinedType:
		return ClrName(t.Name)
	}

	return ""
}
