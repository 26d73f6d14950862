package ast

// TypeKind distinguishes the flavours of TypeDecl.
type TypeKind int

// Available TypeKind values.
const (
	ClassKind TypeKind = iota
	StructKind
	InterfaceKind
	RecordKind
)

func (k TypeKind) String() string {
	switch k {
	case ClassKind:
		return "class"
	case StructKind:
		return "struct"
	case InterfaceKind:
		return "interface"
	case RecordKind:
		return "record"
	default:
		return "unknown"
	}
}

// CompilationUnit is the root of one translation unit.
type CompilationUnit struct {
	Pos
	Path    string
	Usings  []string
	Members []Decl
}

// Namespace groups declarations. FileScoped namespaces own every following
// declaration of the file.
type Namespace struct {
	Pos
	Name       string
	FileScoped bool
	Members    []Decl
}

// TypeDecl is a class, struct, interface or record declaration.
type TypeDecl struct {
	Pos
	Kind       TypeKind
	Name       string
	Modifiers  Modifiers
	TypeParams []string
	Bases      []TypeRef
	// Params holds the positional parameters of a record.
	Params  []*Parameter
	Members []Decl
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Pos
	Name      string
	Modifiers Modifiers
	Members   []*EnumMember
}

// EnumMember is one enumerator.
type EnumMember struct {
	Pos
	Name  string
	Value Expr
}

// DelegateDecl declares a named function type.
type DelegateDecl struct {
	Pos
	Name       string
	Modifiers  Modifiers
	TypeParams []string
	Return     TypeRef
	Params     []*Parameter
}

// FieldDecl declares one or more fields sharing a type.
type FieldDecl struct {
	Pos
	Modifiers Modifiers
	Type      TypeRef
	Vars      []*VarDeclarator
}

// VarDeclarator is a single declared name with an optional initializer.
type VarDeclarator struct {
	Pos
	Name string
	Init Expr
}

// Accessor is a get, set or init accessor of a property.
type Accessor struct {
	Pos
	Kind      string
	Modifiers Modifiers
	Body      *Block
	Expr      Expr
}

// PropertyDecl declares a property. Accessors is nil for expression bodied
// properties, which carry their getter in ExprBody.
type PropertyDecl struct {
	Pos
	Modifiers Modifiers
	Type      TypeRef
	Name      string
	Accessors []*Accessor
	ExprBody  Expr
	Init      Expr
}

// Accessor returns the accessor of the given kind, or nil.
func (p *PropertyDecl) Accessor(kind string) *Accessor {
	for _, a := range p.Accessors {
		if a.Kind == kind {
			return a
		}
	}

	return nil
}

// HasSetter reports whether the property declares a set or init accessor.
func (p *PropertyDecl) HasSetter() bool {
	return p.Accessor("set") != nil || p.Accessor("init") != nil
}

// Parameter is a method, constructor, lambda or record parameter. Type is nil
// for implicitly typed lambda parameters.
type Parameter struct {
	Pos
	Modifiers Modifiers
	Type      TypeRef
	Name      string
	Default   Expr
}

// MethodDecl declares a method. Body and ExprBody are both nil for abstract
// and interface methods.
type MethodDecl struct {
	Pos
	Modifiers  Modifiers
	Return     TypeRef
	Name       string
	TypeParams []string
	Params     []*Parameter
	Body       *Block
	ExprBody   Expr
}

// ConstructorInit is the `: base(...)` or `: this(...)` chain of a constructor.
type ConstructorInit struct {
	Pos
	Base bool
	Args []*Argument
}

// ConstructorDecl declares an instance or static constructor.
type ConstructorDecl struct {
	Pos
	Modifiers Modifiers
	Name      string
	Params    []*Parameter
	Init      *ConstructorInit
	Body      *Block
	ExprBody  Expr
}

func (*CompilationUnit) declNode() {}
func (*Namespace) declNode()       {}
func (*TypeDecl) declNode()        {}
func (*EnumDecl) declNode()        {}
func (*DelegateDecl) declNode()    {}
func (*FieldDecl) declNode()       {}
func (*PropertyDecl) declNode()    {}
func (*MethodDecl) declNode()      {}
func (*ConstructorDecl) declNode() {}

// Mods returns the modifiers of the type.
func (d *TypeDecl) Mods() Modifiers { return d.Modifiers }

// Mods returns the modifiers of the enum.
func (d *EnumDecl) Mods() Modifiers { return d.Modifiers }

// Mods returns the modifiers of the delegate.
func (d *DelegateDecl) Mods() Modifiers { return d.Modifiers }

// Mods returns the modifiers of the field.
func (d *FieldDecl) Mods() Modifiers { return d.Modifiers }

// Mods returns the modifiers of the property.
func (d *PropertyDecl) Mods() Modifiers { return d.Modifiers }

// Mods returns the modifiers of the method.
func (d *MethodDecl) Mods() Modifiers { return d.Modifiers }

// Mods returns the modifiers of the constructor.
func (d *ConstructorDecl) Mods() Modifiers { return d.Modifiers }
