package ast

// NamedType is a possibly qualified, possibly generic type name.
type NamedType struct {
	Pos
	Qualifier string
	Name      string
	Args      []TypeRef
}

// PredefinedType is a keyword type such as `int` or `string`.
type PredefinedType struct {
	Pos
	Name string
}

// ArrayType is `Elem[]`; Rank counts the dimensions.
type ArrayType struct {
	Pos
	Elem TypeRef
	Rank int
}

// NullableType is `Inner?`.
type NullableType struct {
	Pos
	Inner TypeRef
}

// PointerType is `Elem*`.
type PointerType struct {
	Pos
	Elem TypeRef
}

// TupleType is `(A, B)`.
type TupleType struct {
	Pos
	Elems []TypeRef
}

func (*NamedType) typeNode()      {}
func (*PredefinedType) typeNode() {}
func (*ArrayType) typeNode()      {}
func (*NullableType) typeNode()   {}
func (*PointerType) typeNode()    {}
func (*TupleType) typeNode()      {}
