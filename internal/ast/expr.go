package ast

// LiteralKind classifies literal tokens.
type LiteralKind int

// Available LiteralKind values.
const (
	IntLiteral LiteralKind = iota
	RealLiteral
	StringLiteral
	VerbatimStringLiteral
	CharLiteral
	BoolLiteral
	NullLiteral
)

// Ident is a simple name.
type Ident struct {
	Pos
	Name string
}

// Literal is a literal token; Value is its source spelling.
type Literal struct {
	Pos
	Kind  LiteralKind
	Value string
}

// InterpolationPart is either literal text or a spliced expression.
type InterpolationPart struct {
	Text      string
	X         Expr
	Alignment string
	Format    string
}

// Interpolated is an interpolated string `$"..."`.
type Interpolated struct {
	Pos
	Verbatim bool
	Parts    []InterpolationPart
}

// Binary is a binary operator expression, including `is`, `as` and `??`
// when written with an expression on the right.
type Binary struct {
	Pos
	Op string
	L  Expr
	R  Expr
}

// Unary is a prefix or postfix operator expression.
type Unary struct {
	Pos
	Op      string
	X       Expr
	Postfix bool
}

// Assign is a simple or compound assignment.
type Assign struct {
	Pos
	Op string
	L  Expr
	R  Expr
}

// Argument is one call argument; Modifier is "ref", "out", "in" or empty.
type Argument struct {
	Pos
	Name     string
	Modifier string
	X        Expr
}

// Invocation is a call expression.
type Invocation struct {
	Pos
	Fn   Expr
	Args []*Argument
}

// MemberAccess is `X.Name` or, with NullSafe, `X?.Name`.
type MemberAccess struct {
	Pos
	X        Expr
	Name     string
	TypeArgs []TypeRef
	NullSafe bool
}

// GenericName is a simple name with type arguments, such as `Make<int>`.
type GenericName struct {
	Pos
	Name     string
	TypeArgs []TypeRef
}

// ElementAccess is an indexer access.
type ElementAccess struct {
	Pos
	X     Expr
	Index []*Argument
}

// Conditional is the ternary operator.
type Conditional struct {
	Pos
	Cond Expr
	Then Expr
	Else Expr
}

// Paren is a parenthesized expression.
type Paren struct {
	Pos
	X Expr
}

// Cast is `(Type)X`.
type Cast struct {
	Pos
	Type TypeRef
	X    Expr
}

// Initializer is a braced initializer list; elements may be assignments
// (object initializers) or nested initializers (dictionary entries).
type Initializer struct {
	Pos
	Elems []Expr
}

// ObjectCreation is `new Type(args) { init }`.
type ObjectCreation struct {
	Pos
	Type TypeRef
	Args []*Argument
	Init *Initializer
}

// ArrayCreation is `new T[n]` or `new T[] { ... }`. Elem is nil for
// implicitly typed arrays.
type ArrayCreation struct {
	Pos
	Elem  TypeRef
	Sizes []Expr
	Init  *Initializer
}

// Lambda is an anonymous function. Body is an Expr or a *Block.
type Lambda struct {
	Pos
	Async  bool
	Params []*Parameter
	Body   Node
}

// This is the `this` reference.
type This struct {
	Pos
}

// Super is the `base` reference.
type Super struct {
	Pos
}

// TypeOf is `typeof(Type)`.
type TypeOf struct {
	Pos
	Type TypeRef
}

// Default is `default(Type)` or the `default` literal when Type is nil.
type Default struct {
	Pos
	Type TypeRef
}

// IsType is `X is Type [name]`.
type IsType struct {
	Pos
	X    Expr
	Type TypeRef
	Name string
}

// As is `X as Type`.
type As struct {
	Pos
	X    Expr
	Type TypeRef
}

// Await is `await X`.
type Await struct {
	Pos
	X Expr
}

// Tuple is a tuple literal.
type Tuple struct {
	Pos
	Elems []*Argument
}

// ThrowExpr is a throw used as an expression, as in `x ?? throw e`.
type ThrowExpr struct {
	Pos
	X Expr
}

func (*Ident) exprNode()          {}
func (*Literal) exprNode()        {}
func (*Interpolated) exprNode()   {}
func (*Binary) exprNode()         {}
func (*Unary) exprNode()          {}
func (*Assign) exprNode()         {}
func (*Invocation) exprNode()     {}
func (*MemberAccess) exprNode()   {}
func (*GenericName) exprNode()    {}
func (*ElementAccess) exprNode()  {}
func (*Conditional) exprNode()    {}
func (*Paren) exprNode()          {}
func (*Cast) exprNode()           {}
func (*Initializer) exprNode()    {}
func (*ObjectCreation) exprNode() {}
func (*ArrayCreation) exprNode()  {}
func (*Lambda) exprNode()         {}
func (*This) exprNode()           {}
func (*Super) exprNode()          {}
func (*TypeOf) exprNode()         {}
func (*Default) exprNode()        {}
func (*IsType) exprNode()         {}
func (*As) exprNode()             {}
func (*Await) exprNode()          {}
func (*Tuple) exprNode()          {}
func (*ThrowExpr) exprNode()      {}
