package ast

// Block is a braced statement list.
type Block struct {
	Pos
	Stmts []Stmt
}

// LocalDecl declares local variables. Type is nil for `var`.
type LocalDecl struct {
	Pos
	Const bool
	Type  TypeRef
	Vars  []*VarDeclarator
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	Pos
	X Expr
}

// Return is a return statement; X is nil for a bare return.
type Return struct {
	Pos
	X Expr
}

// If is an if statement; Else is nil, another *If or any statement.
type If struct {
	Pos
	Cond Expr
	Then Stmt
	Else Stmt
}

// While is a while loop.
type While struct {
	Pos
	Cond Expr
	Body Stmt
}

// DoWhile is a do/while loop.
type DoWhile struct {
	Pos
	Body Stmt
	Cond Expr
}

// For is a C-style for loop. Decl is set when the initializer declares
// variables, otherwise Init lists the initializer expressions.
type For struct {
	Pos
	Decl   *LocalDecl
	Init   []Expr
	Cond   Expr
	Update []Expr
	Body   Stmt
}

// ForEach iterates a collection. Type is nil for `var`.
type ForEach struct {
	Pos
	Type       TypeRef
	Name       string
	Collection Expr
	Body       Stmt
}

// LabelKind classifies a switch label.
type LabelKind int

// Available LabelKind values.
const (
	CaseLabel LabelKind = iota
	PatternLabel
	DefaultLabel
)

// SwitchLabel is one `case` or `default` label. Case labels carry Value;
// pattern labels carry PatternType and an optional PatternName.
type SwitchLabel struct {
	Pos
	Kind        LabelKind
	Value       Expr
	PatternType TypeRef
	PatternName string
}

// SwitchSection is a run of labels followed by statements.
type SwitchSection struct {
	Pos
	Labels []*SwitchLabel
	Body   []Stmt
}

// Switch is a switch statement.
type Switch struct {
	Pos
	Value    Expr
	Sections []*SwitchSection
}

// Break terminates the nearest loop or switch.
type Break struct {
	Pos
}

// Continue skips to the next loop iteration.
type Continue struct {
	Pos
}

// Throw raises X; X is nil for a rethrow.
type Throw struct {
	Pos
	X Expr
}

// Catch is one catch clause. Type and Name are optional.
type Catch struct {
	Pos
	Type   TypeRef
	Name   string
	Filter Expr
	Body   *Block
}

// Try is a try statement with catch and finally clauses.
type Try struct {
	Pos
	Body    *Block
	Catches []*Catch
	Finally *Block
}

// Lock guards Body with a monitor on X.
type Lock struct {
	Pos
	X    Expr
	Body Stmt
}

// Yield is `yield return X` or, when Break is set, `yield break`.
type Yield struct {
	Pos
	X     Expr
	Break bool
}

// LocalFunc is a function declared inside a block.
type LocalFunc struct {
	Pos
	Method *MethodDecl
}

// Empty is a lone semicolon.
type Empty struct {
	Pos
}

func (*Block) stmtNode()     {}
func (*LocalDecl) stmtNode() {}
func (*ExprStmt) stmtNode()  {}
func (*Return) stmtNode()    {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*DoWhile) stmtNode()   {}
func (*For) stmtNode()       {}
func (*ForEach) stmtNode()   {}
func (*Switch) stmtNode()    {}
func (*Break) stmtNode()     {}
func (*Continue) stmtNode()  {}
func (*Throw) stmtNode()     {}
func (*Try) stmtNode()       {}
func (*Lock) stmtNode()      {}
func (*Yield) stmtNode()     {}
func (*LocalFunc) stmtNode() {}
func (*Empty) stmtNode()     {}
