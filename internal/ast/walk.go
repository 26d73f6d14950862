package ast

// Walk visits node and its descendants depth first. Children of a node are
// skipped when fn returns false for it.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Children returns the direct children of node in source order.
//
//nolint:gocyclo,cyclop // one case per node kind
func Children(node Node) []Node {
	var out []Node

	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil {
				out = append(out, n)
			}
		}
	}
	addExpr := func(x Expr) {
		if x != nil {
			out = append(out, x)
		}
	}
	addStmt := func(s Stmt) {
		if s != nil {
			out = append(out, s)
		}
	}
	addType := func(t TypeRef) {
		if t != nil {
			out = append(out, t)
		}
	}
	addBlock := func(b *Block) {
		if b != nil {
			out = append(out, b)
		}
	}
	addParams := func(params []*Parameter) {
		for _, p := range params {
			out = append(out, p)
		}
	}
	addArgs := func(args []*Argument) {
		for _, a := range args {
			out = append(out, a)
		}
	}

	switch n := node.(type) {
	case *CompilationUnit:
		for _, d := range n.Members {
			add(d)
		}
	case *Namespace:
		for _, d := range n.Members {
			add(d)
		}
	case *TypeDecl:
		for _, b := range n.Bases {
			addType(b)
		}

		addParams(n.Params)

		for _, d := range n.Members {
			add(d)
		}
	case *EnumDecl:
		for _, m := range n.Members {
			out = append(out, m)
		}
	case *EnumMember:
		addExpr(n.Value)
	case *DelegateDecl:
		addType(n.Return)
		addParams(n.Params)
	case *FieldDecl:
		addType(n.Type)

		for _, v := range n.Vars {
			out = append(out, v)
		}
	case *VarDeclarator:
		addExpr(n.Init)
	case *PropertyDecl:
		addType(n.Type)

		for _, a := range n.Accessors {
			out = append(out, a)
		}

		addExpr(n.ExprBody)
		addExpr(n.Init)
	case *Accessor:
		addBlock(n.Body)
		addExpr(n.Expr)
	case *Parameter:
		addType(n.Type)
		addExpr(n.Default)
	case *MethodDecl:
		addType(n.Return)
		addParams(n.Params)
		addBlock(n.Body)
		addExpr(n.ExprBody)
	case *ConstructorDecl:
		addParams(n.Params)

		if n.Init != nil {
			out = append(out, n.Init)
		}

		addBlock(n.Body)
		addExpr(n.ExprBody)
	case *ConstructorInit:
		addArgs(n.Args)

	case *Block:
		for _, s := range n.Stmts {
			addStmt(s)
		}
	case *LocalDecl:
		addType(n.Type)

		for _, v := range n.Vars {
			out = append(out, v)
		}
	case *ExprStmt:
		addExpr(n.X)
	case *Return:
		addExpr(n.X)
	case *If:
		addExpr(n.Cond)
		addStmt(n.Then)
		addStmt(n.Else)
	case *While:
		addExpr(n.Cond)
		addStmt(n.Body)
	case *DoWhile:
		addStmt(n.Body)
		addExpr(n.Cond)
	case *For:
		if n.Decl != nil {
			out = append(out, n.Decl)
		}

		for _, x := range n.Init {
			addExpr(x)
		}

		addExpr(n.Cond)

		for _, x := range n.Update {
			addExpr(x)
		}

		addStmt(n.Body)
	case *ForEach:
		addType(n.Type)
		addExpr(n.Collection)
		addStmt(n.Body)
	case *Switch:
		addExpr(n.Value)

		for _, s := range n.Sections {
			out = append(out, s)
		}
	case *SwitchSection:
		for _, l := range n.Labels {
			out = append(out, l)
		}

		for _, s := range n.Body {
			addStmt(s)
		}
	case *SwitchLabel:
		addExpr(n.Value)
		addType(n.PatternType)
	case *Throw:
		addExpr(n.X)
	case *Try:
		addBlock(n.Body)

		for _, c := range n.Catches {
			out = append(out, c)
		}

		addBlock(n.Finally)
	case *Catch:
		addType(n.Type)
		addExpr(n.Filter)
		addBlock(n.Body)
	case *Lock:
		addExpr(n.X)
		addStmt(n.Body)
	case *Yield:
		addExpr(n.X)
	case *LocalFunc:
		if n.Method != nil {
			out = append(out, n.Method)
		}

	case *Interpolated:
		for _, p := range n.Parts {
			addExpr(p.X)
		}
	case *Binary:
		addExpr(n.L)
		addExpr(n.R)
	case *Unary:
		addExpr(n.X)
	case *Assign:
		addExpr(n.L)
		addExpr(n.R)
	case *Argument:
		addExpr(n.X)
	case *Invocation:
		addExpr(n.Fn)
		addArgs(n.Args)
	case *MemberAccess:
		addExpr(n.X)

		for _, t := range n.TypeArgs {
			addType(t)
		}
	case *GenericName:
		for _, t := range n.TypeArgs {
			addType(t)
		}
	case *ElementAccess:
		addExpr(n.X)
		addArgs(n.Index)
	case *Conditional:
		addExpr(n.Cond)
		addExpr(n.Then)
		addExpr(n.Else)
	case *Paren:
		addExpr(n.X)
	case *Cast:
		addType(n.Type)
		addExpr(n.X)
	case *Initializer:
		for _, x := range n.Elems {
			addExpr(x)
		}
	case *ObjectCreation:
		addType(n.Type)
		addArgs(n.Args)

		if n.Init != nil {
			out = append(out, n.Init)
		}
	case *ArrayCreation:
		addType(n.Elem)

		for _, x := range n.Sizes {
			addExpr(x)
		}

		if n.Init != nil {
			out = append(out, n.Init)
		}
	case *Lambda:
		addParams(n.Params)
		add(n.Body)
	case *TypeOf:
		addType(n.Type)
	case *Default:
		addType(n.Type)
	case *IsType:
		addExpr(n.X)
		addType(n.Type)
	case *As:
		addExpr(n.X)
		addType(n.Type)
	case *Await:
		addExpr(n.X)
	case *Tuple:
		addArgs(n.Elems)
	case *ThrowExpr:
		addExpr(n.X)

	case *NamedType:
		for _, t := range n.Args {
			addType(t)
		}
	case *ArrayType:
		addType(n.Elem)
	case *NullableType:
		addType(n.Inner)
	case *PointerType:
		addType(n.Elem)
	case *TupleType:
		for _, t := range n.Elems {
			addType(t)
		}
	}

	return out
}
