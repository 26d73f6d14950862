package adapter

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

func (l *lowering) block(n sitter.Node) *ast.Block {
	b := &ast.Block{Pos: l.pos(n)}

	for _, c := range named(n) {
		if s := l.stmt(c); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}

	return b
}

// optionalStmt lowers the named field of n, or returns nil.
func (l *lowering) optionalStmt(n sitter.Node, name string) ast.Stmt {
	c, ok := field(n, name)
	if !ok {
		return nil
	}

	return l.stmt(c)
}

func (l *lowering) optionalExpr(n sitter.Node, name string) ast.Expr {
	c, ok := field(n, name)
	if !ok {
		return nil
	}

	return l.expr(c)
}

// firstExpr lowers the first named child of n, or returns nil.
func (l *lowering) firstExpr(n sitter.Node) ast.Expr {
	list := named(n)
	if len(list) == 0 {
		return nil
	}

	return l.expr(list[0])
}

//nolint:gocyclo,cyclop // one case per statement kind
func (l *lowering) stmt(n sitter.Node) ast.Stmt {
	pos := l.pos(n)

	switch n.Type() {
	case "comment":
		return nil
	case "block":
		return l.block(n)
	case "local_declaration_statement":
		return l.localDecl(n)
	case "expression_statement":
		return &ast.ExprStmt{Pos: pos, X: l.firstExpr(n)}
	case "return_statement":
		return &ast.Return{Pos: pos, X: l.firstExpr(n)}
	case "if_statement":
		return &ast.If{
			Pos:  pos,
			Cond: l.optionalExpr(n, "condition"),
			Then: l.optionalStmt(n, "consequence"),
			Else: l.optionalStmt(n, "alternative"),
		}
	case "while_statement":
		return &ast.While{Pos: pos, Cond: l.optionalExpr(n, "condition"), Body: l.optionalStmt(n, "body")}
	case "do_statement":
		return &ast.DoWhile{Pos: pos, Body: l.optionalStmt(n, "body"), Cond: l.optionalExpr(n, "condition")}
	case "for_statement":
		return l.forStmt(n)
	case "foreach_statement":
		return l.forEach(n)
	case "switch_statement":
		return l.switchStmt(n)
	case "break_statement":
		return &ast.Break{Pos: pos}
	case "continue_statement":
		return &ast.Continue{Pos: pos}
	case "throw_statement":
		return &ast.Throw{Pos: pos, X: l.firstExpr(n)}
	case "try_statement":
		return l.tryStmt(n)
	case "lock_statement":
		list := named(n)
		if len(list) < 2 {
			return l.unsupported(n)
		}

		return &ast.Lock{Pos: pos, X: l.expr(list[0]), Body: l.stmt(list[len(list)-1])}
	case "yield_statement":
		if l.hasToken(n, "break") {
			return &ast.Yield{Pos: pos, Break: true}
		}

		return &ast.Yield{Pos: pos, X: l.firstExpr(n)}
	case "local_function_statement":
		return &ast.LocalFunc{Pos: pos, Method: l.methodDecl(n)}
	case "empty_statement":
		return &ast.Empty{Pos: pos}
	default:
		return l.unsupported(n)
	}
}

func (l *lowering) localDecl(n sitter.Node) ast.Stmt {
	if l.hasToken(n, "using") {
		return &ast.Unsupported{Pos: l.pos(n), Construct: "using declaration"}
	}

	vd, ok := firstOf(n, "variable_declaration")
	if !ok {
		return l.unsupported(n)
	}

	return &ast.LocalDecl{
		Pos:   l.pos(n),
		Const: l.hasToken(n, "const") || l.modifiers(n).Has("const"),
		Type:  l.declaredType(vd),
		Vars:  l.declarators(vd),
	}
}

// forStmt splits the loop header on its separators, which stay stable across
// grammar revisions that disagree on field names.
func (l *lowering) forStmt(n sitter.Node) ast.Stmt {
	s := &ast.For{Pos: l.pos(n)}
	segment := -1

	for _, c := range children(n) {
		if !c.IsNamed() {
			switch l.text(c) {
			case "(":
				if segment < 0 {
					segment = 0
				}
			case ";":
				segment++
			case ")":
				segment = 3
			}

			continue
		}

		if c.Type() == "comment" {
			continue
		}

		switch segment {
		case 0:
			if c.Type() == "variable_declaration" {
				s.Decl = &ast.LocalDecl{Pos: l.pos(c), Type: l.declaredType(c), Vars: l.declarators(c)}
				continue
			}

			s.Init = append(s.Init, l.expr(c))
		case 1:
			s.Cond = l.expr(c)
		case 2:
			s.Update = append(s.Update, l.expr(c))
		case 3:
			s.Body = l.stmt(c)
		}
	}

	return s
}

func (l *lowering) forEach(n sitter.Node) ast.Stmt {
	s := &ast.ForEach{
		Pos:        l.pos(n),
		Collection: l.optionalExpr(n, "right"),
		Body:       l.optionalStmt(n, "body"),
	}

	if t, ok := field(n, "type"); ok && t.Type() != "implicit_type" {
		s.Type = l.typeRef(t)
	}

	left, ok := field(n, "left")
	if !ok || left.Type() != "identifier" {
		return &ast.Unsupported{Pos: l.pos(n), Construct: "deconstructing foreach"}
	}

	s.Name = l.text(left)

	return s
}

func (l *lowering) switchStmt(n sitter.Node) ast.Stmt {
	s := &ast.Switch{Pos: l.pos(n), Value: l.optionalExpr(n, "value")}
	if paren, ok := s.Value.(*ast.Paren); ok {
		s.Value = paren.X
	}

	body, ok := field(n, "body")
	if !ok {
		if body, ok = firstOf(n, "switch_body"); !ok {
			return l.unsupported(n)
		}
	}

	// Stacked labels (`case 1: case 2: ...`) parse as sections without a
	// body; they share the body of the next section.
	var pending []*ast.SwitchLabel

	for _, c := range named(body) {
		if c.Type() != "switch_section" {
			continue
		}

		section := l.switchSection(c)
		if len(section.Body) == 0 {
			pending = append(pending, section.Labels...)
			continue
		}

		section.Labels = append(pending, section.Labels...)
		pending = nil
		s.Sections = append(s.Sections, section)
	}

	if len(pending) > 0 {
		s.Sections = append(s.Sections, &ast.SwitchSection{Pos: pending[0].Pos, Labels: pending})
	}

	return s
}

// switchSection reads both label styles: dedicated label nodes, and bare
// `case` and `default` tokens followed by a pattern or expression.
func (l *lowering) switchSection(n sitter.Node) *ast.SwitchSection {
	section := &ast.SwitchSection{Pos: l.pos(n)}
	inLabel := false

	for _, c := range children(n) {
		if !c.IsNamed() {
			switch l.text(c) {
			case "case":
				inLabel = true
			case "default":
				section.Labels = append(section.Labels, &ast.SwitchLabel{Pos: l.pos(c), Kind: ast.DefaultLabel})
			case ":":
				inLabel = false
			}

			continue
		}

		switch c.Type() {
		case "comment":
		case "case_switch_label":
			section.Labels = append(section.Labels, l.caseLabel(c, l.firstNamed(c)))
		case "case_pattern_switch_label":
			section.Labels = append(section.Labels, l.patternLabel(c))
		case "default_switch_label":
			section.Labels = append(section.Labels, &ast.SwitchLabel{Pos: l.pos(c), Kind: ast.DefaultLabel})
		case "when_clause":
			if last := len(section.Labels) - 1; last >= 0 {
				guard := &ast.Unsupported{Pos: l.pos(c), Construct: "case guard"}
				section.Labels[last] = &ast.SwitchLabel{Pos: l.pos(c), Kind: ast.CaseLabel, Value: guard}
			}
		default:
			if inLabel {
				section.Labels = append(section.Labels, l.caseLabel(c, c))

				continue
			}

			if st := l.stmt(c); st != nil {
				section.Body = append(section.Body, st)
			}
		}
	}

	return section
}

func (l *lowering) firstNamed(n sitter.Node) sitter.Node {
	if list := named(n); len(list) > 0 {
		return list[0]
	}

	return sitter.Node{}
}

func (l *lowering) patternLabel(n sitter.Node) *ast.SwitchLabel {
	if p, ok := field(n, "pattern"); ok {
		return l.caseLabel(n, p)
	}

	return l.caseLabel(n, l.firstNamed(n))
}

// caseLabel converts the pattern or expression p of a label node n.
func (l *lowering) caseLabel(n, p sitter.Node) *ast.SwitchLabel {
	label := &ast.SwitchLabel{Pos: l.pos(n), Kind: ast.CaseLabel}

	switch {
	case p.IsNull():
		label.Value = l.unsupported(n)
	case p.Type() == "discard":
		label.Kind = ast.DefaultLabel
	case p.Type() == "constant_pattern":
		label.Value = l.firstExpr(p)
	case p.Type() == "declaration_pattern":
		label.Kind = ast.PatternLabel
		label.PatternType = l.optionalType(p, "type")

		if name, ok := field(p, "name"); ok {
			label.PatternName = l.text(name)
		} else if des, ok := firstOf(p, "single_variable_designation", "identifier"); ok {
			label.PatternName = l.text(des)
		}
	case p.Type() == "type_pattern":
		label.Kind = ast.PatternLabel
		label.PatternType = l.optionalType(p, "type")

		if label.PatternType == nil {
			label.PatternType = l.typeRef(l.firstNamed(p))
		}
	case isPatternNode(p.Type()):
		label.Value = l.unsupported(p)
	default:
		label.Value = l.expr(p)
	}

	return label
}

func isPatternNode(kind string) bool {
	switch kind {
	case "recursive_pattern", "relational_pattern", "and_pattern", "or_pattern", "negated_pattern",
		"parenthesized_pattern", "list_pattern", "var_pattern", "property_pattern_clause",
		"positional_pattern_clause":
		return true
	}

	return false
}

func (l *lowering) tryStmt(n sitter.Node) ast.Stmt {
	s := &ast.Try{Pos: l.pos(n)}

	for _, c := range named(n) {
		switch c.Type() {
		case "block":
			if s.Body == nil {
				s.Body = l.block(c)
			}
		case "catch_clause":
			s.Catches = append(s.Catches, l.catchClause(c))
		case "finally_clause":
			if b, ok := firstOf(c, "block"); ok {
				s.Finally = l.block(b)
			}
		}
	}

	return s
}

func (l *lowering) catchClause(n sitter.Node) *ast.Catch {
	c := &ast.Catch{Pos: l.pos(n)}

	for _, part := range named(n) {
		switch part.Type() {
		case "catch_declaration":
			c.Type = l.optionalType(part, "type")
			if name, ok := field(part, "name"); ok {
				c.Name = l.text(name)
			}
		case "catch_filter_clause":
			c.Filter = l.firstExpr(part)
		case "block":
			c.Body = l.block(part)
		}
	}

	return c
}
