package emitter

import (
	"strings"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

// statements returns the statements a body renders, without empty ones.
func statements(s ast.Stmt) []ast.Stmt {
	var list []ast.Stmt

	switch s := s.(type) {
	case nil:
		return nil
	case *ast.Block:
		if s == nil {
			return nil
		}

		list = s.Stmts
	default:
		list = []ast.Stmt{s}
	}

	out := make([]ast.Stmt, 0, len(list))
	for _, st := range list {
		if _, empty := st.(*ast.Empty); !empty && st != nil {
			out = append(out, st)
		}
	}

	return out
}

// body writes a braced statement list without ending the line. An empty
// body renders as "{ }".
func (e *Emitter) body(s ast.Stmt) {
	list := statements(s)
	if len(list) == 0 {
		e.w.Write("{ }")
		return
	}

	e.w.Line("{")
	e.w.Enter()

	for _, st := range list {
		e.stmt(st)
	}

	e.w.Leave()
	e.w.Write("}")
}

//nolint:gocyclo,cyclop // one case per statement kind
func (e *Emitter) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case nil, *ast.Empty:
	case *ast.Block:
		e.w.Write("run ")
		e.body(s)
		e.w.Line("")
	case *ast.LocalDecl:
		e.localDecl(s)
	case *ast.ExprStmt:
		e.expr(s.X)
		e.w.Line("")
	case *ast.Return:
		if s.X == nil {
			e.w.Line(e.bareReturn())
			return
		}

		e.w.Write("return ")
		e.expr(s.X)
		e.w.Line("")
	case *ast.If:
		e.ifStmt(s)
	case *ast.While:
		e.pushScope(loopScope)
		e.w.Write("while (")
		e.expr(s.Cond)
		e.w.Write(") ")
		e.body(s.Body)
		e.w.Line("")
		e.popScope()
	case *ast.DoWhile:
		e.pushScope(loopScope)
		e.w.Write("do ")
		e.body(s.Body)
		e.w.Write(" while (")
		e.expr(s.Cond)
		e.w.Line(")")
		e.popScope()
	case *ast.For:
		e.forStmt(s)
	case *ast.ForEach:
		e.pushScope(loopScope)
		e.w.Write("for (" + ident(s.Name) + " in ")
		e.expr(s.Collection)
		e.w.Write(") ")
		e.body(s.Body)
		e.w.Line("")
		e.popScope()
	case *ast.Switch:
		e.switchStmt(s)
	case *ast.Break:
		if !e.breakEndsSwitch() {
			e.w.Line("break")
		}
	case *ast.Continue:
		e.w.Line("continue")
	case *ast.Throw:
		e.throwStmt(s)
	case *ast.Try:
		e.tryStmt(s)
	case *ast.Lock:
		e.w.Write("synchronized(")
		e.expr(s.X)
		e.w.Write(") ")
		e.body(s.Body)
		e.w.Line("")
	case *ast.Yield:
		if s.Break {
			e.w.Line(e.bareReturn())
			return
		}

		e.w.Write("yield(")
		e.expr(s.X)
		e.w.Line(")")
	case *ast.LocalFunc:
		if s.Method != nil {
			e.function(s.Method, false)
		}
	case *ast.Unsupported:
		e.markerLine(s.Construct, s)
	default:
		e.fail("statement", s)
	}
}

func (e *Emitter) bareReturn() string {
	if e.sequence {
		return "return@sequence"
	}

	return "return"
}

func (e *Emitter) localDecl(d *ast.LocalDecl) {
	for _, v := range d.Vars {
		binding := "val"
		if !d.Const && e.isMutated(v) {
			binding = "var"
		}

		e.w.Write(binding + " " + ident(v.Name))

		if d.Type != nil {
			e.w.Write(" : " + e.typeText(d.Type))
		}

		if v.Init != nil {
			e.w.Write(" = ")
			e.expr(v.Init)
		}

		e.w.Line("")
	}
}

// ifStmt writes an if statement, flattening else-if chains.
func (e *Emitter) ifStmt(s *ast.If) {
	for {
		e.w.Write("if (")
		e.expr(s.Cond)
		e.w.Write(") ")
		e.body(s.Then)

		next, chained := s.Else.(*ast.If)
		if chained && next != nil {
			e.w.Write(" else ")
			s = next

			continue
		}

		if s.Else != nil {
			e.w.Write(" else ")
			e.body(s.Else)
		}

		e.w.Line("")

		return
	}
}

// canonicalLoop recognizes `for (T i = a; i < b; i++)` and its `<=` form.
func canonicalLoop(s *ast.For) (counter string, start, bound ast.Expr, inclusive, ok bool) {
	if s.Decl == nil || len(s.Init) > 0 || len(s.Decl.Vars) != 1 || len(s.Update) != 1 {
		return "", nil, nil, false, false
	}

	v := s.Decl.Vars[0]
	if v.Init == nil {
		return "", nil, nil, false, false
	}

	step, isUnary := s.Update[0].(*ast.Unary)
	if !isUnary || step.Op != "++" || !step.Postfix || !isIdent(step.X, v.Name) {
		return "", nil, nil, false, false
	}

	guard, isBinary := s.Cond.(*ast.Binary)
	if !isBinary || !isIdent(guard.L, v.Name) {
		return "", nil, nil, false, false
	}

	switch guard.Op {
	case "<":
	case "<=":
		inclusive = true
	default:
		return "", nil, nil, false, false
	}

	return v.Name, v.Init, guard.R, inclusive, true
}

func isIdent(x ast.Expr, name string) bool {
	id, ok := x.(*ast.Ident)

	return ok && id.Name == name
}

func (e *Emitter) forStmt(s *ast.For) {
	counter, start, bound, inclusive, ok := canonicalLoop(s)
	if !ok {
		e.markerLine("for statement", s)
		return
	}

	e.pushScope(loopScope)
	defer e.popScope()

	e.w.Write("for (" + ident(counter) + " in ")
	e.expr(start)

	if inclusive {
		e.w.Write("..")
	} else {
		e.w.Write(" until ")
	}

	e.expr(bound)
	e.w.Write(") ")
	e.body(s.Body)
	e.w.Line("")
}

// switchStmt binds the scrutinee to a temporary and lowers the sections to
// the branches of a when on it. The default section goes last.
func (e *Emitter) switchStmt(s *ast.Switch) {
	tmp := e.tempName()

	e.w.Write("val " + tmp + " = ")
	e.expr(s.Value)
	e.w.Line("")
	e.w.Line("when (" + tmp + ") {")
	e.w.Enter()
	e.pushScope(switchScope)

	var fallback *ast.SwitchSection

	for _, section := range s.Sections {
		if isDefaultSection(section) {
			fallback = section
			continue
		}

		e.switchSection(section, tmp)
	}

	if fallback != nil {
		e.switchSection(fallback, tmp)
	}

	e.popScope()
	e.w.Leave()
	e.w.Line("}")
}

func isDefaultSection(section *ast.SwitchSection) bool {
	for _, label := range section.Labels {
		if label.Kind == ast.DefaultLabel {
			return true
		}
	}

	return false
}

func (e *Emitter) switchSection(section *ast.SwitchSection, tmp string) {
	var bindings []string

	if isDefaultSection(section) {
		e.w.Write("else")
	} else {
		for i, label := range section.Labels {
			if i > 0 {
				e.w.Write(", ")
			}

			switch label.Kind {
			case ast.PatternLabel:
				e.w.Write("is " + e.typeText(label.PatternType))

				if label.PatternName != "" {
					bindings = append(bindings, "val "+ident(label.PatternName)+" = "+tmp)
				}
			case ast.CaseLabel, ast.DefaultLabel:
				e.expr(label.Value)
			}
		}
	}

	e.w.Write(" -> ")

	var list []ast.Stmt

	for _, st := range section.Body {
		list = append(list, statements(st)...)
	}

	emitted := list[:0:0]
	for _, st := range list {
		if _, isBreak := st.(*ast.Break); !isBreak {
			emitted = append(emitted, st)
		}
	}

	switch {
	case len(emitted) == 0 && len(bindings) == 0:
		e.w.Line("{ }")

		return
	case len(emitted) == 1 && len(bindings) == 0:
		text := e.capture(func() { e.stmt(emitted[0]) })
		if line := strings.TrimSuffix(text, "\n"); !strings.Contains(line, "\n") {
			e.w.Write("{ ")
			e.stmt(emitted[0])
			e.w.Truncate(e.trailingNewline())
			e.w.Line(" }")

			return
		}
	}

	e.w.Line("{")
	e.w.Enter()

	for _, binding := range bindings {
		e.w.Line(binding)
	}

	for _, st := range list {
		e.stmt(st)
	}

	e.w.Leave()
	e.w.Line("}")
}

// trailingNewline returns a mark just before the final newline of the
// output, so an inline statement can be continued on its line.
func (e *Emitter) trailingNewline() Mark {
	m := e.w.Mark()
	if strings.HasSuffix(e.w.String(), "\n") {
		m.size--
		m.atLineStart = false
	}

	return m
}

func (e *Emitter) throwStmt(s *ast.Throw) {
	if s.X != nil {
		e.w.Write("throw ")
		e.expr(s.X)
		e.w.Line("")

		return
	}

	if len(e.catches) == 0 {
		e.markerLine("rethrow", s)
		return
	}

	e.w.Line("throw " + ident(e.catches[len(e.catches)-1]))
}

func (e *Emitter) tryStmt(s *ast.Try) {
	e.w.Write("try ")
	e.body(s.Body)

	for _, c := range s.Catches {
		name := c.Name
		if name == "" {
			name = "e"
		}

		typ := "Exception"
		if c.Type != nil {
			typ = e.typeText(c.Type)
		}

		e.w.Write(" catch (" + ident(name) + " : " + typ + ") ")

		if c.Filter != nil {
			e.w.Raw(e.marker("catch filter", c.Filter))
			e.w.Write(" ")
		}

		e.catches = append(e.catches, name)
		e.body(c.Body)
		e.catches = e.catches[:len(e.catches)-1]
	}

	if s.Finally != nil {
		e.w.Write(" finally ")
		e.body(s.Finally)
	}

	e.w.Line("")
}
