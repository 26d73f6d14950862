package rules

import (
	"strings"
	"sync"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

var defaultRegistry = sync.OnceValue(func() *Registry {
	b := NewBuilder()

	registerConsole(b)
	registerDurations(b)
	registerAssertions(b)
	registerWaitHandles(b)
	registerQueries(b)
	registerEncoding(b)
	registerConversions(b)
	registerStrings(b)
	registerMath(b)
	registerTasks(b)
	registerActors(b)

	return b.Build()
})

// Default returns the curated registry. It is built on first use and shared.
func Default() *Registry {
	return defaultRegistry()
}

func registerConsole(b *Builder) {
	b.Register("Console.WriteLine", staticOnly(function("println")))
	b.Register("Console.Write", staticOnly(function("print")))
	b.Register("Console.ReadLine", staticOnly(function("readln")))
	b.Register("Thread.Sleep", staticOnly(function("Thread.sleep")))
}

func registerDurations(b *Builder) {
	b.Register("TimeSpan.FromSeconds", staticOnly(function("Duration.ofSeconds")))
	b.Register("TimeSpan.FromMilliseconds", staticOnly(function("Duration.ofMillis")))
	b.Register("TimeSpan.FromMinutes", staticOnly(function("Duration.ofMinutes")))
}

func registerAssertions(b *Builder) {
	b.Register("Assert.Equal", staticOnly(function("assertEquals")))
	b.Register("Assert.NotEqual", staticOnly(function("assertNotEquals")))
	b.Register("Assert.Same", staticOnly(function("assertSame")))
	b.Register("Assert.True", staticOnly(function("assertTrue")))
	b.Register("Assert.False", staticOnly(function("assertFalse")))
	b.Register("Assert.Null", staticOnly(function("assertNull")))
	b.Register("Assert.NotNull", staticOnly(function("assertNotNull")))
	b.Register("Assert.Contains", staticOnly(containsAssertion("assertTrue")))
	b.Register("Assert.DoesNotContain", staticOnly(containsAssertion("assertFalse")))
	b.Register("Assert.IsType", staticOnly(isTypeAssertion))
	b.Register("Assert.Throws", staticOnly(failsWith))
	b.Register("Assert.ThrowsAsync", staticOnly(failsWith))
}

func registerWaitHandles(b *Builder) {
	b.Register("EventWaitHandle.Set", method("countDown"))
	b.Register("EventWaitHandle.WaitOne", method("await"))
	b.Register("CountdownEvent.Signal", method("countDown"))
	b.Register("CountdownEvent.Wait", method("await"))
}

func registerQueries(b *Builder) {
	b.Register("Enumerable.Where", extension("filter"))
	b.Register("Enumerable.Select", extension("map"))
	b.Register("Enumerable.ToList", extension("toMutableList"))
	b.Register("Enumerable.ToArray", extension("toTypedArray"))
	b.Register("Enumerable.Any", extension("any"))
	b.Register("Enumerable.Count", extension("count"))
	b.Register("Enumerable.First", extension("first"))
	b.Register("Enumerable.Sum", extension("sum"))
	b.Register("Enumerable.Concat", concat)
	b.Register("Enumerable.Range", staticOnly(rangeFromCount))
}

func registerEncoding(b *Builder) {
	b.Register("Encoding.GetBytes", getBytes)
	b.Register("Encoding.GetString", getString)
}

func registerConversions(b *Builder) {
	b.Register("Convert.ToInt32", staticOnly(convert("toInt")))
	b.Register("Convert.ToInt64", staticOnly(convert("toLong")))
	b.Register("Convert.ToString", staticOnly(convert("toString")))
	b.Register("Convert.ToBase64String", staticOnly(function("Base64.getEncoder().encodeToString")))
}

func registerStrings(b *Builder) {
	b.Register("String.Join", staticOnly(join))
	b.Register("String.IsNullOrEmpty", staticOnly(extension("isNullOrEmpty")))
	b.Register("String.IsNullOrWhiteSpace", staticOnly(extension("isNullOrBlank")))
}

func registerMath(b *Builder) {
	b.Register("Math.Max", staticOnly(function("maxOf")))
	b.Register("Math.Min", staticOnly(function("minOf")))
	b.Register("Math.Abs", staticOnly(function("abs")))
	b.Register("Math.Sqrt", staticOnly(function("sqrt")))
}

func registerTasks(b *Builder) {
	b.Register("Task.FromResult", staticOnly(unwrapSingle))
	b.Register("Task.Delay", staticOnly(function("delay")))
}

func registerActors(b *Builder) {
	b.Register("PID.Tell", method("send"))
	b.Register("PID.RequestAsync", method("requestAwait"))
	b.Register("IContext.Spawn", method("spawnChild"))
	b.Register("IContext.SpawnNamed", method("spawnNamedChild"))
	b.Register("IContext.SpawnPrefix", method("spawnPrefixChild"))
	b.Register("IContext.Respond", method("respond"))
	b.Register("IContext.Send", sendTo("send"))
	b.Register("IContext.Request", sendTo("request"))
}

// staticOnly declines calls whose receiver is an expression rather than a
// type name, so a bare-name match on an unrelated instance method falls back to
// the generic form.
func staticOnly(h Handler) Handler {
	return func(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error {
		if access == nil || !ctx.IsTypeName(access.X) {
			return ErrNotApplicable
		}

		return h(ctx, call, access)
	}
}

// function emits name(args).
func function(name string) Handler {
	return func(ctx Context, call *ast.Invocation, _ *ast.MemberAccess) error {
		ctx.Write(name)
		ctx.CallArgs(call.Args)

		return nil
	}
}

// method emits receiver.name<T>(args).
func method(name string) Handler {
	return func(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error {
		if access == nil || ctx.IsTypeName(access.X) {
			return ErrNotApplicable
		}

		ctx.Expr(access.X)
		ctx.Write("." + name + typeArgList(ctx, access))
		ctx.CallArgs(call.Args)

		return nil
	}
}

// extension emits receiver.name(args) for both the extension form
// xs.Where(f) and the static form Enumerable.Where(xs, f).
func extension(name string) Handler {
	return func(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error {
		receiver, args, ok := extensionReceiver(ctx, call, access)
		if !ok {
			return ErrNotApplicable
		}

		ctx.Expr(receiver)
		ctx.Write("." + name)

		if len(args) == 0 {
			ctx.Write("()")
			return nil
		}

		ctx.CallArgs(args)

		return nil
	}
}

func extensionReceiver(ctx Context, call *ast.Invocation, access *ast.MemberAccess) (ast.Expr, []*ast.Argument, bool) {
	if access == nil {
		return nil, nil, false
	}

	if ctx.IsTypeName(access.X) {
		if len(call.Args) == 0 {
			return nil, nil, false
		}

		return call.Args[0].X, call.Args[1:], true
	}

	return access.X, call.Args, true
}

func typeArgList(ctx Context, access *ast.MemberAccess) string {
	args := ctx.TypeArgs(access)
	if len(args) == 0 {
		return ""
	}

	return "<" + strings.Join(args, ", ") + ">"
}

// containsAssertion turns Assert.Contains(item, collection) into
// assertX(collection.contains(item)).
func containsAssertion(assertion string) Handler {
	return func(ctx Context, call *ast.Invocation, _ *ast.MemberAccess) error {
		if len(call.Args) != 2 {
			return ErrNotApplicable
		}

		ctx.Write(assertion + "(")
		ctx.Expr(call.Args[1].X)
		ctx.Write(".contains(")
		ctx.Expr(call.Args[0].X)
		ctx.Write("))")

		return nil
	}
}

func isTypeAssertion(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error {
	types := ctx.TypeArgs(access)
	if len(types) != 1 || len(call.Args) != 1 {
		return ErrNotApplicable
	}

	ctx.Write("assertTrue(")
	ctx.Expr(call.Args[0].X)
	ctx.Write(" is " + types[0] + ")")

	return nil
}

func failsWith(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error {
	ctx.Write("assertFailsWith" + typeArgList(ctx, access))
	ctx.CallArgs(call.Args)

	return nil
}

func concat(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error {
	receiver, args, ok := extensionReceiver(ctx, call, access)
	if !ok || len(args) != 1 {
		return ErrNotApplicable
	}

	ctx.Write("(")
	ctx.Expr(receiver)
	ctx.Write(" + ")
	ctx.Expr(args[0].X)
	ctx.Write(")")

	return nil
}

// rangeFromCount turns Enumerable.Range(start, count) into a range literal:
// exclusive when start is the literal zero, inclusive otherwise.
func rangeFromCount(ctx Context, call *ast.Invocation, _ *ast.MemberAccess) error {
	if len(call.Args) != 2 {
		return ErrNotApplicable
	}

	start, count := call.Args[0].X, call.Args[1].X

	if lit, ok := start.(*ast.Literal); ok && lit.Kind == ast.IntLiteral && lit.Value == "0" {
		ctx.Write("(0 until ")
		ctx.Expr(count)
		ctx.Write(")")

		return nil
	}

	ctx.Write("(")
	ctx.Expr(start)
	ctx.Write("..(")
	ctx.Expr(start)
	ctx.Write(" + ")
	ctx.Expr(count)
	ctx.Write(" - 1))")

	return nil
}

func charset(access *ast.MemberAccess) string {
	if access != nil {
		if inner, ok := access.X.(*ast.MemberAccess); ok && inner.Name == "ASCII" {
			return "Charsets.US_ASCII"
		}
	}

	return "Charsets.UTF_8"
}

func getBytes(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error {
	if len(call.Args) != 1 {
		return ErrNotApplicable
	}

	ctx.Expr(call.Args[0].X)
	ctx.Write(".toByteArray(" + charset(access) + ")")

	return nil
}

func getString(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error {
	if len(call.Args) != 1 {
		return ErrNotApplicable
	}

	ctx.Write("String(")
	ctx.Expr(call.Args[0].X)
	ctx.Write(", " + charset(access) + ")")

	return nil
}

// convert handles Convert.ToInt32(s, 2) style calls: the optional second
// argument is the radix.
func convert(name string) Handler {
	return func(ctx Context, call *ast.Invocation, _ *ast.MemberAccess) error {
		switch len(call.Args) {
		case 1:
			ctx.Expr(call.Args[0].X)
			ctx.Write("." + name + "()")
		case 2:
			ctx.Expr(call.Args[0].X)
			ctx.Write("." + name + "(")
			ctx.Expr(call.Args[1].X)
			ctx.Write(")")
		default:
			return ErrNotApplicable
		}

		return nil
	}
}

func join(ctx Context, call *ast.Invocation, _ *ast.MemberAccess) error {
	if len(call.Args) != 2 {
		return ErrNotApplicable
	}

	ctx.Expr(call.Args[1].X)
	ctx.Write(".joinToString(")
	ctx.Expr(call.Args[0].X)
	ctx.Write(")")

	return nil
}

func unwrapSingle(ctx Context, call *ast.Invocation, _ *ast.MemberAccess) error {
	if len(call.Args) != 1 {
		return ErrNotApplicable
	}

	ctx.Expr(call.Args[0].X)

	return nil
}

// sendTo turns ctx.Send(target, message) into target.name(message).
func sendTo(name string) Handler {
	return func(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error {
		if access == nil || len(call.Args) != 2 {
			return ErrNotApplicable
		}

		ctx.Expr(call.Args[0].X)
		ctx.Write("." + name)
		ctx.CallArgs(call.Args[1:])

		return nil
	}
}
