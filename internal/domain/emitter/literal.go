package emitter

import (
	"strings"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

var interpolationBraces = strings.NewReplacer("{{", "{", "}}", "}")

func (e *Emitter) literal(l *ast.Literal) {
	switch l.Kind {
	case ast.IntLiteral:
		e.w.Write(intLiteral(l.Value))
	case ast.RealLiteral:
		e.w.Write(realLiteral(l.Value))
	case ast.StringLiteral:
		if strings.HasPrefix(l.Value, `"""`) {
			inner := strings.TrimSuffix(strings.TrimPrefix(l.Value, `"""`), `"""`)
			e.w.Inline(`"""` + rawDollars(inner) + `"""`)

			return
		}

		e.w.Write(`"` + escapeRegular(unquote(l.Value, `"`), true) + `"`)
	case ast.VerbatimStringLiteral:
		inner := unquote(strings.TrimPrefix(l.Value, "@"), `"`)
		e.w.Inline(`"""` + verbatimText(inner) + `"""`)
	case ast.CharLiteral:
		e.w.Write(`'` + escapeRegular(unquote(l.Value, `'`), false) + `'`)
	default:
		e.w.Write(l.Value)
	}
}

func (e *Emitter) interpolated(x *ast.Interpolated) {
	quote := `"`
	if x.Verbatim {
		quote = `"""`
	}

	e.w.Write(quote)

	for _, part := range x.Parts {
		if part.X == nil {
			text := interpolationBraces.Replace(part.Text)
			if x.Verbatim {
				text = verbatimText(text)
			} else {
				text = escapeRegular(text, true)
			}

			e.w.Inline(text)

			continue
		}

		e.w.Write("${")
		e.expr(part.X)

		if part.Alignment != "" {
			e.w.Write(" /* alignment: " + commentSafe.Replace(part.Alignment) + " */")
		}

		if part.Format != "" {
			e.w.Write(" /* format: " + commentSafe.Replace(part.Format) + " */")
		}

		e.w.Write("}")
	}

	e.w.Write(quote)
}

func unquote(value, quote string) string {
	if len(value) >= 2*len(quote) && strings.HasPrefix(value, quote) && strings.HasSuffix(value, quote) {
		return value[len(quote) : len(value)-len(quote)]
	}

	return value
}

// intLiteral rewrites the C# integer suffixes: l and L become L, any
// combination of u and l becomes uL.
func intLiteral(value string) string {
	lower := strings.ToLower(value)

	switch {
	case strings.HasSuffix(lower, "ul"), strings.HasSuffix(lower, "lu"):
		return value[:len(value)-2] + "uL"
	case strings.HasSuffix(lower, "l"):
		return value[:len(value)-1] + "L"
	case strings.HasSuffix(lower, "u"):
		return value[:len(value)-1] + "u"
	}

	return value
}

func realLiteral(value string) string {
	lower := strings.ToLower(value)
	body := value[:max(len(value)-1, 0)]

	switch {
	case strings.HasSuffix(lower, "m"):
		return `java.math.BigDecimal("` + body + `")`
	case strings.HasSuffix(lower, "f"):
		return body + "f"
	case strings.HasSuffix(lower, "d"):
		if !strings.ContainsAny(body, ".eE") {
			return body + ".0"
		}

		return body
	}

	return value
}

// escapeRegular rewrites the escapes of a regular C# string or char body
// that Kotlin lacks. With dollar set, `$` is escaped for string templates.
func escapeRegular(s string, dollar bool) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '\\' && i+1 < len(s):
			i++

			switch next := s[i]; next {
			case '0':
				b.WriteString(`\u0000`)
			case 'a':
				b.WriteString(`\u0007`)
			case 'f':
				b.WriteString(`\u000C`)
			case 'v':
				b.WriteString(`\u000B`)
			case 'x':
				j := i + 1
				for j < len(s) && j-i <= 4 && isHex(s[j]) {
					j++
				}

				digits := s[i+1 : j]
				b.WriteString(`\u` + strings.Repeat("0", 4-len(digits)) + digits)

				i = j - 1
			default:
				b.WriteByte('\\')
				b.WriteByte(next)
			}
		case c == '$' && dollar:
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// verbatimText turns the body of a verbatim string into the body of a
// Kotlin raw string.
func verbatimText(s string) string {
	return rawDollars(strings.ReplaceAll(s, `""`, `"`))
}

func rawDollars(s string) string {
	return strings.ReplaceAll(s, "$", "${'$'}")
}
