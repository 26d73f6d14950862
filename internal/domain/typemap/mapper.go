// Package typemap maps resolved C# types to Kotlin type text.
package typemap

import (
	"strings"
	"unicode"

	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

var defaultNames = map[string]string{
	"Void":                        "Unit",
	"Object":                      "Any",
	"Boolean":                     "Boolean",
	"Char":                        "Char",
	"Byte":                        "Byte",
	"SByte":                       "Byte",
	"Int16":                       "Short",
	"UInt16":                      "UShort",
	"Int32":                       "Int",
	"UInt32":                      "UInt",
	"Int64":                       "Long",
	"UInt64":                      "ULong",
	"IntPtr":                      "Long",
	"Single":                      "Float",
	"Double":                      "Double",
	"Decimal":                     "BigDecimal",
	"String":                      "String",
	"TimeSpan":                    "Duration",
	"DateTime":                    "LocalDateTime",
	"Guid":                        "UUID",
	"Type":                        "Class<*>",
	"StringBuilder":               "StringBuilder",
	"Exception":                   "Exception",
	"SystemException":             "RuntimeException",
	"ArgumentException":           "IllegalArgumentException",
	"ArgumentNullException":       "IllegalArgumentException",
	"ArgumentOutOfRangeException": "IndexOutOfBoundsException",
	"InvalidOperationException":   "IllegalStateException",
	"NotImplementedException":     "NotImplementedError",
	"NotSupportedException":       "UnsupportedOperationException",
	"NullReferenceException":      "NullPointerException",
	"IOException":                 "IOException",
	"TimeoutException":            "TimeoutException",
	"EventWaitHandle":             "CountDownLatch",
	"AutoResetEvent":              "CountDownLatch",
	"ManualResetEvent":            "CountDownLatch",
	"CountdownEvent":              "CountDownLatch",
	"IDisposable":                 "AutoCloseable",
}

var defaultGenerics = map[string]string{
	"List":                 "MutableList",
	"IList":                "MutableList",
	"IReadOnlyList":        "List",
	"Dictionary":           "MutableMap",
	"IDictionary":          "MutableMap",
	"IReadOnlyDictionary":  "Map",
	"HashSet":              "MutableSet",
	"ISet":                 "MutableSet",
	"IEnumerable":          "Iterable",
	"ICollection":          "MutableCollection",
	"Stack":                "Stack",
	"Queue":                "ArrayDeque",
	"ConcurrentQueue":      "ConcurrentLinkedQueue",
	"ConcurrentDictionary": "ConcurrentHashMap",
	"KeyValuePair":         "Map.Entry",
	"IComparable":          "Comparable",
}

var tupleNames = map[int]string{
	2: "Pair",
	3: "Triple",
}

// Mapper turns type descriptors into Kotlin type text. Its tables are never
// written after construction, so a Mapper may be shared between goroutines.
type Mapper struct {
	names    map[string]string
	generics map[string]string
}

// Option customizes a Mapper.
type Option func(*Mapper)

// WithNames adds or replaces entries of the simple name table.
func WithNames(names map[string]string) Option {
	return func(m *Mapper) {
		for k, v := range names {
			m.names[k] = v
		}
	}
}

// WithGenerics adds or replaces entries of the container name table.
func WithGenerics(generics map[string]string) Option {
	return func(m *Mapper) {
		for k, v := range generics {
			m.generics[k] = v
		}
	}
}

// New returns a Mapper with the default tables.
func New(options ...Option) *Mapper {
	m := &Mapper{
		names:    make(map[string]string, len(defaultNames)),
		generics: make(map[string]string, len(defaultGenerics)),
	}

	for k, v := range defaultNames {
		m.names[k] = v
	}

	for k, v := range defaultGenerics {
		m.generics[k] = v
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// MapType returns the Kotlin spelling of d.
func (m *Mapper) MapType(d *semantic.TypeDescriptor) string {
	if d == nil {
		return unresolved("")
	}

	switch d.Kind {
	case semantic.Primitive:
		return m.name(d.Name)
	case semantic.Array:
		return "Array<" + m.MapType(d.Elem) + ">"
	case semantic.Generic:
		return m.generic(d)
	case semantic.Delegate:
		return m.function(d)
	case semantic.Nullable:
		return m.MapType(d.Elem) + "?"
	case semantic.Interface:
		return stripInterfacePrefix(m.name(d.Name))
	case semantic.Struct, semantic.Enum, semantic.Class:
		return m.name(d.Name)
	case semantic.TypeParam:
		return d.Name
	case semantic.Async:
		if len(d.Args) == 1 {
			return m.MapType(d.Args[0])
		}

		return "Unit"
	case semantic.Unresolved:
		return unresolved(d.Text)
	}

	return unresolved(d.Text)
}

// IsAsync reports whether d is an awaitable wrapper.
func (m *Mapper) IsAsync(d *semantic.TypeDescriptor) bool {
	return d != nil && d.Kind == semantic.Async
}

// IsUnit reports whether d maps to Kotlin Unit.
func (m *Mapper) IsUnit(d *semantic.TypeDescriptor) bool {
	return m.MapType(d) == "Unit"
}

// DefaultValue returns the value a field of type d holds before assignment.
// It reports false for references and containers, which have no default.
func (m *Mapper) DefaultValue(d *semantic.TypeDescriptor) (string, bool) {
	if d == nil {
		return "", false
	}

	switch d.Kind {
	case semantic.Primitive:
		switch d.Name {
		case "Byte", "SByte", "Int16", "UInt16", "Int32", "UInt32", "Int64", "UInt64", "IntPtr":
			return "0", true
		case "Single", "Double", "Decimal":
			return "0.0", true
		case "Boolean":
			return "false", true
		}
	case semantic.Struct:
		if d.Name == "TimeSpan" {
			return "Duration.ZERO", true
		}

		return m.name(d.Name) + "()", true
	case semantic.Enum:
		if len(d.EnumMembers) > 0 {
			return m.name(d.Name) + "." + d.EnumMembers[0], true
		}
	}

	return "", false
}

func (m *Mapper) name(name string) string {
	if mapped, ok := m.names[name]; ok {
		return mapped
	}

	return name
}

func (m *Mapper) generic(d *semantic.TypeDescriptor) string {
	args := make([]string, 0, len(d.Args))
	for _, arg := range d.Args {
		args = append(args, m.MapType(arg))
	}

	container := d.Name
	switch {
	case d.Name == "ValueTuple" || d.Name == "Tuple":
		if name, ok := tupleNames[len(d.Args)]; ok {
			container = name
		}
	default:
		if mapped, ok := m.generics[d.Name]; ok {
			container = mapped
		} else {
			container = m.name(d.Name)
		}

		if d.Container == semantic.Interface {
			container = stripInterfacePrefix(container)
		}
	}

	if len(args) == 0 {
		return container
	}

	return container + "<" + strings.Join(args, ", ") + ">"
}

func (m *Mapper) function(d *semantic.TypeDescriptor) string {
	params := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		params = append(params, m.MapType(p))
	}

	text := "(" + strings.Join(params, ", ") + ") -> " + m.MapType(d.Return)
	if m.IsAsync(d.Return) {
		return "suspend " + text
	}

	return text
}

// stripInterfacePrefix drops the conventional I of names like IRepository.
func stripInterfacePrefix(name string) string {
	runes := []rune(name)
	if len(runes) >= 2 && runes[0] == 'I' && unicode.IsUpper(runes[1]) {
		return string(runes[1:])
	}

	return name
}

func unresolved(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "/* unresolved type */"
	}

	return "/* unresolved type: " + text + " */"
}
