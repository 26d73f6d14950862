package typemap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

func primitive(name string) *semantic.TypeDescriptor {
	return &semantic.TypeDescriptor{Kind: semantic.Primitive, Name: name}
}

func generic(name string, container semantic.Kind, args ...*semantic.TypeDescriptor) *semantic.TypeDescriptor {
	return &semantic.TypeDescriptor{Kind: semantic.Generic, Container: container, Name: name, Args: args}
}

func TestMapType_Table(t *testing.T) {
	m := New()

	cases := []struct {
		name string
		in   *semantic.TypeDescriptor
		want string
	}{
		{"int", primitive("Int32"), "Int"},
		{"string", primitive("String"), "String"},
		{"void", primitive("Void"), "Unit"},
		{"object", primitive("Object"), "Any"},
		{"array", &semantic.TypeDescriptor{Kind: semantic.Array, Elem: primitive("Byte")}, "Array<Byte>"},
		{"list", generic("List", semantic.Class, primitive("Int32")), "MutableList<Int>"},
		{"dictionary", generic("Dictionary", semantic.Class, primitive("String"), primitive("Int64")), "MutableMap<String, Long>"},
		{"tuple", generic("ValueTuple", semantic.Struct, primitive("Int32"), primitive("String")), "Pair<Int, String>"},
		{"nullable", &semantic.TypeDescriptor{Kind: semantic.Nullable, Elem: primitive("Int32")}, "Int?"},
		{"interface", &semantic.TypeDescriptor{Kind: semantic.Interface, Name: "IRepository"}, "Repository"},
		{"generic interface", generic("IHandler", semantic.Interface, primitive("String")), "Handler<String>"},
		{"not a prefix", &semantic.TypeDescriptor{Kind: semantic.Class, Name: "Item"}, "Item"},
		{"type param", &semantic.TypeDescriptor{Kind: semantic.TypeParam, Name: "T"}, "T"},
		{"task of int", &semantic.TypeDescriptor{Kind: semantic.Async, Name: "Task", Args: []*semantic.TypeDescriptor{primitive("Int32")}}, "Int"},
		{"task", &semantic.TypeDescriptor{Kind: semantic.Async, Name: "Task"}, "Unit"},
		{
			"delegate",
			&semantic.TypeDescriptor{Kind: semantic.Delegate, Params: []*semantic.TypeDescriptor{primitive("Int32")}, Return: primitive("Boolean")},
			"(Int) -> Boolean",
		},
		{
			"async delegate",
			&semantic.TypeDescriptor{Kind: semantic.Delegate, Return: &semantic.TypeDescriptor{Kind: semantic.Async, Name: "Task"}},
			"suspend () -> Unit",
		},
		{"unresolved", semantic.UnresolvedType("Foo.Bar"), "/* unresolved type: Foo.Bar */"},
		{"nil", nil, "/* unresolved type */"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, m.MapType(tc.in))
		})
	}
}

func TestMapType_Idempotent(t *testing.T) {
	m := New()
	d := generic("Dictionary", semantic.Class, primitive("String"), generic("List", semantic.Class, primitive("Int32")))

	first := m.MapType(d)
	second := m.MapType(d)

	require.Equal(t, first, second)
	require.Equal(t, first, New().MapType(d))
}

func TestMapType_Overrides(t *testing.T) {
	m := New(WithNames(map[string]string{"Guid": "String"}), WithGenerics(map[string]string{"List": "List"}))

	require.Equal(t, "String", m.MapType(&semantic.TypeDescriptor{Kind: semantic.Struct, Name: "Guid"}))
	require.Equal(t, "List<Int>", m.MapType(generic("List", semantic.Class, primitive("Int32"))))
	require.Equal(t, "UUID", New().MapType(&semantic.TypeDescriptor{Kind: semantic.Struct, Name: "Guid"}))
}

func TestDefaultValue(t *testing.T) {
	m := New()

	value, ok := m.DefaultValue(primitive("Int32"))
	require.True(t, ok)
	require.Equal(t, "0", value)

	value, ok = m.DefaultValue(primitive("Boolean"))
	require.True(t, ok)
	require.Equal(t, "false", value)

	value, ok = m.DefaultValue(&semantic.TypeDescriptor{Kind: semantic.Enum, Name: "Color", EnumMembers: []string{"Red", "Green"}})
	require.True(t, ok)
	require.Equal(t, "Color.Red", value)

	_, ok = m.DefaultValue(primitive("String"))
	require.False(t, ok)

	_, ok = m.DefaultValue(nil)
	require.False(t, ok)
}

func TestIsUnitAndAsync(t *testing.T) {
	m := New()
	task := &semantic.TypeDescriptor{Kind: semantic.Async, Name: "Task"}

	require.True(t, m.IsUnit(primitive("Void")))
	require.True(t, m.IsUnit(task))
	require.True(t, m.IsAsync(task))
	require.False(t, m.IsAsync(primitive("Int32")))
}
