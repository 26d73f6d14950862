package semantic

import "strings"

// Kind classifies a TypeDescriptor.
type Kind int

// Available Kind values.
const (
	Unresolved Kind = iota
	Primitive
	Array
	Generic
	Delegate
	Nullable
	Struct
	Enum
	Interface
	Class
	TypeParam
	Async
)

var kindNames = map[Kind]string{
	Unresolved: "unresolved",
	Primitive:  "primitive",
	Array:      "array",
	Generic:    "generic",
	Delegate:   "delegate",
	Nullable:   "nullable",
	Struct:     "struct",
	Enum:       "enum",
	Interface:  "interface",
	Class:      "class",
	TypeParam:  "typeparam",
	Async:      "async",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unresolved"
}

// ParseKind maps a catalog kind name back to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, v := range kindNames {
		if v == strings.ToLower(strings.TrimSpace(name)) {
			return k, true
		}
	}

	return Unresolved, false
}

// TypeDescriptor describes a resolved type.
//
// Name is the CLR-style simple name (Int32, List, Person). Generic and Async
// descriptors list their type arguments in Args; Array and Nullable wrap Elem;
// Delegate carries Params and Return. Container records the kind of a generic
// type's definition. Text keeps the original spelling of an unresolved type.
type TypeDescriptor struct {
	Kind        Kind
	Container   Kind
	Name        string
	Args        []*TypeDescriptor
	Elem        *TypeDescriptor
	Params      []*TypeDescriptor
	Return      *TypeDescriptor
	EnumMembers []string
	Text        string
}

// UnresolvedType returns a descriptor for a type that could not be resolved.
func UnresolvedType(text string) *TypeDescriptor {
	return &TypeDescriptor{Kind: Unresolved, Text: text}
}

// Is reports whether the descriptor is of one of the given kinds.
func (d *TypeDescriptor) Is(kinds ...Kind) bool {
	if d == nil {
		return false
	}

	for _, k := range kinds {
		if d.Kind == k {
			return true
		}
	}

	return false
}

// IsNamed reports whether the descriptor has the given simple name.
func (d *TypeDescriptor) IsNamed(name string) bool {
	return d != nil && d.Name == name
}

// ElementType returns the element type of arrays and single-argument
// containers, or nil.
func (d *TypeDescriptor) ElementType() *TypeDescriptor {
	switch {
	case d == nil:
		return nil
	case d.Kind == Array:
		return d.Elem
	case d.Kind == Generic && len(d.Args) > 0:
		return d.Args[0]
	}

	return nil
}
