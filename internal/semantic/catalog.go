package semantic

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog lists library types the translated code may reference.
type Catalog struct {
	Types []CatalogType `yaml:"types"`
}

// CatalogType describes one library type.
type CatalogType struct {
	Name        string          `yaml:"name"`
	Kind        string          `yaml:"kind"`
	Static      bool            `yaml:"static,omitempty"`
	Bases       []string        `yaml:"bases,omitempty"`
	EnumMembers []string        `yaml:"enum_members,omitempty"`
	Members     []CatalogMember `yaml:"members,omitempty"`
}

// CatalogMember describes a member of a library type.
type CatalogMember struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Static bool   `yaml:"static,omitempty"`
	Type   string `yaml:"type,omitempty"`
}

var loadDefaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
})

// DefaultCatalog returns the embedded catalog. The result is shared and must
// not be modified.
func DefaultCatalog() (*Catalog, error) {
	return loadDefaultCatalog()
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	for i, t := range catalog.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("catalog type %d has no name", i)
		}

		if _, ok := ParseKind(t.Kind); !ok {
			return nil, fmt.Errorf("catalog type %s has unknown kind %q", t.Name, t.Kind)
		}

		for _, member := range t.Members {
			if _, ok := parseMemberKind(member.Kind); !ok {
				return nil, fmt.Errorf("catalog member %s.%s has unknown kind %q", t.Name, member.Name, member.Kind)
			}
		}
	}

	return &catalog, nil
}

// Merge returns a catalog holding the types of c followed by the types of
// others. Later entries for the same name replace earlier ones.
func (c *Catalog) Merge(others ...*Catalog) *Catalog {
	merged := &Catalog{}
	position := map[string]int{}

	add := func(types []CatalogType) {
		for _, t := range types {
			if i, ok := position[t.Name]; ok {
				merged.Types[i] = t
				continue
			}

			position[t.Name] = len(merged.Types)
			merged.Types = append(merged.Types, t)
		}
	}

	if c != nil {
		add(c.Types)
	}

	for _, other := range others {
		if other != nil {
			add(other.Types)
		}
	}

	return merged
}

func parseMemberKind(kind string) (SymbolKind, bool) {
	switch kind {
	case "method":
		return MethodSymbol, true
	case "property":
		return PropertySymbol, true
	case "field":
		return FieldSymbol, true
	case "enum_member":
		return EnumMemberSymbol, true
	default:
		return UnknownSymbol, false
	}
}
