package schema

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// fileSchema is the YAML shape of one schema entry:
//
//	users:
//	  identifier: id
//	  required: [name, email]
//	  optional: [phone]
type fileSchema struct {
	Identifier string   `yaml:"identifier"`
	Required   []string `yaml:"required"`
	Optional   []string `yaml:"optional"`
}

// ParseYAML builds a registry from a YAML document mapping schema names to
// their field declarations. A single-entry document is the inline-schema
// variant; nothing in the registry assumes a fixed catalog size.
func ParseYAML(data []byte) (*Registry, error) {
	var doc map[string]fileSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parsing registry yaml: %w", err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("schema: registry yaml declares no schemas")
	}
	names := make([]string, 0, len(doc))
	for n := range doc {
		names = append(names, n)
	}
	sort.Strings(names)
	schemas := make([]TargetSchema, 0, len(names))
	for _, n := range names {
		fs := doc[n]
		schemas = append(schemas, TargetSchema{
			Name:       n,
			Identifier: fs.Identifier,
			Required:   fs.Required,
			Optional:   fs.Optional,
		})
	}
	return NewRegistry(schemas...), nil
}

// LoadFile reads and parses a registry YAML file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: reading registry file: %w", err)
	}
	return ParseYAML(data)
}
