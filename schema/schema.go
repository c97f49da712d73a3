// Package schema holds the target-schema registry: a read-only table of named
// target shapes that mapping configurations are validated against. A Registry
// is constructed explicitly and injected; it is immutable after construction
// and safe for concurrent readers.
package schema

import "sort"

// DefaultIdentifier is the out-of-band identifier field assumed when a schema
// does not name one. The importer sources it from the configuration's idField,
// so it is exempt from required-coverage checks.
const DefaultIdentifier = "id"

// TargetSchema declares the shape of one output record type.
type TargetSchema struct {
	Name       string   `json:"name"`
	Identifier string   `json:"identifier"`
	Required   []string `json:"requiredFields"`
	Optional   []string `json:"optionalFields"`
}

// Registry is a read-only lookup table of target schemas.
type Registry struct {
	schemas map[string]TargetSchema
	names   []string
}

// NewRegistry builds a registry from one or more schemas. Later entries with
// the same name overwrite earlier ones. Schemas without an identifier get
// DefaultIdentifier.
func NewRegistry(schemas ...TargetSchema) *Registry {
	m := make(map[string]TargetSchema, len(schemas))
	for _, s := range schemas {
		if s.Identifier == "" {
			s.Identifier = DefaultIdentifier
		}
		m[s.Name] = s
	}
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return &Registry{schemas: m, names: names}
}

// Lookup resolves a schema by name. Absence is reported, not raised.
func (r *Registry) Lookup(name string) (TargetSchema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns the known schema names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Schemas returns all schemas in sorted name order.
func (r *Registry) Schemas() []TargetSchema {
	out := make([]TargetSchema, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.schemas[n])
	}
	return out
}

// DefaultRegistry pre-declares the closed catalog of target schemas.
func DefaultRegistry() *Registry {
	return NewRegistry(
		TargetSchema{
			Name:     "users",
			Required: []string{"name", "email"},
			Optional: []string{"phone", "address", "age"},
		},
		TargetSchema{
			Name:     "products",
			Required: []string{"sku", "name", "price"},
			Optional: []string{"description", "category", "stock"},
		},
		TargetSchema{
			Name:     "orders",
			Required: []string{"customer", "total"},
			Optional: []string{"status", "currency", "items"},
		},
	)
}
