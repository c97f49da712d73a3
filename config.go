package recmap

import "github.com/reoring/recmap/source"

// MappingConfig describes how source fields become target fields. It is
// produced by Validate from an untrusted candidate and is treated as immutable
// afterwards.
type MappingConfig struct {
	Name             string         `json:"name"`
	SourceType       source.Type    `json:"sourceType"`
	TargetRepository string         `json:"targetRepository"`
	IDField          string         `json:"idField"`
	FieldMappings    []FieldMapping `json:"fieldMappings"`
	Options          Options        `json:"options"`
}

// FieldMapping maps one source field to one target field with an optional
// transform. Mapping order is significant only for iteration; later mappings
// to the same target field overwrite earlier ones.
type FieldMapping struct {
	SourceField string    `json:"sourceField"`
	TargetField string    `json:"targetField"`
	Transform   Transform `json:"transform"`
}

// Options tune per-record behavior of the importer and the coverage pass of
// the validator.
type Options struct {
	SkipEmptyFields  bool `json:"skipEmptyFields"`
	ValidateRequired bool `json:"validateRequired"`
}

// MappedTargetFields returns the distinct target fields in first-appearance
// order.
func (c *MappingConfig) MappedTargetFields() []string {
	seen := make(map[string]struct{}, len(c.FieldMappings))
	out := make([]string, 0, len(c.FieldMappings))
	for _, fm := range c.FieldMappings {
		if _, ok := seen[fm.TargetField]; ok {
			continue
		}
		seen[fm.TargetField] = struct{}{}
		out = append(out, fm.TargetField)
	}
	return out
}
