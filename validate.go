package recmap

import (
	"fmt"
	"strings"

	"github.com/reoring/recmap/i18n"
	"github.com/reoring/recmap/schema"
	"github.com/reoring/recmap/source"
)

// Validate checks an untrusted candidate configuration in two passes: a
// structural shape pass collecting every violation (fail-slow), then a
// target-coverage pass against the registry. The candidate is only inspected,
// never mutated. Unknown keys on the candidate are ignored; generated
// configurations routinely carry commentary fields.
func Validate(candidate any, reg *schema.Registry) (*MappingConfig, Issues) {
	m, ok := candidate.(map[string]any)
	if !ok {
		return nil, Issues{Issue{
			Path:    "",
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, map[string]string{"expected": "object"}),
		}}
	}

	cfg, iss := validateShape(m)
	if len(iss) > 0 {
		return nil, iss
	}
	if iss := validateCoverage(cfg, reg); len(iss) > 0 {
		return nil, iss
	}
	return cfg, nil
}

// validateShape type-checks every declared field and collects all violations
// with dotted paths.
func validateShape(m map[string]any) (*MappingConfig, Issues) {
	var iss Issues
	cfg := &MappingConfig{
		// Defaults when the candidate omits options.
		Options: Options{SkipEmptyFields: false, ValidateRequired: true},
	}

	cfg.Name = requireString(m, "name", &iss)

	if raw, present := m["sourceType"]; !present {
		iss = appendRequired(iss, "sourceType")
	} else if s, ok := raw.(string); !ok {
		iss = appendInvalidType(iss, "sourceType", "string")
	} else if st, ok := source.ParseType(s); !ok {
		iss = AppendIssues(iss, Issue{
			Path:    "sourceType",
			Code:    CodeInvalidEnum,
			Message: i18n.T(CodeInvalidEnum, map[string]string{"allowed": strings.Join(source.TypeNames(), ", ")}),
			Params:  map[string]any{"got": s},
		})
	} else {
		cfg.SourceType = st
	}

	cfg.TargetRepository = requireString(m, "targetRepository", &iss)
	cfg.IDField = requireString(m, "idField", &iss)

	if raw, present := m["fieldMappings"]; !present {
		iss = appendRequired(iss, "fieldMappings")
	} else if arr, ok := raw.([]any); !ok {
		iss = appendInvalidType(iss, "fieldMappings", "array")
	} else {
		cfg.FieldMappings = make([]FieldMapping, 0, len(arr))
		for i, el := range arr {
			fm, i2 := validateMapping(i, el)
			if len(i2) > 0 {
				iss = AppendIssues(iss, i2...)
				continue
			}
			cfg.FieldMappings = append(cfg.FieldMappings, fm)
		}
	}

	if raw, present := m["options"]; present {
		om, ok := raw.(map[string]any)
		if !ok {
			iss = appendInvalidType(iss, "options", "object")
		} else {
			readBool(om, "options", "skipEmptyFields", &cfg.Options.SkipEmptyFields, &iss)
			readBool(om, "options", "validateRequired", &cfg.Options.ValidateRequired, &iss)
		}
	}

	if len(iss) > 0 {
		return nil, iss
	}
	return cfg, nil
}

func validateMapping(idx int, el any) (FieldMapping, Issues) {
	base := fmt.Sprintf("fieldMappings.%d", idx)
	em, ok := el.(map[string]any)
	if !ok {
		return FieldMapping{}, Issues{Issue{
			Path:    base,
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, map[string]string{"expected": "object"}),
		}}
	}
	var iss Issues
	var fm FieldMapping
	fm.SourceField = requireStringAt(em, base, "sourceField", &iss)
	fm.TargetField = requireStringAt(em, base, "targetField", &iss)
	if raw, present := em["transform"]; present {
		s, ok := raw.(string)
		if !ok {
			iss = appendInvalidType(iss, base+".transform", "string")
		} else if tr, ok := ParseTransform(s); !ok {
			iss = AppendIssues(iss, Issue{
				Path:    base + ".transform",
				Code:    CodeInvalidEnum,
				Message: i18n.T(CodeInvalidEnum, map[string]string{"allowed": strings.Join(TransformNames(), ", ")}),
				Params:  map[string]any{"got": s},
			})
		} else {
			fm.Transform = tr
		}
	}
	if len(iss) > 0 {
		return FieldMapping{}, iss
	}
	return fm, nil
}

// validateCoverage resolves the target repository and checks required-field
// coverage. It runs only after a clean shape pass.
func validateCoverage(cfg *MappingConfig, reg *schema.Registry) Issues {
	ts, ok := reg.Lookup(cfg.TargetRepository)
	if !ok {
		return Issues{Issue{
			Path: "targetRepository",
			Code: CodeUnknownTargetRepository,
			Message: i18n.T(CodeUnknownTargetRepository, map[string]string{
				"repository": cfg.TargetRepository,
				"known":      strings.Join(reg.Names(), ", "),
			}),
			Params: map[string]any{"known": reg.Names()},
		}}
	}
	if !cfg.Options.ValidateRequired {
		return nil
	}

	mapped := make(map[string]struct{}, len(cfg.FieldMappings))
	for _, fm := range cfg.FieldMappings {
		mapped[fm.TargetField] = struct{}{}
	}
	var iss Issues
	for _, f := range ts.Required {
		// The identifier is sourced out-of-band via idField.
		if f == ts.Identifier {
			continue
		}
		if _, ok := mapped[f]; ok {
			continue
		}
		iss = AppendIssues(iss, Issue{
			Path: "fieldMappings",
			Code: CodeMissingRequiredField,
			Message: i18n.T(CodeMissingRequiredField, map[string]string{
				"field":      f,
				"repository": ts.Name,
			}),
			Params: map[string]any{"field": f},
		})
	}
	return iss
}

// ---- shape helpers ----

func requireString(m map[string]any, key string, iss *Issues) string {
	return requireStringAt(m, "", key, iss)
}

func requireStringAt(m map[string]any, base, key string, iss *Issues) string {
	path := key
	if base != "" {
		path = base + "." + key
	}
	raw, present := m[key]
	if !present {
		*iss = appendRequired(*iss, path)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		*iss = appendInvalidType(*iss, path, "string")
		return ""
	}
	if s == "" {
		*iss = appendRequired(*iss, path)
		return ""
	}
	return s
}

func readBool(m map[string]any, base, key string, dst *bool, iss *Issues) {
	raw, present := m[key]
	if !present {
		return
	}
	b, ok := raw.(bool)
	if !ok {
		*iss = appendInvalidType(*iss, base+"."+key, "bool")
		return
	}
	*dst = b
}

func appendRequired(iss Issues, path string) Issues {
	return AppendIssues(iss, Issue{
		Path:    path,
		Code:    CodeRequired,
		Message: i18n.T(CodeRequired, nil),
	})
}

func appendInvalidType(iss Issues, path, expected string) Issues {
	return AppendIssues(iss, Issue{
		Path:    path,
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"expected": expected}),
	})
}
