package recmap

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType = "invalid_type"
	CodeRequired    = "required"
	CodeInvalidEnum = "invalid_enum"
	CodeParseError  = "parse_error"
	// Configuration-level failures (abort the whole import)
	CodeUnknownTargetRepository = "unknown_target_repository"
	CodeMissingRequiredField    = "missing_required_field"
	CodeUnsupportedSourceType   = "unsupported_source_type"
	CodeMalformedSource         = "malformed_source"
	// Record-local failures (never abort the batch; surfaced on the record itself)
	CodeTransformError    = "transform_error"
	CodeMissingIdentifier = "missing_identifier"
	// Dependency temporary/unavailable errors (for mapping to 5xx at API layer)
	CodeDependencyUnavailable = "dependency_unavailable"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path"` // Dotted field path (for example: fieldMappings.0.transform).
	Code    string `json:"code"` // One of the codes listed above.
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"` // Optional: remediation hints, allowed values, etc.
	Cause   error  `json:"-"`              // Optional: underlying error.
	// Params carries structured parameters (e.g., {"field":"price"}) for i18n
	// and observability.
	Params map[string]any `json:"params,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at fieldMappings.0.transform
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
