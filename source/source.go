// Package source turns raw source text into an ordered sequence of flat
// records. Two strategies exist: a best-effort delimited parser (csv) and a
// JSON parser (json) that accepts arrays, array-bearing objects, and single
// values.
package source

import (
	"fmt"
	"strings"
)

// Record is one parsed source row/element: a flat mapping from field name to
// raw value (string, json.Number, bool, nil, or nested values for JSON input).
type Record map[string]any

// Type selects the parsing strategy.
type Type int

const (
	TypeCSV Type = iota
	TypeJSON
)

// String renders the wire name of the type.
func (t Type) String() string {
	switch t {
	case TypeCSV:
		return "csv"
	case TypeJSON:
		return "json"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// MarshalJSON renders the type as its wire name.
func (t Type) MarshalJSON() ([]byte, error) { return []byte(`"` + t.String() + `"`), nil }

// TypeNames lists the accepted wire names in declaration order.
func TypeNames() []string { return []string{"csv", "json"} }

// ParseType resolves a wire name to a Type. Matching is case-insensitive and
// ignores surrounding whitespace.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return TypeCSV, true
	case "json":
		return TypeJSON, true
	default:
		return Type(-1), false
	}
}

// UnsupportedTypeError reports a Type outside the closed csv/json set.
type UnsupportedTypeError struct{ Type Type }

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("source: unsupported source type %q", e.Type.String())
}

// MalformedError reports raw text that could not be parsed by the selected
// strategy.
type MalformedError struct{ Cause error }

func (e *MalformedError) Error() string {
	if e.Cause == nil {
		return "source: malformed source"
	}
	return "source: malformed source: " + e.Cause.Error()
}

func (e *MalformedError) Unwrap() error { return e.Cause }

// Parse converts raw source text into an ordered sequence of records using the
// strategy selected by t.
func Parse(raw string, t Type) ([]Record, error) {
	switch t {
	case TypeCSV:
		return parseCSV(raw), nil
	case TypeJSON:
		return parseJSON(raw)
	default:
		return nil, &UnsupportedTypeError{Type: t}
	}
}
