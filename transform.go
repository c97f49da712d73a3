package recmap

import (
	"fmt"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transform is the closed set of value-level conversions. The zero value is
// the identity.
type Transform int

const (
	TransformNone Transform = iota
	TransformUppercase
	TransformLowercase
	TransformTrim
	TransformNumber
)

// NumberFallback is the policy-defined value stored when the number transform
// fails; the failure is still recorded on the record.
const NumberFallback = float64(0)

// String renders the wire name of the transform.
func (t Transform) String() string {
	switch t {
	case TransformNone:
		return "none"
	case TransformUppercase:
		return "uppercase"
	case TransformLowercase:
		return "lowercase"
	case TransformTrim:
		return "trim"
	case TransformNumber:
		return "number"
	default:
		return fmt.Sprintf("transform(%d)", int(t))
	}
}

// MarshalJSON renders the transform as its wire name.
func (t Transform) MarshalJSON() ([]byte, error) { return []byte(`"` + t.String() + `"`), nil }

// TransformNames lists the accepted wire names in declaration order.
func TransformNames() []string {
	return []string{"none", "uppercase", "lowercase", "trim", "number"}
}

// ParseTransform resolves a wire name to a Transform.
func ParseTransform(s string) (Transform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TransformNone, true
	case "uppercase":
		return TransformUppercase, true
	case "lowercase":
		return TransformLowercase, true
	case "trim":
		return TransformTrim, true
	case "number":
		return TransformNumber, true
	default:
		return Transform(-1), false
	}
}

// TransformError reports a single per-field conversion failure. It is
// record-local: the caller attaches it to the record's error list and keeps
// processing.
type TransformError struct {
	Kind   Transform
	Reason string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %q failed: %s", e.Kind.String(), e.Reason)
}

// Apply runs a named transform over a single value. It is pure and total over
// the closed Transform set. On number-coercion failure it returns
// NumberFallback together with the error so the caller can store the fallback
// while recording the failure.
func Apply(v any, t Transform) (any, *TransformError) {
	switch t {
	case TransformNone:
		return v, nil
	case TransformUppercase:
		return cases.Upper(language.Und).String(asText(v)), nil
	case TransformLowercase:
		return cases.Lower(language.Und).String(asText(v)), nil
	case TransformTrim:
		return strings.TrimSpace(asText(v)), nil
	case TransformNumber:
		n, ok := asNumber(v)
		if !ok {
			return NumberFallback, &TransformError{
				Kind:   t,
				Reason: fmt.Sprintf("cannot convert %q to a number", asText(v)),
			}
		}
		return n, nil
	default:
		// Unreachable for validated configurations; the enum is closed.
		return v, &TransformError{Kind: t, Reason: "unknown transform"}
	}
}

// asText renders the textual representation used by the case/trim transforms.
func asText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case j.Number:
		return s.String()
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case j.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
