package source

import (
	"bytes"
	"strings"

	j "github.com/goccy/go-json"
)

// parseJSON implements the semi-structured strategy. A top-level array yields
// one record per element. A top-level object is scanned in document key order
// and the first key whose value is an array supplies the record sequence; when
// no array-valued key exists the whole value is wrapped as a single record.
// Numbers are preserved as json.Number.
func parseJSON(raw string) ([]Record, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return nil, &MalformedError{Cause: err}
	}
	switch vv := v.(type) {
	case []any:
		return toRecords(vv), nil
	case map[string]any:
		if key, ok := firstArrayKey(raw); ok {
			arr, _ := vv[key].([]any)
			return toRecords(arr), nil
		}
		return []Record{toRecord(vv)}, nil
	default:
		return []Record{toRecord(v)}, nil
	}
}

// decodeValue parses the whole document, rejecting trailing content.
func decodeValue(raw string) (any, error) {
	dec := j.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, &trailingDataError{}
	}
	return v, nil
}

type trailingDataError struct{}

func (*trailingDataError) Error() string { return "trailing data after JSON value" }

// firstArrayKey walks the top-level object token by token and reports the
// first key, in document order, whose value is an array. Map decoding loses
// key order, so the scan reads the raw text a second time.
func firstArrayKey(raw string) (string, bool) {
	dec := j.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil { // consume '{'
		return "", false
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		key, ok := tok.(string)
		if !ok {
			return "", false
		}
		var rm j.RawMessage
		if err := dec.Decode(&rm); err != nil {
			return "", false
		}
		if b := bytes.TrimSpace(rm); len(b) > 0 && b[0] == '[' {
			return key, true
		}
	}
	return "", false
}

func toRecords(arr []any) []Record {
	records := make([]Record, 0, len(arr))
	for _, el := range arr {
		records = append(records, toRecord(el))
	}
	return records
}

// toRecord keeps objects as-is and wraps scalars/arrays so the record shape
// stays uniform.
func toRecord(v any) Record {
	if m, ok := v.(map[string]any); ok {
		return Record(m)
	}
	return Record{"value": v}
}
