package source

import "strings"

// parseCSV implements the best-effort delimited strategy: the first non-empty
// line is the header, fields split on "," with surrounding whitespace trimmed
// from header names and values. Rows shorter than the header align by index
// and missing trailing fields become "". Quoting/escaping is intentionally not
// supported; a literal comma inside a value is indistinguishable from a
// delimiter. This is observable, documented behavior.
func parseCSV(raw string) []Record {
	lines := make([]string, 0, 16)
	for _, ln := range strings.Split(raw, "\n") {
		ln = strings.TrimSpace(strings.TrimSuffix(ln, "\r"))
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	// Header-only or empty input yields an empty sequence, not an error.
	if len(lines) < 2 {
		return []Record{}
	}

	headers := splitFields(lines[0])
	records := make([]Record, 0, len(lines)-1)
	for _, ln := range lines[1:] {
		values := splitFields(ln)
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(values) {
				rec[h] = values[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
