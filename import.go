package recmap

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reoring/recmap/source"
)

// StandardizedRecord is the uniform output unit: one per source record,
// immutable once assembled.
type StandardizedRecord struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Data        map[string]any `json:"data"`
	SourceIndex int            `json:"sourceIndex"`
	Success     bool           `json:"success"`
	Errors      []string       `json:"errors"`
}

// ImportSummary aggregates per-record outcomes for one batch. ImportedAt is
// captured once at the start of the batch so every record shares the stamp.
type ImportSummary struct {
	ImportID          string    `json:"importId"`
	TargetRepository  string    `json:"targetRepository"`
	TotalRecords      int       `json:"totalRecords"`
	SuccessfulImports int       `json:"successfulImports"`
	FailedImports     int       `json:"failedImports"`
	ImportedAt        time.Time `json:"importedAt"`
}

// ImportResult bundles the summary with the standardized records.
type ImportResult struct {
	Summary ImportSummary        `json:"summary"`
	Records []StandardizedRecord `json:"records"`
}

// Import applies a validated configuration to parsed source records.
// Processing order is source order. Transform failures and missing
// identifiers are record-local: they mark that record failed and never abort
// the batch. An empty input yields totalRecords=0 without error.
func Import(cfg *MappingConfig, records []source.Record) *ImportResult {
	importedAt := time.Now().UTC()
	out := make([]StandardizedRecord, 0, len(records))
	successful := 0

	for idx, rec := range records {
		sr := importOne(cfg, rec, idx)
		if sr.Success {
			successful++
		}
		out = append(out, sr)
	}

	return &ImportResult{
		Summary: ImportSummary{
			ImportID:          uuid.NewString(),
			TargetRepository:  cfg.TargetRepository,
			TotalRecords:      len(records),
			SuccessfulImports: successful,
			FailedImports:     len(records) - successful,
			ImportedAt:        importedAt,
		},
		Records: out,
	}
}

func importOne(cfg *MappingConfig, rec source.Record, idx int) StandardizedRecord {
	errs := []string{}

	id := identifierOf(rec, cfg.IDField)
	if id == "" {
		errs = append(errs, fmt.Sprintf("missing identifier field %q", cfg.IDField))
		id = fmt.Sprintf("unknown-%d", idx)
	}

	data := make(map[string]any, len(cfg.FieldMappings))
	for _, fm := range cfg.FieldMappings {
		raw, present := rec[fm.SourceField]
		empty := !present || raw == nil || raw == ""
		if empty && cfg.Options.SkipEmptyFields {
			// Skipped entirely: the target field is left unset for this record,
			// not set to null. An earlier mapping's write survives.
			continue
		}
		value := raw
		if present && raw != nil {
			transformed, terr := Apply(raw, fm.Transform)
			if terr != nil {
				errs = append(errs, fmt.Sprintf("transform %q failed for field %q: %s",
					fm.Transform.String(), fm.SourceField, terr.Reason))
			}
			value = transformed
		}
		// Last write to the same target field wins.
		data[fm.TargetField] = value
	}

	return StandardizedRecord{
		ID:          id,
		Type:        cfg.TargetRepository,
		Data:        data,
		SourceIndex: idx,
		Success:     len(errs) == 0,
		Errors:      errs,
	}
}

// identifierOf renders the record's identifier value, or "" when it is
// absent, null, or empty.
func identifierOf(rec source.Record, idField string) string {
	raw, present := rec[idField]
	if !present || raw == nil {
		return ""
	}
	return asText(raw)
}
