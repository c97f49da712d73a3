package recmap

import (
	"errors"
	"strings"

	"github.com/reoring/recmap/i18n"
	"github.com/reoring/recmap/schema"
	"github.com/reoring/recmap/source"
)

// ConfigSummary is the dry-validate response: the configuration passed both
// validation passes but no source payload was supplied.
type ConfigSummary struct {
	Name             string   `json:"name"`
	TargetRepository string   `json:"targetRepository"`
	MappedFields     []string `json:"mappedFields"`
}

// ExecuteResult is the outcome of one Execute call. Exactly one of Issues,
// Config, or Summary+Records is populated.
type ExecuteResult struct {
	Valid   bool                 `json:"valid"`
	Issues  Issues               `json:"errors,omitempty"`
	Config  *ConfigSummary       `json:"config,omitempty"`
	Summary *ImportSummary       `json:"summary,omitempty"`
	Records []StandardizedRecord `json:"records,omitempty"`
}

// Execute validates a candidate configuration and, when raw source text is
// supplied, parses it and runs the importer. An empty raw payload is the
// dry-validate mode: Valid:true with a configuration summary only.
//
// Validation, unknown-repository, coverage, and source-parse failures abort
// the whole call with Valid:false; per-record failures do not (they live on
// the records themselves).
func Execute(candidate any, raw string, reg *schema.Registry) *ExecuteResult {
	cfg, iss := Validate(candidate, reg)
	if len(iss) > 0 {
		return &ExecuteResult{Valid: false, Issues: iss}
	}

	if strings.TrimSpace(raw) == "" {
		return &ExecuteResult{
			Valid: true,
			Config: &ConfigSummary{
				Name:             cfg.Name,
				TargetRepository: cfg.TargetRepository,
				MappedFields:     cfg.MappedTargetFields(),
			},
		}
	}

	records, err := source.Parse(raw, cfg.SourceType)
	if err != nil {
		return &ExecuteResult{Valid: false, Issues: sourceIssues(err)}
	}

	res := Import(cfg, records)
	return &ExecuteResult{Valid: true, Summary: &res.Summary, Records: res.Records}
}

// sourceIssues converts source-package errors into the structured issue list
// returned to callers.
func sourceIssues(err error) Issues {
	var ut *source.UnsupportedTypeError
	if errors.As(err, &ut) {
		return Issues{Issue{
			Path:    "sourceType",
			Code:    CodeUnsupportedSourceType,
			Message: i18n.T(CodeUnsupportedSourceType, map[string]string{"type": ut.Type.String()}),
			Cause:   err,
		}}
	}
	var mf *source.MalformedError
	if errors.As(err, &mf) {
		return Issues{Issue{
			Path:    "sourceData",
			Code:    CodeMalformedSource,
			Message: i18n.T(CodeMalformedSource, nil),
			Hint:    mf.Error(),
			Cause:   err,
		}}
	}
	return Issues{Issue{
		Path:    "sourceData",
		Code:    CodeParseError,
		Message: i18n.T(CodeParseError, nil),
		Cause:   err,
	}}
}
