// Package generate calls a hosted language model to draft a candidate mapping
// configuration. The output is untrusted: callers must pass it through
// recmap.Validate before use. Generation is idempotent and has no side
// effects, so callers may retry failed invocations.
package generate

import (
	"context"

	"github.com/reoring/recmap/source"
)

// Request describes what the generator should draft a configuration for.
type Request struct {
	SourceSample     string
	SourceType       source.Type
	TargetRepository string
}

// Generator produces a candidate mapping configuration. Implementations must
// surface transport failures as *UnavailableError rather than falling back to
// a placeholder configuration.
type Generator interface {
	GenerateConfig(ctx context.Context, req Request) (map[string]any, error)
}

// UnavailableError marks a network/timeout/upstream failure of the generator.
// API layers map it to a 5xx with code dependency_unavailable.
type UnavailableError struct{ Err error }

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "generate: config generator unavailable"
	}
	return "generate: config generator unavailable: " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error { return e.Err }
