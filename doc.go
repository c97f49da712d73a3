package recmap

// Package recmap provides:
//
// - Validation of declarative mapping configurations against a target-schema registry
// - A stable error model via Issues (dotted path, code, message)
// - Source parsing for delimited and semi-structured payloads under source/
// - Per-field transform application with record-local failure isolation
//
// Design policy:
// - Keep only public engine APIs in the root package; parsing lives under source/,
//   the schema registry under schema/, message rendering under i18n/.
// - The registry is constructed explicitly and injected; nothing in the engine
//   mutates process-wide state.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	cfg, iss := recmap.Validate(candidate, reg)
//	res := recmap.Execute(candidate, rawSource, reg)
//	out := recmap.Import(cfg, records)
