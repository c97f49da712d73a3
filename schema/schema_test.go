package schema_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/reoring/recmap/schema"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := schema.DefaultRegistry()
	ts, ok := reg.Lookup("users")
	if !ok {
		t.Fatalf("users must be pre-declared")
	}
	if ts.Identifier != schema.DefaultIdentifier {
		t.Fatalf("expected default identifier, got %q", ts.Identifier)
	}
	if _, ok := reg.Lookup("invoices"); ok {
		t.Fatalf("absence must be reported, not invented")
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := schema.DefaultRegistry()
	want := []string{"orders", "products", "users"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestNewRegistry_LaterEntryWins(t *testing.T) {
	reg := schema.NewRegistry(
		schema.TargetSchema{Name: "t", Required: []string{"a"}},
		schema.TargetSchema{Name: "t", Required: []string{"b"}},
	)
	ts, _ := reg.Lookup("t")
	if !reflect.DeepEqual(ts.Required, []string{"b"}) {
		t.Fatalf("later entry should overwrite: %v", ts.Required)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
tickets:
  identifier: ref
  required: [subject, reporter]
  optional: [priority]
`)
	reg, err := schema.ParseYAML(data)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ts, ok := reg.Lookup("tickets")
	if !ok {
		t.Fatalf("tickets missing")
	}
	if ts.Identifier != "ref" || !reflect.DeepEqual(ts.Required, []string{"subject", "reporter"}) {
		t.Fatalf("unexpected schema: %+v", ts)
	}
}

func TestParseYAML_Empty(t *testing.T) {
	if _, err := schema.ParseYAML([]byte("")); err == nil {
		t.Fatalf("expected error for empty registry document")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemas.yaml")
	if err := os.WriteFile(path, []byte("things:\n  required: [name]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	reg, err := schema.LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ts, ok := reg.Lookup("things")
	if !ok || ts.Identifier != schema.DefaultIdentifier {
		t.Fatalf("unexpected schema: %+v ok=%v", ts, ok)
	}
}
