package recmap_test

import (
	"strings"
	"testing"

	j "github.com/goccy/go-json"

	recmap "github.com/reoring/recmap"
)

func TestApply_Identity(t *testing.T) {
	v, terr := recmap.Apply("  keep me  ", recmap.TransformNone)
	if terr != nil || v != "  keep me  " {
		t.Fatalf("identity expected, got v=%v err=%v", v, terr)
	}
}

func TestApply_Case(t *testing.T) {
	v, terr := recmap.Apply("Alice", recmap.TransformUppercase)
	if terr != nil || v != "ALICE" {
		t.Fatalf("uppercase: got v=%v err=%v", v, terr)
	}
	v, terr = recmap.Apply("Alice", recmap.TransformLowercase)
	if terr != nil || v != "alice" {
		t.Fatalf("lowercase: got v=%v err=%v", v, terr)
	}
	// non-string values convert via their textual representation
	v, terr = recmap.Apply(true, recmap.TransformUppercase)
	if terr != nil || v != "TRUE" {
		t.Fatalf("uppercase bool: got v=%v err=%v", v, terr)
	}
}

func TestApply_Trim(t *testing.T) {
	v, terr := recmap.Apply("  padded\t", recmap.TransformTrim)
	if terr != nil || v != "padded" {
		t.Fatalf("trim: got v=%v err=%v", v, terr)
	}
}

func TestApply_Number(t *testing.T) {
	v, terr := recmap.Apply("42.5", recmap.TransformNumber)
	if terr != nil || v != 42.5 {
		t.Fatalf("number from string: got v=%v err=%v", v, terr)
	}
	v, terr = recmap.Apply(j.Number("7"), recmap.TransformNumber)
	if terr != nil || v != float64(7) {
		t.Fatalf("number from json.Number: got v=%v err=%v", v, terr)
	}
	v, terr = recmap.Apply(float64(3), recmap.TransformNumber)
	if terr != nil || v != float64(3) {
		t.Fatalf("number passthrough: got v=%v err=%v", v, terr)
	}
}

func TestApply_NumberFailureFallsBack(t *testing.T) {
	v, terr := recmap.Apply("abc", recmap.TransformNumber)
	if terr == nil {
		t.Fatalf("expected transform error for non-numeric text")
	}
	if v != recmap.NumberFallback {
		t.Fatalf("expected fallback %v, got %v", recmap.NumberFallback, v)
	}
	if !strings.Contains(terr.Reason, `"abc"`) {
		t.Fatalf("reason should quote the offending value: %s", terr.Reason)
	}
}

func TestParseTransform(t *testing.T) {
	cases := map[string]recmap.Transform{
		"":          recmap.TransformNone,
		"none":      recmap.TransformNone,
		"uppercase": recmap.TransformUppercase,
		"lowercase": recmap.TransformLowercase,
		"trim":      recmap.TransformTrim,
		"number":    recmap.TransformNumber,
		"NUMBER":    recmap.TransformNumber,
	}
	for in, want := range cases {
		got, ok := recmap.ParseTransform(in)
		if !ok || got != want {
			t.Fatalf("ParseTransform(%q) = %v/%v, want %v", in, got, ok, want)
		}
	}
	if _, ok := recmap.ParseTransform("shout"); ok {
		t.Fatalf("expected shout to be rejected")
	}
}
