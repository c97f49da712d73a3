package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	j "github.com/goccy/go-json"

	"github.com/reoring/recmap/generate"
	"github.com/reoring/recmap/schema"
	"github.com/reoring/recmap/server"
)

type stubGenerator struct {
	candidate map[string]any
	err       error
}

func (s stubGenerator) GenerateConfig(context.Context, generate.Request) (map[string]any, error) {
	return s.candidate, s.err
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := j.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestExecuteConfig_HappyPath(t *testing.T) {
	srv := server.New(schema.DefaultRegistry(), nil)
	body := `{
		"config": {
			"name": "csv users",
			"sourceType": "csv",
			"targetRepository": "users",
			"idField": "id",
			"fieldMappings": [
				{"sourceField": "name", "targetField": "name"},
				{"sourceField": "email", "targetField": "email"}
			]
		},
		"sourceData": "id,name,email\n1,Alice,a@example.com\n2,Bob,b@example.com"
	}`
	rec := do(t, srv.Handler(), http.MethodPost, "/api/execute-config", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeBody(t, rec)
	if out["valid"] != true {
		t.Fatalf("expected valid execution: %v", out)
	}
	summary, _ := out["summary"].(map[string]any)
	if summary == nil || summary["totalRecords"] != float64(2) {
		t.Fatalf("unexpected summary: %v", out)
	}
	records, _ := out["records"].([]any)
	if len(records) != 2 {
		t.Fatalf("expected 2 records: %v", out)
	}
}

func TestExecuteConfig_InvalidConfigStaysHTTP200(t *testing.T) {
	srv := server.New(schema.DefaultRegistry(), nil)
	rec := do(t, srv.Handler(), http.MethodPost, "/api/execute-config",
		`{"config": {"name": "broken"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("domain failure is not a transport failure, got %d", rec.Code)
	}
	out := decodeBody(t, rec)
	if out["valid"] != false {
		t.Fatalf("expected valid:false: %v", out)
	}
	errs, _ := out["errors"].([]any)
	if len(errs) == 0 {
		t.Fatalf("expected error list: %v", out)
	}
	first, _ := errs[0].(map[string]any)
	if first["path"] == nil || first["message"] == nil {
		t.Fatalf("errors must carry path and message: %v", errs)
	}
}

func TestExecuteConfig_MissingConfigIs400(t *testing.T) {
	srv := server.New(schema.DefaultRegistry(), nil)
	rec := do(t, srv.Handler(), http.MethodPost, "/api/execute-config", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExecuteConfig_DryValidate(t *testing.T) {
	srv := server.New(schema.DefaultRegistry(), nil)
	body := `{
		"config": {
			"name": "dry",
			"sourceType": "csv",
			"targetRepository": "users",
			"idField": "id",
			"fieldMappings": [
				{"sourceField": "n", "targetField": "name"},
				{"sourceField": "e", "targetField": "email"}
			]
		}
	}`
	rec := do(t, srv.Handler(), http.MethodPost, "/api/execute-config", body)
	out := decodeBody(t, rec)
	if out["valid"] != true || out["records"] != nil || out["summary"] != nil {
		t.Fatalf("expected dry validate response: %v", out)
	}
	cfg, _ := out["config"].(map[string]any)
	if cfg == nil || cfg["targetRepository"] != "users" {
		t.Fatalf("expected config summary: %v", out)
	}
}

func TestGenerateConfig_OK(t *testing.T) {
	srv := server.New(schema.DefaultRegistry(), stubGenerator{
		candidate: map[string]any{"name": "draft", "targetRepository": "users"},
	})
	rec := do(t, srv.Handler(), http.MethodPost, "/api/generate-config",
		`{"sourceSample": "id,name\n1,Alice", "sourceType": "csv", "targetRepository": "users"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeBody(t, rec)
	cfg, _ := out["config"].(map[string]any)
	if cfg == nil || cfg["name"] != "draft" {
		t.Fatalf("expected candidate config: %v", out)
	}
}

func TestGenerateConfig_UnavailableMapsTo502(t *testing.T) {
	srv := server.New(schema.DefaultRegistry(), stubGenerator{
		err: &generate.UnavailableError{},
	})
	rec := do(t, srv.Handler(), http.MethodPost, "/api/generate-config",
		`{"sourceSample": "x", "sourceType": "csv"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	out := decodeBody(t, rec)
	errs, _ := out["errors"].([]any)
	first, _ := errs[0].(map[string]any)
	if first["code"] != "dependency_unavailable" {
		t.Fatalf("expected dependency_unavailable: %v", out)
	}
}

func TestGenerateConfig_BadSourceTypeIs400(t *testing.T) {
	srv := server.New(schema.DefaultRegistry(), stubGenerator{})
	rec := do(t, srv.Handler(), http.MethodPost, "/api/generate-config",
		`{"sourceSample": "x", "sourceType": "xml"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRepositories(t *testing.T) {
	srv := server.New(schema.DefaultRegistry(), nil)
	rec := do(t, srv.Handler(), http.MethodGet, "/api/repositories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	out := decodeBody(t, rec)
	repos, _ := out["repositories"].([]any)
	if len(repos) != 3 {
		t.Fatalf("expected 3 repositories: %v", out)
	}
}

func TestHealth(t *testing.T) {
	srv := server.New(schema.DefaultRegistry(), nil)
	rec := do(t, srv.Handler(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
