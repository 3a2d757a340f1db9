package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/qtype"
	"github.com/quizforge/quizforge/internal/rbac"
)

func newServer(role string) *httptest.Server {
	defs := qtype.NewMemoryDefinitionStore()
	ovs := qtype.NewMemoryOverrideStore()
	reg := qtype.NewRegistry(defs)
	res := qtype.NewResolver(defs, ovs)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(rbac.WithRole(req.Context(), role)))
		})
	})
	api.Mount(r, reg, res)
	return httptest.NewServer(r)
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestListTypesReturnsBuiltins(t *testing.T) {
	srv := newServer("author")
	defer srv.Close()

	resp := do(t, http.MethodGet, srv.URL+"/qtypes", "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var defs []qtype.QuestionTypeDefinition
	if err := json.NewDecoder(resp.Body).Decode(&defs); err != nil {
		t.Fatal(err)
	}
	if len(defs) != 5 {
		t.Fatalf("got %d types, want 5 builtins", len(defs))
	}
}

func TestCreateTypeRequiresEditPermission(t *testing.T) {
	srv := newServer("author")
	defer srv.Close()

	resp := do(t, http.MethodPost, srv.URL+"/qtypes", `{"key":"x"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status %d, want 403", resp.StatusCode)
	}
}

func TestCreateAndDeleteType(t *testing.T) {
	srv := newServer("editor")
	defer srv.Close()

	body := `{
		"key": "trivia",
		"title": "Trivia",
		"ui_template": "short_text",
		"scoring_rule": {"formula":"exact_match","mistake_metric":"compact_text_equal","correct_points":1}
	}`
	resp := do(t, http.MethodPost, srv.URL+"/qtypes", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}

	resp = do(t, http.MethodDelete, srv.URL+"/qtypes/trivia", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}

	// system types are protected
	resp = do(t, http.MethodDelete, srv.URL+"/qtypes/radio", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("delete system: status %d, want 409", resp.StatusCode)
	}
}

func TestCreateTypeRejectsBadRule(t *testing.T) {
	srv := newServer("editor")
	defer srv.Close()

	body := `{
		"key": "broken",
		"ui_template": "short_text",
		"scoring_rule": {"formula":"exact_match","mistake_metric":"set_distance","correct_points":1}
	}`
	resp := do(t, http.MethodPost, srv.URL+"/qtypes", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", resp.StatusCode)
	}
}

func TestOverrideRoundTrip(t *testing.T) {
	srv := newServer("editor")
	defer srv.Close()

	put := `{"title_override":"Pick one","is_disabled":false}`
	resp := do(t, http.MethodPut, srv.URL+"/tests/t1/qtypes/radio", put)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put override: status %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, srv.URL+"/tests/t1/qtypes", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resolve: status %d", resp.StatusCode)
	}
	var types []qtype.EffectiveQuestionType
	if err := json.NewDecoder(resp.Body).Decode(&types); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	found := false
	for _, et := range types {
		if et.Key == "radio" {
			found = true
			if et.Title != "Pick one" {
				t.Fatalf("override not applied: %q", et.Title)
			}
		}
	}
	if !found {
		t.Fatal("radio missing from effective types")
	}

	resp = do(t, http.MethodDelete, srv.URL+"/tests/t1/qtypes/radio", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete override: status %d", resp.StatusCode)
	}
}

func TestValidateEndpoint(t *testing.T) {
	srv := newServer("author")
	defer srv.Close()

	good := `{"options":[{"id":"a"},{"id":"b"}],"correct":"a"}`
	resp := do(t, http.MethodPost, srv.URL+"/tests/t1/qtypes/radio/validate", good)
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if out["valid"] != true {
		t.Fatalf("got %+v", out)
	}

	bad := `{"options":[{"id":"a"},{"id":"b"}],"correct":"z"}`
	resp = do(t, http.MethodPost, srv.URL+"/tests/t1/qtypes/radio/validate", bad)
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if out["valid"] != false || out["error"] == "" {
		t.Fatalf("got %+v", out)
	}
}

func TestGradeEndpointWithFallback(t *testing.T) {
	srv := newServer("author")
	defer srv.Close()

	body := `{"user_answer":"2315","correct_answer":"2314"}`
	resp := do(t, http.MethodPost, srv.URL+"/tests/t1/qtypes/sequence/grade", body)
	var res qtype.GradedResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if res.MistakesCount != 1 || res.EarnedPoints != 1 {
		t.Fatalf("got %+v", res)
	}

	// unknown type key never errors: legacy fallback applies
	resp = do(t, http.MethodPost, srv.URL+"/tests/t1/qtypes/deleted_type/grade",
		`{"user_answer":"x","correct_answer":"x"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fallback grade: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if !res.IsCorrect || res.EarnedPoints != 1 {
		t.Fatalf("fallback grade: got %+v", res)
	}
}
