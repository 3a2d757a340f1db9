package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/qtype"
)

// GET /tests/{testID}/qtypes?include_inactive=1
func ListEffectiveTypesHandler(res *qtype.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testID := strings.TrimSpace(chi.URLParam(r, "testID"))
		if testID == "" {
			http.Error(w, "testID required", http.StatusBadRequest)
			return
		}
		types, err := res.ResolveEffectiveTypes(r.Context(), testID, boolParam(r, "include_inactive"))
		if err != nil {
			http.Error(w, "resolve types: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, types)
	}
}

type overrideReq struct {
	TitleOverride       *string            `json:"title_override,omitempty"`
	ScoringRuleOverride *qtype.ScoringRule `json:"scoring_rule_override,omitempty"`
	IsDisabled          bool               `json:"is_disabled,omitempty"`
}

// PUT /tests/{testID}/qtypes/{key}
func PutOverrideHandler(res *qtype.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testID := strings.TrimSpace(chi.URLParam(r, "testID"))
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if testID == "" || key == "" {
			http.Error(w, "testID and key required", http.StatusBadRequest)
			return
		}
		var req overrideReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		ov := qtype.TestQuestionTypeOverride{
			TestID:              testID,
			TypeKey:             key,
			TitleOverride:       req.TitleOverride,
			ScoringRuleOverride: req.ScoringRuleOverride,
			IsDisabled:          req.IsDisabled,
		}
		if err := res.SaveOverride(r.Context(), ov); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, ov)
	}
}

// DELETE /tests/{testID}/qtypes/{key}
func DeleteOverrideHandler(res *qtype.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testID := strings.TrimSpace(chi.URLParam(r, "testID"))
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if testID == "" || key == "" {
			http.Error(w, "testID and key required", http.StatusBadRequest)
			return
		}
		if err := res.DeleteOverride(r.Context(), testID, key); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
