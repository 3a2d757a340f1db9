package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/qtype"
)

// POST /tests/{testID}/qtypes/{key}/validate
func ValidateQuestionHandler(res *qtype.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testID := strings.TrimSpace(chi.URLParam(r, "testID"))
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if testID == "" || key == "" {
			http.Error(w, "testID and key required", http.StatusBadRequest)
			return
		}
		var body qtype.QuestionBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		et, err := res.ResolveEffective(r.Context(), testID, key)
		if err != nil {
			writeErr(w, err)
			return
		}
		if err := qtype.ValidateQuestion(et, body); err != nil {
			writeJSON(w, map[string]any{"valid": false, "error": err.Error()})
			return
		}
		writeJSON(w, map[string]any{"valid": true})
	}
}

type gradeReq struct {
	UserAnswer    any `json:"user_answer"`
	CorrectAnswer any `json:"correct_answer"`
}

// POST /tests/{testID}/qtypes/{key}/grade
//
// An unknown or since-deleted type key never fails the request: grading
// falls back to the builtin presets so historical submissions stay gradable.
func GradeHandler(res *qtype.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testID := strings.TrimSpace(chi.URLParam(r, "testID"))
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if testID == "" || key == "" {
			http.Error(w, "testID and key required", http.StatusBadRequest)
			return
		}
		var req gradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		et, err := res.ResolveEffective(r.Context(), testID, key)
		var result qtype.GradedResult
		switch {
		case err == nil:
			result = qtype.Grade(et, req.UserAnswer, req.CorrectAnswer)
		case errors.Is(err, qtype.ErrNotFound):
			result = qtype.GradeFallback(key, req.UserAnswer, req.CorrectAnswer)
		default:
			http.Error(w, "resolve type: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, result)
	}
}
