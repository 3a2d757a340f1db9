package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/qtype"
)

// GET /qtypes?include_inactive=1
func ListTypesHandler(reg *qtype.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs, err := reg.ListGlobalTypes(r.Context(), boolParam(r, "include_inactive"))
		if err != nil {
			http.Error(w, "list types: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, defs)
	}
}

// POST /qtypes
func CreateTypeHandler(reg *qtype.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var def qtype.QuestionTypeDefinition
		if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		created, err := reg.Create(r.Context(), def)
		if err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, created)
	}
}

// PUT /qtypes/{key}
func UpdateTypeHandler(reg *qtype.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if key == "" {
			http.Error(w, "key required", http.StatusBadRequest)
			return
		}
		var upd qtype.DefinitionUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		def, err := reg.Update(r.Context(), key, upd)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, def)
	}
}

// DELETE /qtypes/{key}
func DeleteTypeHandler(reg *qtype.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if key == "" {
			http.Error(w, "key required", http.StatusBadRequest)
			return
		}
		if err := reg.Delete(r.Context(), key); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, qtype.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, qtype.ErrProtected):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, qtype.ErrConfigInvalid):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func boolParam(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}
