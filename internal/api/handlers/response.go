package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dom/ascension-codex/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxPageSize = 500

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorsResponse wraps validation messages under "errors"
type ErrorsResponse struct {
	Errors any `json:"errors"`
}

func writeFieldErrors(w http.ResponseWriter, fe validation.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, ErrorsResponse{
		Errors: map[string]validation.FieldErrors{"fields": fe},
	})
}

// decodeAndValidate reads a JSON body into v and checks its validate tags.
// It writes the 400 itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := validation.Struct(v); err != nil {
		if fe, ok := validation.AsFieldErrors(err); ok {
			writeFieldErrors(w, fe)
			return false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// page reads limit and offset. Missing values are zero; bad values fail.
func page(r *http.Request) (limit, offset int, ok bool) {
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		limit = min(n, maxPageSize)
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		offset = n
	}
	return limit, offset, true
}
