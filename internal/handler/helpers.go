package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/metaverse-club/clubforms/internal/schema"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// respondFailure maps a service error to the uniform error response:
// 422 with field detail for validation failures, 500 for sink failures.
func respondFailure(w http.ResponseWriter, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"status":  "error",
			"message": "validation failed",
			"errors":  verr.Fields,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
