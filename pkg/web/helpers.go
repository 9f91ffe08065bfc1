package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ValidationError describes one schema violation of a request.
// Loc is the location of the offending value, e.g. ["body", "price"] or ["path", "id"].
type ValidationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondDetail writes {"detail": message}.
func RespondDetail(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"detail": message})
}

// RespondValidationErrors writes 422 with the list of violations under "detail".
func RespondValidationErrors(w http.ResponseWriter, logger *slog.Logger, errs []ValidationError) {
	RespondJSON(w, logger, http.StatusUnprocessableEntity, map[string]any{"detail": errs})
}

// ParseID extracts the integer id from the request path. On failure it writes a 422 response
// and returns false.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	pathValueID := r.PathValue("id")
	if pathValueID == "" {
		pathValueID = chi.URLParam(r, "id")
	}
	id, err := strconv.ParseInt(pathValueID, 10, 64)
	if err != nil {
		RespondValidationErrors(w, logger, []ValidationError{{
			Loc:  []string{"path", "id"},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}})
		return 0, false
	}
	return id, true
}
