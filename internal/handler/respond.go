package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yusufkecer/calorist-backend/internal/i18n"
	"github.com/yusufkecer/calorist-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into dst and writes the error response
// itself when that fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service errors to a status. notFound is the message
// used for service.ErrNotFound.
func writeServiceError(w http.ResponseWriter, err error, notFound string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid argument")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "already exists")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// language picks the label language from Accept-Language.
func language(r *http.Request, fallback i18n.Language) i18n.Language {
	return i18n.Negotiate(r.Header.Get("Accept-Language"), fallback)
}
