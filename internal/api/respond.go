package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"inkwell/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

// writeDetail writes the {"detail": ...} error shape used across the API.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// decodeJSON reads a request body into v. A malformed body is a client
// error; an empty body decodes to the zero value so PUT with no fields
// behaves like an empty patch.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// storeError maps store sentinels onto wire statuses. notFound carries the
// entity-specific 404 text since the store does not know which noun the
// route was about.
func (s *Service) storeError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeDetail(w, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrEmptyName):
		writeDetail(w, http.StatusBadRequest, "Project name is required")
	case errors.Is(err, store.ErrProjectExists):
		writeDetail(w, http.StatusBadRequest, "A project with this name already exists")
	case errors.Is(err, store.ErrBadStatus):
		writeDetail(w, http.StatusBadRequest, "Invalid status")
	default:
		log.Error().Err(err).Msg("store operation failed")
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}
