package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/model"
)

func (s *Service) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := s.store.GetSetting(r.Context(), key)
	if err != nil {
		s.storeError(w, err, "Setting not found")
		return
	}
	writeJSON(w, http.StatusOK, model.Setting{Key: key, Value: value})
}

func (s *Service) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	var body model.Setting
	if !decodeJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Key) == "" {
		writeDetail(w, http.StatusBadRequest, "Setting key is required")
		return
	}

	if err := s.store.SetSetting(r.Context(), body.Key, body.Value); err != nil {
		s.storeError(w, err, "Setting not found")
		return
	}
	s.notifyChange()
	writeMessage(w, "Setting updated successfully")
}
