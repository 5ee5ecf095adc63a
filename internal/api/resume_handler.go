package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/devfolio/devfolio/internal/auth"
	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/gen"
	"github.com/devfolio/devfolio/internal/store"
)

const assistantUnavailableWarning = "assistant unavailable, returned a default draft"

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	row, err := s.store.ResumeForUser(r.Context(), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("resume not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":        row.ID,
		"resume":    json.RawMessage(row.Payload),
		"updatedAt": row.UpdatedAt,
	})
}

func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(payload) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("resume body required"))
		return
	}
	row, err := s.store.SaveResume(r.Context(), user.ID, string(payload))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":        row.ID,
		"resume":    json.RawMessage(row.Payload),
		"updatedAt": row.UpdatedAt,
	})
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	err := s.store.DeleteResume(r.Context(), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("resume not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	user := auth.UserFrom(r.Context())
	profile := gen.Profile{
		Name:   user.Name,
		Email:  user.Email,
		Bio:    user.Bio,
		Skills: user.Skills,
	}
	resume, usedFallback := gen.GenerateResume(r.Context(), s.provider, profile)
	logger.Info("api: resume generated", "user", user.ID, "fallback", usedFallback)
	resp := map[string]interface{}{"success": true, "resume": resume}
	if usedFallback {
		resp["warning"] = assistantUnavailableWarning
	}
	writeJSON(w, http.StatusOK, resp)
}
