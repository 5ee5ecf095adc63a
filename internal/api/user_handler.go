package api

import (
	"encoding/json"
	"net/http"

	"github.com/devfolio/devfolio/internal/auth"
	"github.com/devfolio/devfolio/internal/store"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updated, err := s.store.UpdateProfile(r.Context(), user.ID, store.ProfileUpdate{
		Name:     req.Name,
		Picture:  req.Picture,
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
		Company:  req.Company,
		Skills:   req.Skills,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(updated))
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, settingsResponse{
		DarkMode:           user.DarkMode,
		EmailNotifications: user.EmailNotifications,
		PublicProfile:      user.PublicProfile,
	})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	var req settingsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updated, err := s.store.UpdateSettings(r.Context(), user.ID, store.SettingsUpdate{
		DarkMode:           req.DarkMode,
		EmailNotifications: req.EmailNotifications,
		PublicProfile:      req.PublicProfile,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{
		DarkMode:           updated.DarkMode,
		EmailNotifications: updated.EmailNotifications,
		PublicProfile:      updated.PublicProfile,
	})
}
