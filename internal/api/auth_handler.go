package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devfolio/devfolio/internal/auth"
	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/store"
)

const minPasswordLength = 6

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("email and name required"))
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, fmt.Errorf("password must be at least %d characters", minPasswordLength))
		return
	}
	if _, err := s.store.UserByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("email already registered"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	user, err := s.store.CreateUser(r.Context(), req.Email, hash, req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	token, err := auth.IssueToken(s.jwtSecret, user.ID, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: user registered", "user", user.ID)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: newUserResponse(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user, err := s.store.UserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, fmt.Errorf("invalid credentials"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, fmt.Errorf("invalid credentials"))
		return
	}
	token, err := auth.IssueToken(s.jwtSecret, user.ID, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: user logged in", "user", user.ID)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: newUserResponse(user)})
}
