package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/devfolio/devfolio/internal/auth"
	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/store"
)

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("title and description required"))
		return
	}
	project, err := s.store.CreateProject(r.Context(), store.Project{
		UserID:          user.ID,
		Title:           req.Title,
		Description:     req.Description,
		Technologies:    store.StringList(req.Technologies),
		Status:          req.Status,
		IsPublic:        req.IsPublic,
		RoadmapOverview: req.RoadmapOverview,
		GitHubURL:       req.GitHubURL,
		DemoURL:         req.DemoURL,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: project created", "project", project.ID, "user", user.ID)
	writeJSON(w, http.StatusCreated, newProjectResponse(project, nil))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	projects, err := s.store.ProjectsForUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]projectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, newProjectResponse(&projects[i], nil))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": out})
}

// loadVisibleProject fetches the project and enforces visibility: owners see
// everything, others only public projects.
func (s *Server) loadVisibleProject(w http.ResponseWriter, r *http.Request) *store.Project {
	user := auth.UserFrom(r.Context())
	project, err := s.store.ProjectByID(r.Context(), chi.URLParam(r, "projectID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("project not found"))
		return nil
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil
	}
	if !project.IsPublic && project.UserID != user.ID {
		writeError(w, http.StatusNotFound, fmt.Errorf("project not found"))
		return nil
	}
	return project
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project := s.loadVisibleProject(w, r)
	if project == nil {
		return
	}
	items, err := s.store.RoadmapItems(r.Context(), project.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, newProjectResponse(project, items))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("title and description required"))
		return
	}
	project, err := s.store.UpdateProject(r.Context(), store.Project{
		ID:              chi.URLParam(r, "projectID"),
		UserID:          user.ID,
		Title:           req.Title,
		Description:     req.Description,
		Technologies:    store.StringList(req.Technologies),
		Status:          req.Status,
		IsPublic:        req.IsPublic,
		RoadmapOverview: req.RoadmapOverview,
		GitHubURL:       req.GitHubURL,
		DemoURL:         req.DemoURL,
		ImageURL:        req.ImageURL,
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("project not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, newProjectResponse(project, nil))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	err := s.store.DeleteProject(r.Context(), chi.URLParam(r, "projectID"), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("project not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleCommunityProjects(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	projects, err := s.store.PublicProjects(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]projectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, newProjectResponse(&projects[i], nil))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": out})
}

func (s *Server) handleStarProject(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	project := s.loadVisibleProject(w, r)
	if project == nil {
		return
	}
	starred, stars, err := s.store.ToggleProjectStar(r.Context(), project.ID, user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"starred": starred, "stars": stars})
}

func (s *Server) handleForkProject(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	fork, err := s.store.ForkProject(r.Context(), chi.URLParam(r, "projectID"), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("project not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: project forked", "source", chi.URLParam(r, "projectID"), "fork", fork.ID, "user", user.ID)
	items, err := s.store.RoadmapItems(r.Context(), fork.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProjectResponse(fork, items))
}

func (s *Server) handleSaveRoadmap(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	projectID := chi.URLParam(r, "projectID")
	project, err := s.store.ProjectByID(r.Context(), projectID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && project.UserID != user.ID) {
		writeError(w, http.StatusNotFound, fmt.Errorf("project not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	var req saveRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rows := make([]store.RoadmapItemRow, 0, len(req.RoadmapItems))
	for _, item := range req.RoadmapItems {
		rows = append(rows, store.RoadmapItemRow{
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category,
			DueDate:     item.DueDate,
			Completed:   item.Completed,
		})
	}
	if err := s.store.ReplaceRoadmap(r.Context(), projectID, req.RoadmapOverview, rows); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	items, err := s.store.RoadmapItems(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	project, err = s.store.ProjectByID(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, newProjectResponse(project, items))
}

func (s *Server) handleCompleteRoadmapItem(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	projectID := chi.URLParam(r, "projectID")
	project, err := s.store.ProjectByID(r.Context(), projectID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && project.UserID != user.ID) {
		writeError(w, http.StatusNotFound, fmt.Errorf("project not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid item id"))
		return
	}
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	err = s.store.SetRoadmapItemCompleted(r.Context(), projectID, itemID, req.Completed)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("roadmap item not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
