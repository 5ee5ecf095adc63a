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
	"github.com/devfolio/devfolio/internal/store"
)

func (s *Server) handleExploreFeed(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	posts, err := s.store.ExplorePosts(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]explorePostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, newExplorePostResponse(&posts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": out})
}

func (s *Server) handleCreateExplorePost(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	var req explorePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("title and description required"))
		return
	}
	post, err := s.store.CreateExplorePost(r.Context(), store.ExplorePost{
		AuthorID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        store.StringList(req.Tags),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, newExplorePostResponse(post))
}

func (s *Server) handleGetExplorePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.store.ExplorePostByID(r.Context(), chi.URLParam(r, "postID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("post not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, newExplorePostResponse(post))
}

func (s *Server) handleUpdateExplorePost(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	var req explorePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	post, err := s.store.UpdateExplorePost(r.Context(), store.ExplorePost{
		ID:          chi.URLParam(r, "postID"),
		AuthorID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        store.StringList(req.Tags),
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("post not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, newExplorePostResponse(post))
}

func (s *Server) handleDeleteExplorePost(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	err := s.store.DeleteExplorePost(r.Context(), chi.URLParam(r, "postID"), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("post not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleStarExplorePost(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	postID := chi.URLParam(r, "postID")
	if _, err := s.store.ExplorePostByID(r.Context(), postID); errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("post not found"))
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	starred, stars, err := s.store.ToggleExploreStar(r.Context(), postID, user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"starred": starred, "stars": stars})
}
