package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/gen"
	"github.com/devfolio/devfolio/internal/llm"
	"github.com/devfolio/devfolio/internal/roadmap"
)

const planningSystemPrompt = "You are a project planning assistant for software developers. " +
	"Answer with practical, concrete guidance grounded in the details the user provides."

func (s *Server) now() time.Time {
	if s.parser.Now != nil {
		return s.parser.Now()
	}
	return time.Now()
}

// handleProjectRoadmap turns a free-text model reply into a structured
// roadmap. The endpoint never fails on upstream trouble: a provider error or
// unusable reply produces the default roadmap plus a warning, still HTTP 200.
func (s *Server) handleProjectRoadmap(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req projectRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.ProjectTitle) == "" || strings.TrimSpace(req.ProjectDescription) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("projectTitle and projectDescription required"))
		return
	}

	prompt := roadmap.BuildPrompt(req.ProjectTitle, req.ProjectDescription, req.Skills, req.Timeline)
	text, err := s.provider.Chat(r.Context(), []llm.Message{
		{Role: "system", Content: planningSystemPrompt},
		{Role: "user", Content: prompt},
	})
	now := s.now()
	if err != nil {
		logger.Warn("api: roadmap generation failed, serving defaults", "error", err)
		items := roadmap.Normalize(roadmap.DefaultRoadmap(req.ProjectTitle, req.Timeline, now), now)
		writeJSON(w, http.StatusOK, projectRoadmapResponse{
			Success:         true,
			RoadmapOverview: roadmap.ExtractOverview(""),
			RoadmapItems:    items,
			Warning:         assistantUnavailableWarning,
		})
		return
	}

	items := roadmap.Normalize(s.parser.Parse(text, req.Timeline), now)
	logger.Info("api: roadmap parsed", "items", len(items), "timeline", req.Timeline)
	writeJSON(w, http.StatusOK, projectRoadmapResponse{
		Success:         true,
		RoadmapOverview: roadmap.ExtractOverview(text),
		RoadmapItems:    items,
	})
}

func (s *Server) handleProjectIdeas(w http.ResponseWriter, r *http.Request) {
	var req projectIdeasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ideas, usedFallback := gen.GenerateProjectIdeas(r.Context(), s.provider, req.Skills, req.Interests, req.Experience)
	resp := map[string]interface{}{"success": true, "projects": ideas}
	if usedFallback {
		resp["warning"] = assistantUnavailableWarning
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req analyzeResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("resumeText required"))
		return
	}
	prompt := "Analyze the following resume and provide specific, actionable feedback on its " +
		"content, structure, and impact. Point out missing information and weak phrasing.\n\n" + req.ResumeText
	answer, err := s.provider.Chat(r.Context(), []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		logger.Warn("api: resume analysis failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"analysis": "The assistant is currently unavailable. Please try again later.",
			"warning":  assistantUnavailableWarning,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "analysis": answer})
}

func (s *Server) handleCareerRecommendations(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req careerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	prompt := fmt.Sprintf("Suggest career development recommendations for a developer.\n"+
		"Current role: %s\nGoals: %s\nSkills: %s\nInterests: %s\n"+
		"Recommend concrete next roles, skills to learn, and how to get there.",
		req.CurrentRole, req.Goals, strings.Join(req.Skills, ", "), strings.Join(req.Interests, ", "))
	answer, err := s.provider.Chat(r.Context(), []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		logger.Warn("api: career recommendations failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"recommendations": "The assistant is currently unavailable. Please try again later.",
			"warning":         assistantUnavailableWarning,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "recommendations": answer})
}

func (s *Server) handleTechRoadmap(w http.ResponseWriter, r *http.Request) {
	var req techRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	plan, usedFallback := gen.GenerateTechRoadmap(r.Context(), s.provider, req.Technology, req.GoalLevel, req.Timeframe)
	resp := map[string]interface{}{"success": true, "roadmap": plan}
	if usedFallback {
		resp["warning"] = assistantUnavailableWarning
	}
	writeJSON(w, http.StatusOK, resp)
}
