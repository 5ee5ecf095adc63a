package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/devfolio/devfolio/internal/llm"
	"github.com/devfolio/devfolio/internal/store"
)

type scriptedProvider struct {
	reply string
	err   error
}

func (p *scriptedProvider) Chat(_ context.Context, _ []llm.Message) (string, error) {
	return p.reply, p.err
}

func (p *scriptedProvider) Name() string { return "scripted" }

func newTestServer(t *testing.T) (*Server, *scriptedProvider) {
	t.Helper()
	st, err := store.OpenWithConfig(store.Config{
		Path:        filepath.Join(t.TempDir(), "devfolio.db"),
		BusyTimeout: 0,
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	provider := &scriptedProvider{}
	srv, err := NewServer(st, provider, Config{JWTSecret: "test-secret", AllowedOrigins: []string{"*"}})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, provider
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
}

func registerUser(t *testing.T, srv *Server, email string) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", registerRequest{
		Email: email, Password: "secret123", Name: "Tester",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp authResponse
	decodeBody(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("register: empty token")
	}
	return resp.Token
}

func TestAuthFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	token := registerUser(t, srv, "dev@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", registerRequest{
		Email: "dev@example.com", Password: "secret123", Name: "Dup",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email: "dev@example.com", Password: "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email: "dev@example.com", Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/user/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated profile: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/user/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("profile: status %d", rec.Code)
	}
	var profile userResponse
	decodeBody(t, rec, &profile)
	if profile.Email != "dev@example.com" {
		t.Errorf("profile email = %q", profile.Email)
	}
}

func TestProfileAndSettingsUpdate(t *testing.T) {
	srv, _ := newTestServer(t)
	token := registerUser(t, srv, "dev@example.com")

	rec := doJSON(t, srv, http.MethodPut, "/api/user/profile", token, map[string]interface{}{
		"bio":    "Building in Go",
		"skills": []string{"Go", "SQLite"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: status %d body %s", rec.Code, rec.Body.String())
	}
	var profile userResponse
	decodeBody(t, rec, &profile)
	if profile.Bio != "Building in Go" || len(profile.Skills) != 2 {
		t.Errorf("profile update not applied: %+v", profile)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/user/settings", token, map[string]interface{}{
		"darkMode": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update settings: status %d", rec.Code)
	}
	var settings settingsResponse
	decodeBody(t, rec, &settings)
	if settings.DarkMode {
		t.Error("dark mode should be off")
	}
	if !settings.EmailNotifications {
		t.Error("untouched setting changed")
	}
}

func TestProjectEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	owner := registerUser(t, srv, "owner@example.com")
	visitor := registerUser(t, srv, "visitor@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/projects", owner, projectRequest{
		Title: "Portfolio Site", Description: "A personal site", IsPublic: true,
		Technologies: []string{"Go"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: status %d body %s", rec.Code, rec.Body.String())
	}
	var created projectResponse
	decodeBody(t, rec, &created)

	rec = doJSON(t, srv, http.MethodPost, "/api/projects", owner, projectRequest{Title: "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing description: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/projects", owner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list projects: status %d", rec.Code)
	}
	var listing struct {
		Projects []projectResponse `json:"projects"`
	}
	decodeBody(t, rec, &listing)
	if len(listing.Projects) != 1 {
		t.Fatalf("expected one project, got %d", len(listing.Projects))
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/projects/community", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("community: status %d", rec.Code)
	}
	decodeBody(t, rec, &listing)
	if len(listing.Projects) != 1 {
		t.Errorf("community should list the public project, got %d", len(listing.Projects))
	}

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/projects/%s/star", created.ID), visitor, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("star: status %d", rec.Code)
	}
	var starResp struct {
		Starred bool `json:"starred"`
		Stars   int  `json:"stars"`
	}
	decodeBody(t, rec, &starResp)
	if !starResp.Starred || starResp.Stars != 1 {
		t.Errorf("star = %+v", starResp)
	}

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/projects/%s/fork", created.ID), visitor, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("fork: status %d body %s", rec.Code, rec.Body.String())
	}
	var fork projectResponse
	decodeBody(t, rec, &fork)
	if fork.ForkedFrom != created.ID {
		t.Errorf("fork origin = %q", fork.ForkedFrom)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/projects/"+created.ID, visitor, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-owner delete: status %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodDelete, "/api/projects/"+created.ID, owner, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("owner delete: status %d", rec.Code)
	}
}

func TestRoadmapPersistence(t *testing.T) {
	srv, _ := newTestServer(t)
	owner := registerUser(t, srv, "owner@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/projects", owner, projectRequest{
		Title: "Tracker", Description: "d",
	})
	var created projectResponse
	decodeBody(t, rec, &created)

	rec = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/projects/%s/roadmap", created.ID), owner, map[string]interface{}{
		"roadmapOverview": "Two steps",
		"roadmapItems": []map[string]interface{}{
			{"name": "Planning & Setup Phase", "category": "milestone", "dueDate": "2025-06-01T00:00:00Z"},
			{"name": "Set up repository", "category": "task", "dueDate": "2025-06-08T00:00:00Z"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save roadmap: status %d body %s", rec.Code, rec.Body.String())
	}
	var saved projectResponse
	decodeBody(t, rec, &saved)
	if saved.RoadmapOverview != "Two steps" || len(saved.RoadmapItems) != 2 {
		t.Fatalf("roadmap not persisted: %+v", saved)
	}
	if saved.RoadmapItems[0].Name != "Planning & Setup Phase" {
		t.Errorf("roadmap order lost: %+v", saved.RoadmapItems)
	}
}

func TestProjectRoadmapEndpointDefaultsOnProviderFailure(t *testing.T) {
	srv, provider := newTestServer(t)
	token := registerUser(t, srv, "dev@example.com")
	provider.err = llm.ErrUnavailable

	rec := doJSON(t, srv, http.MethodPost, "/api/ai/project-roadmap", token, projectRoadmapRequest{
		ProjectTitle: "My App", ProjectDescription: "An app", Timeline: "1 month",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, upstream failure must not surface", rec.Code)
	}
	var resp projectRoadmapResponse
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.Warning == "" {
		t.Errorf("expected success with warning: %+v", resp)
	}
	if len(resp.RoadmapItems) != 13 {
		t.Errorf("default roadmap should have 13 items, got %d", len(resp.RoadmapItems))
	}
	if resp.RoadmapItems[0].Name != "Planning Phase" {
		t.Errorf("first default item = %q", resp.RoadmapItems[0].Name)
	}
}

func TestProjectRoadmapEndpointParsesReply(t *testing.T) {
	srv, provider := newTestServer(t)
	token := registerUser(t, srv, "dev@example.com")
	provider.reply = "A three month delivery plan.\n\n" +
		"Planning & Setup Phase (Week 1-1)\n" +
		"- Define scope: Write down the goals\n" +
		"- Choose stack: Pick the tools\n" +
		"- Set up repo: Init and CI\n" +
		"Core Development Phase (Week 2-6)\n" +
		"- Build data layer: Schema and queries\n" +
		"- Build API: Handlers and routing\n" +
		"- Wire auth: Sessions and tokens\n" +
		"Feature Implementation Phase (Week 7-9)\n" +
		"- Add search: Index and query\n" +
		"- Add exports: CSV and JSON\n" +
		"- Polish UI: Layout and styling\n" +
		"Testing & Refinement Phase (Week 10-12)\n" +
		"- Write tests: Unit and integration\n" +
		"- Fix bugs: Triage and patch\n" +
		"- Ship release: Tag and deploy\n"

	rec := doJSON(t, srv, http.MethodPost, "/api/ai/project-roadmap", token, projectRoadmapRequest{
		ProjectTitle: "My App", ProjectDescription: "An app", Timeline: "3 months",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp projectRoadmapResponse
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.Warning != "" {
		t.Errorf("expected clean success: %+v", resp)
	}
	if resp.RoadmapOverview != "A three month delivery plan." {
		t.Errorf("overview = %q", resp.RoadmapOverview)
	}
	if len(resp.RoadmapItems) < 8 || len(resp.RoadmapItems) > 24 {
		t.Errorf("item count out of range: %d", len(resp.RoadmapItems))
	}
	for _, item := range resp.RoadmapItems {
		if item.Category != "milestone" && item.Category != "task" {
			t.Errorf("unexpected category %q", item.Category)
		}
	}
}

func TestProjectRoadmapEndpointValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	token := registerUser(t, srv, "dev@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/ai/project-roadmap", token, projectRoadmapRequest{
		ProjectTitle: "  ", ProjectDescription: "An app",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank title: status %d", rec.Code)
	}
}

func TestResumeEndpoints(t *testing.T) {
	srv, provider := newTestServer(t)
	token := registerUser(t, srv, "dev@example.com")

	rec := doJSON(t, srv, http.MethodGet, "/api/resume", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing resume: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/resume", token, map[string]interface{}{
		"summary": "v1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save resume: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/resume", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get resume: status %d", rec.Code)
	}

	provider.err = llm.ErrUnavailable
	rec = doJSON(t, srv, http.MethodPost, "/api/resume/generate", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate resume: status %d", rec.Code)
	}
	var genResp struct {
		Success bool   `json:"success"`
		Warning string `json:"warning"`
	}
	decodeBody(t, rec, &genResp)
	if !genResp.Success || genResp.Warning == "" {
		t.Errorf("fallback draft should warn: %+v", genResp)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/resume", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete resume: status %d", rec.Code)
	}
}

func TestExploreEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	author := registerUser(t, srv, "author@example.com")
	reader := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/explore", author, explorePostRequest{
		Title: "Build log", Description: "Notes", Tags: []string{"go"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: status %d body %s", rec.Code, rec.Body.String())
	}
	var post explorePostResponse
	decodeBody(t, rec, &post)

	rec = doJSON(t, srv, http.MethodGet, "/api/explore", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("feed: status %d", rec.Code)
	}
	var feed struct {
		Posts []explorePostResponse `json:"posts"`
	}
	decodeBody(t, rec, &feed)
	if len(feed.Posts) != 1 {
		t.Fatalf("expected one post, got %d", len(feed.Posts))
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/explore/"+post.ID+"/star", reader, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("star post: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/explore/"+post.ID, reader, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-author delete: status %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodDelete, "/api/explore/"+post.ID, author, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("author delete: status %d", rec.Code)
	}
}

func TestTechRoadmapEndpointFallback(t *testing.T) {
	srv, provider := newTestServer(t)
	token := registerUser(t, srv, "dev@example.com")
	provider.err = llm.ErrUnavailable

	rec := doJSON(t, srv, http.MethodPost, "/api/ai/roadmap/generate", token, techRoadmapRequest{
		Technology: "Go", Timeframe: "6 months",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Warning string `json:"warning"`
		Roadmap struct {
			Weeks []struct {
				Week int `json:"week"`
			} `json:"weeks"`
		} `json:"roadmap"`
	}
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.Warning == "" {
		t.Errorf("fallback should warn: %+v", resp)
	}
	if len(resp.Roadmap.Weeks) != 12 {
		t.Errorf("default plan weeks = %d", len(resp.Roadmap.Weeks))
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz: status %d", rec.Code)
	}
}
