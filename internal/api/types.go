package api

import (
	"time"

	"github.com/devfolio/devfolio/internal/roadmap"
	"github.com/devfolio/devfolio/internal/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Picture  string   `json:"picture"`
	Bio      string   `json:"bio"`
	Location string   `json:"location"`
	Website  string   `json:"website"`
	Company  string   `json:"company"`
	Skills   []string `json:"skills"`
}

func newUserResponse(u *store.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Picture:  u.Picture,
		Bio:      u.Bio,
		Location: u.Location,
		Website:  u.Website,
		Company:  u.Company,
		Skills:   u.Skills,
	}
}

type profileUpdateRequest struct {
	Name     *string           `json:"name"`
	Picture  *string           `json:"picture"`
	Bio      *string           `json:"bio"`
	Location *string           `json:"location"`
	Website  *string           `json:"website"`
	Company  *string           `json:"company"`
	Skills   *store.StringList `json:"skills"`
}

type settingsResponse struct {
	DarkMode           bool `json:"darkMode"`
	EmailNotifications bool `json:"emailNotifications"`
	PublicProfile      bool `json:"publicProfile"`
}

type settingsUpdateRequest struct {
	DarkMode           *bool `json:"darkMode"`
	EmailNotifications *bool `json:"emailNotifications"`
	PublicProfile      *bool `json:"publicProfile"`
}

type projectRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Technologies    []string `json:"technologies"`
	Status          string   `json:"status"`
	IsPublic        bool     `json:"isPublic"`
	RoadmapOverview string   `json:"roadmapOverview"`
	GitHubURL       string   `json:"githubUrl"`
	DemoURL         string   `json:"demoUrl"`
	ImageURL        string   `json:"imageUrl"`
}

type projectResponse struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Technologies    []string       `json:"technologies"`
	Status          string         `json:"status"`
	IsPublic        bool           `json:"isPublic"`
	Stars           int            `json:"stars"`
	Forks           int            `json:"forks"`
	ForkedFrom      string         `json:"forkedFrom,omitempty"`
	RoadmapOverview string         `json:"roadmapOverview"`
	RoadmapItems    []roadmap.Item `json:"roadmapItems,omitempty"`
	GitHubURL       string         `json:"githubUrl"`
	DemoURL         string         `json:"demoUrl"`
	ImageURL        string         `json:"imageUrl"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func newProjectResponse(p *store.Project, items []store.RoadmapItemRow) projectResponse {
	resp := projectResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Title:           p.Title,
		Description:     p.Description,
		Technologies:    p.Technologies,
		Status:          p.Status,
		IsPublic:        p.IsPublic,
		Stars:           p.Stars,
		Forks:           p.Forks,
		RoadmapOverview: p.RoadmapOverview,
		GitHubURL:       p.GitHubURL,
		DemoURL:         p.DemoURL,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.ForkedFrom.Valid {
		resp.ForkedFrom = p.ForkedFrom.String
	}
	for _, row := range items {
		resp.RoadmapItems = append(resp.RoadmapItems, roadmap.Item{
			Name:        row.Name,
			Description: row.Description,
			Category:    row.Category,
			DueDate:     row.DueDate,
			Completed:   row.Completed,
		})
	}
	return resp
}

type saveRoadmapRequest struct {
	RoadmapOverview string         `json:"roadmapOverview"`
	RoadmapItems    []roadmap.Item `json:"roadmapItems"`
}

type explorePostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type explorePostResponse struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	ForkedFrom  string    `json:"forkedFrom,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newExplorePostResponse(p *store.ExplorePost) explorePostResponse {
	resp := explorePostResponse{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
		Stars:       p.Stars,
		Forks:       p.Forks,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ForkedFrom.Valid {
		resp.ForkedFrom = p.ForkedFrom.String
	}
	return resp
}

type projectRoadmapRequest struct {
	ProjectTitle       string   `json:"projectTitle"`
	ProjectDescription string   `json:"projectDescription"`
	Skills             []string `json:"skills"`
	Timeline           string   `json:"timeline"`
}

type projectRoadmapResponse struct {
	Success         bool           `json:"success"`
	RoadmapOverview string         `json:"roadmapOverview"`
	RoadmapItems    []roadmap.Item `json:"roadmapItems"`
	Warning         string         `json:"warning,omitempty"`
}

type projectIdeasRequest struct {
	Skills     []string `json:"skills"`
	Interests  []string `json:"interests"`
	Experience string   `json:"experience"`
}

type analyzeResumeRequest struct {
	ResumeText string `json:"resumeText"`
}

type careerRequest struct {
	Skills      []string `json:"skills"`
	Interests   []string `json:"interests"`
	CurrentRole string   `json:"currentRole"`
	Goals       string   `json:"goals"`
}

type techRoadmapRequest struct {
	Technology string `json:"technology"`
	GoalLevel  string `json:"goalLevel"`
	Timeframe  string `json:"timeframe"`
}
