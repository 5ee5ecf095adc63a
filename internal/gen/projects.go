package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/llm"
)

// ProjectIdea is one suggested portfolio project.
type ProjectIdea struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Technologies     []string `json:"technologies"`
	LearningOutcomes []string `json:"learningOutcomes"`
	EstimatedTime    string   `json:"estimatedTime"`
}

var (
	frontendKeywords = []string{"react", "vue", "angular", "javascript", "typescript", "html", "css", "tailwind", "bootstrap"}
	backendKeywords  = []string{"node", "express", "django", "flask", "php", "laravel", "spring", "java", "python", ".net", "c#"}
	databaseKeywords = []string{"sql", "postgres", "mysql", "mongodb", "firebase", "supabase", "dynamodb"}
)

// GenerateProjectIdeas produces five project suggestions tailored to the
// given skills and interests. Failures fall back to the default set and are
// reported via the boolean.
func GenerateProjectIdeas(ctx context.Context, provider llm.Provider, skills, interests []string, experience string) ([]ProjectIdea, bool) {
	logger := common.Logger()

	if len(skills) == 0 {
		skills = []string{"JavaScript", "React", "Node.js"}
	}
	if len(interests) == 0 {
		interests = []string{"Web Development"}
	}
	if experience == "" {
		experience = "intermediate"
	}

	prompt := buildProjectIdeasPrompt(strings.Join(skills, ", "), strings.Join(interests, ", "), experience)
	text, err := provider.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		logger.Warn("gen: project idea generation failed, using defaults", "error", err)
		return DefaultProjectIdeas(skills), true
	}

	raw := extractJSONArray(text)
	var ideas []ProjectIdea
	if err := json.Unmarshal([]byte(raw), &ideas); err == nil && len(ideas) > 0 {
		return ideas, false
	}
	if err := json.Unmarshal([]byte(repairJSON(raw)), &ideas); err == nil && len(ideas) > 0 {
		return ideas, false
	}
	logger.Warn("gen: project idea response unparseable, using defaults")
	return DefaultProjectIdeas(skills), true
}

// DefaultProjectIdeas builds the fallback idea set, biasing each project's
// technology list toward the skills the user actually listed.
func DefaultProjectIdeas(skills []string) []ProjectIdea {
	frontend := filterSkills(skills, frontendKeywords)
	backend := filterSkills(skills, backendKeywords)
	database := filterSkills(skills, databaseKeywords)

	fullStack := combine(take(frontend, 2), take(backend, 2), take(database, 1))

	return []ProjectIdea{
		{
			Title:            "Interactive Portfolio & Project Showcase",
			Description:      "A dynamic portfolio website with interactive project showcases, skill visualizations, and a blog section. Implement modern animations, dark/light mode, and a contact form with validation.",
			Technologies:     orDefault(take(frontend, 3), []string{"React", "Tailwind CSS", "Framer Motion"}),
			LearningOutcomes: []string{"Advanced UI/UX design", "Animation techniques", "Responsive layouts", "Performance optimization", "SEO best practices"},
			EstimatedTime:    "3-4 weeks",
		},
		{
			Title:            "AI-Enhanced Productivity Dashboard",
			Description:      "A comprehensive productivity system with task management, time tracking, and AI-powered insights. Features include priority suggestions, productivity analytics, and integration with calendar services.",
			Technologies:     orDefault(fullStack, []string{"React", "Node.js", "MongoDB", "Express", "Chart.js"}),
			LearningOutcomes: []string{"Full-stack architecture", "Data visualization", "AI integration", "State management", "User authentication"},
			EstimatedTime:    "2-3 months",
		},
		{
			Title:            "Community-Driven Learning Platform",
			Description:      "A platform where users can create, share, and follow learning paths on various topics. Includes features like progress tracking, resource recommendations, and community discussions with upvoting system.",
			Technologies:     orDefault(fullStack, []string{"React", "Redux", "Node.js", "PostgreSQL", "Firebase Auth"}),
			LearningOutcomes: []string{"Complex database relationships", "User-generated content management", "Community features", "Recommendation algorithms", "Content moderation"},
			EstimatedTime:    "3-4 months",
		},
		{
			Title:            "Real-time Collaborative Workspace",
			Description:      "A collaborative workspace application with real-time document editing, video conferencing, and project management tools. Support for team chat, file sharing, and integration with popular productivity tools.",
			Technologies:     combine(take(frontend, 2), take(backend, 2), []string{"Socket.io", "WebRTC"}),
			LearningOutcomes: []string{"Real-time data synchronization", "WebRTC implementation", "Collaborative editing algorithms", "Scalable architecture", "Security best practices"},
			EstimatedTime:    "3-5 months",
		},
		{
			Title:            "Personalized Health & Fitness Tracker",
			Description:      "A comprehensive health tracking application with customizable workout plans, nutrition logging, and progress visualization. Includes goal setting, achievement badges, and AI-powered recommendations.",
			Technologies:     combine(take(frontend, 2), take(backend, 2), take(database, 1), []string{"Chart.js"}),
			LearningOutcomes: []string{"Mobile-first design", "Health data visualization", "Personalization algorithms", "Gamification techniques", "Local storage optimization"},
			EstimatedTime:    "2-3 months",
		},
	}
}

func filterSkills(skills, keywords []string) []string {
	var out []string
	for _, skill := range skills {
		lower := strings.ToLower(strings.TrimSpace(skill))
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				out = append(out, strings.TrimSpace(skill))
				break
			}
		}
	}
	return out
}

func take(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func combine(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		for _, item := range g {
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func orDefault(items, fallback []string) []string {
	if len(items) > 0 {
		return items
	}
	return fallback
}

func buildProjectIdeasPrompt(skills, interests, experience string) string {
	return fmt.Sprintf(`Generate 5 UNIQUE and HIGHLY PERSONALIZED project ideas for a %s developer with the following profile:
Skills: %s
Interests: %s

IMPORTANT REQUIREMENTS:
1. Each project MUST directly utilize the specific skills listed above
2. Projects should align with the stated interests
3. NO generic projects - each must be tailored to the exact skills and interests
4. Vary the complexity and scope across the 5 projects
5. Include at least one innovative or cutting-edge project idea
6. Suggest projects that would stand out in a portfolio

For each project, provide:
1. Project title (creative and specific)
2. Detailed description (3-4 sentences explaining the concept, features, and uniqueness)
3. Key technologies to use (list of 3-6 specific technologies from the skills list)
4. Learning outcomes (4-5 specific skills that will be gained)
5. Estimated completion time

Format the response as a JSON array with the following structure:
[
  {
    "title": "Project title",
    "description": "Detailed description...",
    "technologies": ["Tech1", "Tech2", "Tech3", "Tech4"],
    "learningOutcomes": ["Outcome1", "Outcome2", "Outcome3", "Outcome4"],
    "estimatedTime": "X weeks/months"
  }
]

IMPORTANT: The response must be a valid, parseable JSON array exactly matching this structure. Each project must be completely different from the others and specifically tailored to the skills and interests provided.`, experience, skills, interests)
}
