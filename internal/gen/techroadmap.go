package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/llm"
)

const defaultWeekCap = 12

// TechRoadmap is a week-by-week learning plan for one technology.
type TechRoadmap struct {
	Overview       string     `json:"overview"`
	Prerequisites  []string   `json:"prerequisites"`
	Weeks          []TechWeek `json:"weeks"`
	AdvancedTopics []string   `json:"advancedTopics"`
}

type TechWeek struct {
	Week       int            `json:"week"`
	Focus      string         `json:"focus"`
	Resources  []TechResource `json:"resources"`
	Projects   []TechProject  `json:"projects"`
	Milestones []string       `json:"milestones"`
}

type TechResource struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type TechProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GenerateTechRoadmap asks the provider for a learning roadmap and parses
// the JSON it returns, repairing common syntax slips before giving up. On
// failure it returns the deterministic default plan and reports the
// fallback via the boolean.
func GenerateTechRoadmap(ctx context.Context, provider llm.Provider, technology, goalLevel, timeframe string) (TechRoadmap, bool) {
	logger := common.Logger()

	if technology == "" {
		logger.Warn("gen: technology missing, using default roadmap")
		return DefaultTechRoadmap("Web Development", goalLevel, timeframe), true
	}
	if goalLevel == "" {
		goalLevel = "intermediate"
	}
	if timeframe == "" {
		timeframe = "3 months"
	}

	prompt := buildTechRoadmapPrompt(technology, goalLevel, timeframe)
	text, err := provider.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		logger.Warn("gen: tech roadmap generation failed, using default", "technology", technology, "error", err)
		return DefaultTechRoadmap(technology, goalLevel, timeframe), true
	}

	raw := extractJSONObject(text)
	var roadmap TechRoadmap
	if err := json.Unmarshal([]byte(raw), &roadmap); err == nil {
		return roadmap, false
	}
	if err := json.Unmarshal([]byte(repairJSON(raw)), &roadmap); err == nil {
		return roadmap, false
	}
	logger.Warn("gen: tech roadmap response unparseable, using default", "technology", technology)
	return DefaultTechRoadmap(technology, goalLevel, timeframe), true
}

// DefaultTechRoadmap builds the placeholder plan used when generation or
// parsing fails. Weeks are capped at twelve even for six month timeframes.
func DefaultTechRoadmap(technology, goalLevel, timeframe string) TechRoadmap {
	if technology == "" {
		technology = "Programming"
	}
	if goalLevel == "" {
		goalLevel = "intermediate"
	}
	if timeframe == "" {
		timeframe = "3 months"
	}

	total := 12
	if strings.Contains(timeframe, "1 month") {
		total = 4
	} else if strings.Contains(timeframe, "6 months") {
		total = 24
	}
	if total > defaultWeekCap {
		total = defaultWeekCap
	}

	slug := strings.ToLower(technology)
	weeks := make([]TechWeek, 0, total)
	for i := 1; i <= total; i++ {
		focus := "Advanced topics"
		if i <= 4 {
			focus = "Fundamentals"
		} else if i <= 8 {
			focus = "Intermediate concepts"
		}
		weeks = append(weeks, TechWeek{
			Week:  i,
			Focus: focus,
			Resources: []TechResource{
				{Type: "documentation", Title: fmt.Sprintf("%s Documentation", technology), URL: fmt.Sprintf("https://example.com/%s/docs", slug)},
				{Type: "tutorial", Title: fmt.Sprintf("%s Tutorial - Week %d", technology, i), URL: fmt.Sprintf("https://example.com/%s/tutorial", slug)},
			},
			Projects: []TechProject{
				{Title: fmt.Sprintf("Practice Project %d", i), Description: fmt.Sprintf("A simple project to practice %s concepts from week %d", technology, i)},
			},
			Milestones: []string{
				fmt.Sprintf("Understand key concepts from week %d", i),
				"Complete the practice project",
			},
		})
	}

	return TechRoadmap{
		Overview:      fmt.Sprintf("A learning roadmap for %s to reach %s level in %s.", technology, goalLevel, timeframe),
		Prerequisites: []string{"Basic programming knowledge", "Familiarity with development tools"},
		Weeks:         weeks,
		AdvancedTopics: []string{
			fmt.Sprintf("Advanced %s patterns", technology),
			"Performance optimization",
			"Best practices",
		},
	}
}

func buildTechRoadmapPrompt(technology, goalLevel, timeframe string) string {
	return fmt.Sprintf(`Create a detailed learning roadmap for mastering %s in %s to reach %s level.

Include:
1. A week-by-week breakdown
2. Specific resources to learn from (courses, documentation, books)
3. Practice projects to build at each stage
4. Milestones and checkpoints to evaluate progress

Format the response as a JSON object with the following structure:
{
  "overview": "Brief overview of the learning path",
  "prerequisites": ["Prereq1", "Prereq2"],
  "weeks": [
    {
      "week": 1,
      "focus": "Getting started with...",
      "resources": [
        {"type": "course", "title": "Resource title", "url": "https://example.com"},
        {"type": "documentation", "title": "Resource title", "url": "https://example.com"}
      ],
      "projects": [
        {"title": "Project title", "description": "Brief description..."}
      ],
      "milestones": ["Milestone1", "Milestone2"]
    }
  ],
  "advancedTopics": ["Topic1", "Topic2"]
}

IMPORTANT:
1. The response must be a valid, parseable JSON object exactly matching this structure.
2. Do not include any additional text before or after the JSON.
3. Ensure all quotes and braces are properly balanced.
4. All URLs should be valid (use placeholder URLs like example.com if needed).
5. Do not use special characters that would break JSON parsing.`, technology, timeframe, goalLevel)
}
