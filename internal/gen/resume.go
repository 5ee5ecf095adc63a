package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/llm"
)

// Profile is the slice of user data the resume generator works from.
type Profile struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Bio    string   `json:"bio"`
	Skills []string `json:"skills"`
}

// Resume is the structured draft handed back to the resume handler.
type Resume struct {
	Summary    string             `json:"summary"`
	Experience []ResumeExperience `json:"experience"`
	Education  []ResumeEducation  `json:"education"`
	Projects   []ResumeProject    `json:"projects"`
}

type ResumeExperience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
}

type ResumeEducation struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa"`
}

type ResumeProject struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	GitHub       string   `json:"github"`
}

// GenerateResume drafts a resume from the profile via the provider. It never
// fails: upstream or parse errors yield the deterministic default draft, and
// the boolean reports that the fallback was used.
func GenerateResume(ctx context.Context, provider llm.Provider, profile Profile) (Resume, bool) {
	logger := common.Logger()

	name := profile.Name
	if name == "" {
		name = "John Doe"
	}
	email := profile.Email
	if email == "" {
		email = "example@email.com"
	}
	skills := profile.Skills
	if len(skills) == 0 {
		skills = []string{"Web Development", "JavaScript", "React"}
	}
	bio := profile.Bio
	if bio == "" {
		bio = "Experienced developer with a passion for technology"
	}

	prompt := buildResumePrompt(name, email, strings.Join(skills, ", "), bio)
	text, err := provider.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		logger.Warn("gen: resume generation failed, using default draft", "error", err)
		return DefaultResume(profile), true
	}

	raw := extractJSONObject(text)
	var resume Resume
	if err := json.Unmarshal([]byte(raw), &resume); err == nil {
		return resume, false
	}
	if err := json.Unmarshal([]byte(repairJSON(raw)), &resume); err == nil {
		return resume, false
	}
	logger.Warn("gen: resume response unparseable, using default draft")
	return DefaultResume(profile), true
}

// DefaultResume is the deterministic draft used when the upstream call or
// parsing fails.
func DefaultResume(profile Profile) Resume {
	skills := profile.Skills
	if len(skills) == 0 {
		skills = []string{"JavaScript", "React", "Node.js", "HTML/CSS"}
	}
	top := skills
	if len(top) > 3 {
		top = top[:3]
	}
	techFour := skills
	if len(techFour) > 4 {
		techFour = techFour[:4]
	}
	return Resume{
		Summary: fmt.Sprintf("Experienced professional with skills in %s. Committed to delivering high-quality results and continuously improving technical capabilities. Seeking opportunities to apply expertise in challenging projects.", strings.Join(top, ", ")),
		Experience: []ResumeExperience{
			{
				Company:     "Tech Solutions Inc.",
				Position:    "Senior Developer",
				StartDate:   "2020-01",
				EndDate:     "Present",
				Description: "Lead developer for web applications and services",
				Bullets: []string{
					"Developed and maintained multiple web applications using modern frameworks",
					"Collaborated with cross-functional teams to deliver projects on schedule",
					"Implemented best practices for code quality and performance optimization",
				},
			},
			{
				Company:     "Digital Innovations LLC",
				Position:    "Web Developer",
				StartDate:   "2017-06",
				EndDate:     "2019-12",
				Description: "Full-stack development for client projects",
				Bullets: []string{
					"Built responsive websites and applications for diverse clients",
					"Worked with agile development methodologies to meet project milestones",
					"Maintained and enhanced existing codebases to improve functionality",
				},
			},
		},
		Education: []ResumeEducation{
			{
				Institution: "University of Technology",
				Degree:      "Bachelor of Science",
				Field:       "Computer Science",
				StartDate:   "2013-09",
				EndDate:     "2017-05",
				GPA:         "3.7/4.0",
			},
		},
		Projects: []ResumeProject{
			{
				Title:        "E-commerce Platform",
				Description:  "A full-featured online shopping platform with user authentication, product catalog, and payment processing",
				Technologies: techFour,
				URL:          "https://project-example.com",
				GitHub:       "https://github.com/username/ecommerce",
			},
			{
				Title:        "Task Management System",
				Description:  "A productivity application allowing users to create, organize, and track tasks and projects",
				Technologies: top,
				URL:          "https://tasks-example.com",
				GitHub:       "https://github.com/username/tasks",
			},
		},
	}
}

func buildResumePrompt(name, email, skills, bio string) string {
	return fmt.Sprintf(`Generate a professional resume for a person with the following profile:

Full Name: %s
Email: %s
Skills: %s
Bio: %s

For each skill, suggest relevant experience entries with:
1. Company name
2. Position title
3. Start and end dates
4. Bulleted descriptions of responsibilities and achievements (3-5 bullets)

Also generate:
1. A professional summary paragraph
2. Education section with 1-2 entries
3. Projects section with 2-3 projects that showcase the skills

Format the response as a valid JSON object with the following structure:
{
  "summary": "Professional summary...",
  "experience": [
    {
      "company": "Company name",
      "position": "Position title",
      "startDate": "YYYY-MM",
      "endDate": "YYYY-MM or present",
      "description": "Job description...",
      "bullets": ["Bullet 1", "Bullet 2", "Bullet 3"]
    }
  ],
  "education": [
    {
      "institution": "University name",
      "degree": "Degree title",
      "field": "Field of study",
      "startDate": "YYYY-MM",
      "endDate": "YYYY-MM",
      "gpa": "3.8/4.0"
    }
  ],
  "projects": [
    {
      "title": "Project title",
      "description": "Project description",
      "technologies": ["Tech1", "Tech2"],
      "url": "https://project-url.com",
      "github": "https://github.com/username/project"
    }
  ]
}

IMPORTANT: The response must be a valid, parseable JSON object exactly matching this structure.`, name, email, skills, bio)
}
