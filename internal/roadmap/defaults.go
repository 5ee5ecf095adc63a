package roadmap

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// defaultTaskSpacing places a phase's fallback tasks at even fractions of
// the phase's day span.
var defaultTaskSpacing = []float64{0.2, 0.4, 0.6, 0.8}

type defaultTask struct {
	name string
	desc string
}

var planningTasks = []defaultTask{
	{"Define project requirements", "Document detailed functional and non-functional requirements"},
	{"Create project architecture", "Design system architecture and component interactions"},
	{"Set up development environment", "Install and configure necessary tools and frameworks"},
	{"Create initial project structure", "Set up repository and basic project scaffolding"},
}

var coreDevTasks = []defaultTask{
	{"Implement core functionality", "Develop the main features of the application"},
	{"Create database schema", "Design and implement database models and relationships"},
	{"Develop API endpoints", "Create backend services and API endpoints"},
	{"Implement authentication", "Add user authentication and authorization"},
}

var featureTasks = []defaultTask{
	{"Implement user interface", "Create responsive UI components and layouts"},
	{"Add advanced features", "Implement additional functionality beyond core requirements"},
	{"Integrate third-party services", "Connect with external APIs and services"},
	{"Implement data visualization", "Add charts, graphs, or other data visualization components"},
}

var testingTasks = []defaultTask{
	{"Write unit tests", "Create comprehensive test suite for components"},
	{"Perform integration testing", "Test interactions between different parts of the application"},
	{"Conduct user acceptance testing", "Validate application meets user requirements"},
	{"Fix bugs and optimize performance", "Address issues and improve application performance"},
}

// DefaultTasksForPhase returns the deterministic fallback tasks for a phase
// whose span yielded no extractable tasks. The lookup keys on a phase-name
// substring so generic fallback phases still get sensible entries.
func DefaultTasksForPhase(phaseName string, weeks WeekRange, now time.Time) []Item {
	startDay := weeks.Start * 7
	span := weeks.End*7 - startDay

	var tasks []defaultTask
	switch {
	case strings.Contains(phaseName, "Planning"):
		tasks = planningTasks
	case strings.Contains(phaseName, "Core Development"):
		tasks = coreDevTasks
	case strings.Contains(phaseName, "Feature"):
		tasks = featureTasks
	case strings.Contains(phaseName, "Testing"):
		tasks = testingTasks
	default:
		tasks = make([]defaultTask, len(defaultTaskSpacing))
		for i := range tasks {
			tasks[i] = defaultTask{
				name: fmt.Sprintf("Task %d", i+1),
				desc: fmt.Sprintf("Task %d for this phase", i+1),
			}
		}
	}

	items := make([]Item, 0, len(tasks))
	for i, task := range tasks {
		day := startDay + int(math.Floor(float64(span)*defaultTaskSpacing[i]))
		items = append(items, Item{
			Name:        task.name,
			Description: task.desc,
			Category:    CategoryTask,
			DueDate:     now.Add(daysFromNow(day)),
		})
	}
	return items
}

// defaultRoadmapSteps is the fixed 13-item shape of the all-defaults
// roadmap: three phases of one milestone plus three tasks each, closed by a
// deployment milestone. Day offsets are fractions of the timeframe's span.
var defaultRoadmapSteps = []struct {
	name     string
	desc     string
	category string
	frac     float64
	titled   bool
}{
	{"Planning Phase", "Initial %s planning and preparation", CategoryMilestone, 0, true},
	{"Define project requirements", "Gather and document all %s requirements", CategoryTask, 0.04, true},
	{"Research technical solutions", "Evaluate technologies and frameworks for implementation", CategoryTask, 0.08, false},
	{"Design system architecture", "Create technical specifications and system architecture", CategoryTask, 0.14, false},
	{"Development Phase", "Core development activities", CategoryMilestone, 0.2, false},
	{"Set up development environment", "Configure development tools and environments", CategoryTask, 0.24, false},
	{"Implement core features", "Develop the main functionality of the application", CategoryTask, 0.4, false},
	{"Create user interface", "Design and implement the user interface", CategoryTask, 0.48, false},
	{"Testing Phase", "Quality assurance and testing activities", CategoryMilestone, 0.55, false},
	{"Write unit tests", "Create automated tests for individual components", CategoryTask, 0.62, false},
	{"Perform integration testing", "Test interactions between components", CategoryTask, 0.68, false},
	{"Fix identified bugs", "Address and resolve issues found during testing", CategoryTask, 0.75, false},
	{"Deployment Phase", "Launch and post-launch activities", CategoryMilestone, 0.82, false},
}

// DefaultRoadmap builds the deterministic synthetic roadmap used whenever
// extraction fails or yields too few items. It cannot fail: the title
// defaults to "Project" and unrecognized timeframes fall back to 90 days.
func DefaultRoadmap(projectTitle, timeframe string, now time.Time) []Item {
	title := strings.TrimSpace(projectTitle)
	if title == "" {
		title = "Project"
	}
	totalDays := DaysForTimeframe(timeframe)

	items := make([]Item, 0, len(defaultRoadmapSteps))
	for _, step := range defaultRoadmapSteps {
		desc := step.desc
		if step.titled {
			desc = fmt.Sprintf(step.desc, title)
		}
		day := int(math.Floor(float64(totalDays) * step.frac))
		items = append(items, Item{
			Name:        step.name,
			Description: desc,
			Category:    step.category,
			DueDate:     now.Add(daysFromNow(day)),
		})
	}
	return items
}
