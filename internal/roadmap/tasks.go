package roadmap

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTasksPerPhase = 5
	taskNameLimit    = 50
	taskDescLimit    = 200
)

// taskPatterns are the line-shape heuristics tried in priority order. The
// first pattern that yields at least one match within a phase span wins.
var taskPatterns = []*regexp.Regexp{
	// "Task name: description" (also matches "Task name. description" labels)
	regexp.MustCompile(`[-*•]?\s*(?:\d+\.\s+)?([^:\n.]+)[:.]\s*([^\n]*)`),
	// "Task name (description)"
	regexp.MustCompile(`[-*•]?\s*(?:\d+\.\s+)?([^(]+)\s*\(([^)]+)\)`),
	// "Task name. description"
	regexp.MustCompile(`[-*•]?\s*(?:\d+\.\s+)?([^\n.]+)(?:\.\s+([^\n]*))?`),
}

// extractTasks pulls task candidates out of one phase's text span. Candidates
// whose name is too short or re-captures a header are dropped, the rest get
// due dates spread proportionally across the phase's week range.
//
// The boolean reports whether any heuristic matched at all. The caller
// substitutes the phase's default tasks only when nothing matched; a span
// whose candidates were all filtered out contributes no tasks, which is what
// makes the sparsity gate reachable.
func extractTasks(span string, weeks WeekRange, now time.Time) ([]Item, bool) {
	var matches [][]string
	for _, pattern := range taskPatterns {
		found := pattern.FindAllStringSubmatch(span, -1)
		if len(found) > 0 {
			matches = found
			break
		}
	}
	if len(matches) == 0 {
		return nil, false
	}
	if len(matches) > maxTasksPerPhase {
		matches = matches[:maxTasksPerPhase]
	}

	items := make([]Item, 0, len(matches))
	total := len(matches)
	for i, match := range matches {
		name := strings.TrimSpace(match[1])
		desc := ""
		if len(match) > 2 {
			desc = strings.TrimSpace(match[2])
		}
		if utf8.RuneCountInString(name) <= 2 {
			continue
		}
		lower := strings.ToLower(name)
		if strings.Contains(lower, "phase") || strings.Contains(lower, "milestone") {
			continue
		}

		position := float64(i) / float64(total)
		taskWeek := int(math.Floor(float64(weeks.Start) + position*float64(weeks.End-weeks.Start)))
		items = append(items, Item{
			Name:        ellipsize(name, taskNameLimit),
			Description: ellipsize(desc, taskDescLimit),
			Category:    CategoryTask,
			DueDate:     now.Add(daysFromNow(taskWeek * 7)),
		})
	}
	return items, true
}

func daysFromNow(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

// ellipsize truncates s to limit runes, appending "..." when it had to cut.
func ellipsize(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
