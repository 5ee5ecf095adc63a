package roadmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/devfolio/devfolio/internal/common"
)

// fallbackOverview is returned when the response text has no paragraph break
// to lift an overview from.
const fallbackOverview = "Project roadmap with phases and tasks to track progress."

// Parser converts a model's free-form roadmap text into a bounded list of
// items. Parse never fails: every degenerate input path terminates in the
// deterministic default roadmap.
//
// Now supplies the reference time for all due-date math; the zero value uses
// the system clock.
type Parser struct {
	Now func() time.Time
}

func (p *Parser) currentTime() time.Time {
	if p != nil && p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Parse extracts roadmap items from text for the given timeframe. The result
// always has between 1 and MaxItems entries. Extractions with fewer than
// MinExtractedItems items are discarded wholesale: a partial, unevenly
// extracted roadmap is considered worse than a complete synthetic one.
func (p *Parser) Parse(text, timeframe string) []Item {
	logger := common.Logger()
	now := p.currentTime()

	if strings.TrimSpace(text) == "" {
		logger.Warn("roadmap: empty response text, using default roadmap")
		return DefaultRoadmap("", timeframe, now)
	}

	totalWeeks := WeeksForTimeframe(timeframe)
	phases := locatePhases(text, totalWeeks)

	items := make([]Item, 0, MaxItems)
	for _, phase := range phases {
		if len(items) >= MaxItems {
			break
		}
		midDay := (phase.weeks.Start + phase.weeks.End) * 7 / 2
		items = append(items, Item{
			Name:        phase.name,
			Description: fmt.Sprintf("Milestone for %s (Weeks %d-%d)", phase.name, phase.weeks.Start, phase.weeks.End),
			Category:    CategoryMilestone,
			DueDate:     now.Add(daysFromNow(midDay)),
		})

		tasks, matched := extractTasks(phase.span, phase.weeks, now)
		if !matched {
			tasks = DefaultTasksForPhase(phase.name, phase.weeks, now)
		}
		for _, task := range tasks {
			if len(items) >= MaxItems {
				break
			}
			items = append(items, task)
		}
	}

	if len(items) == 0 {
		logger.Info("roadmap: no items extracted from response, using default roadmap")
		return DefaultRoadmap("", timeframe, now)
	}
	if len(items) < MinExtractedItems {
		logger.Info("roadmap: too few items extracted, using default roadmap", "extracted", len(items))
		return DefaultRoadmap("", timeframe, now)
	}
	return items
}

// ExtractOverview lifts the first paragraph of the response as a short
// summary, or a fixed placeholder when the text has no paragraph break.
func ExtractOverview(text string) string {
	first := strings.Split(text, "\n\n")[0]
	if strings.TrimSpace(first) == "" {
		return fallbackOverview
	}
	return first
}
