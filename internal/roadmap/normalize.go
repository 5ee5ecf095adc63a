package roadmap

import (
	"time"

	"github.com/devfolio/devfolio/internal/common"
)

const (
	normalizedNameLimit = 100
	normalizedDescLimit = 500
)

// Normalize applies the field caps, category whitelist, and due-date
// coercion every item list must pass before crossing the API boundary.
// Items with no usable due date get the reference time, logged at warning
// level. Normalize is idempotent: reapplying it is a no-op.
func Normalize(items []Item, now time.Time) []Item {
	logger := common.Logger()
	out := make([]Item, 0, len(items))
	for _, item := range items {
		item.Name = clip(item.Name, normalizedNameLimit)
		item.Description = clip(item.Description, normalizedDescLimit)
		if item.Category != CategoryMilestone && item.Category != CategoryTask {
			item.Category = CategoryTask
		}
		if item.DueDate.IsZero() {
			logger.Warn("roadmap: item has no due date, substituting current time", "item", item.Name)
			item.DueDate = now
		}
		item.DueDate = item.DueDate.UTC()
		out = append(out, item)
	}
	return out
}

// clip truncates s to limit runes without an ellipsis marker.
func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
