package roadmap

import "time"

// Item categories. Anything else is coerced to a task during normalization.
const (
	CategoryMilestone = "milestone"
	CategoryTask      = "task"
)

// Tunable policy constants preserved from the original product behaviour.
// MaxItems is the hard ceiling on items returned from a single parse.
// MinExtractedItems is the sparsity threshold: extractions smaller than this
// are discarded wholesale in favour of the deterministic default roadmap.
const (
	MaxItems          = 24
	MinExtractedItems = 8
)

// Item is one unit of roadmap output: a phase-level milestone or a task.
type Item struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
}
