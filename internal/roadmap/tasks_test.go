package roadmap

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestExtractTasksColonHeuristic(t *testing.T) {
	span := `Planning & Setup Phase
- Define scope: Set the boundaries for the build
- Choose stack: Select frameworks and tooling
- Provision repo: Create the repository and CI hooks`

	tasks, matched := extractTasks(span, WeekRange{Start: 1, End: 4}, testNow)
	if !matched {
		t.Fatalf("expected heuristics to match")
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	// The match begins at the line break, so the bullet stays in the name.
	if tasks[0].Name != "- Define scope" {
		t.Fatalf("unexpected first task name: %q", tasks[0].Name)
	}
	if tasks[0].Description != "Set the boundaries for the build" {
		t.Fatalf("unexpected first task description: %q", tasks[0].Description)
	}
	for _, task := range tasks {
		if task.Category != CategoryTask {
			t.Fatalf("expected task category, got %q", task.Category)
		}
		if task.DueDate.Before(testNow) {
			t.Fatalf("task due date before reference time")
		}
	}
	// Position 0 of 3 lands on the phase's first week.
	if want := testNow.Add(7 * 24 * time.Hour); !tasks[0].DueDate.Equal(want) {
		t.Fatalf("first task due %v, want %v", tasks[0].DueDate, want)
	}
}

func TestExtractTasksParentheticalHeuristic(t *testing.T) {
	span := "Build importer (reads CSV uploads into the catalog)"
	tasks, matched := extractTasks(span, WeekRange{Start: 2, End: 6}, testNow)
	if !matched || len(tasks) != 1 {
		t.Fatalf("expected a single parenthetical task, got %d (matched=%v)", len(tasks), matched)
	}
	if tasks[0].Name != "Build importer" {
		t.Fatalf("unexpected name: %q", tasks[0].Name)
	}
	if tasks[0].Description != "reads CSV uploads into the catalog" {
		t.Fatalf("unexpected description: %q", tasks[0].Description)
	}
}

func TestExtractTasksCapsPerPhase(t *testing.T) {
	var lines []string
	for i := 0; i < 9; i++ {
		lines = append(lines, "- Task item "+strings.Repeat("x", i+1)+": some work to do")
	}
	tasks, _ := extractTasks(strings.Join(lines, "\n"), WeekRange{Start: 1, End: 4}, testNow)
	if len(tasks) != maxTasksPerPhase {
		t.Fatalf("expected cap of %d tasks, got %d", maxTasksPerPhase, len(tasks))
	}
}

func TestExtractTasksFiltersHeaderEchoes(t *testing.T) {
	span := "Planning milestone recap: closing out the phase"
	tasks, matched := extractTasks(span, WeekRange{Start: 1, End: 2}, testNow)
	if !matched {
		t.Fatalf("heuristic should have matched the raw line")
	}
	if len(tasks) != 0 {
		t.Fatalf("header-like candidates should be filtered, got %d tasks", len(tasks))
	}
}

func TestExtractTasksNoMatchOnEmptySpan(t *testing.T) {
	tasks, matched := extractTasks("", WeekRange{Start: 1, End: 2}, testNow)
	if matched || tasks != nil {
		t.Fatalf("empty span should not match any heuristic")
	}
}

func TestExtractTasksTruncation(t *testing.T) {
	longName := strings.Repeat("a", 200)
	longDesc := strings.Repeat("b", 1000)
	tasks, _ := extractTasks(longName+": "+longDesc, WeekRange{Start: 1, End: 2}, testNow)
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
	if got := len(tasks[0].Name); got > taskNameLimit+3 {
		t.Fatalf("name length %d exceeds %d", got, taskNameLimit+3)
	}
	if !strings.HasSuffix(tasks[0].Name, "...") {
		t.Fatalf("truncated name should end with ellipsis")
	}
	if got := len(tasks[0].Description); got > taskDescLimit+3 {
		t.Fatalf("description length %d exceeds %d", got, taskDescLimit+3)
	}
}
