package roadmap

import (
	"testing"
	"time"
)

func TestDefaultTasksForPhaseThemedLookup(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		phase     string
		firstTask string
	}{
		{PhasePlanning, "Define project requirements"},
		{PhaseCoreDev, "Implement core functionality"},
		{PhaseFeatureImpl, "Implement user interface"},
		{PhaseTesting, "Write unit tests"},
		{"Mystery Stage", "Task 1"},
	}
	for _, tc := range cases {
		tasks := DefaultTasksForPhase(tc.phase, WeekRange{Start: 2, End: 6}, now)
		if len(tasks) != 4 {
			t.Fatalf("%s: expected 4 default tasks, got %d", tc.phase, len(tasks))
		}
		if tasks[0].Name != tc.firstTask {
			t.Fatalf("%s: first task %q, want %q", tc.phase, tasks[0].Name, tc.firstTask)
		}
		for i := 1; i < len(tasks); i++ {
			if tasks[i].DueDate.Before(tasks[i-1].DueDate) {
				t.Fatalf("%s: default task due dates should not regress", tc.phase)
			}
		}
	}
}

func TestDefaultTasksForPhaseSpacing(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// Weeks 2-6: day span 14..42, tasks at 20%, 40%, 60%, 80% of the span.
	tasks := DefaultTasksForPhase(PhasePlanning, WeekRange{Start: 2, End: 6}, now)
	wantDays := []int{19, 25, 30, 36}
	for i, task := range tasks {
		want := now.Add(time.Duration(wantDays[i]) * 24 * time.Hour)
		if !task.DueDate.Equal(want) {
			t.Fatalf("task %d due %v, want %v", i, task.DueDate, want)
		}
	}
}

func TestDefaultRoadmapShape(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	items := DefaultRoadmap("Tracker", "6 months", now)

	if len(items) != 13 {
		t.Fatalf("expected 13 items, got %d", len(items))
	}
	milestones := 0
	for _, item := range items {
		if item.Category == CategoryMilestone {
			milestones++
		}
		if item.Completed {
			t.Fatalf("default items start incomplete")
		}
	}
	if milestones != 4 {
		t.Fatalf("expected 4 milestones, got %d", milestones)
	}
	if items[0].Description != "Initial Tracker planning and preparation" {
		t.Fatalf("title should flow into the planning description, got %q", items[0].Description)
	}
	if items[1].Description != "Gather and document all Tracker requirements" {
		t.Fatalf("title should flow into the requirements description, got %q", items[1].Description)
	}

	// A six-month timeframe spreads the same shape over 180 days.
	if last := items[len(items)-1]; !last.DueDate.Equal(now.Add(147 * 24 * time.Hour)) {
		t.Fatalf("final item due %v", last.DueDate)
	}
}

func TestDefaultRoadmapTitleFallback(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	items := DefaultRoadmap("  ", "", now)
	if items[0].Description != "Initial Project planning and preparation" {
		t.Fatalf("blank title should fall back to Project, got %q", items[0].Description)
	}
}
