package roadmap

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

const structuredResponse = `This roadmap covers twelve weeks of delivery work.

Planning & Setup Phase
- Define scope: Set the boundaries for the build
- Choose stack: Select frameworks and tooling
- Provision repo: Create the repository and CI hooks
- Draft wireframes: Sketch the primary screens
- Align team: Agree on conventions and cadence

Core Development Phase
- Build data layer: Implement models and storage
- Expose endpoints: Add the REST surface
- Wire auth: Connect login and sessions
- Seed fixtures: Load representative data
- Handle errors: Normalize failure responses

Feature Implementation Phase
- Add search: Implement filtering and queries
- Add dashboards: Render summary views
- Add exports: Support downloadable reports
- Add notifications: Deliver in-app alerts
- Polish styling: Refine layouts and colors

Testing & Refinement Phase
- Write unit suite: Cover the core packages
- Run integration pass: Exercise the API end to end
- Profile hotspots: Measure and tune slow paths
- Harden security: Review authz and input handling
- Ship release candidate: Tag and stage the build`

func fixedParser() (*Parser, time.Time) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Parser{Now: func() time.Time { return now }}, now
}

func TestParseStructuredResponseHitsCeiling(t *testing.T) {
	parser, now := fixedParser()
	items := parser.Parse(structuredResponse, "3 months")

	if len(items) != MaxItems {
		t.Fatalf("expected exactly %d items, got %d", MaxItems, len(items))
	}
	if items[0].Name != PhasePlanning || items[0].Category != CategoryMilestone {
		t.Fatalf("expected first item to be the planning milestone, got %+v", items[0])
	}
	// 12-week timeline puts the planning phase at weeks 1-1; its milestone
	// lands at the midpoint day.
	if want := now.Add(7 * 24 * time.Hour); !items[0].DueDate.Equal(want) {
		t.Fatalf("planning milestone due %v, want %v", items[0].DueDate, want)
	}
	last := items[len(items)-1]
	if last.Name != "- Ship release candidate" || last.Category != CategoryTask {
		t.Fatalf("expected final item to be the last testing-phase task, got %+v", last)
	}

	milestones := 0
	for _, item := range items {
		if item.Category == CategoryMilestone {
			milestones++
		}
	}
	if milestones != 4 {
		t.Fatalf("expected 4 milestones, got %d", milestones)
	}
}

func TestParseCeilingWithOverfullPhases(t *testing.T) {
	// Nine task lines per phase; the per-phase cap of five keeps the total
	// at the ceiling even when the raw text offers more.
	var b strings.Builder
	b.WriteString("Overview paragraph.\n\n")
	for _, header := range []string{PhasePlanning, PhaseCoreDev, PhaseFeatureImpl, PhaseTesting} {
		b.WriteString(header + "\n")
		for i := 0; i < 9; i++ {
			b.WriteString("- Deliver workstream item " + strings.Repeat("x", i+1) + ": concrete engineering output\n")
		}
		b.WriteString("\n")
	}

	parser, _ := fixedParser()
	items := parser.Parse(b.String(), "6 months")
	if len(items) != MaxItems {
		t.Fatalf("expected ceiling of %d items, got %d", MaxItems, len(items))
	}
}

func TestParseEmptyTextReturnsDefaultRoadmap(t *testing.T) {
	parser, now := fixedParser()
	items := parser.Parse("", "1 month")

	want := DefaultRoadmap("", "1 month", now)
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("empty text should yield the default roadmap")
	}
	if len(items) != 13 {
		t.Fatalf("expected the fixed 13-item default roadmap, got %d items", len(items))
	}
	if items[0].Name != "Planning Phase" {
		t.Fatalf("expected first default item to be the planning milestone, got %q", items[0].Name)
	}
	if !items[0].DueDate.Equal(now) {
		t.Fatalf("planning milestone should be due immediately, got %v", items[0].DueDate)
	}
	// Default roadmap spacing scales with the timeframe's day span.
	lastDue := items[len(items)-1].DueDate
	if want := now.Add(24 * 24 * time.Hour); !lastDue.Equal(want) {
		t.Fatalf("final default item due %v, want %v", lastDue, want)
	}
}

func TestParseSparseExtractionDiscardedWholesale(t *testing.T) {
	// Two recognizable headers whose bodies only contain noise: every task
	// candidate is filtered, each phase contributes just its milestone, and
	// the two-item extraction falls below the sparsity threshold.
	text := "Planning & Setup Phase\nzz\n\nCore Development Phase\nqq\n"

	parser, now := fixedParser()
	items := parser.Parse(text, "3 months")

	want := DefaultRoadmap("", "3 months", now)
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("sparse extraction should be replaced by the default roadmap")
	}
}

func TestParseTotality(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t  ",
		"abcdef",
		"\x00\x01\x02 binary garbage \x7f",
		"💥💥\n💥",
		"no structure here, just prose that rambles on",
		structuredResponse,
	}
	timeframes := []string{"1 month", "3 months", "6 months", "", "eventually"}

	parser, _ := fixedParser()
	for _, input := range inputs {
		for _, timeframe := range timeframes {
			items := parser.Parse(input, timeframe)
			if len(items) < 1 || len(items) > MaxItems {
				t.Fatalf("Parse(%q, %q) returned %d items, want 1..%d", input, timeframe, len(items), MaxItems)
			}
			for _, item := range items {
				if item.Name == "" {
					t.Fatalf("Parse(%q, %q) produced an item with no name", input, timeframe)
				}
				if item.Category != CategoryMilestone && item.Category != CategoryTask {
					t.Fatalf("unexpected category %q", item.Category)
				}
				if item.DueDate.IsZero() {
					t.Fatalf("item %q has no due date", item.Name)
				}
			}
		}
	}
}

func TestParseSyntheticPhasesFromUnstructuredText(t *testing.T) {
	// A single line matches the generic header pattern only once, so the
	// locator synthesizes all four canonical phases. Only the first synthetic
	// span overlaps the actual text; the rest fall back to default tasks.
	parser, _ := fixedParser()
	items := parser.Parse("ship the product", "3 months")

	if len(items) < MinExtractedItems || len(items) > MaxItems {
		t.Fatalf("synthetic-phase parse returned %d items", len(items))
	}
	names := make(map[string]bool)
	for _, item := range items {
		if item.Category == CategoryMilestone {
			names[item.Name] = true
		}
	}
	for _, phase := range []string{PhasePlanning, PhaseCoreDev, PhaseFeatureImpl, PhaseTesting} {
		if !names[phase] {
			t.Fatalf("expected synthetic milestone %q", phase)
		}
	}
}

func TestExtractOverview(t *testing.T) {
	if got := ExtractOverview("First paragraph.\n\nSecond paragraph."); got != "First paragraph." {
		t.Fatalf("unexpected overview: %q", got)
	}
	if got := ExtractOverview(""); got != fallbackOverview {
		t.Fatalf("empty text should yield the placeholder overview, got %q", got)
	}
	if got := ExtractOverview("single paragraph only"); got != "single paragraph only" {
		t.Fatalf("single-paragraph text should be returned verbatim, got %q", got)
	}
}
