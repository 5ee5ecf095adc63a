package roadmap

import (
	"regexp"
	"sort"
	"strings"

	"github.com/devfolio/devfolio/internal/common"
)

// Placeholder character offset spacing used when no phase headers are found
// in the text. The resulting spans are arbitrary slices of the input; the
// extractor then typically finds nothing and the per-phase defaults kick in.
const syntheticPhaseSpacing = 500

// canonicalPhasePatterns match the exact headers requested by the outbound
// prompt, tolerating whitespace and "&" vs "and" variants.
var canonicalPhasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Planning\s*(?:&|and)\s*Setup\s*Phase`),
	regexp.MustCompile(`(?i)Core\s*Development\s*Phase`),
	regexp.MustCompile(`(?i)Feature\s*Implementation\s*Phase`),
	regexp.MustCompile(`(?i)Testing\s*(?:&|and)\s*Refinement\s*Phase`),
}

// genericPhasePattern is the fallback header shape: an optional
// Phase/Milestone/Stage label, an optional number, a colon, free text, and
// an optional week-range annotation.
var genericPhasePattern = regexp.MustCompile(`(?i)(?:Phase|Milestone|Stage)?\s*\d*\s*:?\s*([^:\n]+)(?:\(Week \d+(?:-\d+)?\))?`)

// phaseSpan is one located phase: its canonical name and week range plus the
// slice of the response text it covers.
type phaseSpan struct {
	name  string
	weeks WeekRange
	start int
	span  string
}

// locatePhases scans text for phase headers and returns between 2 and 4
// ordered phase spans. It cannot fail: when no headers are found it
// synthesizes the canonical phases at placeholder offsets.
func locatePhases(text string, totalWeeks int) []phaseSpan {
	logger := common.Logger()
	specs := PhaseWeekRanges(totalWeeks)

	var phases []phaseSpan
	for i, pattern := range canonicalPhasePatterns {
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		phases = append(phases, phaseSpan{
			name:  specs[i].Name,
			weeks: specs[i].Weeks,
			start: loc[0],
		})
	}
	sort.Slice(phases, func(a, b int) bool { return phases[a].start < phases[b].start })

	if len(phases) < 2 {
		matches := genericPhasePattern.FindAllStringSubmatchIndex(text, -1)
		if len(matches) >= 2 {
			if len(matches) > len(specs) {
				matches = matches[:len(specs)]
			}
			phases = phases[:0]
			for i, m := range matches {
				spec := specs[min(i, len(specs)-1)]
				name := spec.Name
				if m[2] >= 0 {
					if captured := strings.TrimSpace(text[m[2]:m[3]]); captured != "" {
						name = captured
					}
				}
				phases = append(phases, phaseSpan{name: name, weeks: spec.Weeks, start: m[0]})
			}
		} else {
			logger.Warn("roadmap: no phase headers found in response, using synthetic phases")
			phases = phases[:0]
			for i, spec := range specs {
				phases = append(phases, phaseSpan{name: spec.Name, weeks: spec.Weeks, start: i * syntheticPhaseSpacing})
			}
		}
	}

	for i := range phases {
		start := phases[i].start
		end := len(text)
		if i < len(phases)-1 {
			end = phases[i+1].start
		}
		phases[i].span = sliceSpan(text, start, end)
	}
	return phases
}

// sliceSpan clamps offsets to the text bounds. Synthetic phase offsets can
// exceed the actual text length, in which case the span is empty.
func sliceSpan(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if start > len(text) {
		start = len(text)
	}
	if end < start {
		end = start
	}
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}
