package roadmap

import (
	"fmt"
	"strings"
)

// BuildPrompt constructs the outbound roadmap prompt. It instructs the model
// to structure its answer under the four canonical phase headers with week
// annotations; the locator's primary strategy matches those headers, and the
// fallback strategies exist to tolerate model non-compliance.
func BuildPrompt(projectTitle, description string, skills []string, timeline string) string {
	skillsList := "Not specified"
	if len(skills) > 0 {
		skillsList = strings.Join(skills, ", ")
	}
	if strings.TrimSpace(timeline) == "" {
		timeline = "3 months"
	}
	weeks := WeeksForTimeframe(timeline)
	phases := PhaseWeekRanges(weeks)

	var b strings.Builder
	fmt.Fprintf(&b, "Create a HIGHLY DETAILED and PRACTICAL project roadmap for:\n")
	fmt.Fprintf(&b, "Project Title: %s\n", projectTitle)
	fmt.Fprintf(&b, "Description: %s\n", description)
	fmt.Fprintf(&b, "Required Skills: %s\n", skillsList)
	fmt.Fprintf(&b, "Timeline: %s (approximately %d weeks)\n\n", timeline, weeks)
	b.WriteString(`IMPORTANT REQUIREMENTS:
1. The roadmap must be REALISTIC and ACTIONABLE
2. Tasks must be SPECIFIC and MEASURABLE
3. Include EXACT technologies from the skills list
4. Provide CLEAR milestones with completion criteria
5. Ensure tasks build logically on each other
6. Include testing and quality assurance tasks
7. Account for potential challenges and mitigation strategies

Structure the roadmap with these EXACT phases:
`)
	for i, phase := range phases {
		fmt.Fprintf(&b, "%d. %s (Week %d-%d)\n", i+1, phase.Name, phase.Weeks.Start, phase.Weeks.End)
	}
	b.WriteString(`
For EACH phase:
1. Start with a clear MILESTONE that marks completion of the phase
2. List 4-6 specific TASKS with detailed descriptions
3. For each task, include:
   - Estimated duration (in days)
   - Required skills/technologies
   - Completion criteria
   - Dependencies on other tasks (if any)

Additional sections to include:
1. Key challenges and mitigation strategies
2. Learning outcomes and skill development
3. Success metrics and evaluation criteria

Format the response with clear section headers, numbered lists for tasks, and specific timeframes.
IMPORTANT: Make the roadmap HIGHLY SPECIFIC to this exact project - avoid generic tasks that could apply to any project.`)
	return b.String()
}
