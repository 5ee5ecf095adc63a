package gen

import (
	"regexp"
	"strings"
)

var (
	fencedJSONPattern  = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	fencedBlockPattern = regexp.MustCompile("(?s)```\\s*(.*?)```")
	objectPattern      = regexp.MustCompile(`(?s)\{.*\}`)
	arrayPattern       = regexp.MustCompile(`(?s)\[.*\]`)

	trailingCommaPattern = regexp.MustCompile(`,(\s*[\]\}])`)
	unquotedKeyPattern   = regexp.MustCompile(`([{,])\s*([a-zA-Z0-9_]+)\s*:`)
)

// extractJSONObject pulls the JSON object out of a model response: fenced
// code blocks first, then the outermost brace pair, then the whole trimmed
// text as a last resort.
func extractJSONObject(text string) string {
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := fencedBlockPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := objectPattern.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return strings.TrimSpace(text)
}

// extractJSONArray is the array-shaped counterpart of extractJSONObject.
func extractJSONArray(text string) string {
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := fencedBlockPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := arrayPattern.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return strings.TrimSpace(text)
}

// repairJSON fixes the syntax slips models make most often: trailing commas,
// unquoted property names, and single-quoted strings. Best effort only.
func repairJSON(text string) string {
	fixed := trailingCommaPattern.ReplaceAllString(text, "$1")
	fixed = unquotedKeyPattern.ReplaceAllString(fixed, `$1"$2":`)
	fixed = strings.ReplaceAll(fixed, "'", `"`)
	return fixed
}
