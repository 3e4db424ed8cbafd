package letter

import (
	"strings"
	"unicode"

	"letterforge/internal/model"
)

// Heading heuristic: a trimmed line that ends with a colon, or that is short
// and entirely upper-case, starts a new section. Anything else accumulates
// into the current section. Known failure modes: a sentence written in all
// caps misparses as a heading, and headings without a colon in mixed case
// are missed. The raw text stays authoritative; this exists for display.
const headingMaxLen = 30

const defaultHeading = "Letter"

// ParseSections splits generated free text into labeled sections. Total over
// arbitrary input: any string, including the empty one, yields at least one
// section and never an error.
func ParseSections(rawText string) []model.Section {
	var sections []model.Section

	current := model.Section{Heading: defaultHeading}
	var content strings.Builder

	flush := func() {
		if strings.TrimSpace(content.String()) != "" {
			current.Content = content.String()
			sections = append(sections, current)
		}
		content.Reset()
	}

	for _, line := range strings.Split(rawText, "\n") {
		trimmed := strings.TrimSpace(line)
		if isHeading(trimmed) {
			flush()
			current = model.Section{Heading: strings.TrimSuffix(trimmed, ":")}
			continue
		}
		content.WriteString(line)
		content.WriteString("\n")
	}
	flush()

	if len(sections) == 0 {
		return []model.Section{{Heading: defaultHeading, Content: rawText}}
	}
	return sections
}

func isHeading(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	if strings.HasSuffix(trimmed, ":") {
		return true
	}
	if len(trimmed) >= headingMaxLen {
		return false
	}
	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
