// Package profile derives narrative profile text from parsed documents.
package profile

import (
	"strings"

	"beachtrack/internal/domain"
)

// Item caps for the per-source summary.
const (
	maxSkills      = 5
	maxExperience  = 3
	maxStrengths   = 3
	maxAspirations = 3
	maxGrowth      = 3
)

// Summarize produces the meNow and meNext narratives for a single document.
// Empty buckets are omitted; an empty document yields two empty strings.
func Summarize(doc domain.ParsedDocument) domain.Summary {
	var now []string
	now = appendPart(now, "Skills: ", doc.Skills, maxSkills, ", ")
	now = appendPart(now, "Experience: ", doc.Experience, maxExperience, "; ")
	now = appendPart(now, "Strengths: ", doc.Strengths, maxStrengths, ", ")

	var next []string
	next = appendPart(next, "Aspirations: ", doc.Aspirations, maxAspirations, "; ")
	next = appendPart(next, "Areas for Growth: ", doc.AreasForGrowth, maxGrowth, ", ")

	return domain.Summary{
		MeNow:  strings.Join(now, ". "),
		MeNext: strings.Join(next, ". "),
	}
}

// appendPart appends label followed by the first n items joined by sep,
// unless items is empty.
func appendPart(parts []string, label string, items []string, n int, sep string) []string {
	if len(items) == 0 {
		return parts
	}
	return append(parts, label+strings.Join(first(items, n), sep))
}

func first(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
