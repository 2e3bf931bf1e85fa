package profile

import (
	"regexp"
	"strings"

	"beachtrack/internal/domain"
)

const (
	maxConsolidatedSentences = 5

	maxPathwaysAspirations = 3
	maxWorkdayGrowth       = 2
	maxWorkdayAspirations  = 2
	maxJigsawAspirations   = 2
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// SourceSet is the per-source input to consolidation. Types without an import
// are represented by empty documents and empty narratives.
type SourceSet struct {
	Documents map[domain.ProfileType]domain.ParsedDocument
	MeNow     map[domain.ProfileType]string
}

// NewSourceSet builds a SourceSet from stored source profiles.
func NewSourceSet(sources []domain.SourceProfile) SourceSet {
	set := SourceSet{
		Documents: make(map[domain.ProfileType]domain.ParsedDocument, len(domain.ProfileTypes)),
		MeNow:     make(map[domain.ProfileType]string, len(domain.ProfileTypes)),
	}
	for _, sp := range sources {
		if !sp.ProfileType.Valid() {
			continue
		}
		set.Documents[sp.ProfileType] = sp.ImportedData
		set.MeNow[sp.ProfileType] = sp.MeNow
	}
	return set
}

// Document returns the parsed document for t, or an empty one.
func (s SourceSet) Document(t domain.ProfileType) domain.ParsedDocument {
	if doc, ok := s.Documents[t]; ok {
		return doc
	}
	return domain.NewParsedDocument("")
}

// Consolidate derives the user-facing profile from all sources. meNow merges
// every source; meNext follows source priority.
func Consolidate(set SourceSet) domain.Summary {
	fields := make([]string, 0, len(domain.ProfileTypes))
	for _, t := range domain.ProfileTypes {
		fields = append(fields, set.MeNow[t])
	}
	return domain.Summary{
		MeNow:  ConsolidateMeNow(fields...),
		MeNext: ConsolidateMeNext(set),
	}
}

// ConsolidateMeNow merges narratives sentence by sentence, dropping exact
// duplicates and keeping at most five sentences. Fragments are compared
// untrimmed, so only verbatim repeats collapse.
func ConsolidateMeNow(fields ...string) string {
	valid := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			valid = append(valid, f)
		}
	}
	if len(valid) == 0 {
		return ""
	}

	seen := make(map[string]struct{})
	var sentences []string
	for _, s := range sentenceBreak.Split(strings.Join(valid, " "), -1) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		sentences = append(sentences, s)
		if len(sentences) == maxConsolidatedSentences {
			break
		}
	}
	if len(sentences) == 0 {
		return ""
	}
	return strings.Join(sentences, ". ") + "."
}

// ConsolidateMeNext builds the aspirations narrative. Pathways and Workday
// contribute when they have data; Jigsaw is used only when neither does.
func ConsolidateMeNext(set SourceSet) string {
	pathways := set.Document(domain.ProfileTypePathways)
	workday := set.Document(domain.ProfileTypeWorkday)

	var parts []string
	parts = appendPart(parts, "Career Aspirations: ", pathways.Aspirations, maxPathwaysAspirations, "; ")
	parts = appendPart(parts, "Development Focus: ", workday.AreasForGrowth, maxWorkdayGrowth, ", ")
	parts = appendPart(parts, "Workday Goals: ", workday.Aspirations, maxWorkdayAspirations, "; ")

	if len(parts) == 0 {
		jigsaw := set.Document(domain.ProfileTypeJigsaw)
		parts = appendPart(parts, "Career Goals: ", jigsaw.Aspirations, maxJigsawAspirations, "; ")
	}

	return strings.Join(parts, ". ")
}
