// Package parser classifies extracted PDF text into profile buckets.
package parser

import (
	"strings"
	"unicode/utf8"

	"beachtrack/internal/domain"
)

// minContentRunes is the length a line must exceed to count as content.
const minContentRunes = 3

// Classifier turns extracted text into a ParsedDocument.
type Classifier interface {
	Classify(text string) domain.ParsedDocument
}

// SectionClassifier is a single-pass state machine driven by a KeywordTable.
// A line containing a header keyword switches the current section and is
// consumed; other lines are appended to the current section when they are
// longer than three characters and carry no colon.
type SectionClassifier struct {
	Keywords KeywordTable
}

func (c SectionClassifier) Classify(text string) domain.ParsedDocument {
	doc := domain.NewParsedDocument(text)
	current := domain.BucketNone

	for _, line := range SplitLines(text) {
		if b := c.Keywords.matchBucket(strings.ToLower(line)); b != domain.BucketNone {
			current = b
			continue
		}
		if current == domain.BucketNone {
			continue
		}
		if utf8.RuneCountInString(line) > minContentRunes && !strings.Contains(line, ":") {
			doc.Add(current, line)
		}
	}

	return doc
}

// SplitLines splits text on newlines, trims each line and drops empty ones.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
