package parser

import (
	"strings"

	"beachtrack/internal/domain"
)

// GenericClassifier files each line independently using a flat keyword list.
// It keeps no section state and applies no length or colon filter.
type GenericClassifier struct{}

func (GenericClassifier) Classify(text string) domain.ParsedDocument {
	doc := domain.NewParsedDocument(text)
	for _, line := range SplitLines(text) {
		lower := strings.ToLower(line)
		for _, rule := range genericRules {
			if containsAny(lower, rule.keywords) {
				doc.Add(rule.bucket, line)
				break
			}
		}
	}
	return doc
}
