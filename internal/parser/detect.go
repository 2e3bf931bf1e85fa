package parser

import (
	"strings"

	"beachtrack/internal/domain"
)

// Detect guesses which tool produced text from identifying markers in it.
// The second result is false when no known tool is recognised.
func Detect(text string) (domain.ProfileType, bool) {
	lower := strings.ToLower(text)
	for _, s := range sourceMarkers {
		if containsAny(lower, s.markers) {
			return s.profileType, true
		}
	}
	return "", false
}

// AutoClassify classifies text with the classifier of the detected source,
// falling back to GenericClassifier. The returned type is
// domain.ProfileTypeGeneric when the fallback was used.
func AutoClassify(text string) (domain.ParsedDocument, domain.ProfileType) {
	if t, ok := Detect(text); ok {
		return SectionClassifier{Keywords: keywordTables[t]}.Classify(text), t
	}
	return GenericClassifier{}.Classify(text), domain.ProfileTypeGeneric
}
