package parser

import (
	"fmt"

	"beachtrack/internal/domain"
)

var keywordTables = map[domain.ProfileType]KeywordTable{
	domain.ProfileTypeJigsaw:   JigsawKeywords,
	domain.ProfileTypePathways: PathwaysKeywords,
	domain.ProfileTypeWorkday:  WorkdayKeywords,
}

// ForProfileType returns the section classifier configured for t.
func ForProfileType(t domain.ProfileType) (Classifier, error) {
	table, ok := keywordTables[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidProfileType, string(t))
	}
	return SectionClassifier{Keywords: table}, nil
}
