package profile_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"beachtrack/internal/domain"
	"beachtrack/internal/parser"
	"beachtrack/internal/profile"
)

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return out
}

func TestSummarize_JigsawScenario(t *testing.T) {
	c, err := parser.ForProfileType(domain.ProfileTypeJigsaw)
	assert.NoError(t, err)

	s := profile.Summarize(c.Classify("Skills\nJava, Python\nAspirations\nBecome a lead"))

	assert.Equal(t, "Skills: Java, Python", s.MeNow)
	assert.Equal(t, "Aspirations: Become a lead", s.MeNext)
}

func TestSummarize_Empty(t *testing.T) {
	s := profile.Summarize(domain.NewParsedDocument(""))

	assert.Equal(t, domain.Summary{}, s)
}

func TestSummarize_AllBuckets(t *testing.T) {
	doc := domain.ParsedDocument{
		Skills:         []string{"Go", "SQL"},
		Experience:     []string{"Acme", "Globex"},
		Aspirations:    []string{"Tech lead", "Speak at a conference"},
		Strengths:      []string{"Mentoring"},
		AreasForGrowth: []string{"Delegation", "Estimation"},
	}

	s := profile.Summarize(doc)

	assert.Equal(t, "Skills: Go, SQL. Experience: Acme; Globex. Strengths: Mentoring", s.MeNow)
	assert.Equal(t, "Aspirations: Tech lead; Speak at a conference. Areas for Growth: Delegation, Estimation", s.MeNext)
}

func TestSummarize_OmitsEmptyParts(t *testing.T) {
	doc := domain.NewParsedDocument("")
	doc.Strengths = []string{"Facilitation"}
	doc.AreasForGrowth = []string{"Public speaking"}

	s := profile.Summarize(doc)

	assert.Equal(t, "Strengths: Facilitation", s.MeNow)
	assert.Equal(t, "Areas for Growth: Public speaking", s.MeNext)
}

func TestSummarize_Caps(t *testing.T) {
	doc := domain.ParsedDocument{
		Skills:         numbered("skill", 9),
		Experience:     numbered("role", 9),
		Aspirations:    numbered("goal", 9),
		Strengths:      numbered("strength", 9),
		AreasForGrowth: numbered("growth", 9),
	}

	s := profile.Summarize(doc)

	assert.Equal(t, 5, strings.Count(s.MeNow, "skill "))
	assert.Equal(t, 3, strings.Count(s.MeNow, "role "))
	assert.Equal(t, 3, strings.Count(s.MeNow, "strength "))
	assert.Equal(t, 3, strings.Count(s.MeNext, "goal "))
	assert.Equal(t, 3, strings.Count(s.MeNext, "growth "))
	assert.Contains(t, s.MeNow, "skill 5")
	assert.NotContains(t, s.MeNow, "skill 6")
	assert.NotContains(t, s.MeNext, "goal 4")
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	skills := numbered("skill", 7)
	doc := domain.NewParsedDocument("")
	doc.Skills = skills

	_ = profile.Summarize(doc)

	assert.Len(t, doc.Skills, 7)
}
