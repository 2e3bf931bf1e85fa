package parser

import "beachtrack/internal/domain"

// KeywordTable maps each content bucket to the header keywords that open it.
// Keywords are lower case and matched as substrings of the lower-cased line.
type KeywordTable map[domain.Bucket][]string

// JigsawKeywords are the section headers used in Jigsaw profile exports.
var JigsawKeywords = KeywordTable{
	domain.BucketSkills:      {"skills", "competencies"},
	domain.BucketExperience:  {"experience", "background"},
	domain.BucketAspirations: {"aspirations", "goals", "next"},
	domain.BucketStrengths:   {"strengths", "strength"},
	domain.BucketGrowth:      {"growth", "development", "improve"},
}

// PathwaysKeywords are the section headers used in Pathways career plans.
var PathwaysKeywords = KeywordTable{
	domain.BucketSkills:      {"skills", "capabilities"},
	domain.BucketExperience:  {"experience", "work history"},
	domain.BucketAspirations: {"aspirations", "career goals"},
	domain.BucketStrengths:   {"strengths", "key strengths"},
	domain.BucketGrowth:      {"development", "growth areas"},
}

// WorkdayKeywords are the section headers used in Workday talent profiles.
var WorkdayKeywords = KeywordTable{
	domain.BucketSkills:      {"skills", "competencies", "capabilities"},
	domain.BucketExperience:  {"experience", "work history", "employment"},
	domain.BucketAspirations: {"aspirations", "career goals", "objectives"},
	domain.BucketStrengths:   {"strengths", "key strengths", "achievements"},
	domain.BucketGrowth:      {"development", "growth areas", "improvement"},
}

// genericRules drive GenericClassifier. Order matters: first match wins.
var genericRules = []struct {
	bucket   domain.Bucket
	keywords []string
}{
	{domain.BucketSkills, []string{"skill", "technology", "language"}},
	{domain.BucketExperience, []string{"experience", "worked", "project"}},
	{domain.BucketAspirations, []string{"goal", "aspiration", "want to"}},
	{domain.BucketStrengths, []string{"strength", "good at", "excel"}},
	{domain.BucketGrowth, []string{"improve", "learn", "develop"}},
}

// sourceMarkers identify which tool produced a document, tested in order.
var sourceMarkers = []struct {
	profileType domain.ProfileType
	markers     []string
}{
	{domain.ProfileTypeJigsaw, []string{"jigsaw", "thoughtworks"}},
	{domain.ProfileTypePathways, []string{"pathways", "career path"}},
	{domain.ProfileTypeWorkday, []string{"workday", "hr system"}},
}

// matchBucket returns the first bucket, in domain.Buckets order, whose
// keywords appear in lower.
func (k KeywordTable) matchBucket(lower string) domain.Bucket {
	for _, b := range domain.Buckets {
		if containsAny(lower, k[b]) {
			return b
		}
	}
	return domain.BucketNone
}
