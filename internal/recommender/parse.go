package recommender

import (
	"errors"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"beachtrack/internal/domain"
)

var (
	// ErrNoJSONArray means the model output contained no bracketed array.
	ErrNoJSONArray = errors.New("no JSON array in model output")
	// ErrMalformedOutput means an array was found but could not be used.
	ErrMalformedOutput = errors.New("malformed recommendations in model output")
)

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)\\s*```")

// ParseRecommendations extracts recommendations from free-form model output.
// Code fences and surrounding prose are tolerated; items without a goal are
// dropped. An array with no usable item is an error.
func ParseRecommendations(text string) ([]domain.Recommendation, error) {
	body := strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(body); m != nil {
		body = m[1]
	}

	start := strings.IndexByte(body, '[')
	end := strings.LastIndexByte(body, ']')
	if start < 0 || end <= start {
		return nil, ErrNoJSONArray
	}
	body = body[start : end+1]

	if !gjson.Valid(body) {
		return nil, ErrMalformedOutput
	}
	arr := gjson.Parse(body)
	if !arr.IsArray() {
		return nil, ErrMalformedOutput
	}

	var recs []domain.Recommendation
	arr.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		goal := strings.TrimSpace(item.Get("goal").String())
		if goal == "" {
			return true
		}
		rec := domain.Recommendation{
			Goal:       goal,
			Activities: stringList(item.Get("activities")),
		}
		if lr := item.Get("learningResources"); lr.IsObject() {
			rec.LearningResources = parseResources(lr)
		}
		recs = append(recs, rec)
		return true
	})

	if len(recs) == 0 {
		return nil, ErrMalformedOutput
	}
	return recs, nil
}

func stringList(r gjson.Result) []string {
	out := []string{}
	for _, v := range r.Array() {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseResources(r gjson.Result) *domain.LearningResources {
	lr := &domain.LearningResources{
		UdemyCourses:  resourceList(r.Get("udemyCourses")),
		YoutubeVideos: resourceList(r.Get("youtubeVideos")),
		Books:         resourceList(r.Get("books")),
		Papers:        resourceList(r.Get("papers")),
	}
	if lr.UdemyCourses == nil && lr.YoutubeVideos == nil && lr.Books == nil && lr.Papers == nil {
		return nil
	}
	return lr
}

func resourceList(r gjson.Result) []domain.LearningResource {
	var out []domain.LearningResource
	for _, v := range r.Array() {
		title := strings.TrimSpace(v.Get("title").String())
		if title == "" {
			continue
		}
		out = append(out, domain.LearningResource{
			Title: title,
			Link:  strings.TrimSpace(v.Get("link").String()),
		})
	}
	return out
}
