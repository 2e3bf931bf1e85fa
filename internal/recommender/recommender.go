// Package recommender asks a text generator for development goals and turns
// its free-form answer into structured recommendations.
package recommender

import (
	"context"
	"log"
	"time"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

// DefaultTimeout bounds a single generator call.
const DefaultTimeout = 30 * time.Second

// Result is the outcome of one recommendation request.
type Result struct {
	Recommendations []domain.Recommendation
	Fallback        bool
	ModelUsed       string
}

// Recommender builds prompts, calls the generator once and parses the reply.
type Recommender struct {
	gen     port.TextGenerator
	timeout time.Duration
}

// New creates a Recommender. gen may be nil, in which case every request is
// served from FallbackRecommendations.
func New(gen port.TextGenerator, timeout time.Duration) *Recommender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Recommender{gen: gen, timeout: timeout}
}

// Recommend never fails: any generator or parse problem yields the fixed
// fallback goals with Fallback set.
func (r *Recommender) Recommend(ctx context.Context, meNow, meNext string) Result {
	if r.gen == nil {
		return fallback()
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.gen.Generate(callCtx, BuildPrompt(meNow, meNext))
	if err != nil {
		log.Printf("recommender.Recommend: generator failed: %v", err)
		return fallback()
	}

	recs, err := ParseRecommendations(out.Text)
	if err != nil {
		log.Printf("recommender.Recommend: unusable output from %s (%d bytes): %v", out.ModelUsed, len(out.Text), err)
		return fallback()
	}

	return Result{Recommendations: recs, ModelUsed: out.ModelUsed}
}

func fallback() Result {
	return Result{Recommendations: FallbackRecommendations(), Fallback: true}
}
