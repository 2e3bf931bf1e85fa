package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"beachtrack/internal/port"
)

// circuitState tracks rate-limit backoff for a single generator.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackGenerator tries generators in order, skipping those whose circuit
// is open after a rate limit. Each generator gets a single attempt.
type FallbackGenerator struct {
	generators []port.TextGenerator
	circuits   []*circuitState
	names      []string
	now        func() time.Time
}

// NewFallbackGenerator creates a FallbackGenerator from an ordered list of generators and their names.
func NewFallbackGenerator(generators []port.TextGenerator, names []string) *FallbackGenerator {
	circuits := make([]*circuitState, len(generators))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackGenerator{
		generators: generators,
		circuits:   circuits,
		names:      names,
		now:        time.Now,
	}
}

func (f *FallbackGenerator) Generate(ctx context.Context, prompt string) (*port.GenerateOutput, error) {
	now := f.now()
	var lastErr error
	var earliestReset time.Time

	for i, g := range f.generators {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("llm.FallbackGenerator: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := g.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}

		log.Printf("llm.FallbackGenerator: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		}
		if ctx.Err() != nil {
			break
		}
	}

	if lastErr == nil {
		// Every generator was skipped because its circuit is open.
		retryAfter := earliestReset.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all generators rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all generators failed: %w", lastErr)
}
