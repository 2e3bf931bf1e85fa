package llm_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beachtrack/internal/llm"
	"beachtrack/internal/port"
	"beachtrack/mocks"
)

const prompt = "coach me"

func output(model string) *port.GenerateOutput {
	return &port.GenerateOutput{Text: `[{"goal":"x","activities":[]}]`, ModelUsed: model}
}

func TestFallbackGenerator_FirstSucceeds(t *testing.T) {
	g1 := new(mocks.MockTextGenerator)
	g2 := new(mocks.MockTextGenerator)
	g1.On("Generate", mock.Anything, prompt).Return(output("flash"), nil)

	fg := llm.NewFallbackGenerator([]port.TextGenerator{g1, g2}, []string{"flash", "pro"})

	result, err := fg.Generate(context.Background(), prompt)

	require.NoError(t, err)
	assert.Equal(t, "flash", result.ModelUsed)
	g2.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestFallbackGenerator_FirstFails_SecondSucceeds(t *testing.T) {
	g1 := new(mocks.MockTextGenerator)
	g2 := new(mocks.MockTextGenerator)
	g1.On("Generate", mock.Anything, prompt).Return(nil, errors.New("503 unavailable"))
	g2.On("Generate", mock.Anything, prompt).Return(output("pro"), nil)

	fg := llm.NewFallbackGenerator([]port.TextGenerator{g1, g2}, []string{"flash", "pro"})

	result, err := fg.Generate(context.Background(), prompt)

	require.NoError(t, err)
	assert.Equal(t, "pro", result.ModelUsed)
}

func TestFallbackGenerator_AllFail(t *testing.T) {
	g1 := new(mocks.MockTextGenerator)
	g2 := new(mocks.MockTextGenerator)
	g1.On("Generate", mock.Anything, prompt).Return(nil, errors.New("error 1"))
	g2.On("Generate", mock.Anything, prompt).Return(nil, errors.New("error 2"))

	fg := llm.NewFallbackGenerator([]port.TextGenerator{g1, g2}, []string{"flash", "pro"})

	result, err := fg.Generate(context.Background(), prompt)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all generators failed")
	assert.Contains(t, err.Error(), "error 2")

	var rlErr *llm.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestFallbackGenerator_SkipsOpenCircuit(t *testing.T) {
	g1 := new(mocks.MockTextGenerator)
	g2 := new(mocks.MockTextGenerator)
	g1.On("Generate", mock.Anything, prompt).Return(nil, llm.NewRateLimitError("gemini", errors.New("429"), 60)).Once()
	g2.On("Generate", mock.Anything, prompt).Return(output("pro"), nil)

	fg := llm.NewFallbackGenerator([]port.TextGenerator{g1, g2}, []string{"flash", "pro"})

	for i := 0; i < 2; i++ {
		result, err := fg.Generate(context.Background(), prompt)
		require.NoError(t, err)
		assert.Equal(t, "pro", result.ModelUsed)
	}

	g1.AssertNumberOfCalls(t, "Generate", 1)
}

func TestFallbackGenerator_AllCircuitsOpen(t *testing.T) {
	g1 := new(mocks.MockTextGenerator)
	g1.On("Generate", mock.Anything, prompt).Return(nil, llm.NewRateLimitError("gemini", errors.New("429"), 60)).Once()

	fg := llm.NewFallbackGenerator([]port.TextGenerator{g1}, []string{"flash"})

	_, err := fg.Generate(context.Background(), prompt)
	require.Error(t, err)

	_, err = fg.Generate(context.Background(), prompt)
	var rlErr *llm.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
	assert.Greater(t, rlErr.RetryAfter, 50*time.Second)
	g1.AssertNumberOfCalls(t, "Generate", 1)
}

func TestFallbackGenerator_CircuitAutoCloses(t *testing.T) {
	g1 := new(mocks.MockTextGenerator)
	g2 := new(mocks.MockTextGenerator)
	g1.On("Generate", mock.Anything, prompt).Return(nil, llm.NewRateLimitError("gemini", errors.New("429"), 1)).Once()
	g2.On("Generate", mock.Anything, prompt).Return(output("pro"), nil).Once()

	fg := llm.NewFallbackGenerator([]port.TextGenerator{g1, g2}, []string{"flash", "pro"})

	result, err := fg.Generate(context.Background(), prompt)
	require.NoError(t, err)
	assert.Equal(t, "pro", result.ModelUsed)

	time.Sleep(1100 * time.Millisecond)

	g1.On("Generate", mock.Anything, prompt).Return(output("flash"), nil).Once()
	result, err = fg.Generate(context.Background(), prompt)
	require.NoError(t, err)
	assert.Equal(t, "flash", result.ModelUsed)
}

func TestFallbackGenerator_ConcurrentSafety(t *testing.T) {
	g1 := new(mocks.MockTextGenerator)
	g2 := new(mocks.MockTextGenerator)
	g1.On("Generate", mock.Anything, prompt).Return(nil, llm.NewRateLimitError("gemini", errors.New("429"), 5)).Maybe()
	g2.On("Generate", mock.Anything, prompt).Return(output("pro"), nil).Maybe()

	fg := llm.NewFallbackGenerator([]port.TextGenerator{g1, g2}, []string{"flash", "pro"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := fg.Generate(context.Background(), prompt)
			assert.NoError(t, err)
			assert.NotNil(t, result)
		}()
	}
	wg.Wait()
}

func TestRateLimitError_DefaultRetry(t *testing.T) {
	err := llm.NewRateLimitError("gemini", errors.New("quota"), 0)

	assert.Equal(t, 60*time.Second, err.RetryAfter)
	assert.Contains(t, err.Error(), "gemini rate limited")
	assert.EqualError(t, errors.Unwrap(err), "quota")
}
