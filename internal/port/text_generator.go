package port

import "context"

// GenerateOutput is the raw completion returned by a text generator.
type GenerateOutput struct {
	Text      string
	ModelUsed string
}

// TextGenerator sends a prompt to a generative model. Callers must treat the
// returned text as untrusted free-form output.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*GenerateOutput, error)
}
