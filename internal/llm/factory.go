// Package llm selects and chains text generation providers.
package llm

import (
	"context"
	"fmt"

	"beachtrack/internal/config"
	"beachtrack/internal/port"
)

// ProviderFactory creates a TextGenerator from a provider config.
type ProviderFactory func(ctx context.Context, cfg *config.AIProviderConfig) (port.TextGenerator, error)

// Registry maps provider names to their factories. It is built once at startup.
type Registry struct {
	providers map[string]ProviderFactory
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]ProviderFactory{}}
}

// Register registers a provider factory by name.
func (r *Registry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// New creates a TextGenerator from a provider config using the registered factory.
func (r *Registry) New(ctx context.Context, cfg *config.AIProviderConfig) (port.TextGenerator, error) {
	factory, ok := r.providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.Provider)
	}
	return factory(ctx, cfg)
}

// FromConfig builds the primary generator and, when a secondary provider is
// configured, wraps both in a FallbackGenerator.
func (r *Registry) FromConfig(ctx context.Context, cfg *config.AIConfig) (port.TextGenerator, error) {
	primary, err := r.New(ctx, &cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("primary ai provider: %w", err)
	}
	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}
	secondary, err := r.New(ctx, secondaryCfg)
	if err != nil {
		return nil, fmt.Errorf("secondary ai provider: %w", err)
	}
	return NewFallbackGenerator(
		[]port.TextGenerator{primary, secondary},
		[]string{cfg.Primary.Provider + "/" + cfg.Primary.Model, secondaryCfg.Provider + "/" + secondaryCfg.Model},
	), nil
}
