package llm

import (
	"context"
	"log"
	"strings"
)

// Chain tries an ordered list of providers until one answers. It replaces
// hand-nested try/catch fallbacks with a flat strategy list: each provider is
// attempted in turn, failures are logged, and only an exhausted chain
// surfaces ErrProviderUnavailable to the caller.
type Chain struct {
	providers []LLMProvider
	logger    *log.Logger
}

var _ LLMProvider = &Chain{}

func NewChain(logger *log.Logger, providers ...LLMProvider) *Chain {
	return &Chain{
		providers: providers,
		logger:    logger,
	}
}

func (c *Chain) Name() string {
	if len(c.providers) == 0 {
		return "chain/empty"
	}
	return "chain/" + c.providers[0].Name()
}

func (c *Chain) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	for _, p := range c.providers {
		reply, err := p.Chat(ctx, history, options...)
		if err != nil {
			c.logger.Printf("[WARN] llm provider %s failed, trying next: %v", p.Name(), err)
			continue
		}
		return reply, nil
	}
	return "", ErrProviderUnavailable
}

func (c *Chain) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return c.Chat(ctx, []Message{{Role: "user", Content: prompt}}, options...)
}

// Prefer returns a chain with the named backend promoted to the front, so a
// per-request provider override still falls back through the rest. The name
// matches the backend part of a provider name ("ollama" matches
// "ollama/llama3"). An unknown name returns the chain unchanged.
func (c *Chain) Prefer(name string) *Chain {
	for i, p := range c.providers {
		if matchesBackend(p.Name(), name) && i != 0 {
			reordered := make([]LLMProvider, 0, len(c.providers))
			reordered = append(reordered, p)
			reordered = append(reordered, c.providers[:i]...)
			reordered = append(reordered, c.providers[i+1:]...)
			return NewChain(c.logger, reordered...)
		}
	}
	return c
}

func matchesBackend(providerName, backend string) bool {
	return providerName == backend || strings.HasPrefix(providerName, backend+"/")
}
