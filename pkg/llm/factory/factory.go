package factory

import (
	"fmt"
	"log"

	"inquiry-be/pkg/llm"
	"inquiry-be/pkg/llm/gemini"
	"inquiry-be/pkg/llm/ollama"
)

func newProvider(providerType, modelName, ollamaBaseURL, geminiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "gemini":
		return gemini.NewGeminiProvider(geminiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// NewChain builds the synthesis fallback chain from an ordered list of
// provider selectors ("ollama", "gemini"). Providers that cannot be
// constructed (unknown type, missing hosted credential) are skipped with a
// log line rather than failing startup; an empty chain is the only hard
// error.
func NewChain(
	logger *log.Logger,
	providerTypes []string,
	models map[string]string,
	ollamaBaseURL string,
	geminiKey string,
) (*llm.Chain, error) {
	var providers []llm.LLMProvider
	for _, pt := range providerTypes {
		if pt == "gemini" && geminiKey == "" {
			logger.Printf("[WARN] skipping gemini llm provider: no api key configured")
			continue
		}
		p, err := newProvider(pt, models[pt], ollamaBaseURL, geminiKey)
		if err != nil {
			logger.Printf("[WARN] skipping llm provider %q: %v", pt, err)
			continue
		}
		providers = append(providers, p)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no usable llm provider in chain %v", providerTypes)
	}
	return llm.NewChain(logger, providers...), nil
}
