package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"inquiry-be/pkg/llm"
)

// Fields is the three-part session summary used both for human re-entry and
// as the text embedded for session-level retrieval.
type Fields struct {
	OrientationBlurb string `json:"orientation_blurb"`
	UnresolvedEdge   string `json:"unresolved_edge"`
	LastPivot        string `json:"last_pivot"`
}

// EmbeddingText concatenates the summary fields into the single string that
// gets embedded for session retrieval.
func (f Fields) EmbeddingText() string {
	return strings.TrimSpace(f.OrientationBlurb + "\n" + f.UnresolvedEdge + "\n" + f.LastPivot)
}

// Generator derives session metadata from a transcript via an LLM provider.
type Generator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewGenerator(provider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger,
	}
}

const metadataPromptTemplate = `You are summarizing a long-running inquiry conversation so its owner can re-enter it later.

Read the transcript and respond with ONLY a JSON object, no prose, in this exact shape:
{
  "orientation_blurb": "2-3 sentences orienting the reader: what this inquiry is about and where it stands",
  "unresolved_edge": "the most important open question or tension the conversation has not resolved",
  "last_pivot": "the most recent significant change of direction in the conversation"
}

Transcript:
%s`

// Generate produces the session summary fields from a transcript.
func (g *Generator) Generate(ctx context.Context, transcript string) (*Fields, error) {
	prompt := fmt.Sprintf(metadataPromptTemplate, transcript)

	raw, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("metadata generation failed: %w", err)
	}

	fields, err := ParseFields(raw)
	if err != nil {
		g.logger.Printf("[WARN] metadata response not parseable, raw: %.200s", raw)
		return nil, err
	}
	return fields, nil
}

const titlePromptTemplate = `Produce a short title (at most 8 words, no quotes, no trailing punctuation) for an inquiry conversation that starts like this:

%s`

// GenerateTitle derives a short session title from the opening exchange.
func (g *Generator) GenerateTitle(ctx context.Context, opening string) (string, error) {
	raw, err := g.provider.Generate(ctx, fmt.Sprintf(titlePromptTemplate, opening), llm.WithTemperature(0.5))
	if err != nil {
		return "", fmt.Errorf("title generation failed: %w", err)
	}
	title := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"`))
	if title == "" {
		return "", fmt.Errorf("title generation returned empty text")
	}
	return title, nil
}

// ParseFields extracts the JSON summary object from a model response.
// Models wrap JSON in markdown fences or prose often enough that we scan for
// the outermost braces instead of unmarshalling the raw reply.
func ParseFields(raw string) (*Fields, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in metadata response")
	}

	var fields Fields
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return nil, fmt.Errorf("unmarshal metadata response: %w", err)
	}
	if fields.OrientationBlurb == "" {
		return nil, fmt.Errorf("metadata response missing orientation_blurb")
	}
	return &fields, nil
}
