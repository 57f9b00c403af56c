package synthesis

import (
	"fmt"
	"strings"
)

// FallbackAnswer is returned when no session clears the similarity
// threshold. This is a normal outcome, not an error.
const FallbackAnswer = "I could not find any past inquiries relevant to this question. " +
	"Try rephrasing it, lowering the similarity threshold, or naming sessions explicitly."

// BuildPrompt assembles the single synthesis prompt from the selected session
// snapshots. Each session gets an explicit header with its relevance so the
// model can weigh and attribute sources.
func BuildPrompt(query string, snapshots []Snapshot) string {
	var b strings.Builder

	b.WriteString("You are synthesizing an answer from a user's past inquiry conversations.\n\n")
	b.WriteString(fmt.Sprintf("Question: %s\n\n", query))
	b.WriteString(fmt.Sprintf("Material from %d relevant sessions follows.\n\n", len(snapshots)))

	for i, s := range snapshots {
		b.WriteString(fmt.Sprintf("=== Session %d: %q (relevance %.0f%%) ===\n", i+1, s.Title, s.Score*100))
		if s.Orientation != "" {
			b.WriteString(fmt.Sprintf("Orientation: %s\n", s.Orientation))
		}
		if s.Unresolved != "" {
			b.WriteString(fmt.Sprintf("Unresolved: %s\n", s.Unresolved))
		}
		if s.KeyExchanges != "" {
			b.WriteString("Key exchanges:\n")
			b.WriteString(s.KeyExchanges)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(`Instructions:
- Address the question directly.
- Synthesize across sessions rather than summarizing each in isolation.
- Surface contradictions between sessions and how thinking evolved over time.
- Name questions that remain unresolved.
- Attribute every claim to the specific session it came from, by session title.`)

	return b.String()
}
