package chunker

import "strings"

// Chunk is one window of a larger document, in source order.
type Chunk struct {
	Text  string
	Index int
}

// Chunker splits documents into overlapping word windows. Documents shorter
// than the small-document threshold are kept whole so their single embedding
// covers the full text.
type Chunker struct {
	windowWords   int
	overlapWords  int
	smallDocWords int
}

func New(windowWords, overlapWords, smallDocWords int) *Chunker {
	if windowWords <= 0 {
		windowWords = 500
	}
	if overlapWords < 0 || overlapWords >= windowWords {
		overlapWords = 75
	}
	if smallDocWords <= 0 {
		smallDocWords = 600
	}
	return &Chunker{
		windowWords:   windowWords,
		overlapWords:  overlapWords,
		smallDocWords: smallDocWords,
	}
}

// Chunk splits text into windows of windowWords words, each shifted by
// (windowWords - overlapWords) from the previous one. The final window may be
// shorter. Returns nil for blank input.
func (c *Chunker) Chunk(text string) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	if len(words) < c.smallDocWords {
		return []Chunk{{Text: strings.TrimSpace(text), Index: 0}}
	}

	step := c.windowWords - c.overlapWords
	var chunks []Chunk
	for start := 0; ; start += step {
		end := start + c.windowWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, Chunk{
			Text:  strings.Join(words[start:end], " "),
			Index: len(chunks),
		})
		if end >= len(words) {
			break
		}
	}
	return chunks
}
