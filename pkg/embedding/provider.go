package embedding

// Result is a generated embedding together with the model that produced it.
// Dimension travels with the vector so a corpus re-embedded under a different
// model can never be compared silently against stale vectors.
type Result struct {
	Values    []float32
	Dimension int
	Model     string
}

// EmbeddingProvider defines the interface for generating text embeddings.
// taskType distinguishes retrieval queries from retrieval documents for
// backends that care (Gemini); others ignore it.
type EmbeddingProvider interface {
	Name() string
	Generate(text string, taskType string) (*Result, error)

	// Available is a cheap reachability probe (short-timeout handshake).
	// It must not replace handling a Generate failure.
	Available() bool
}

// Task types understood by backends that distinguish them.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)
