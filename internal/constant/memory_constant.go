package constant

// Embedding source types. One embedding exists per (sourceType, sourceId).
const (
	SourceTypeSessionSummary = "session_summary"
	SourceTypeDocumentChunk  = "document_chunk"
)

// Transcript message roles.
const (
	MessageRoleUser  = "user"
	MessageRoleModel = "model"
)
