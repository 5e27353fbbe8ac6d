package dto

// CitationDTO is one grounding reference attached to a chat reply.
type CitationDTO struct {
	DocumentNumber  string `json:"document_number"`
	Title           string `json:"title"`
	PublicationDate string `json:"publication_date,omitempty"`
	Agency          string `json:"agency,omitempty"`
	Excerpt         string `json:"excerpt,omitempty"`
}

// StructuredReply is the outbound websocket payload. Exactly one reply is
// emitted per inbound message, even when retrieval or generation failed.
type StructuredReply struct {
	Response       string        `json:"response"`
	Success        bool          `json:"success"`
	DocumentsFound int           `json:"documents_found"`
	Citations      []CitationDTO `json:"citations,omitempty"`
}
