package entity

import (
	"time"

	"github.com/google/uuid"
)

// RegulationDocument is one ingested Federal Register entry. Rows are written
// exclusively by the ingestion service; the chat pipeline only reads them.
type RegulationDocument struct {
	Id              uuid.UUID
	DocumentNumber  string
	Title           string
	DocumentType    string
	PublicationDate *time.Time
	Agency          string
	Abstract        string
	FullText        string
	Agencies        []string
	RawMetadata     map[string]interface{}
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
