package dto

import "time"

// DocumentsIngestedMessage is published after each successful ingestion batch.
type DocumentsIngestedMessage struct {
	Count           int       `json:"count"`
	WindowStart     string    `json:"window_start"`
	WindowEnd       string    `json:"window_end"`
	NewestDocuments []string  `json:"newest_documents,omitempty"` // document numbers
	IngestedAt      time.Time `json:"ingested_at"`
}
