package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	Id              uuid.UUID  `json:"id"`
	DocumentNumber  string     `json:"document_number"`
	Title           string     `json:"title"`
	DocumentType    string     `json:"document_type,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Agency          string     `json:"agency,omitempty"`
	Abstract        string     `json:"abstract,omitempty"`
	Agencies        []string   `json:"agencies,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type RecentDocumentsQuery struct {
	Limit int `query:"limit" validate:"omitempty,gte=1,lte=50"`
}

type RecentDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}
