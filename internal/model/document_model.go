package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RegulationDocument struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentNumber  string         `gorm:"type:varchar(255);not null;uniqueIndex"` // External registry identifier, upsert key
	Title           string         `gorm:"type:text;not null"`
	DocumentType    string         `gorm:"type:varchar(100)"`
	PublicationDate *time.Time     `gorm:"index"`
	Agency          string         `gorm:"type:text"`
	Abstract        string         `gorm:"type:text"`
	FullText        string         `gorm:"type:text"`
	Agencies        datatypes.JSON `gorm:"type:jsonb"`
	RawMetadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (RegulationDocument) TableName() string {
	return "regulation_documents"
}
