package mapper

import (
	"encoding/json"
	"time"

	"github.com/raneshrk02/regulations-chat/internal/entity"
	"github.com/raneshrk02/regulations-chat/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.RegulationDocument) *entity.RegulationDocument {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var agencies []string
	if len(d.Agencies) > 0 {
		// Malformed payloads from the registry are tolerated, not fatal
		_ = json.Unmarshal(d.Agencies, &agencies)
	}

	var rawMetadata map[string]interface{}
	if len(d.RawMetadata) > 0 {
		_ = json.Unmarshal(d.RawMetadata, &rawMetadata)
	}

	return &entity.RegulationDocument{
		Id:              d.Id,
		DocumentNumber:  d.DocumentNumber,
		Title:           d.Title,
		DocumentType:    d.DocumentType,
		PublicationDate: d.PublicationDate,
		Agency:          d.Agency,
		Abstract:        d.Abstract,
		FullText:        d.FullText,
		Agencies:        agencies,
		RawMetadata:     rawMetadata,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.RegulationDocument) []*entity.RegulationDocument {
	entities := make([]*entity.RegulationDocument, 0, len(docs))
	for _, d := range docs {
		entities = append(entities, m.ToEntity(d))
	}
	return entities
}

func (m *DocumentMapper) ToModel(e *entity.RegulationDocument) *model.RegulationDocument {
	if e == nil {
		return nil
	}

	var agencies datatypes.JSON
	if e.Agencies != nil {
		if b, err := json.Marshal(e.Agencies); err == nil {
			agencies = b
		}
	}

	var rawMetadata datatypes.JSON
	if e.RawMetadata != nil {
		if b, err := json.Marshal(e.RawMetadata); err == nil {
			rawMetadata = b
		}
	}

	return &model.RegulationDocument{
		Id:              e.Id,
		DocumentNumber:  e.DocumentNumber,
		Title:           e.Title,
		DocumentType:    e.DocumentType,
		PublicationDate: e.PublicationDate,
		Agency:          e.Agency,
		Abstract:        e.Abstract,
		FullText:        e.FullText,
		Agencies:        agencies,
		RawMetadata:     rawMetadata,
		CreatedAt:       e.CreatedAt,
	}
}
