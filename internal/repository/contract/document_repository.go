package contract

import (
	"context"

	"github.com/raneshrk02/regulations-chat/internal/entity"
	"github.com/raneshrk02/regulations-chat/internal/repository/specification"
)

type DocumentRepository interface {
	// Upsert inserts the document or, when the document number already
	// exists, updates the stored row in place.
	Upsert(ctx context.Context, doc *entity.RegulationDocument) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RegulationDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RegulationDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
