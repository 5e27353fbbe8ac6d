package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/raneshrk02/regulations-chat/internal/dto"
	"github.com/raneshrk02/regulations-chat/internal/entity"
	"github.com/raneshrk02/regulations-chat/internal/repository/contract"
	"github.com/raneshrk02/regulations-chat/internal/repository/specification"
)

type IDocumentService interface {
	GetRecent(ctx context.Context, limit int) (*dto.RecentDocumentsResponse, error)
	GetByNumber(ctx context.Context, documentNumber string) (*dto.DocumentResponse, error)
	CountAll(ctx context.Context) (int64, error)
}

type documentService struct {
	repo  contract.DocumentRepository
	cap   int
	cache *gocache.Cache
}

func NewDocumentService(repo contract.DocumentRepository, retrievalCap int) IDocumentService {
	return &documentService{
		repo:  repo,
		cap:   retrievalCap,
		cache: gocache.New(time.Minute, 5*time.Minute),
	}
}

func (ds *documentService) GetRecent(ctx context.Context, limit int) (*dto.RecentDocumentsResponse, error) {
	if limit <= 0 || limit > ds.cap {
		limit = ds.cap
	}

	cacheKey := fmt.Sprintf("recent:%d", limit)
	if cached, found := ds.cache.Get(cacheKey); found {
		return cached.(*dto.RecentDocumentsResponse), nil
	}

	docs, err := ds.repo.FindAll(ctx,
		specification.MostRecentFirst{},
		specification.Limit{Count: limit},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.RecentDocumentsResponse{Documents: make([]dto.DocumentResponse, 0, len(docs))}
	for _, doc := range docs {
		res.Documents = append(res.Documents, toDocumentDTO(doc))
	}

	ds.cache.Set(cacheKey, res, gocache.DefaultExpiration)
	return res, nil
}

func (ds *documentService) GetByNumber(ctx context.Context, documentNumber string) (*dto.DocumentResponse, error) {
	doc, err := ds.repo.FindOne(ctx, specification.ByDocumentNumber{DocumentNumber: documentNumber})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	res := toDocumentDTO(doc)
	return &res, nil
}

func (ds *documentService) CountAll(ctx context.Context) (int64, error) {
	return ds.repo.Count(ctx)
}

func toDocumentDTO(doc *entity.RegulationDocument) dto.DocumentResponse {
	return dto.DocumentResponse{
		Id:              doc.Id,
		DocumentNumber:  doc.DocumentNumber,
		Title:           doc.Title,
		DocumentType:    doc.DocumentType,
		PublicationDate: doc.PublicationDate,
		Agency:          doc.Agency,
		Abstract:        doc.Abstract,
		Agencies:        doc.Agencies,
		CreatedAt:       doc.CreatedAt,
	}
}
