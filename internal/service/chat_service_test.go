package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raneshrk02/regulations-chat/internal/config"
	"github.com/raneshrk02/regulations-chat/internal/entity"
	"github.com/raneshrk02/regulations-chat/internal/repository/specification"
	"github.com/raneshrk02/regulations-chat/pkg/agent/response"
	"github.com/raneshrk02/regulations-chat/pkg/agent/retrieval"
	"github.com/raneshrk02/regulations-chat/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type stubDocumentRepository struct {
	docs    []*entity.RegulationDocument
	findErr error
}

func (s *stubDocumentRepository) Upsert(ctx context.Context, doc *entity.RegulationDocument) error {
	return nil
}

func (s *stubDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RegulationDocument, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if len(s.docs) == 0 {
		return nil, nil
	}
	return s.docs[0], nil
}

func (s *stubDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RegulationDocument, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.docs, nil
}

func (s *stubDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(s.docs)), nil
}

type stubProvider struct {
	text string
	err  error
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.text, s.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Retrieval.Cap = 10
	cfg.Retrieval.ExcerptCharBudget = 600
	cfg.Retrieval.PromptTokenBudget = 3500
	cfg.Ai.GenerationTimeout = 5 * time.Second
	return cfg
}

func docFixture(number, title string) *entity.RegulationDocument {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return &entity.RegulationDocument{
		DocumentNumber:  number,
		Title:           title,
		DocumentType:    "Rule",
		PublicationDate: &date,
		Agency:          "Environmental Protection Agency",
		Abstract:        "Emission standards for stationary sources.",
	}
}

func TestProcessQuery_SuccessfulGeneration(t *testing.T) {
	repo := &stubDocumentRepository{docs: []*entity.RegulationDocument{
		docFixture("2024-00100", "Air Quality Standards"),
		docFixture("2024-00099", "Water Discharge Permits"),
	}}
	provider := &stubProvider{text: "The EPA published new standards [2024-00100]."}

	svc := NewChatService(repo, provider, testConfig(), nopLogger{})
	reply := svc.ProcessQuery(context.Background(), "What are the latest emission rules?")

	assert.True(t, reply.Success)
	assert.Equal(t, "The EPA published new standards [2024-00100].", reply.Response)
	assert.Equal(t, 2, reply.DocumentsFound)
	assert.Len(t, reply.Citations, 2)
	assert.Equal(t, "2024-00100", reply.Citations[0].DocumentNumber)
}

func TestProcessQuery_GenerationFailureStillCarriesCitations(t *testing.T) {
	repo := &stubDocumentRepository{docs: []*entity.RegulationDocument{
		docFixture("2024-00100", "Air Quality Standards"),
	}}
	provider := &stubProvider{err: llm.ErrGenerationTimeout}

	svc := NewChatService(repo, provider, testConfig(), nopLogger{})
	reply := svc.ProcessQuery(context.Background(), "emission standards")

	assert.False(t, reply.Success)
	assert.Equal(t, response.ApologyNarrative, reply.Response)
	assert.Equal(t, 1, reply.DocumentsFound)
	assert.Len(t, reply.Citations, 1, "citations must survive generation failure")
}

func TestProcessQuery_StoreFailureDegradesToEmptySet(t *testing.T) {
	repo := &stubDocumentRepository{findErr: retrieval.ErrStoreUnavailable}
	provider := &stubProvider{text: "I could not find any matching documents."}

	svc := NewChatService(repo, provider, testConfig(), nopLogger{})
	reply := svc.ProcessQuery(context.Background(), "recent documents")

	assert.True(t, reply.Success)
	assert.Equal(t, 0, reply.DocumentsFound)
	assert.Empty(t, reply.Citations)
}

func TestProcessQuery_EmptyStoreEmptyGeneration(t *testing.T) {
	repo := &stubDocumentRepository{}
	provider := &stubProvider{text: ""}

	svc := NewChatService(repo, provider, testConfig(), nopLogger{})
	reply := svc.ProcessQuery(context.Background(), "anything at all")

	assert.False(t, reply.Success)
	assert.Equal(t, response.ApologyNarrative, reply.Response)
	assert.Equal(t, 0, reply.DocumentsFound)
}
