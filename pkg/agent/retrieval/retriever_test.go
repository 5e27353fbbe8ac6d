package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raneshrk02/regulations-chat/internal/entity"
	"github.com/raneshrk02/regulations-chat/internal/repository/specification"
	"github.com/raneshrk02/regulations-chat/pkg/agent/intent"
)

type stubRepository struct {
	docs []*entity.RegulationDocument
	err  error
}

func (s *stubRepository) Upsert(ctx context.Context, doc *entity.RegulationDocument) error {
	return errors.New("read-only stub")
}

func (s *stubRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RegulationDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.docs) == 0 {
		return nil, nil
	}
	return s.docs[0], nil
}

func (s *stubRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RegulationDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func (s *stubRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.docs)), nil
}

func docOn(number string, daysAgo int) *entity.RegulationDocument {
	date := time.Now().AddDate(0, 0, -daysAgo)
	return &entity.RegulationDocument{
		DocumentNumber:  number,
		Title:           "Document " + number,
		PublicationDate: &date,
	}
}

func TestRetrieveRecentBoundedByCap(t *testing.T) {
	repo := &stubRepository{docs: []*entity.RegulationDocument{
		docOn("2024-00001", 0),
		docOn("2024-00002", 1),
		docOn("2024-00003", 2),
	}}
	r := NewRetriever(repo, 3)

	got, err := r.Retrieve(context.Background(), intent.Intent{Kind: intent.KindRecentDocuments})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) > 3 {
		t.Errorf("candidate set size = %d, want <= 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].PublicationDate.Before(*got[i].PublicationDate) {
			t.Errorf("publication dates not non-increasing at index %d", i)
		}
	}
}

func TestRetrieveLookupMissingDocumentIsNotAnError(t *testing.T) {
	r := NewRetriever(&stubRepository{}, 5)

	got, err := r.Retrieve(context.Background(), intent.Intent{
		Kind:           intent.KindDocumentLookup,
		DocumentNumber: "FR-2024-00123",
	})
	if err != nil {
		t.Fatalf("Retrieve() error = %v, want nil", err)
	}
	if len(got) != 0 {
		t.Errorf("candidate set size = %d, want 0", len(got))
	}
}

func TestRetrieveStoreFailure(t *testing.T) {
	r := NewRetriever(&stubRepository{err: errors.New("connection refused")}, 5)

	_, err := r.Retrieve(context.Background(), intent.Intent{Kind: intent.KindRecentDocuments})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}

func TestRetrieveUnclassifiedFallsBackToRecent(t *testing.T) {
	repo := &stubRepository{docs: []*entity.RegulationDocument{docOn("2024-00001", 0)}}
	r := NewRetriever(repo, 5)

	got, err := r.Retrieve(context.Background(), intent.Intent{Kind: intent.KindUnclassified})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("candidate set size = %d, want 1 (recent fallback)", len(got))
	}
}

func TestRetrieveTopicSearchCapsResult(t *testing.T) {
	var docs []*entity.RegulationDocument
	for i := 0; i < 12; i++ {
		d := docOn("2024-0010"+string(rune('0'+i%10)), i)
		d.Abstract = "water quality standards"
		docs = append(docs, d)
	}
	r := NewRetriever(&stubRepository{docs: docs}, 4)

	got, err := r.Retrieve(context.Background(), intent.Intent{
		Kind:     intent.KindTopicSearch,
		Keywords: []string{"water", "quality"},
	})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("candidate set size = %d, want 4 (cap)", len(got))
	}
}

func TestRankByKeywordMatches(t *testing.T) {
	older := docOn("2024-00001", 10)
	older.Title = "Water quality and lead standards"
	newer := docOn("2024-00002", 1)
	newer.Abstract = "water infrastructure only"
	unrelated := docOn("2024-00003", 0)
	unrelated.Title = "Aviation safety"

	ranked := rankByKeywordMatches(
		[]*entity.RegulationDocument{unrelated, newer, older},
		[]string{"water", "quality"},
	)

	if ranked[0].DocumentNumber != "2024-00001" {
		t.Errorf("top result = %s, want 2024-00001 (two keyword matches)", ranked[0].DocumentNumber)
	}
	if ranked[1].DocumentNumber != "2024-00002" {
		t.Errorf("second result = %s, want 2024-00002 (one match, newer)", ranked[1].DocumentNumber)
	}
}
