package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/raneshrk02/regulations-chat/internal/entity"
	"github.com/raneshrk02/regulations-chat/internal/repository/contract"
	"github.com/raneshrk02/regulations-chat/internal/repository/specification"
	"github.com/raneshrk02/regulations-chat/pkg/agent/intent"
)

// ErrStoreUnavailable reports that the document store could not be reached.
// An empty result set is never an error.
var ErrStoreUnavailable = errors.New("document store unavailable")

// CandidateSet is an ordered, cap-bounded view over stored documents.
// Ordering reflects retrieval ranking and is preserved into the citation list.
type CandidateSet []*entity.RegulationDocument

// candidateFetchFactor widens the keyword fetch so post-fetch ranking has
// more than cap rows to choose from.
const candidateFetchFactor = 5

type Retriever struct {
	repo contract.DocumentRepository
	cap  int
}

func NewRetriever(repo contract.DocumentRepository, retrievalCap int) *Retriever {
	return &Retriever{
		repo: repo,
		cap:  retrievalCap,
	}
}

// Retrieve maps one intent to its store query and returns a ranked candidate
// set of at most the configured cap. Unclassified queries fall back to the
// recent-documents strategy so generation always has grounding material.
func (r *Retriever) Retrieve(ctx context.Context, it intent.Intent) (CandidateSet, error) {
	switch it.Kind {
	case intent.KindDocumentLookup:
		return r.lookupByNumber(ctx, it.DocumentNumber)
	case intent.KindTopicSearch:
		return r.searchByKeywords(ctx, it.Keywords)
	case intent.KindRecentDocuments, intent.KindUnclassified:
		return r.findRecent(ctx)
	default:
		return r.findRecent(ctx)
	}
}

func (r *Retriever) findRecent(ctx context.Context) (CandidateSet, error) {
	docs, err := r.repo.FindAll(ctx,
		specification.MostRecentFirst{},
		specification.Limit{Count: r.cap},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return docs, nil
}

func (r *Retriever) lookupByNumber(ctx context.Context, number string) (CandidateSet, error) {
	doc, err := r.repo.FindOne(ctx, specification.ByDocumentNumber{DocumentNumber: number})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if doc == nil {
		return CandidateSet{}, nil
	}
	return CandidateSet{doc}, nil
}

func (r *Retriever) searchByKeywords(ctx context.Context, keywords []string) (CandidateSet, error) {
	docs, err := r.repo.FindAll(ctx,
		specification.MatchAnyKeyword{Keywords: keywords},
		specification.MostRecentFirst{},
		specification.Limit{Count: r.cap * candidateFetchFactor},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ranked := rankByKeywordMatches(docs, keywords)
	if len(ranked) > r.cap {
		ranked = ranked[:r.cap]
	}
	return ranked, nil
}

// rankByKeywordMatches orders rows by how many distinct keywords hit the
// title or abstract, recency breaking ties.
func rankByKeywordMatches(docs []*entity.RegulationDocument, keywords []string) CandidateSet {
	type scored struct {
		doc   *entity.RegulationDocument
		score int
	}

	scoredDocs := make([]scored, 0, len(docs))
	for _, doc := range docs {
		haystack := strings.ToLower(doc.Title + " " + doc.Abstract)
		score := 0
		for _, kw := range keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				score++
			}
		}
		scoredDocs = append(scoredDocs, scored{doc: doc, score: score})
	}

	sort.SliceStable(scoredDocs, func(i, j int) bool {
		if scoredDocs[i].score != scoredDocs[j].score {
			return scoredDocs[i].score > scoredDocs[j].score
		}
		return laterDate(scoredDocs[i].doc, scoredDocs[j].doc)
	})

	ranked := make(CandidateSet, 0, len(scoredDocs))
	for _, s := range scoredDocs {
		ranked = append(ranked, s.doc)
	}
	return ranked
}

func laterDate(a, b *entity.RegulationDocument) bool {
	if a.PublicationDate == nil {
		return false
	}
	if b.PublicationDate == nil {
		return true
	}
	return a.PublicationDate.After(*b.PublicationDate)
}
