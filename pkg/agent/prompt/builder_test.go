package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/raneshrk02/regulations-chat/internal/entity"
	"github.com/raneshrk02/regulations-chat/pkg/agent/intent"
	"github.com/raneshrk02/regulations-chat/pkg/agent/retrieval"
)

func testDoc(number, abstract string) *entity.RegulationDocument {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return &entity.RegulationDocument{
		DocumentNumber:  number,
		Title:           "Title for " + number,
		PublicationDate: &date,
		Agency:          "Environmental Protection Agency",
		Abstract:        abstract,
	}
}

func TestBuildIncludesAllCandidatesInOrder(t *testing.T) {
	b := NewBuilder(4000, 600)
	candidates := retrieval.CandidateSet{
		testDoc("2024-00003", "third"),
		testDoc("2024-00001", "first"),
		testDoc("2024-00002", "second"),
	}

	req := b.Build("what changed?", intent.Intent{Kind: intent.KindTopicSearch}, candidates)

	lastIdx := -1
	for _, number := range []string{"2024-00003", "2024-00001", "2024-00002"} {
		idx := strings.Index(req.Prompt, "Document Number: "+number)
		if idx < 0 {
			t.Fatalf("prompt missing document %s", number)
		}
		if idx < lastIdx {
			t.Errorf("document %s rendered out of candidate order", number)
		}
		lastIdx = idx
	}

	if !strings.Contains(req.Prompt, "User: what changed?") {
		t.Errorf("prompt missing verbatim user query")
	}
}

func TestBuildTruncatesExcerptsInsteadOfDroppingDocuments(t *testing.T) {
	longAbstract := strings.Repeat("regulatory background material ", 400)
	candidates := retrieval.CandidateSet{
		testDoc("2024-00001", longAbstract),
		testDoc("2024-00002", longAbstract),
	}

	// Tiny token budget forces the truncation pass.
	b := NewBuilder(200, 100)
	req := b.Build("summarize", intent.Intent{Kind: intent.KindTopicSearch}, candidates)

	for _, number := range []string{"2024-00001", "2024-00002"} {
		if !strings.Contains(req.Prompt, "Document Number: "+number) {
			t.Errorf("document %s was dropped, want truncated excerpt instead", number)
		}
	}
	if strings.Contains(req.Prompt, longAbstract) {
		t.Errorf("excerpt was not truncated")
	}
}

func TestBuildEmptyCandidateSet(t *testing.T) {
	b := NewBuilder(4000, 600)

	req := b.Build("anything on maritime law?", intent.Intent{Kind: intent.KindTopicSearch}, nil)

	if !strings.Contains(req.Prompt, "No documents found matching the query.") {
		t.Errorf("prompt for empty candidate set missing no-documents instruction")
	}
}

func TestBuildRecentIntentAddsOrderingInstruction(t *testing.T) {
	b := NewBuilder(4000, 600)

	req := b.Build("latest docs", intent.Intent{Kind: intent.KindRecentDocuments},
		retrieval.CandidateSet{testDoc("2024-00001", "abstract")})

	if !strings.Contains(req.Prompt, "chronological order") {
		t.Errorf("recent-documents prompt missing ordering instruction")
	}
}
