package response

import (
	"testing"
	"time"

	"github.com/raneshrk02/regulations-chat/internal/entity"
	"github.com/raneshrk02/regulations-chat/pkg/agent/retrieval"
)

func candidate(number string, daysAgo int) *entity.RegulationDocument {
	date := time.Now().AddDate(0, 0, -daysAgo)
	return &entity.RegulationDocument{
		DocumentNumber:  number,
		Title:           "Title " + number,
		PublicationDate: &date,
		Agency:          "Food and Drug Administration",
		Abstract:        "Abstract for " + number,
	}
}

func TestFormatEmptyCandidatesPreservesNarrative(t *testing.T) {
	narrative := "No documents are currently available in the database."

	reply := Format(narrative, nil)

	if reply.Narrative != narrative {
		t.Errorf("Narrative = %q, want original text preserved verbatim", reply.Narrative)
	}
	if len(reply.Citations) != 0 {
		t.Errorf("Citations = %d, want 0", len(reply.Citations))
	}
	if reply.DocumentsFound != 0 {
		t.Errorf("DocumentsFound = %d, want 0", reply.DocumentsFound)
	}
	if !reply.Success {
		t.Errorf("Success = false, want true for non-empty narrative")
	}
}

func TestFormatEmptyNarrativeSubstitutesApology(t *testing.T) {
	candidates := retrieval.CandidateSet{candidate("2024-00001", 1), candidate("2024-00002", 2)}

	reply := Format("", candidates)

	if reply.Narrative != ApologyNarrative {
		t.Errorf("Narrative = %q, want the fixed apology", reply.Narrative)
	}
	if reply.Success {
		t.Errorf("Success = true, want false on generation failure")
	}
	if len(reply.Citations) != 2 {
		t.Fatalf("Citations = %d, want 2 (still attached on failure)", len(reply.Citations))
	}
}

func TestFormatPreservesCandidateOrder(t *testing.T) {
	candidates := retrieval.CandidateSet{
		candidate("2024-00003", 3),
		candidate("2024-00001", 1),
		candidate("2024-00002", 2),
	}

	reply := Format("Here is a summary.", candidates)

	want := []string{"2024-00003", "2024-00001", "2024-00002"}
	for i, c := range reply.Citations {
		if c.DocumentNumber != want[i] {
			t.Errorf("citation[%d] = %s, want %s (retrieval order preserved)", i, c.DocumentNumber, want[i])
		}
	}
}

func TestFormatCitationFields(t *testing.T) {
	doc := candidate("FR-2024-00123", 5)

	reply := Format("ok", retrieval.CandidateSet{doc})

	c := reply.Citations[0]
	if c.DocumentNumber != "FR-2024-00123" || c.Title == "" || c.PublicationDate == "" ||
		c.Agency == "" || c.Excerpt == "" {
		t.Errorf("citation incomplete: %+v", c)
	}
}
