package response

import (
	"github.com/raneshrk02/regulations-chat/pkg/agent/retrieval"
	"github.com/raneshrk02/regulations-chat/pkg/utils"
)

// ApologyNarrative replaces the model output when generation failed or came
// back empty. Citations still accompany it so the user keeps the grounding.
const ApologyNarrative = "I'm sorry, I wasn't able to generate an answer this time. " +
	"The documents listed below were retrieved for your question and may still help."

// citationExcerptChars bounds the excerpt carried by each citation.
const citationExcerptChars = 240

// Citation is a structured reference to one grounding document.
type Citation struct {
	DocumentNumber  string
	Title           string
	PublicationDate string // YYYY-MM-DD, empty when unknown
	Agency          string
	Excerpt         string
}

// StructuredReply is the final shaped answer for one pipeline pass.
type StructuredReply struct {
	Narrative      string
	Success        bool
	DocumentsFound int
	Citations      []Citation
}

// Format attaches the full citation list, in candidate order, to the model's
// narrative. Every retrieved document is surfaced even when the narrative
// omits it. An empty narrative yields the fixed apology instead.
func Format(generatedText string, candidates retrieval.CandidateSet) StructuredReply {
	narrative := utils.CleanText(generatedText)
	success := narrative != ""
	if !success {
		narrative = ApologyNarrative
	}

	citations := make([]Citation, 0, len(candidates))
	for _, doc := range candidates {
		var pubDate string
		if doc.PublicationDate != nil {
			pubDate = doc.PublicationDate.Format("2006-01-02")
		}
		citations = append(citations, Citation{
			DocumentNumber:  doc.DocumentNumber,
			Title:           utils.CleanText(doc.Title),
			PublicationDate: pubDate,
			Agency:          utils.CleanText(doc.Agency),
			Excerpt:         utils.Excerpt(doc.Abstract, doc.FullText, citationExcerptChars),
		})
	}

	return StructuredReply{
		Narrative:      narrative,
		Success:        success,
		DocumentsFound: len(candidates),
		Citations:      citations,
	}
}
