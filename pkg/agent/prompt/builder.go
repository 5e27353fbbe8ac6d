package prompt

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/raneshrk02/regulations-chat/pkg/agent/intent"
	"github.com/raneshrk02/regulations-chat/pkg/agent/retrieval"
	"github.com/raneshrk02/regulations-chat/pkg/utils"
)

// GenerationRequest is a composed prompt plus the intent and candidate set it
// was grounded on. It is consumed once by the generation client.
type GenerationRequest struct {
	Prompt     string
	Intent     intent.Intent
	Candidates retrieval.CandidateSet
}

const systemPreamble = `You are an expert assistant specializing in Federal Regulations and government documents.

CORE PRINCIPLES:
1. ONLY use information from the documents provided in the context
2. Always cite specific documents using [Document Number] format
3. Never make up or assume information not present in the provided documents
4. If no documents are provided below, clearly state that no matching documents were found in the database and stop
5. Include publication dates in YYYY-MM-DD format and list documents newest first
6. Use only official agency names and plain English characters`

const recentInstruction = "Instructions: List the documents in chronological order, starting with the most recent, and include each publication date."

// Builder serializes a query and its candidates into a bounded generation
// request. It never fails; over-budget prompts get truncated excerpts rather
// than dropped documents.
type Builder struct {
	tokenBudget       int
	excerptCharBudget int
	encoding          *tiktoken.Tiktoken
}

func NewBuilder(tokenBudget, excerptCharBudget int) *Builder {
	// A load failure only disables exact counting; countTokens falls back to
	// an estimate.
	encoding, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
	if err != nil {
		encoding = nil
	}
	return &Builder{
		tokenBudget:       tokenBudget,
		excerptCharBudget: excerptCharBudget,
		encoding:          encoding,
	}
}

func (b *Builder) Build(query string, it intent.Intent, candidates retrieval.CandidateSet) GenerationRequest {
	prompt := b.render(query, it, candidates, 0)
	if b.countTokens(prompt) > b.tokenBudget {
		prompt = b.render(query, it, candidates, b.excerptCharBudget)
	}
	return GenerationRequest{
		Prompt:     prompt,
		Intent:     it,
		Candidates: candidates,
	}
}

// render serializes the fixed template. excerptLimit == 0 means full excerpts.
func (b *Builder) render(query string, it intent.Intent, candidates retrieval.CandidateSet, excerptLimit int) string {
	var sb strings.Builder

	sb.WriteString(systemPreamble)
	sb.WriteString("\n\nContext:")

	if len(candidates) == 0 {
		sb.WriteString("\nNo documents found matching the query.\n")
	} else {
		sb.WriteString("\nAvailable documents:\n")
		for _, doc := range candidates {
			excerpt := doc.Abstract
			if strings.TrimSpace(excerpt) == "" {
				excerpt = doc.FullText
			}
			excerpt = utils.CleanText(excerpt)
			if excerptLimit > 0 {
				excerpt = utils.TruncateChars(excerpt, excerptLimit)
			}

			sb.WriteString(fmt.Sprintf("\nDocument Number: %s\n", doc.DocumentNumber))
			sb.WriteString(fmt.Sprintf("Title: %s\n", utils.CleanText(doc.Title)))
			if doc.DocumentType != "" {
				sb.WriteString(fmt.Sprintf("Type: %s\n", doc.DocumentType))
			}
			if doc.PublicationDate != nil {
				sb.WriteString(fmt.Sprintf("Publication Date: %s\n", doc.PublicationDate.Format("2006-01-02")))
			}
			if doc.Agency != "" {
				sb.WriteString(fmt.Sprintf("Agency: %s\n", utils.CleanText(doc.Agency)))
			}
			sb.WriteString(fmt.Sprintf("Abstract: %s\n", excerpt))
		}
	}

	if it.Kind == intent.KindRecentDocuments || it.Kind == intent.KindUnclassified {
		sb.WriteString("\n" + recentInstruction + "\n")
	}

	sb.WriteString("\nUser: ")
	sb.WriteString(query)
	sb.WriteString("\nAssistant:")

	return sb.String()
}

func (b *Builder) countTokens(text string) int {
	if b.encoding == nil {
		// Rough heuristic when the encoding is unavailable.
		return len(text) / 4
	}
	return len(b.encoding.Encode(text, nil, nil))
}
