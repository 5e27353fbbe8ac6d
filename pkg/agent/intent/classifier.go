package intent

import (
	"regexp"
	"strings"
)

// Kind is the closed classification of a user query. Exactly one retrieval
// strategy exists per kind.
type Kind string

const (
	KindRecentDocuments Kind = "RECENT_DOCUMENTS"
	KindTopicSearch     Kind = "TOPIC_SEARCH"
	KindDocumentLookup  Kind = "DOCUMENT_LOOKUP"
	KindUnclassified    Kind = "UNCLASSIFIED"
)

// Intent carries the resolved kind plus the parameters extracted for it.
type Intent struct {
	Kind           Kind
	Keywords       []string // TopicSearch only
	DocumentNumber string   // DocumentLookup only
}

// documentNumberPattern matches registry-style identifiers such as
// "FR-2024-00123", "CMS-2024-0123" and bare Federal Register numbers
// like "2024-12345".
var documentNumberPattern = regexp.MustCompile(`\b([A-Za-z]{1,10}-\d{4}-\d{2,6}|\d{4}-\d{3,6})\b`)

var recencyTriggers = map[string]bool{
	"recent": true,
	"latest": true,
	"newest": true,
	"new":    true,
}

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "do": true, "does": true, "did": true,
	"what": true, "which": true, "who": true, "when": true, "where": true,
	"why": true, "how": true, "can": true, "could": true, "would": true,
	"should": true, "tell": true, "me": true, "my": true, "about": true,
	"show": true, "find": true, "give": true, "list": true, "get": true,
	"any": true, "all": true, "of": true, "in": true, "on": true, "for": true,
	"to": true, "from": true, "with": true, "and": true, "or": true, "not": true,
	"there": true, "please": true, "you": true, "i": true, "we": true,
	"document": true, "documents": true, "database": true, "regulation": true,
	"regulations": true,
}

const maxKeywords = 8

// Classify maps a raw user utterance to an Intent. It is a pure function of
// the input text and always returns a value.
//
// Priority: an explicit document number beats everything, recency triggers
// beat topic keywords, and anything without usable keywords is Unclassified.
func Classify(text string) Intent {
	if match := documentNumberPattern.FindString(text); match != "" {
		return Intent{Kind: KindDocumentLookup, DocumentNumber: match}
	}

	normalized := strings.ToLower(strings.TrimSpace(text))
	tokens := tokenize(normalized)

	for _, tok := range tokens {
		if recencyTriggers[tok] {
			return Intent{Kind: KindRecentDocuments}
		}
	}

	keywords := make([]string, 0, maxKeywords)
	for _, tok := range tokens {
		if len(tok) < 3 || stopwords[tok] {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}

	if len(keywords) == 0 {
		return Intent{Kind: KindUnclassified}
	}
	return Intent{Kind: KindTopicSearch, Keywords: keywords}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		isLetter := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		return !isLetter && !isDigit && r != '-'
	})
}
