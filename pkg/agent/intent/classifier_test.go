package intent

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantKind     Kind
		wantNumber   string
		wantKeywords []string
	}{
		{
			name:     "recent documents question",
			text:     "What are the most recent documents in the database?",
			wantKind: KindRecentDocuments,
		},
		{
			name:     "latest trigger",
			text:     "show me the LATEST rules",
			wantKind: KindRecentDocuments,
		},
		{
			name:       "prefixed document number",
			text:       "Tell me more about document FR-2024-00123",
			wantKind:   KindDocumentLookup,
			wantNumber: "FR-2024-00123",
		},
		{
			name:       "agency prefixed document number",
			text:       "what is CMS-2024-0123 about",
			wantKind:   KindDocumentLookup,
			wantNumber: "CMS-2024-0123",
		},
		{
			name:       "bare federal register number",
			text:       "summarize 2024-12345 for me",
			wantKind:   KindDocumentLookup,
			wantNumber: "2024-12345",
		},
		{
			name:         "topic search",
			text:         "Are there regulations about telehealth coverage?",
			wantKind:     KindTopicSearch,
			wantKeywords: []string{"telehealth", "coverage"},
		},
		{
			name:     "document number beats recency trigger",
			text:     "what is the latest on FR-2024-00123",
			wantKind: KindDocumentLookup, wantNumber: "FR-2024-00123",
		},
		{
			name:     "only stopwords",
			text:     "can you tell me about the documents?",
			wantKind: KindUnclassified,
		},
		{
			name:     "empty input",
			text:     "",
			wantKind: KindUnclassified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)

			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.DocumentNumber != tt.wantNumber {
				t.Errorf("DocumentNumber = %q, want %q", got.DocumentNumber, tt.wantNumber)
			}
			if tt.wantKeywords != nil && !reflect.DeepEqual(got.Keywords, tt.wantKeywords) {
				t.Errorf("Keywords = %v, want %v", got.Keywords, tt.wantKeywords)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	inputs := []string{
		"What are the most recent documents in the database?",
		"Tell me more about document FR-2024-00123",
		"rules about drinking water standards",
		"",
	}

	for _, input := range inputs {
		first := Classify(input)
		second := Classify(input)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Classify(%q) not deterministic: %+v vs %+v", input, first, second)
		}
	}
}
