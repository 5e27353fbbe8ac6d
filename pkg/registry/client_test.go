package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchDocumentsPaginates(t *testing.T) {
	pagesServed := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/documents" {
			t.Errorf("path = %s, want /v4/documents", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") == "" {
			t.Errorf("missing api_key parameter")
		}

		page := r.URL.Query().Get("page[number]")
		pagesServed++

		var docs []Document
		if page == "1" {
			docs = []Document{
				{ID: "FR-2024-00001", Attributes: Attributes{DocumentNumber: "2024-00001", Title: "First"}},
				{ID: "FR-2024-00002", Attributes: Attributes{DocumentNumber: "2024-00002", Title: "Second"}},
			}
		}
		// page 2 is empty, pagination should stop

		json.NewEncoder(w).Encode(documentsPage{Data: docs})
	}))
	defer server.Close()

	c := NewClient(server.URL, "DEMO_KEY", 250, 20)
	docs, err := c.FetchDocuments(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("FetchDocuments() error = %v", err)
	}

	if len(docs) != 2 {
		t.Errorf("documents = %d, want 2", len(docs))
	}
	if pagesServed != 2 {
		t.Errorf("pages fetched = %d, want 2 (stop on empty page)", pagesServed)
	}
}

func TestFetchDocumentsRespectsPageCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always return a non-empty page so only the cap stops the loop.
		json.NewEncoder(w).Encode(documentsPage{Data: []Document{{ID: "x"}}})
	}))
	defer server.Close()

	c := NewClient(server.URL, "DEMO_KEY", 1, 3)
	docs, err := c.FetchDocuments(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("FetchDocuments() error = %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("documents = %d, want 3 (page cap)", len(docs))
	}
}

func TestFetchDocumentsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(server.URL, "DEMO_KEY", 250, 20)
	_, err := c.FetchDocuments(context.Background(), "2024-01-01", "2024-01-31")
	if err == nil {
		t.Fatal("FetchDocuments() error = nil, want error on non-200")
	}
}
