package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches documents from the regulations.gov v4 API. It belongs to the
// ingestion side only; the chat pipeline never calls the registry.
type Client struct {
	BaseURL  string
	APIKey   string
	PageSize int
	MaxPages int
	http     *http.Client
}

func NewClient(baseURL, apiKey string, pageSize, maxPages int) *Client {
	return &Client{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		PageSize: pageSize,
		MaxPages: maxPages,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Document is one registry entry in the v4 JSON:API shape.
type Document struct {
	ID         string     `json:"id"`
	Attributes Attributes `json:"attributes"`
}

type Attributes struct {
	Title          string   `json:"title"`
	DocumentNumber string   `json:"documentNumber"`
	DocumentType   string   `json:"documentType"`
	PostedDate     string   `json:"postedDate"`
	Abstract       string   `json:"abstract"`
	FileText       string   `json:"fileText"`
	AgencyID       string   `json:"agencyId"`
	Agencies       []Agency `json:"agencies"`
}

type Agency struct {
	Name string `json:"name"`
}

type documentsPage struct {
	Data []Document `json:"data"`
}

// FetchDocuments pages through /v4/documents for the posted-date window,
// newest first, stopping at an empty page or the configured page cap.
func (c *Client) FetchDocuments(ctx context.Context, startDate, endDate string) ([]Document, error) {
	var documents []Document

	for page := 1; page <= c.MaxPages; page++ {
		pageDocs, err := c.fetchPage(ctx, startDate, endDate, page)
		if err != nil {
			return nil, err
		}
		if len(pageDocs) == 0 {
			break
		}
		documents = append(documents, pageDocs...)
	}

	return documents, nil
}

func (c *Client) fetchPage(ctx context.Context, startDate, endDate string, page int) ([]Document, error) {
	params := url.Values{}
	params.Set("filter[postedDate][ge]", startDate)
	params.Set("filter[postedDate][le]", endDate)
	params.Set("sort", "-postedDate")
	params.Set("page[size]", strconv.Itoa(c.PageSize))
	params.Set("page[number]", strconv.Itoa(page))
	params.Set("api_key", c.APIKey)

	endpoint := fmt.Sprintf("%s/v4/documents?%s", c.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var pageData documentsPage
	if err := json.Unmarshal(body, &pageData); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return pageData.Data, nil
}
