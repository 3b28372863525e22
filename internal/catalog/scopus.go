// Package catalog augments the local book listing with entries from the
// Scopus bibliographic search API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// DefaultCategory is used when an entry carries no teaser text.
const DefaultCategory = "N/A"

// Entry is a single row of the combined book listing. Local books carry
// their database ID; catalog entries have none.
type Entry struct {
	ID        uint   `json:"id,omitempty"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
}

// PayloadAuditor saves raw upstream payloads for later inspection.
type PayloadAuditor interface {
	SaveRaw(payload []byte) (string, error)
}

// ScopusClient fetches book entries from the Scopus search API.
//
// The client deliberately carries no timeout or retry of its own: the call
// is made with the inbound request's context, so cancellation is inherited
// from the transport layer.
type ScopusClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	query      string
	auditor    PayloadAuditor
}

// NewScopusClient creates a new Scopus API client with a fixed query.
func NewScopusClient(baseURL, apiKey, query string) *ScopusClient {
	return &ScopusClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		query:      query,
	}
}

// SetAuditor enables raw payload dumps of catalog responses.
func (c *ScopusClient) SetAuditor(auditor PayloadAuditor) {
	c.auditor = auditor
}

// FetchBooks returns catalog entries for the fixed query. Any network or
// parse failure is logged and degrades to zero results; callers never see
// an error from this method.
func (c *ScopusClient) FetchBooks(ctx context.Context) []Entry {
	entries, err := c.fetch(ctx)
	if err != nil {
		log.Printf("Error fetching catalog data: %v", err)
		return nil
	}
	return entries
}

func (c *ScopusClient) fetch(ctx context.Context) ([]Entry, error) {
	searchURL := fmt.Sprintf("%s?query=%s", c.baseURL, url.QueryEscape(c.query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-ELS-APIKey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if c.auditor != nil {
		if _, err := c.auditor.SaveRaw(body); err != nil {
			log.Printf("Failed to audit catalog payload: %v", err)
		}
	}

	var result scopusSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	entries := make([]Entry, 0, len(result.SearchResults.Entry))
	for _, doc := range result.SearchResults.Entry {
		entries = append(entries, convertEntry(doc))
	}

	return entries, nil
}

func convertEntry(doc scopusEntry) Entry {
	category := doc.Teaser
	if category == "" {
		category = DefaultCategory
	}
	return Entry{
		Title:     doc.Title,
		Author:    doc.Creator,
		Category:  category,
		Available: true,
	}
}

// Scopus API response types (internal)

type scopusSearchResult struct {
	SearchResults scopusResults `json:"search-results"`
}

type scopusResults struct {
	Entry []scopusEntry `json:"entry"`
}

type scopusEntry struct {
	Title   string `json:"dc:title"`
	Creator string `json:"dc:creator"`
	Teaser  string `json:"prism:teaser"`
}
