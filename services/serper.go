package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"argubot/models"
)

const serperURL = "https://google.serper.dev/search"

// SerperFactFinder implements FactFinder against the Serper search API.
type SerperFactFinder struct {
	APIKey   string
	URL      string
	MaxFacts int
	client   *http.Client
}

// NewSerperFactFinder creates a fact finder limited to maxFacts results per
// query. The API key may be empty, in which case every search returns no facts.
func NewSerperFactFinder(apiKey string, maxFacts int) *SerperFactFinder {
	return &SerperFactFinder{
		APIKey:   apiKey,
		URL:      serperURL,
		MaxFacts: maxFacts,
		client:   &http.Client{},
	}
}

type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search queries Serper and returns up to MaxFacts organic results. A missing
// API key is not an error; the service just argues without citations.
func (s *SerperFactFinder) Search(ctx context.Context, query string) ([]models.Fact, error) {
	if s.APIKey == "" {
		return nil, nil
	}

	payload, err := json.Marshal(serperRequest{Query: query, Num: s.MaxFacts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API error: %s", string(body))
	}

	var data serperResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	facts := make([]models.Fact, 0, s.MaxFacts)
	for _, result := range data.Organic {
		if len(facts) >= s.MaxFacts {
			break
		}
		facts = append(facts, models.Fact{
			Title:   result.Title,
			Link:    result.Link,
			Snippet: result.Snippet,
		})
	}
	return facts, nil
}
