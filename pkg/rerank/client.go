package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client scores (query, document) pairs for relevance.
type Client interface {
	Rerank(ctx context.Context, query string, documents []string) ([]Result, error)
}

// Result holds the relevance score for the document at Index.
type Result struct {
	Index          int
	RelevanceScore float64
}

type jinaClient struct {
	client *http.Client
	model  string
	apiKey string
	apiURL string
}

// NewJinaClient builds a cross-encoder client for the Jina rerank API.
func NewJinaClient(apiKey, model, apiURL string) (Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("jina api key is required for reranking")
	}
	apiURL = strings.TrimRight(apiURL, "/")
	if apiURL == "" {
		apiURL = "https://api.jina.ai/v1"
	}
	return &jinaClient{
		client: &http.Client{Timeout: 30 * time.Second},
		model:  model,
		apiKey: apiKey,
		apiURL: apiURL,
	}, nil
}

type jinaRerankRequest struct {
	Model           string   `json:"model"`
	Query           string   `json:"query"`
	Documents       []string `json:"documents"`
	ReturnDocuments bool     `json:"return_documents"`
}

type jinaRerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

func (c *jinaClient) Rerank(ctx context.Context, query string, documents []string) ([]Result, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(jinaRerankRequest{
		Model:     c.model,
		Query:     query,
		Documents: documents,
	})
	if err != nil {
		return nil, fmt.Errorf("jina rerank: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/rerank", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("jina rerank: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jina rerank: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("jina rerank: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jina rerank: status %d: %s", resp.StatusCode, string(body))
	}

	var decoded jinaRerankResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("jina rerank: decode: %w", err)
	}

	results := make([]Result, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.Index < 0 || r.Index >= len(documents) {
			continue
		}
		results = append(results, Result{Index: r.Index, RelevanceScore: r.RelevanceScore})
	}
	return results, nil
}
