package jina

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-recruiter-be/pkg/embedding"
)

const (
	defaultURL   = "https://api.jina.ai/v1/embeddings"
	defaultModel = "jina-embeddings-v3"
)

// tasks maps the provider-neutral task types onto jina's retrieval adapters.
var tasks = map[string]string{
	embedding.TaskRetrievalQuery:    "retrieval.query",
	embedding.TaskRetrievalDocument: "retrieval.passage",
}

type JinaProvider struct {
	apiKey     string
	baseURL    string
	model      string
	dimensions int
	client     *http.Client
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Task       string   `json:"task,omitempty"`
	Dimensions int      `json:"dimensions,omitempty"`
	Input      []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Detail string `json:"detail,omitempty"`
}

// NewJinaProvider truncates embeddings to dimensions, which must match the
// vector columns. Zero keeps the model's native size.
func NewJinaProvider(apiKey string, dimensions int) *JinaProvider {
	return &JinaProvider{
		apiKey:     apiKey,
		baseURL:    defaultURL,
		model:      defaultModel,
		dimensions: dimensions,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *JinaProvider) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	body, err := json.Marshal(embeddingRequest{
		Model:      p.model,
		Task:       tasks[taskType],
		Dimensions: p.dimensions,
		Input:      []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jina request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read jina response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jina api error (status %d): %s", resp.StatusCode, string(raw))
	}

	var out embeddingResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("empty embeddings from jina api")
	}
	if p.dimensions > 0 && len(out.Data[0].Embedding) != p.dimensions {
		return nil, fmt.Errorf("jina returned %d dimensions, want %d", len(out.Data[0].Embedding), p.dimensions)
	}

	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: out.Data[0].Embedding},
	}, nil
}
