package jina

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-recruiter-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, dims int, handler http.HandlerFunc) *JinaProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewJinaProvider("key", dims)
	p.baseURL = srv.URL
	return p
}

func TestGenerate(t *testing.T) {
	p := newTestProvider(t, 2, func(w http.ResponseWriter, r *http.Request) {
		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"golang"}, req.Input)
		assert.Equal(t, "retrieval.query", req.Task)
		assert.Equal(t, 2, req.Dimensions)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[0.1,0.2]}]}`))
	})

	res, err := p.Generate(context.Background(), "golang", embedding.TaskRetrievalQuery)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, res.Embedding.Values)
}

func TestGenerateDocumentTask(t *testing.T) {
	p := newTestProvider(t, 0, func(w http.ResponseWriter, r *http.Request) {
		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "retrieval.passage", req.Task)
		assert.Zero(t, req.Dimensions)
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[0.5]}]}`))
	})

	_, err := p.Generate(context.Background(), "resume", embedding.TaskRetrievalDocument)
	require.NoError(t, err)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"empty data", http.StatusOK, `{"data":[]}`, "empty embeddings"},
		{"dimension mismatch", http.StatusOK, `{"data":[{"index":0,"embedding":[0.1]}]}`, "want 2"},
		{"api error", http.StatusUnauthorized, `{"detail":"bad key"}`, "status 401"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, 2, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := p.Generate(context.Background(), "x", "")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
