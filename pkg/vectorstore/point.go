// Package vectorstore holds the search capability consumed by the retrieval nodes.
package vectorstore

import (
	"context"
	"fmt"
)

// Payload keys written by the indexer and read back by citation resolution.
const (
	PayloadText                    = "text"
	PayloadFileID                  = "file_id"
	PayloadKnowledgeBaseDocumentID = "knowledge_base_document_id"
	PayloadCandidateID             = "candidate_id"
	PayloadChunkIndex              = "chunk_index"
)

// Point is a ranked search hit. It is not modified after retrieval.
type Point struct {
	ID      string                 `json:"id"`
	Score   float64                `json:"score"`
	Payload map[string]interface{} `json:"payload"`
}

// String returns a payload value as a string, or "" when it is missing.
func (p Point) String(key string) string {
	v, ok := p.Payload[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (p Point) Text() string {
	return p.String(PayloadText)
}

// Query is one search request. Dense is the first-stage vector; when Sparse is
// set, the top Prefetch dense hits are re-scored in the sparse space and the
// best Limit of them are returned.
type Query struct {
	Collection string
	Dense      []float32
	Sparse     map[int32]float32
	Prefetch   int
	Limit      int
}

type Searcher interface {
	Search(ctx context.Context, q Query) ([]Point, error)
}
