package rerank

import (
	"context"
	"fmt"
	"sort"

	"ai-recruiter-be/pkg/vectorstore"
)

// Reranker reorders retrieved points by cross-encoder relevance. A nil client
// keeps the retrieval order.
type Reranker struct {
	client Client
}

func NewReranker(client Client) *Reranker {
	return &Reranker{client: client}
}

// Rerank returns the points sorted by descending relevance to query. Ties and
// documents the client did not score keep their original relative order, with
// unscored documents placed last. Point scores are left untouched.
func (r *Reranker) Rerank(ctx context.Context, query string, points []vectorstore.Point) ([]vectorstore.Point, error) {
	if r == nil || r.client == nil || len(points) < 2 {
		return points, nil
	}

	docs := make([]string, len(points))
	for i, p := range points {
		docs[i] = p.Text()
	}

	results, err := r.client.Rerank(ctx, query, docs)
	if err != nil {
		return nil, fmt.Errorf("rerank: %w", err)
	}

	type ranked struct {
		idx    int
		score  float64
		scored bool
	}
	order := make([]ranked, len(points))
	for i := range points {
		order[i] = ranked{idx: i}
	}
	for _, res := range results {
		if res.Index < 0 || res.Index >= len(order) {
			continue
		}
		order[res.Index].score = res.RelevanceScore
		order[res.Index].scored = true
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].scored != order[j].scored {
			return order[i].scored
		}
		return order[i].score > order[j].score
	})

	out := make([]vectorstore.Point, len(points))
	for i, o := range order {
		out[i] = points[o.idx]
	}
	return out, nil
}
