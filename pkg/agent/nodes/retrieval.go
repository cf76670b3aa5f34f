package nodes

import (
	"context"

	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/embedding"
	"ai-recruiter-be/pkg/rerank"
	"ai-recruiter-be/pkg/vectorstore"
)

const errNoCollection = "no collection configured for this user"

// ResumeRetrieval searches the user's resume chunks with the latest human
// message and optionally reorders the hits with a cross-encoder.
type ResumeRetrieval struct {
	Embedder   embedding.EmbeddingProvider
	Searcher   vectorstore.Searcher
	Reranker   *rerank.Reranker
	Collection string
	TopK       int
	Logger     agent.Logger
}

func (n *ResumeRetrieval) Handle(ctx context.Context, s agent.State) (agent.Update, error) {
	if n.Collection == "" {
		return agent.Update{}, apperror.NotFound(errNoCollection)
	}
	query := s.LastHumanMessage()

	emb, err := n.Embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return agent.Update{}, apperror.Upstream("failed to embed query", err)
	}

	points, err := n.Searcher.Search(ctx, vectorstore.Query{
		Collection: n.Collection,
		Dense:      emb.Embedding.Values,
		Limit:      n.TopK,
	})
	if err != nil {
		return agent.Update{}, searchError("resume search failed", err)
	}

	ranked, err := n.Reranker.Rerank(ctx, query, points)
	if err != nil {
		return agent.Update{}, apperror.Upstream("resume rerank failed", err)
	}

	n.Logger.Debug(moduleName, "Resumes retrieved", map[string]interface{}{
		"collection": n.Collection,
		"count":      len(ranked),
	})
	return agent.Update{ResumeRetrievedPoints: nonNilPoints(ranked)}, nil
}

// CandidateRetrieval runs the hybrid candidate-profile query: a dense
// prefetch re-scored in the lexical space.
type CandidateRetrieval struct {
	Embedder   embedding.EmbeddingProvider
	Lexical    *embedding.LexicalEncoder
	Searcher   vectorstore.Searcher
	Collection string
	TopK       int
	Prefetch   int
	Logger     agent.Logger
}

func (n *CandidateRetrieval) Handle(ctx context.Context, s agent.State) (agent.Update, error) {
	if n.Collection == "" {
		return agent.Update{}, apperror.NotFound(errNoCollection)
	}
	query := s.LastHumanMessage()

	emb, err := n.Embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return agent.Update{}, apperror.Upstream("failed to embed query", err)
	}

	q := vectorstore.Query{
		Collection: n.Collection,
		Dense:      emb.Embedding.Values,
		Prefetch:   n.Prefetch,
		Limit:      n.TopK,
	}
	if n.Lexical != nil {
		q.Sparse = n.Lexical.Encode(query)
	}

	points, err := n.Searcher.Search(ctx, q)
	if err != nil {
		return agent.Update{}, searchError("candidate search failed", err)
	}

	n.Logger.Debug(moduleName, "Candidates retrieved", map[string]interface{}{
		"collection": n.Collection,
		"count":      len(points),
	})
	return agent.Update{CandidateRetrievedPoints: nonNilPoints(points)}, nil
}

// searchError keeps domain errors from the store and wraps transport failures.
func searchError(message string, err error) error {
	if apperror.KindOf(err) != "" {
		return err
	}
	return apperror.Upstream(message, err)
}

func nonNilPoints(p []vectorstore.Point) []vectorstore.Point {
	if p == nil {
		return []vectorstore.Point{}
	}
	return p
}
