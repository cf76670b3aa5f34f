package nodes

import (
	"context"
	"errors"
	"testing"

	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/embedding"
	"ai-recruiter-be/pkg/llm"
	"ai-recruiter-be/pkg/rerank"
	"ai-recruiter-be/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reverseClient struct{}

func (reverseClient) Rerank(_ context.Context, _ string, docs []string) ([]rerank.Result, error) {
	out := make([]rerank.Result, len(docs))
	for i := range docs {
		out[i] = rerank.Result{Index: i, RelevanceScore: float64(i)}
	}
	return out, nil
}

func askState(q string) agent.State {
	return agent.State{Messages: []llm.Message{
		{Role: llm.RoleUser, Content: "earlier question"},
		{Role: llm.RoleAssistant, Content: "earlier answer"},
		{Role: llm.RoleUser, Content: q},
	}}
}

func TestResumeRetrieval_MissingCollection(t *testing.T) {
	n := &ResumeRetrieval{Embedder: &fakeEmbedder{}, Searcher: &fakeSearcher{}, Logger: nopLogger{}}

	_, err := n.Handle(context.Background(), askState("go dev"))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.EqualError(t, err, "no collection configured for this user")
}

func TestResumeRetrieval_SearchesAndReranks(t *testing.T) {
	emb := &fakeEmbedder{}
	search := &fakeSearcher{points: []vectorstore.Point{
		{ID: "a", Score: 0.9, Payload: map[string]interface{}{"text": "a"}},
		{ID: "b", Score: 0.8, Payload: map[string]interface{}{"text": "b"}},
		{ID: "c", Score: 0.7, Payload: map[string]interface{}{"text": "c"}},
	}}
	n := &ResumeRetrieval{
		Embedder:   emb,
		Searcher:   search,
		Reranker:   rerank.NewReranker(reverseClient{}),
		Collection: "resumes_u1",
		TopK:       5,
		Logger:     nopLogger{},
	}

	u, err := n.Handle(context.Background(), askState("python backend"))
	require.NoError(t, err)

	assert.Equal(t, []string{"python backend"}, emb.texts)
	require.Len(t, search.queries, 1)
	assert.Equal(t, "resumes_u1", search.queries[0].Collection)
	assert.Equal(t, 5, search.queries[0].Limit)
	assert.Nil(t, search.queries[0].Sparse)

	ids := []string{u.ResumeRetrievedPoints[0].ID, u.ResumeRetrievedPoints[1].ID, u.ResumeRetrievedPoints[2].ID}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
	assert.Equal(t, 0.7, u.ResumeRetrievedPoints[0].Score, "rerank must not rewrite scores")
}

func TestResumeRetrieval_EmptyResultIsNotNil(t *testing.T) {
	n := &ResumeRetrieval{Embedder: &fakeEmbedder{}, Searcher: &fakeSearcher{}, Collection: "c", Logger: nopLogger{}}

	u, err := n.Handle(context.Background(), askState("q"))
	require.NoError(t, err)
	assert.NotNil(t, u.ResumeRetrievedPoints)
	assert.Empty(t, u.ResumeRetrievedPoints)
}

func TestResumeRetrieval_Failures(t *testing.T) {
	n := &ResumeRetrieval{Embedder: &fakeEmbedder{err: errors.New("ollama down")}, Searcher: &fakeSearcher{}, Collection: "c", Logger: nopLogger{}}
	_, err := n.Handle(context.Background(), askState("q"))
	assert.True(t, apperror.Is(err, apperror.KindUpstream))

	n = &ResumeRetrieval{Embedder: &fakeEmbedder{}, Searcher: &fakeSearcher{err: apperror.NotFound(`collection "c" does not exist`)}, Collection: "c", Logger: nopLogger{}}
	_, err = n.Handle(context.Background(), askState("q"))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCandidateRetrieval_HybridQuery(t *testing.T) {
	search := &fakeSearcher{points: []vectorstore.Point{{ID: "p1", Score: 0.5}}}
	n := &CandidateRetrieval{
		Embedder:   &fakeEmbedder{},
		Lexical:    embedding.NewLexicalEncoder(),
		Searcher:   search,
		Collection: "candidates_u1",
		TopK:       5,
		Prefetch:   20,
		Logger:     nopLogger{},
	}

	u, err := n.Handle(context.Background(), askState("Kubernetes golang"))
	require.NoError(t, err)

	require.Len(t, search.queries, 1)
	q := search.queries[0]
	assert.Equal(t, 20, q.Prefetch)
	assert.Equal(t, 5, q.Limit)
	assert.Len(t, q.Sparse, 2)
	assert.Equal(t, search.points, u.CandidateRetrievedPoints)
}

func TestCandidateRetrieval_MissingCollection(t *testing.T) {
	n := &CandidateRetrieval{Embedder: &fakeEmbedder{}, Searcher: &fakeSearcher{}, Logger: nopLogger{}}

	_, err := n.Handle(context.Background(), askState("q"))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
