package nodes

import (
	"context"
	"errors"

	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/embedding"
	"ai-recruiter-be/pkg/llm"
	"ai-recruiter-be/pkg/vectorstore"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}

type fakeEmbedder struct {
	texts []string
	err   error
}

func (f *fakeEmbedder) Generate(_ context.Context, text, _ string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.texts = append(f.texts, text)
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}}}, nil
}

type fakeSearcher struct {
	points  []vectorstore.Point
	queries []vectorstore.Query
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, q vectorstore.Query) ([]vectorstore.Point, error) {
	f.queries = append(f.queries, q)
	return f.points, f.err
}

// fakeDirectory stores records per owner.
type fakeDirectory struct {
	files      map[uuid.UUID]agent.File
	candidates map[uuid.UUID]agent.Candidate
	owners     map[uuid.UUID]uuid.UUID
	docs       map[uuid.UUID]agent.KnowledgeBaseDocument
	fail       bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		files:      map[uuid.UUID]agent.File{},
		candidates: map[uuid.UUID]agent.Candidate{},
		owners:     map[uuid.UUID]uuid.UUID{},
		docs:       map[uuid.UUID]agent.KnowledgeBaseDocument{},
	}
}

func (d *fakeDirectory) addCandidate(owner uuid.UUID, c agent.Candidate) {
	d.candidates[c.ID] = c
	d.owners[c.ID] = owner
	d.docs[c.KnowledgeBaseDocumentID] = agent.KnowledgeBaseDocument{ID: c.KnowledgeBaseDocumentID, Status: "indexed"}
}

func (d *fakeDirectory) GetFilesByIDs(_ context.Context, ids []uuid.UUID, owner uuid.UUID) ([]agent.File, error) {
	if d.fail {
		return nil, errors.New("db down")
	}
	var out []agent.File
	for i := len(ids) - 1; i >= 0; i-- {
		if f, ok := d.files[ids[i]]; ok && f.OwnerID == owner {
			out = append(out, f)
		}
	}
	return out, nil
}

func (d *fakeDirectory) GetCandidateByID(_ context.Context, id, owner uuid.UUID) (*agent.Candidate, error) {
	if d.fail {
		return nil, errors.New("db down")
	}
	c, ok := d.candidates[id]
	if !ok || d.owners[id] != owner {
		return nil, nil
	}
	return &c, nil
}

func (d *fakeDirectory) GetCandidateByKnowledgeBaseDocumentID(_ context.Context, docID, owner uuid.UUID) (*agent.Candidate, error) {
	for id, c := range d.candidates {
		if c.KnowledgeBaseDocumentID == docID && d.owners[id] == owner {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) GetKnowledgeBaseDocument(_ context.Context, id uuid.UUID) (*agent.KnowledgeBaseDocument, error) {
	doc, ok := d.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

type fakeModel struct {
	reply   llm.Message
	history [][]llm.Message
	err     error
}

func (m *fakeModel) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (*llm.Message, error) {
	m.history = append(m.history, history)
	if m.err != nil {
		return nil, m.err
	}
	r := m.reply
	return &r, nil
}

func (m *fakeModel) Generate(context.Context, string, ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func resumePoint(score float64, fileID, docID uuid.UUID, text string) vectorstore.Point {
	return vectorstore.Point{ID: uuid.NewString(), Score: score, Payload: map[string]interface{}{
		vectorstore.PayloadFileID:                  fileID.String(),
		vectorstore.PayloadKnowledgeBaseDocumentID: docID.String(),
		vectorstore.PayloadText:                    text,
	}}
}

func candidatePoint(score float64, candidateID uuid.UUID) vectorstore.Point {
	return vectorstore.Point{ID: uuid.NewString(), Score: score, Payload: map[string]interface{}{
		vectorstore.PayloadCandidateID: candidateID.String(),
	}}
}

func userCtx(userID uuid.UUID) context.Context {
	return agent.WithRunInfo(context.Background(), agent.RunInfo{UserID: userID, ThreadID: "thread-1"})
}
