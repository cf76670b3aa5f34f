package implementation

import (
	"context"
	"errors"
	"fmt"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/mapper"
	"ai-recruiter-be/internal/model"
	"ai-recruiter-be/internal/repository/contract"
	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/embedding"
	"ai-recruiter-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultSearchLimit = 5

type VectorCollectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VectorPointMapper
}

func NewVectorCollectionRepository(db *gorm.DB) contract.VectorCollectionRepository {
	return &VectorCollectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewVectorPointMapper(),
	}
}

// Ensure creates the collection or updates its vector size.
func (r *VectorCollectionRepositoryImpl) Ensure(ctx context.Context, c *entity.VectorCollection) error {
	m := &model.VectorCollection{
		Name:       c.Name,
		OwnerId:    c.OwnerId,
		Kind:       string(c.Kind),
		Dimensions: c.Dimensions,
	}
	// Existing rows keep owner and kind; a non-zero size overwrites the stored one.
	resize := clause.Assignments(map[string]interface{}{
		"dimensions": gorm.Expr("CASE WHEN EXCLUDED.dimensions > 0 THEN EXCLUDED.dimensions ELSE vector_collections.dimensions END"),
	})
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoUpdates: resize}).
		Create(m).Error
}

func (r *VectorCollectionRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.VectorCollection, error) {
	var m model.VectorCollection
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.CollectionToEntity(&m), nil
}

// requireCollection checks that the collection exists and holds vectors of
// the query's size. A mismatch means the embedding model changed since indexing.
func requireCollection(ctx context.Context, db *gorm.DB, q vectorstore.Query) error {
	if q.Collection == "" {
		return apperror.NotFound("no collection configured for this user")
	}
	c, err := NewVectorCollectionRepository(db).FindByName(ctx, q.Collection)
	if err != nil {
		return err
	}
	if c == nil {
		return apperror.NotFound("collection %q does not exist", q.Collection)
	}
	if c.Dimensions > 0 && len(q.Dense) != c.Dimensions {
		return fmt.Errorf("collection %q holds %d-dimension vectors, query has %d", q.Collection, c.Dimensions, len(q.Dense))
	}
	return nil
}

type ResumePointRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VectorPointMapper
}

func NewResumePointRepository(db *gorm.DB) contract.ResumePointRepository {
	return &ResumePointRepositoryImpl{
		db:     db,
		mapper: mapper.NewVectorPointMapper(),
	}
}

func (r *ResumePointRepositoryImpl) ReplaceForDocument(ctx context.Context, collection string, documentID uuid.UUID, points []*entity.ResumePoint) error {
	if err := r.db.WithContext(ctx).
		Where("collection = ? AND knowledge_base_document_id = ?", collection, documentID).
		Delete(&model.ResumePoint{}).Error; err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}

	models := make([]*model.ResumePoint, len(points))
	for i, p := range points {
		models[i] = r.mapper.ResumePointToModel(p)
	}
	return r.db.WithContext(ctx).Create(models).Error
}

type resumeHit struct {
	Id                      uuid.UUID
	FileId                  uuid.UUID
	KnowledgeBaseDocumentId uuid.UUID
	ChunkIndex              int
	Text                    string
	Similarity              float64
}

// Search ranks chunks by cosine similarity. 1 - (a <=> b) turns pgvector's
// cosine distance back into a similarity.
func (r *ResumePointRepositoryImpl) Search(ctx context.Context, q vectorstore.Query) ([]vectorstore.Point, error) {
	if err := requireCollection(ctx, r.db, q); err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var hits []resumeHit
	queryVector := pgvector.NewVector(q.Dense)
	err := r.db.WithContext(ctx).
		Table("resume_points").
		Select("id, file_id, knowledge_base_document_id, chunk_index, text, 1 - (embedding <=> ?) AS similarity", queryVector).
		Where("collection = ?", q.Collection).
		Order("similarity DESC").
		Limit(limit).
		Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("search resume points: %w", err)
	}

	points := make([]vectorstore.Point, len(hits))
	for i, h := range hits {
		points[i] = vectorstore.Point{
			ID:    h.Id.String(),
			Score: h.Similarity,
			Payload: map[string]interface{}{
				vectorstore.PayloadText:                    h.Text,
				vectorstore.PayloadFileID:                  h.FileId.String(),
				vectorstore.PayloadKnowledgeBaseDocumentID: h.KnowledgeBaseDocumentId.String(),
				vectorstore.PayloadChunkIndex:              h.ChunkIndex,
			},
		}
	}
	return points, nil
}

type CandidatePointRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VectorPointMapper
}

func NewCandidatePointRepository(db *gorm.DB) contract.CandidatePointRepository {
	return &CandidatePointRepositoryImpl{
		db:     db,
		mapper: mapper.NewVectorPointMapper(),
	}
}

func (r *CandidatePointRepositoryImpl) ReplaceForCandidate(ctx context.Context, collection string, candidateID uuid.UUID, point *entity.CandidatePoint) error {
	if err := r.db.WithContext(ctx).
		Where("collection = ? AND candidate_id = ?", collection, candidateID).
		Delete(&model.CandidatePoint{}).Error; err != nil {
		return err
	}
	if point == nil {
		return nil
	}
	return r.db.WithContext(ctx).Create(r.mapper.CandidatePointToModel(point)).Error
}

type candidateHit struct {
	Id          uuid.UUID
	CandidateId uuid.UUID
	Text        string
	Score       float64
}

const hybridCandidateQuery = `
WITH prefetch AS (
	SELECT id, candidate_id, text, lexical
	FROM candidate_points
	WHERE collection = ?
	ORDER BY embedding <=> ?
	LIMIT ?
)
SELECT id, candidate_id, text, (lexical <#> ?) * -1 AS score
FROM prefetch
ORDER BY score DESC
LIMIT ?`

const denseCandidateQuery = `
SELECT id, candidate_id, text, 1 - (embedding <=> ?) AS score
FROM candidate_points
WHERE collection = ?
ORDER BY score DESC
LIMIT ?`

// Search runs a two-stage query: the dense space narrows the collection to
// Prefetch profiles, then the lexical space (inner product, negated by <#>)
// ranks them. Without a sparse vector only the dense stage runs.
func (r *CandidatePointRepositoryImpl) Search(ctx context.Context, q vectorstore.Query) ([]vectorstore.Point, error) {
	if err := requireCollection(ctx, r.db, q); err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	prefetch := q.Prefetch
	if prefetch < limit {
		prefetch = limit * 4
	}

	dense := pgvector.NewVector(q.Dense)
	var hits []candidateHit
	var err error
	if len(q.Sparse) > 0 {
		sparse := pgvector.NewSparseVectorFromMap(q.Sparse, embedding.SparseDimensions)
		err = r.db.WithContext(ctx).Raw(hybridCandidateQuery, q.Collection, dense, prefetch, sparse, limit).Scan(&hits).Error
	} else {
		err = r.db.WithContext(ctx).Raw(denseCandidateQuery, dense, q.Collection, limit).Scan(&hits).Error
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("search candidate points: %w", err)
	}

	points := make([]vectorstore.Point, len(hits))
	for i, h := range hits {
		points[i] = vectorstore.Point{
			ID:    h.Id.String(),
			Score: h.Score,
			Payload: map[string]interface{}{
				vectorstore.PayloadText:        h.Text,
				vectorstore.PayloadCandidateID: h.CandidateId.String(),
			},
		}
	}
	return points, nil
}
