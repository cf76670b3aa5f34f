package implementation_test

import (
	"context"
	"os"
	"testing"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/model"
	"ai-recruiter-be/internal/repository/specification"
	"ai-recruiter-be/internal/repository/unitofwork"
	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/database"
	"ai-recruiter-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

const dims = 768

func oneHot(i int) []float32 {
	v := make([]float32, dims)
	v[i] = 1
	return v
}

// openUnitOfWork returns a unit of work inside a transaction that is rolled
// back when the test ends.
func openUnitOfWork(t *testing.T) unitofwork.UnitOfWork {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, database.WithLogLevel(logger.Warn))
	require.NoError(t, err)
	require.NoError(t, database.EnableExtensions(db))
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.File{}, &model.KnowledgeBaseDocument{}, &model.Candidate{},
		&model.VectorCollection{}, &model.ResumePoint{}, &model.CandidatePoint{},
	))

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	t.Cleanup(func() { _ = uow.Rollback() })
	return uow
}

type fixture struct {
	user      *entity.User
	file      *entity.File
	doc       *entity.KnowledgeBaseDocument
	candidate *entity.Candidate
}

func seed(t *testing.T, uow unitofwork.UnitOfWork) fixture {
	t.Helper()
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	user := &entity.User{Email: "recruiter-" + suffix + "@example.com", Username: "recruiter-" + suffix, FirstName: "Rita"}
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	file := &entity.File{OwnerId: user.Id, Filename: "cv-" + suffix + ".pdf", OriginalFilename: "cv.pdf", ContentType: "application/pdf"}
	require.NoError(t, uow.FileRepository().Create(ctx, file))

	doc := &entity.KnowledgeBaseDocument{FileId: file.Id, Status: entity.DocumentStatusExtracted, Content: "Go engineer"}
	require.NoError(t, uow.KnowledgeBaseDocumentRepository().Create(ctx, doc))

	candidate := &entity.Candidate{KnowledgeBaseDocumentId: doc.Id, Email: "ann-" + suffix + "@example.com", Name: "Ann", Skills: []string{"go"}}
	require.NoError(t, uow.CandidateRepository().Create(ctx, candidate))

	return fixture{user: user, file: file, doc: doc, candidate: candidate}
}

func TestOwnershipSpecifications(t *testing.T) {
	uow := openUnitOfWork(t)
	ctx := context.Background()
	f := seed(t, uow)
	stranger := uuid.New()

	got, err := uow.CandidateRepository().FindOne(ctx,
		specification.ByID{ID: f.candidate.Id, Table: "candidates"},
		specification.CandidateOwnedBy{UserID: f.user.Id},
	)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"go"}, got.Skills)

	got, err = uow.CandidateRepository().FindOne(ctx,
		specification.ByID{ID: f.candidate.Id, Table: "candidates"},
		specification.CandidateOwnedBy{UserID: stranger},
	)
	require.NoError(t, err)
	assert.Nil(t, got)

	doc, err := uow.KnowledgeBaseDocumentRepository().FindOne(ctx,
		specification.ByID{ID: f.doc.Id, Table: "knowledge_base_documents"},
		specification.DocumentOwnedBy{UserID: f.user.Id},
	)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.True(t, doc.Ready())

	files, err := uow.FileRepository().FindAll(ctx,
		specification.ByIDs{IDs: []uuid.UUID{f.file.Id}, Table: "files"},
		specification.FileOwnedBy{OwnerID: stranger},
	)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestResumePointSearch(t *testing.T) {
	uow := openUnitOfWork(t)
	ctx := context.Background()
	f := seed(t, uow)
	collection := "rita_resumes_" + f.user.Id.String()[:8]

	_, err := uow.ResumePointRepository().Search(ctx, vectorstore.Query{Collection: collection, Dense: oneHot(0)})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, uow.VectorCollectionRepository().Ensure(ctx, &entity.VectorCollection{
		Name: collection, OwnerId: f.user.Id, Kind: entity.CollectionKindResume, Dimensions: dims,
	}))
	require.NoError(t, uow.ResumePointRepository().ReplaceForDocument(ctx, collection, f.doc.Id, []*entity.ResumePoint{
		{Id: uuid.New(), Collection: collection, FileId: f.file.Id, KnowledgeBaseDocumentId: f.doc.Id, ChunkIndex: 0, Text: "kubernetes", Embedding: oneHot(1)},
		{Id: uuid.New(), Collection: collection, FileId: f.file.Id, KnowledgeBaseDocumentId: f.doc.Id, ChunkIndex: 1, Text: "golang", Embedding: oneHot(0)},
	}))

	stored, err := uow.VectorCollectionRepository().FindByName(ctx, collection)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.CollectionKindResume, stored.Kind)

	_, err = uow.ResumePointRepository().Search(ctx, vectorstore.Query{Collection: collection, Dense: []float32{1, 0}})
	assert.ErrorContains(t, err, "query has 2")

	points, err := uow.ResumePointRepository().Search(ctx, vectorstore.Query{Collection: collection, Dense: oneHot(0), Limit: 5})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "golang", points[0].Text())
	assert.InDelta(t, 1.0, points[0].Score, 1e-6)
	assert.Equal(t, f.file.Id.String(), points[0].String(vectorstore.PayloadFileID))

	// Replacing drops the previous chunks of the document.
	require.NoError(t, uow.ResumePointRepository().ReplaceForDocument(ctx, collection, f.doc.Id, nil))
	points, err = uow.ResumePointRepository().Search(ctx, vectorstore.Query{Collection: collection, Dense: oneHot(0)})
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestVectorCollectionEnsureUpdatesDimensions(t *testing.T) {
	uow := openUnitOfWork(t)
	ctx := context.Background()
	f := seed(t, uow)
	collection := "rita_resumes_" + f.user.Id.String()[:8]
	repo := uow.VectorCollectionRepository()

	ensure := func(d int) *entity.VectorCollection {
		require.NoError(t, repo.Ensure(ctx, &entity.VectorCollection{
			Name: collection, OwnerId: f.user.Id, Kind: entity.CollectionKindResume, Dimensions: d,
		}))
		got, err := repo.FindByName(ctx, collection)
		require.NoError(t, err)
		require.NotNil(t, got)
		return got
	}

	assert.Equal(t, 0, ensure(0).Dimensions)
	assert.Equal(t, dims, ensure(dims).Dimensions)
	assert.Equal(t, dims, ensure(0).Dimensions, "zero keeps the recorded size")
	assert.Equal(t, 1024, ensure(1024).Dimensions)
}

func TestCandidatePointHybridSearch(t *testing.T) {
	uow := openUnitOfWork(t)
	ctx := context.Background()
	f := seed(t, uow)
	collection := "rita_candidates_" + f.user.Id.String()[:8]

	require.NoError(t, uow.VectorCollectionRepository().Ensure(ctx, &entity.VectorCollection{
		Name: collection, OwnerId: f.user.Id, Kind: entity.CollectionKindCandidate, Dimensions: dims,
	}))
	require.NoError(t, uow.CandidatePointRepository().ReplaceForCandidate(ctx, collection, f.candidate.Id, &entity.CandidatePoint{
		Id: uuid.New(), Collection: collection, CandidateId: f.candidate.Id, Text: "Ann go",
		Embedding: oneHot(0), Lexical: map[int32]float32{7: 1},
	}))

	points, err := uow.CandidatePointRepository().Search(ctx, vectorstore.Query{
		Collection: collection,
		Dense:      oneHot(0),
		Sparse:     map[int32]float32{7: 0.5},
		Prefetch:   10,
		Limit:      3,
	})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, f.candidate.Id.String(), points[0].String(vectorstore.PayloadCandidateID))
	assert.InDelta(t, 0.5, points[0].Score, 1e-6)
}
