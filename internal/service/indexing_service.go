package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-recruiter-be/internal/dto"
	"ai-recruiter-be/internal/pkg/logger"
	"ai-recruiter-be/internal/repository/specification"
	"ai-recruiter-be/internal/repository/taskstatus"
	"ai-recruiter-be/internal/repository/unitofwork"
	"ai-recruiter-be/pkg/apperror"

	"github.com/google/uuid"
)

type IIndexingService interface {
	Enqueue(ctx context.Context, userID, documentID uuid.UUID) (*dto.IndexDocumentResponse, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskStatusResponse, error)
}

type indexingService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	tasks            taskstatus.Store
	tracker          *TaskTracker
	logger           logger.ILogger
}

func NewIndexingService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	tasks taskstatus.Store,
	tracker *TaskTracker,
	log logger.ILogger,
) IIndexingService {
	return &indexingService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		tasks:            tasks,
		tracker:          tracker,
		logger:           log,
	}
}

// Enqueue schedules (re)indexing of one of the user's extracted documents.
func (s *indexingService) Enqueue(ctx context.Context, userID, documentID uuid.UUID) (*dto.IndexDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KnowledgeBaseDocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentID, Table: "knowledge_base_documents"},
		specification.DocumentOwnedBy{UserID: userID},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("Document %s not found", documentID)
	}
	if !doc.Ready() {
		return nil, apperror.BadRequest("Document %s is not ready for indexing (status %s)", documentID, doc.Status)
	}

	now := time.Now()
	task := &taskstatus.Task{
		ID:         uuid.New(),
		OwnerID:    userID,
		DocumentID: doc.Id,
		CreatedAt:  now,
	}
	if err := s.tracker.Transition(ctx, task, taskstatus.StatusPending, ""); err != nil {
		return nil, err
	}

	taskID := task.ID.String()
	if err := uow.KnowledgeBaseDocumentRepository().UpdateStatus(ctx, doc.Id, doc.Status, &taskID); err != nil {
		return nil, err
	}

	msgJson, err := json.Marshal(dto.PublishIndexDocumentMessage{
		TaskID:     task.ID,
		DocumentID: doc.Id,
		OwnerID:    userID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		_ = s.tracker.Transition(ctx, task, taskstatus.StatusFailed, "failed to enqueue job")
		return nil, err
	}

	s.logger.Info("IndexingService", "Indexing job enqueued", map[string]interface{}{
		"task_id":     taskID,
		"document_id": doc.Id.String(),
		"user_id":     userID.String(),
	})
	return &dto.IndexDocumentResponse{TaskID: task.ID}, nil
}

// GetTask returns the task only to its owner; anyone else sees NotFound.
func (s *indexingService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskStatusResponse, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != userID {
		return nil, apperror.NotFound("task %s not found", taskID)
	}
	return toTaskStatusResponse(task), nil
}

func toTaskStatusResponse(t *taskstatus.Task) *dto.TaskStatusResponse {
	return &dto.TaskStatusResponse{
		ID:         t.ID,
		DocumentID: t.DocumentID,
		Status:     string(t.Status),
		Error:      t.Error,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		FinishedAt: t.FinishedAt,
	}
}
