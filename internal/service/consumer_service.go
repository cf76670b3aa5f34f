package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"ai-recruiter-be/internal/dto"
	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/repository/specification"
	"ai-recruiter-be/internal/repository/taskstatus"
	"ai-recruiter-be/internal/repository/unitofwork"
	"ai-recruiter-be/pkg/agent/nodes"
	"ai-recruiter-be/pkg/embedding"
	"ai-recruiter-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	chunkSize    = 1500
	chunkOverlap = 200
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	lexical           *embedding.LexicalEncoder
	tracker           *TaskTracker
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	tracker *TaskTracker,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		lexical:           embedding.NewLexicalEncoder(),
		tracker:           tracker,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: a failed job is recorded on its task and the
// user re-enqueues it.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		return
	}

	task := &taskstatus.Task{
		ID:         payload.TaskID,
		OwnerID:    payload.OwnerID,
		DocumentID: payload.DocumentID,
		CreatedAt:  time.Now(),
	}
	if err := cs.tracker.Transition(ctx, task, taskstatus.StatusProcessing, ""); err != nil {
		log.Printf("[WARN] Failed to mark task %s processing: %v", task.ID, err)
	}

	log.Printf("[INFO] Indexing document %s for task %s", payload.DocumentID, payload.TaskID)

	chunks, err := cs.index(ctx, payload)
	if err != nil {
		log.Printf("[ERROR] Indexing document %s failed: %v", payload.DocumentID, err)
		cs.markDocument(ctx, payload, entity.DocumentStatusFailed)
		if terr := cs.tracker.Transition(ctx, task, taskstatus.StatusFailed, err.Error()); terr != nil {
			log.Printf("[WARN] Failed to mark task %s failed: %v", task.ID, terr)
		}
		return
	}

	if err := cs.tracker.Transition(ctx, task, taskstatus.StatusCompleted, ""); err != nil {
		log.Printf("[WARN] Failed to mark task %s completed: %v", task.ID, err)
	}
	log.Printf("[SUCCESS] Document indexed: %d chunks for document %s", chunks, payload.DocumentID)
}

func (cs *consumerService) index(ctx context.Context, payload dto.PublishIndexDocumentMessage) (int, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payload.OwnerID})
	if err != nil {
		return 0, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("user %s not found", payload.OwnerID)
	}

	doc, err := uow.KnowledgeBaseDocumentRepository().FindOne(ctx,
		specification.ByID{ID: payload.DocumentID, Table: "knowledge_base_documents"},
		specification.DocumentOwnedBy{UserID: user.Id},
	)
	if err != nil {
		return 0, fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		return 0, fmt.Errorf("document %s not found", payload.DocumentID)
	}

	chunks := utils.SplitText(doc.Content, chunkSize, chunkOverlap)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	resumeCollection := CollectionName(user, entity.CollectionKindResume)
	candidateCollection := CollectionName(user, entity.CollectionKindCandidate)

	points := make([]*entity.ResumePoint, 0, len(chunks))
	dims := 0
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		res, err := cs.embeddingProvider.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		dims = len(res.Embedding.Values)
		points = append(points, &entity.ResumePoint{
			Id:                      uuid.New(),
			Collection:              resumeCollection,
			FileId:                  doc.FileId,
			KnowledgeBaseDocumentId: doc.Id,
			ChunkIndex:              i,
			Text:                    chunk,
			Embedding:               res.Embedding.Values,
			CreatedAt:               time.Now(),
		})
	}

	candidate, err := uow.CandidateRepository().FindOne(ctx, specification.ByKnowledgeBaseDocumentID{ID: doc.Id})
	if err != nil {
		return 0, fmt.Errorf("load candidate: %w", err)
	}
	var profile *entity.CandidatePoint
	if candidate != nil {
		text := nodes.CandidateDetails(toAgentCandidate(candidate))
		res, err := cs.embeddingProvider.Generate(ctx, text, embedding.TaskRetrievalDocument)
		if err != nil {
			return 0, fmt.Errorf("embed candidate profile: %w", err)
		}
		dims = len(res.Embedding.Values)
		profile = &entity.CandidatePoint{
			Id:          uuid.New(),
			Collection:  candidateCollection,
			CandidateId: candidate.Id,
			Text:        text,
			Embedding:   res.Embedding.Values,
			Lexical:     cs.lexical.Encode(text),
			CreatedAt:   time.Now(),
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	for _, c := range []*entity.VectorCollection{
		{Name: resumeCollection, OwnerId: user.Id, Kind: entity.CollectionKindResume, Dimensions: dims},
		{Name: candidateCollection, OwnerId: user.Id, Kind: entity.CollectionKindCandidate, Dimensions: dims},
	} {
		if err := uow.VectorCollectionRepository().Ensure(ctx, c); err != nil {
			return 0, fmt.Errorf("ensure collection %s: %w", c.Name, err)
		}
	}
	if user.ResumeCollection != resumeCollection || user.CandidateCollection != candidateCollection {
		if err := uow.UserRepository().UpdateCollections(ctx, user.Id, resumeCollection, candidateCollection); err != nil {
			return 0, fmt.Errorf("update user collections: %w", err)
		}
	}

	if err := uow.ResumePointRepository().ReplaceForDocument(ctx, resumeCollection, doc.Id, points); err != nil {
		return 0, fmt.Errorf("replace resume points: %w", err)
	}
	if candidate != nil {
		if err := uow.CandidatePointRepository().ReplaceForCandidate(ctx, candidateCollection, candidate.Id, profile); err != nil {
			return 0, fmt.Errorf("replace candidate point: %w", err)
		}
	}

	taskID := payload.TaskID.String()
	if err := uow.KnowledgeBaseDocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusIndexed, &taskID); err != nil {
		return 0, fmt.Errorf("update document status: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(points), nil
}

func (cs *consumerService) markDocument(ctx context.Context, payload dto.PublishIndexDocumentMessage, status entity.DocumentStatus) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	taskID := payload.TaskID.String()
	if err := uow.KnowledgeBaseDocumentRepository().UpdateStatus(ctx, payload.DocumentID, status, &taskID); err != nil {
		log.Printf("[WARN] Failed to mark document %s %s: %v", payload.DocumentID, status, err)
	}
}

// CollectionName derives a user's per-kind collection, e.g. "jane_resumes_<id hex>".
func CollectionName(user *entity.User, kind entity.CollectionKind) string {
	return fmt.Sprintf("%s_%ss_%s", slug(user.FirstName), kind, strings.ReplaceAll(user.Id.String(), "-", ""))
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
