package service

import (
	"context"
	"time"

	"ai-recruiter-be/internal/dto"
	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/pkg/logger"
	"ai-recruiter-be/internal/repository/specification"
	"ai-recruiter-be/internal/repository/unitofwork"
	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/agent/nodes"
	"ai-recruiter-be/pkg/agent/react"
	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/embedding"
	"ai-recruiter-be/pkg/llm"
	"ai-recruiter-be/pkg/rerank"

	"github.com/google/uuid"
)

type IAgentService interface {
	Stream(ctx context.Context, userID uuid.UUID, req *dto.ChatRequest) (<-chan agent.Event, error)
	Workflow(ctx context.Context) (agent.Topology, error)
}

// AgentOptions are the per-deployment knobs of the agent graph.
type AgentOptions struct {
	ResumeTopK        int
	CandidateTopK     int
	CandidatePrefetch int
	Temperature       float64
}

type agentService struct {
	uowFactory   unitofwork.RepositoryFactory
	orchestrator *agent.Orchestrator
	directory    agent.Directory
	embedder     embedding.EmbeddingProvider
	lexical      *embedding.LexicalEncoder
	reranker     *rerank.Reranker
	chatModel    llm.LLMProvider
	toolAgent    *react.Agent
	opts         AgentOptions
	logger       logger.ILogger
}

func NewAgentService(
	uowFactory unitofwork.RepositoryFactory,
	orchestrator *agent.Orchestrator,
	directory agent.Directory,
	embedder embedding.EmbeddingProvider,
	reranker *rerank.Reranker,
	chatModel llm.LLMProvider,
	toolAgent *react.Agent,
	opts AgentOptions,
	log logger.ILogger,
) IAgentService {
	return &agentService{
		uowFactory:   uowFactory,
		orchestrator: orchestrator,
		directory:    directory,
		embedder:     embedder,
		lexical:      embedding.NewLexicalEncoder(),
		reranker:     reranker,
		chatModel:    chatModel,
		toolAgent:    toolAgent,
		opts:         opts,
		logger:       log,
	}
}

func (s *agentService) Stream(ctx context.Context, userID uuid.UUID, req *dto.ChatRequest) (<-chan agent.Event, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("User not found")
	}

	handlers := s.handlers(uow, user)
	return s.orchestrator.Stream(ctx, agent.Request{
		User:           toAgentUser(user),
		Message:        req.Message,
		ConversationID: req.ConversationID,
		CandidateID:    req.CandidateID,
	}, handlers), nil
}

func (s *agentService) Workflow(ctx context.Context) (agent.Topology, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.orchestrator.Workflow(s.handlers(uow, &entity.User{}))
}

// handlers binds one request's node set to the user's collections.
func (s *agentService) handlers(uow unitofwork.UnitOfWork, user *entity.User) agent.Handlers {
	options := []llm.Option{llm.WithTemperature(s.opts.Temperature)}

	set := nodes.Set{
		ResumeRetrieval: &nodes.ResumeRetrieval{
			Embedder:   s.embedder,
			Searcher:   uow.ResumePointRepository(),
			Reranker:   s.reranker,
			Collection: user.ResumeCollection,
			TopK:       s.opts.ResumeTopK,
			Logger:     s.logger,
		},
		CandidateRetrieval: &nodes.CandidateRetrieval{
			Embedder:   s.embedder,
			Lexical:    s.lexical,
			Searcher:   uow.CandidatePointRepository(),
			Collection: user.CandidateCollection,
			TopK:       s.opts.CandidateTopK,
			Prefetch:   s.opts.CandidatePrefetch,
			Logger:     s.logger,
		},
		Citations: &nodes.Citations{
			Directory: s.directory,
			Logger:    s.logger,
		},
		Chatbot: &nodes.Chatbot{
			Model:   s.chatModel,
			Options: options,
			Logger:  s.logger,
		},
		ToolAgent: &nodes.ToolAgent{
			Directory: s.directory,
			Agent:     s.toolAgent,
			Options:   options,
			Now:       time.Now,
			Logger:    s.logger,
		},
		Logger: s.logger,
	}
	return set.Handlers()
}

func toAgentUser(u *entity.User) agent.User {
	return agent.User{
		ID:                  u.Id,
		Email:               u.Email,
		FirstName:           u.FirstName,
		ResumeCollection:    u.ResumeCollection,
		CandidateCollection: u.CandidateCollection,
	}
}
