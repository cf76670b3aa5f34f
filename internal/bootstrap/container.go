package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-recruiter-be/internal/config"
	"ai-recruiter-be/internal/controller"
	"ai-recruiter-be/internal/handler"
	"ai-recruiter-be/internal/pkg/logger"
	"ai-recruiter-be/internal/pkg/mailer"
	"ai-recruiter-be/internal/pkg/serverutils"
	"ai-recruiter-be/internal/repository/checkpoint"
	"ai-recruiter-be/internal/repository/taskstatus"
	"ai-recruiter-be/internal/repository/unitofwork"
	"ai-recruiter-be/internal/service"
	"ai-recruiter-be/internal/websocket"
	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/agent/react"
	"ai-recruiter-be/pkg/agent/tools"
	"ai-recruiter-be/pkg/embedding"
	"ai-recruiter-be/pkg/embedding/jina"
	"ai-recruiter-be/pkg/llm"
	"ai-recruiter-be/pkg/llm/factory"
	"ai-recruiter-be/pkg/rerank"

	pktNats "ai-recruiter-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AgentController         controller.IAgentController
	KnowledgeBaseController controller.IKnowledgeBaseController
	JwtMiddleware           fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	TaskNotifier    *service.TaskNotifier

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Job Queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Model Providers
	embeddingProvider := newEmbeddingProvider(cfg)
	llmProvider := newLLMProvider(cfg)
	reranker := newReranker(cfg)

	// 4. Infrastructure
	// NATS
	var eventPublisher agent.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Agent
	checkpointTTL := time.Duration(cfg.Agent.CheckpointTTLHour) * time.Hour
	var checkpoints agent.CheckpointStore
	if cfg.Agent.CheckpointBackend == "redis" {
		checkpoints = checkpoint.NewRedisStore(rdb, checkpointTTL)
		log.Printf("[INFO] Using Checkpoint Store: REDIS")
	} else {
		checkpoints = checkpoint.NewMemoryStore(checkpointTTL)
		log.Printf("[INFO] Using Checkpoint Store: MEMORY")
	}

	orchestrator, err := agent.NewOrchestrator(checkpoints, eventPublisher, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to compile agent workflow: %v", err)
	}
	log.Printf("[INFO] Agent workflow compiled (version %s)", orchestrator.Graph().Version())

	toolAgent := react.New(
		llmProvider,
		react.NewMemory(checkpointTTL),
		cfg.Agent.MaxToolRounds,
		tools.NewCalendar(loadLocation(cfg.Agent.Timezone), time.Now),
		tools.NewEmail(emailService),
	)

	directory := service.NewDirectoryService(uowFactory)
	agentService := service.NewAgentService(
		uowFactory,
		orchestrator,
		directory,
		embeddingProvider, // Injected
		reranker,
		llmProvider, // Injected
		toolAgent,
		service.AgentOptions{
			ResumeTopK:        cfg.Agent.ResumeTopK,
			CandidateTopK:     cfg.Agent.CandidateTopK,
			CandidatePrefetch: cfg.Agent.CandidatePrefetch,
			Temperature:       cfg.Ai.Temperature,
		},
		sysLogger,
	)

	// 6. Indexing
	taskStore := taskstatus.NewRedisStore(rdb, time.Duration(cfg.Agent.TaskTTLHour)*time.Hour)
	tracker := service.NewTaskTracker(taskStore, eventPublisher, sysLogger)

	publisherService := service.NewPublisherService(cfg.Keys.IndexTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IndexTopic,
		uowFactory,
		embeddingProvider, // Injected
		tracker,
	)
	indexingService := service.NewIndexingService(uowFactory, publisherService, taskStore, tracker, sysLogger)

	// 7. Notifications
	var taskNotifier *service.TaskNotifier
	if natsSub != nil {
		taskNotifier = service.NewTaskNotifier(natsSub, wsHub, wsLogger) // Hub implements TaskDelivery
	}
	notifHandler := handler.NewNotificationHandler(wsHub, cfg.App.JwtSecret, wsLogger)

	c := &Container{
		AgentController:         controller.NewAgentController(agentService, cfg.App.JwtSecret, sysLogger),
		KnowledgeBaseController: controller.NewKnowledgeBaseController(indexingService),
		JwtMiddleware:           serverutils.NewJwtMiddleware(cfg.App.JwtSecret),

		ConsumerService: consumerService,
		TaskNotifier:    taskNotifier,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
	// Flush pending turn events before the broker connection goes away.
	c.closers = append(c.closers, orchestrator.Close)
	if natsPub != nil {
		c.closers = append(c.closers, natsPub.Close)
	}
	if natsSub != nil {
		c.closers = append(c.closers, natsSub.Close)
	}
	c.closers = append(c.closers, func() {
		_ = pubSub.Close()
		_ = rdb.Close()
		_ = sysLogger.Sync()
	})
	return c
}

// Close releases broker and cache connections.
func (c *Container) Close() {
	for _, fn := range c.closers {
		fn()
	}
}

func newEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "jina":
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
		return jina.NewJinaProvider(cfg.Keys.Jina, cfg.Ai.EmbeddingDims)
	case "gemini":
		p, err := embedding.NewGeminiProvider(context.Background(), cfg.Keys.Gemini, int32(cfg.Ai.EmbeddingDims))
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Gemini embeddings: %v", err)
		}
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
		return p
	default:
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	}
}

func newLLMProvider(cfg *config.Config) llm.LLMProvider {
	baseURL := cfg.Ai.LLMBaseURL
	if baseURL == "" && cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	apiKey := cfg.Keys.LLM
	if apiKey == "" && cfg.Ai.LLMProvider == "gemini" {
		apiKey = cfg.Keys.Gemini
	}
	p, err := factory.NewLLMProvider(context.Background(), cfg.Ai.LLMProvider, cfg.Ai.LLMModel, baseURL, apiKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	return p
}

// newReranker returns a pass-through reranker unless RERANK_PROVIDER=jina.
func newReranker(cfg *config.Config) *rerank.Reranker {
	if cfg.Ai.RerankProvider != "jina" {
		return rerank.NewReranker(nil)
	}
	client, err := rerank.NewJinaClient(cfg.Keys.Jina, cfg.Ai.RerankModel, "")
	if err != nil {
		log.Printf("[WARN] Reranking disabled: %v", err)
		return rerank.NewReranker(nil)
	}
	log.Printf("[INFO] Using Reranker: JINA (%s)", cfg.Ai.RerankModel)
	return rerank.NewReranker(client)
}

func loadLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARN] Unknown timezone %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}
