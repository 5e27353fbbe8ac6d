package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/raneshrk02/regulations-chat/internal/config"
	"github.com/raneshrk02/regulations-chat/internal/controller"
	"github.com/raneshrk02/regulations-chat/internal/pkg/logger"
	"github.com/raneshrk02/regulations-chat/internal/repository/implementation"
	"github.com/raneshrk02/regulations-chat/internal/service"
	"github.com/raneshrk02/regulations-chat/internal/websocket"
	"github.com/raneshrk02/regulations-chat/pkg/llm/ollama"
	pkgNats "github.com/raneshrk02/regulations-chat/pkg/nats"
	"github.com/raneshrk02/regulations-chat/pkg/registry"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController

	// Services
	DocumentService service.IDocumentService
	ChatService     service.IChatService

	// Background Services (Exposed for main.go to run)
	IngestService   service.IIngestService
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	hubLogger := logger.NewIsolatedLogger("websocket.log")

	documentRepo := implementation.NewDocumentRepository(db)

	// Identifies this process on the shared buses so it can drop its own echoes.
	instanceID := uuid.NewString()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Optional NATS fan-out for multi-instance deployments
	var natsPublisher *pkgNats.Publisher
	var natsSubscriber *pkgNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPublisher, err = pkgNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("NATS publisher unavailable: %v", err)
			natsPublisher = nil
		}
		natsSubscriber, err = pkgNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("NATS subscriber unavailable: %v", err)
			natsSubscriber = nil
		}
	}

	// Optional redis for cross-instance websocket broadcast
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("Invalid REDIS_URL, hub runs single-instance: %v", err)
		} else {
			rdb = redis.NewClient(opts)
		}
	}

	// 3. Generation backend
	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel, cfg.Ai.GenerationTimeout)

	// 4. Services
	chatService := service.NewChatService(documentRepo, llmProvider, cfg, sysLogger)
	documentService := service.NewDocumentService(documentRepo, cfg.Retrieval.Cap)

	registryClient := registry.NewClient(
		cfg.Registry.BaseURL,
		cfg.Registry.APIKey,
		cfg.Registry.PageSize,
		cfg.Registry.MaxPages,
	)
	ingestService := service.NewIngestService(registryClient, documentRepo, pubSub, natsPublisher, instanceID, sysLogger)

	// 5. WebSocket hub + ingestion event consumer
	hub := websocket.NewHub(chatService, rdb, hubLogger)
	consumerService := service.NewConsumerService(pubSub, natsSubscriber, hub, instanceID, sysLogger)

	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		DocumentService:    documentService,
		ChatService:        chatService,
		IngestService:      ingestService,
		ConsumerService:    consumerService,
		WebSocketHub:       hub,
		Logger:             sysLogger,
	}
}
