package bootstrap

import (
	"log"
	"time"

	"inquiry-be/internal/config"
	"inquiry-be/internal/controller"
	"inquiry-be/internal/pkg/logger"
	"inquiry-be/internal/repository/unitofwork"
	"inquiry-be/internal/service"
	"inquiry-be/pkg/chunker"
	"inquiry-be/pkg/embedding"
	"inquiry-be/pkg/llm/factory"
	"inquiry-be/pkg/metadata"

	pktNats "inquiry-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SimilarityController controller.ISimilarityController
	SynthesisController  controller.ISynthesisController
	DocumentController   controller.IDocumentController

	// Background services (exposed for main.go to run)
	ConsumerService   service.IConsumerService
	MetadataScheduler *service.MetadataScheduler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// AI traffic gets its own rotated file so provider noise stays out of
	// the application log.
	aiLogger := log.New(&lumberjack.Logger{
		Filename:   "logs/ai.log",
		MaxSize:    20, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
	}, "", log.LstdFlags)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding gateway: ordered backends, first is primary
	var backends []embedding.EmbeddingProvider
	for _, name := range cfg.Ai.EmbeddingBackends {
		switch name {
		case "ollama":
			backends = append(backends, embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel))
			log.Printf("[INFO] Embedding backend registered: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
		case "gemini":
			if cfg.Keys.GoogleGemini == "" {
				log.Printf("[WARN] Skipping GEMINI embedding backend: no API key")
				continue
			}
			backends = append(backends, embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.GeminiEmbedModel))
			log.Printf("[INFO] Embedding backend registered: GEMINI (%s)", cfg.Ai.GeminiEmbedModel)
		default:
			log.Printf("[WARN] Unknown embedding backend %q, skipping", name)
		}
	}
	embeddingGateway := embedding.NewGateway(aiLogger, backends...)

	// 4. LLM fallback chain
	chain, err := factory.NewChain(
		aiLogger,
		cfg.Ai.LLMProviders,
		map[string]string{
			"ollama": cfg.Ai.OllamaModel,
			"gemini": cfg.Ai.GeminiModel,
		},
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM chain: %v", err)
	}

	// 5. NATS observability events (optional: warn and continue without)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, uowFactory, embeddingGateway, natsPub)

	textChunker := chunker.New(
		cfg.Memory.ChunkWindowWords,
		cfg.Memory.ChunkOverlapWords,
		cfg.Memory.SmallDocWords,
	)

	similarityService := service.NewSimilarityService(uowFactory, embeddingGateway)
	synthesisService := service.NewSynthesisService(
		uowFactory,
		embeddingGateway,
		chain,
		cfg.Memory.SynthesisThreshold,
		cfg.Memory.SynthesisMaxSessions,
	)
	documentService := service.NewDocumentService(uowFactory, publisherService, textChunker)

	scheduler := service.NewMetadataScheduler(
		uowFactory,
		metadata.NewGenerator(chain, aiLogger),
		publisherService,
		natsPub,
		sysLogger,
		time.Duration(cfg.Memory.InactivityThresholdMinutes)*time.Minute,
		time.Duration(cfg.Memory.SchedulerIntervalMinutes)*time.Minute,
	)

	// 7. Controllers
	return &Container{
		SimilarityController: controller.NewSimilarityController(similarityService),
		SynthesisController:  controller.NewSynthesisController(synthesisService),
		DocumentController:   controller.NewDocumentController(documentService),
		ConsumerService:      consumerService,
		MetadataScheduler:    scheduler,
	}
}
