package bootstrap

import (
	"log"
	"time"

	"cet-mentor-be/internal/config"
	"cet-mentor-be/internal/constant"
	"cet-mentor-be/internal/controller"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/internal/repository/contract"
	"cet-mentor-be/internal/repository/memory"
	redisrepo "cet-mentor-be/internal/repository/redis"
	"cet-mentor-be/internal/service"
	"cet-mentor-be/pkg/feedback"
	"cet-mentor-be/pkg/llm/factory"
	pktNats "cet-mentor-be/pkg/nats"
	ragcontext "cet-mentor-be/pkg/rag/context"
	"cet-mentor-be/pkg/rag/predict"
	"cet-mentor-be/pkg/rag/response"
	"cet-mentor-be/pkg/rag/search"
	"cet-mentor-be/pkg/rag/session"
	"cet-mentor-be/pkg/rag/suggest"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	MentorController controller.IMentorController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Knowledge base
	knowledgeRepo := memory.NewKnowledgeRepository(sysLogger)
	if err := knowledgeRepo.Load(cfg.Knowledge.DataFilePath); err != nil {
		// Serve 503s until an admin reload succeeds rather than crash-loop.
		log.Printf("[WARN] Knowledge base load failed (%v); structured endpoints will return 503", err)
	}

	// 3. Session store
	var sessionRepo contract.ISessionRepository
	if cfg.Session.Backend == "redis" {
		redisSessions, err := redisrepo.NewSessionRepository(cfg.App.RedisURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis (%v); falling back to in-memory sessions", err)
			sessionRepo = memory.NewSessionRepository()
		} else {
			sessionRepo = redisSessions
		}
	} else {
		sessionRepo = memory.NewSessionRepository()
	}

	// 4. LLM provider
	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 5. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 6. Pipeline components
	retriever := search.NewRetriever(knowledgeRepo, sysLogger)
	suggester := suggest.NewSuggester(knowledgeRepo, cfg.Knowledge.TotalCandidates, sysLogger)
	predictor := predict.NewPredictor()
	sessionManager := session.NewManager(sessionRepo, sysLogger)
	assembler := ragcontext.NewAssembler(
		retriever,
		suggester,
		predictor,
		sessionManager,
		cfg.Knowledge.SuggestMargin,
		cfg.Knowledge.RetrievalLimit,
		sysLogger,
	)
	generator := response.NewGenerator(llmProvider, constant.SystemPromptV1(time.Now().Year()), sysLogger)

	// 7. Services
	feedbackSink := feedback.NewCSVSink(cfg.Feedback.CSVPath)
	consumerService := service.NewConsumerService(pubSub, cfg.Feedback.Topic, feedbackSink, natsPub, sysLogger)

	mentorService := service.NewMentorService(
		knowledgeRepo,
		retriever,
		suggester,
		predictor,
		assembler,
		sessionManager,
		generator,
		pubSub,
		cfg.Feedback.Topic,
		cfg.Knowledge.DataFilePath,
		cfg.Knowledge.SuggestMargin,
		sysLogger,
	)

	// 8. Controllers
	return &Container{
		MentorController: controller.NewMentorController(mentorService),
		ConsumerService:  consumerService,
	}
}
