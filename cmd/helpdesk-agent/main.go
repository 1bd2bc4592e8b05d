package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"helpdesk-agent/internal/api"
	"helpdesk-agent/internal/api/handlers"
	"helpdesk-agent/internal/realtime"
	"helpdesk-agent/internal/repository"
	"helpdesk-agent/internal/service"
	"helpdesk-agent/pkg/auth"
	"helpdesk-agent/pkg/config"
	"helpdesk-agent/pkg/logger"
	"helpdesk-agent/pkg/postgres"
	"helpdesk-agent/pkg/redis"

	"go.uber.org/zap"
)

// @title Helpdesk Agent API
// @version 1.0
// @description IT support chat agent: knowledge base lookup, AI answers and escalation to technicians
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@helpdesk.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Service); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting helpdesk agent service", zap.String("ai_provider", cfg.AI.Provider))

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.Database.MigrationsPath, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	conversationRepo := repository.NewConversationRepository(db, appLogger)
	messageRepo := repository.NewMessageRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	incidentRepo := repository.NewIncidentRepository(db, appLogger)

	// Real-time delivery goes through Redis when configured
	var broker realtime.Broker
	redisClient, err := redis.NewClient(ctx, &cfg.Redis, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		broker = realtime.NewRedisBroker(redisClient, appLogger)
	} else {
		appLogger.Info("Redis not configured, using in-process event broker")
		broker = realtime.NewMemoryBroker(appLogger)
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	resolver, err := service.NewResolver(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AI resolver", zap.Error(err))
	}
	if closer, ok := resolver.(io.Closer); ok {
		defer closer.Close()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	sessionService := service.NewSessionService(conversationRepo, appLogger)
	knowledgeService := service.NewKnowledgeService(knowledgeRepo, cfg.Chat.KnowledgeLimit, appLogger)
	incidentService := service.NewIncidentService(incidentRepo, userRepo, appLogger)
	learningService := service.NewLearningService(knowledgeRepo, messageRepo, appLogger)

	resolutionService := service.NewResolutionService(service.ResolutionDeps{
		Conversations: conversationRepo,
		Messages:      messageRepo,
		Knowledge:     knowledgeService,
		Resolver:      resolver,
		Incidents:     incidentService,
		Directory:     userRepo,
		Publisher:     broker,
		HistoryLimit:  cfg.Chat.HistoryLimit,
	}, appLogger)

	dispatcher := service.NewDispatcher(resolutionService, cfg.Chat.Workers, cfg.Chat.QueueSize, appLogger)
	dispatcher.Start()

	chatService := service.NewChatService(conversationRepo, messageRepo, dispatcher, appLogger)
	feedbackService := service.NewFeedbackService(service.FeedbackDeps{
		Conversations: conversationRepo,
		Messages:      messageRepo,
		Incidents:     incidentService,
		Learning:      learningService,
		Queue:         dispatcher,
		Directory:     userRepo,
		Publisher:     broker,
	}, appLogger)

	// Setup router
	app := api.SetupRouter(api.Handlers{
		Auth:      handlers.NewAuthHandler(authService, appLogger),
		Chat:      handlers.NewChatHandler(sessionService, chatService, feedbackService, broker, appLogger),
		Incident:  handlers.NewIncidentHandler(incidentService, appLogger),
		Knowledge: handlers.NewKnowledgeHandler(knowledgeService, appLogger),
	}, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := dispatcher.Stop(stopCtx); err != nil {
		appLogger.Warn("Resolution tasks dropped on shutdown", zap.Error(err))
	}
}
