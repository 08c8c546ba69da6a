// @title Quiz API
// @version 1.0
// @description Generates HTML, CSS and Javascript multiple choice quizzes and checks answers against server-held keys.
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-api/internal/adapter"
	"quiz-api/internal/adapter/completion"
	"quiz-api/internal/cache"
	"quiz-api/internal/config"
	"quiz-api/internal/domain"
	"quiz-api/internal/handler"
	"quiz-api/internal/logger"
	"quiz-api/internal/middleware"
	"quiz-api/internal/quizgen"
	"quiz-api/internal/service"
	"quiz-api/internal/validation"

	_ "quiz-api/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func newCompletionProvider(cfg config.LLMConfig) (domain.CompletionProvider, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Provider {
	case "openai":
		p, err := completion.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.Model, httpClient)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "ollama":
		p, err := completion.NewOllamaProvider(cfg.Ollama.ServerURL, cfg.Model, httpClient)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

// newApp builds the Fiber app with middleware and routes registered.
func newApp(serverCfg config.ServerConfig, quizHandler *handler.QuizHandler, validationMiddleware *middleware.ValidationMiddleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.IdleTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: serverCfg.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")
	apiGroup.Get("/get-quizzes", validationMiddleware.ValidateQuizCounts(), quizHandler.GetQuizzes)
	apiGroup.Post("/check-quiz/:quizId", quizHandler.CheckQuiz)
	apiGroup.Get("/health", quizHandler.Health)

	return app
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	provider, err := newCompletionProvider(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create completion provider", zap.Error(err))
	}
	appLogger.Info("Completion provider initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)

	sessionIDs := quizgen.NewSessionIDStrategy(cfg.Session.IDStrategy, cfg.Session.IDPrefix)
	gateway, err := quizgen.NewGateway(provider, sessionIDs, cfg.LLM.MaxTokens, cfg.LLM.Temperature, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create quiz gateway", zap.Error(err))
	}

	// Initialize Redis Client
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := cache.NewRedisClient(startupCtx, cfg.Redis)
	cancelStartup()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")

	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	sessionStore, err := service.NewSessionStore(cacheAdapter)
	if err != nil {
		appLogger.Fatal("Failed to create session store", zap.Error(err))
	}

	// Initialize services and handlers
	quizService := service.NewQuizService(gateway, sessionStore, cacheAdapter, cfg.Quiz)
	validator := validation.NewValidator(cfg.Quiz.BaseCount, cfg.Quiz.MaxPerTopic)
	quizHandler := handler.NewQuizHandler(quizService, validator)
	validationMiddleware := middleware.NewValidationMiddleware(validator)

	app := newApp(cfg.Server, quizHandler, validationMiddleware)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
