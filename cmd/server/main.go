package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/assessment-engine/internal/cache"
	"github.com/learnsphere/assessment-engine/internal/config"
	"github.com/learnsphere/assessment-engine/internal/events"
	"github.com/learnsphere/assessment-engine/internal/handlers"
	"github.com/learnsphere/assessment-engine/internal/services"
	"github.com/learnsphere/assessment-engine/internal/store"
	"github.com/learnsphere/assessment-engine/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.IsDevelopment() {
		logger = utils.NewDevelopmentLogger()
	} else {
		logger = utils.NewDefaultLogger()
	}

	sets := buildStore(cfg, logger)

	publisher, err := buildPublisher(cfg, logger)
	if err != nil {
		logger.Error("Failed to create event publisher", "backend", cfg.EventBackend, "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	validator := utils.NewValidator()
	questionSetService := services.NewQuestionSetService(sets, logger, validator)
	sessionService := services.NewSessionService(sets, publisher, logger, validator)

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.LoggerMiddleware(logger), gin.Recovery())

	handlerManager := handlers.NewHandlerManager(questionSetService, sessionService, validator, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logger.Info("Shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
		}
	}()

	logger.Info("Starting assessment engine", "port", cfg.Port, "environment", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

// buildStore wires the in-memory question set store, layered with a redis
// read-through cache when one is configured.
func buildStore(cfg *config.Config, logger utils.Logger) store.QuestionSetStore {
	sets := store.NewMemoryStore()
	if cfg.RedisURL == "" {
		return sets
	}

	client, err := cache.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Warn("Invalid redis URL, running without cache", "error", err)
		return sets
	}
	logger.Info("Question set cache enabled", "ttl", cfg.CacheTTL.String())
	return store.NewCachedStore(sets, cache.NewRedisCache(client, logger), cfg.CacheTTL, logger)
}

// buildPublisher selects the event backend. In-process gochannel is the
// default; kafka is opt-in for deployments with downstream consumers.
func buildPublisher(cfg *config.Config, logger utils.Logger) (events.EventPublisher, error) {
	slogLogger := utils.ToSlogLogger(logger)
	if cfg.EventBackend == "kafka" {
		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.EventTopic,
			Logger:       slogLogger,
		})
	}
	return events.NewGoChannelEventPublisher(cfg.EventTopic, slogLogger), nil
}
