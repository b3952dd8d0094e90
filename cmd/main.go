package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	zlog "github.com/rs/zerolog/log"

	"mystica/pkg/agents"
	"mystica/pkg/api"
	"mystica/pkg/clients/openai"
	"mystica/pkg/config"
	"mystica/pkg/logging"
	"mystica/pkg/metrics"
	"mystica/pkg/middleware"
	"mystica/pkg/repository/catalog"
	"mystica/pkg/repository/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config failed: %v", err)
	}
	logging.Setup()

	reg := metrics.NewRegistry()

	var sessions session.Repository
	switch cfg.SessionStore {
	case "redis":
		sessions = session.NewRedisRepository(session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		}, reg)
	case "memory":
		sessions = session.NewMemoryRepository(cfg.SessionTTL, reg)
	default:
		log.Fatalf("unknown session store: %s", cfg.SessionStore)
	}

	textLLM := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.TextLLM())
	visionLLM := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.VisionLLM())
	if err := textLLM.Verify(context.Background()); err != nil {
		zlog.Warn().Err(err).Msg("text model connectivity check failed")
	}

	policy := agents.FailOpen
	if cfg.RecommenderFailClosed {
		policy = agents.FailClosed
	}

	workflow := agents.NewWorkflow(
		agents.NewExtractor(textLLM),
		agents.NewFortuneTeller(textLLM),
		agents.NewAnalyzer(visionLLM),
		agents.NewRecommender(textLLM, cfg.MaxRecommendations, policy),
		catalog.NewRepository(),
		sessions,
		reg,
	)

	server := echo.New()
	server.HideBanner = true
	server.Use(echomw.Recover())
	server.Use(middleware.RequestLogger(reg))

	handlers := api.NewHandlers(workflow, sessions)
	handlers.Register(server.Group("/api/v1"))

	server.GET("/metrics", reg.EchoHandlerText)
	server.GET("/metrics.json", reg.EchoHandlerJSON)
	server.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(200)
	})

	if err := server.Start(cfg.Address); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
