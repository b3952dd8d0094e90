package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// LLMConfig configures one chat-completion model.
type LLMConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

type Config struct {
	// HTTP listen address, e.g. ":8080"
	Address string `env:"ADDRESS" envDefault:":8080"`

	// OpenAI-compatible backend
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	// Text model used for extraction, fortunes and recommendation reasons
	LLMModel       string  `env:"LLM_MODEL" envDefault:"gpt-4o"`
	LLMTemperature float64 `env:"LLM_TEMPERATURE" envDefault:"1.0"`
	LLMMaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"1200"`

	// Vision model used for handprint analysis
	VisionLLMModel       string  `env:"VISION_LLM_MODEL" envDefault:"gpt-4o-mini"`
	VisionLLMTemperature float64 `env:"VISION_LLM_TEMPERATURE" envDefault:"1.0"`
	VisionLLMMaxTokens   int     `env:"VISION_LLM_MAX_TOKENS" envDefault:"1200"`

	// Session store: "memory" or "redis"
	SessionStore string        `env:"SESSION_STORE" envDefault:"memory"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Recommendation behavior
	MaxRecommendations    int  `env:"MAX_PRODUCT_RECOMMENDATIONS" envDefault:"3"`
	RecommenderFailClosed bool `env:"RECOMMENDER_FAIL_CLOSED" envDefault:"false"`
}

// TextLLM returns the text model settings as one value.
func (c Config) TextLLM() LLMConfig {
	return LLMConfig{Model: c.LLMModel, Temperature: c.LLMTemperature, MaxTokens: c.LLMMaxTokens}
}

// VisionLLM returns the vision model settings as one value.
func (c Config) VisionLLM() LLMConfig {
	return LLMConfig{Model: c.VisionLLMModel, Temperature: c.VisionLLMTemperature, MaxTokens: c.VisionLLMMaxTokens}
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
