package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Redis   RedisConfig
	LLM     LLMConfig
	Quiz    QuizConfig
	Session SessionConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	AllowOrigins string
}

type LoggerConfig struct {
	Env   string
	Level string
}

type RedisConfig struct {
	URL      string
	Address  string
	Password string
	DB       int
}

// LLMConfig selects and configures the completion provider.
type LLMConfig struct {
	Provider    string // "openai" or "ollama"
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	OpenAI      OpenAIConfig
	Ollama      OllamaConfig
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

type OllamaConfig struct {
	ServerURL string
}

// QuizConfig holds the pacing constants used to size a session's lifetime.
type QuizConfig struct {
	BaseCount      int
	MaxPerTopic    int
	BaseCountdown  int
	CountdownSlack int
}

type SessionConfig struct {
	IDStrategy string // "provider" or "ulid"
	IDPrefix   string
}

// TTLFor returns how long an answer key for totalQuestions questions is kept.
func (q QuizConfig) TTLFor(totalQuestions int) time.Duration {
	return time.Duration(totalQuestions*(q.BaseCountdown+q.CountdownSlack)) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3333)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.allow_origins", "*")

	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_tokens", 16000)
	v.SetDefault("llm.temperature", 1.0)
	v.SetDefault("llm.timeout", 120)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.ollama.server_url", "http://localhost:11434")

	v.SetDefault("quiz.base_count", 5)
	v.SetDefault("quiz.max_per_topic", 50)
	v.SetDefault("quiz.base_countdown", 20)
	v.SetDefault("quiz.countdown_slack", 5)

	v.SetDefault("session.id_strategy", "provider")
	v.SetDefault("session.id_prefix", "chatcmpl-")
}

// LoadConfig reads config.yaml from the working directory (or ./config) when
// present and applies environment overrides on top of the defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Conventional short environment variable names.
	bindAliases(v, map[string][]string{
		"server.port":           {"PORT"},
		"llm.openai.api_key":    {"OPENAI_API_KEY"},
		"llm.openai.base_url":   {"OPENAI_BASE_URL"},
		"llm.ollama.server_url": {"LLM_SERVER"},
		"llm.provider":          {"LLM_PROVIDER"},
		"llm.model":             {"LLM_MODEL"},
		"logger.env":            {"ENV"},
		"redis.url":             {"REDIS_URL"},
		"redis.address":         {"REDIS_ADDRESS"},
		"redis.password":        {"REDIS_PASSWORD"},
	})

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			IdleTimeout:  time.Duration(v.GetInt("server.idle_timeout")) * time.Second,
			AllowOrigins: v.GetString("server.allow_origins"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("redis.url"),
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Model:       v.GetString("llm.model"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     time.Duration(v.GetInt("llm.timeout")) * time.Second,
			OpenAI: OpenAIConfig{
				APIKey:  v.GetString("llm.openai.api_key"),
				BaseURL: v.GetString("llm.openai.base_url"),
			},
			Ollama: OllamaConfig{
				ServerURL: v.GetString("llm.ollama.server_url"),
			},
		},
		Quiz: QuizConfig{
			BaseCount:      v.GetInt("quiz.base_count"),
			MaxPerTopic:    v.GetInt("quiz.max_per_topic"),
			BaseCountdown:  v.GetInt("quiz.base_countdown"),
			CountdownSlack: v.GetInt("quiz.countdown_slack"),
		},
		Session: SessionConfig{
			IDStrategy: strings.ToLower(v.GetString("session.id_strategy")),
			IDPrefix:   v.GetString("session.id_prefix"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindAliases(v *viper.Viper, aliases map[string][]string) {
	for key, envs := range aliases {
		// BindEnv only fails when no key is given.
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai":
		if c.LLM.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when llm.provider is openai")
		}
	case "ollama":
		if c.LLM.Ollama.ServerURL == "" {
			return fmt.Errorf("llm.ollama.server_url is required when llm.provider is ollama")
		}
	default:
		return fmt.Errorf("unsupported llm.provider: %q", c.LLM.Provider)
	}

	switch c.Session.IDStrategy {
	case "provider", "ulid":
	default:
		return fmt.Errorf("unsupported session.id_strategy: %q", c.Session.IDStrategy)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.Quiz.BaseCount < 0 || c.Quiz.MaxPerTopic <= 0 || c.Quiz.BaseCount > c.Quiz.MaxPerTopic {
		return fmt.Errorf("invalid quiz counts: base_count=%d max_per_topic=%d", c.Quiz.BaseCount, c.Quiz.MaxPerTopic)
	}
	if c.Quiz.BaseCountdown+c.Quiz.CountdownSlack <= 0 {
		return fmt.Errorf("quiz countdown must be positive")
	}
	return nil
}
