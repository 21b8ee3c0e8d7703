package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables or a config file.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	Port            string        `mapstructure:"PORT" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	DatabaseURL string `mapstructure:"DATABASE_URL" validate:"required,url|uri"`

	// Empty RedisAddr disables the feed cache
	RedisAddr     string        `mapstructure:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	FeedCacheTTL  time.Duration `mapstructure:"FEED_CACHE_TTL" validate:"gte=0"`

	LLMProvider       string        `mapstructure:"LLM_PROVIDER" validate:"required,oneof=openrouter gemini"`
	LLMModel          string        `mapstructure:"LLM_MODEL"`
	OpenRouterAPIKey  string        `mapstructure:"OPENROUTER_API_KEY" validate:"required_if=LLMProvider openrouter"`
	OpenRouterBaseURL string        `mapstructure:"OPENROUTER_BASE_URL" validate:"required,url"`
	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY" validate:"required_if=LLMProvider gemini"`
	GenerationTimeout time.Duration `mapstructure:"GENERATION_TIMEOUT" validate:"required"`

	StorageType        string `mapstructure:"STORAGE_TYPE" validate:"required,oneof=none local s3"`
	StorageLocalPath   string `mapstructure:"STORAGE_LOCAL_PATH" validate:"required_if=StorageType local"`
	AWSS3Bucket        string `mapstructure:"AWS_S3_BUCKET" validate:"required_if=StorageType s3"`
	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=1"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var durationKeys = []string{"SHUTDOWN_TIMEOUT", "FEED_CACHE_TTL", "GENERATION_TIMEOUT"}

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("FEED_CACHE_TTL", "30s")
	v.SetDefault("LLM_PROVIDER", "openrouter")
	v.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("GENERATION_TIMEOUT", "60s")
	v.SetDefault("STORAGE_TYPE", "none")
	v.SetDefault("STORAGE_LOCAL_PATH", "./storage/completions")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Optional config file
	_ = v.ReadInConfig()

	keys := []string{
		"APP_ENV",
		"PORT",
		"SHUTDOWN_TIMEOUT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"DATABASE_URL",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"FEED_CACHE_TTL",
		"LLM_PROVIDER",
		"LLM_MODEL",
		"OPENROUTER_BASE_URL",
		"GEMINI_API_KEY",
		"GENERATION_TIMEOUT",
		"STORAGE_TYPE",
		"STORAGE_LOCAL_PATH",
		"AWS_S3_BUCKET",
		"AWS_REGION",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST",
		"CORS_ALLOWED_ORIGINS",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
	// OPENAI_API_KEY is accepted for OpenAI-compatible deployments
	_ = v.BindEnv("OPENROUTER_API_KEY", "OPENROUTER_API_KEY", "OPENAI_API_KEY")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Parse duration types that may come as string
	durations := map[string]*time.Duration{
		"SHUTDOWN_TIMEOUT":   &c.ShutdownTimeout,
		"FEED_CACHE_TTL":     &c.FeedCacheTTL,
		"GENERATION_TIMEOUT": &c.GenerationTimeout,
	}
	for _, key := range durationKeys {
		if s := v.GetString(key); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", key, err)
			}
			*durations[key] = d
		}
	}

	c.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &c, nil
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
