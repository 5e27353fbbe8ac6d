package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Registry  RegistryConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// RegistryConfig holds settings for the regulations.gov ingestion collaborator.
type RegistryConfig struct {
	BaseURL      string
	APIKey       string
	PageSize     int
	MaxPages     int
	PollInterval time.Duration
	PollWindow   int // days of postedDate history per poll
}

type AIConfig struct {
	OllamaBaseURL     string
	OllamaModel       string
	GenerationTimeout time.Duration
}

// RetrievalConfig bounds how much grounding material one generation request carries.
type RetrievalConfig struct {
	Cap               int // max documents per candidate set
	ExcerptCharBudget int // per-document excerpt budget after truncation
	PromptTokenBudget int // total prompt budget before excerpt truncation kicks in
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8000"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Registry: RegistryConfig{
			BaseURL:      getEnv("REGULATIONS_API_URL", "https://api.regulations.gov"),
			APIKey:       getEnv("REGULATIONS_API_KEY", "DEMO_KEY"),
			PageSize:     getEnvAsInt("REGULATIONS_PAGE_SIZE", 250),
			MaxPages:     getEnvAsInt("REGULATIONS_MAX_PAGES", 20),
			PollInterval: getEnvAsDuration("REGISTRY_POLL_INTERVAL", time.Hour),
			PollWindow:   getEnvAsInt("REGISTRY_POLL_WINDOW_DAYS", 7),
		},
		Ai: AIConfig{
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("LLM_MODEL", "qwen2.5"),
			GenerationTimeout: getEnvAsDuration("GENERATION_TIMEOUT", 120*time.Second),
		},
		Retrieval: RetrievalConfig{
			Cap:               getEnvAsInt("RETRIEVAL_CAP", 10),
			ExcerptCharBudget: getEnvAsInt("EXCERPT_CHAR_BUDGET", 600),
			PromptTokenBudget: getEnvAsInt("PROMPT_TOKEN_BUDGET", 3500),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
