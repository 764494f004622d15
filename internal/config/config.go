package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Knowledge KnowledgeConfig
	Session   SessionConfig
	Ai        AIConfig
	Feedback  FeedbackConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type KnowledgeConfig struct {
	DataFilePath    string
	TotalCandidates int
	SuggestMargin   int
	RetrievalLimit  int
}

type SessionConfig struct {
	Backend string // "memory" or "redis"
}

type AIConfig struct {
	Provider      string // "ollama" or "openrouter"
	Model         string
	OllamaBaseURL string
	OpenRouterKey string
	OpenRouterURL string
}

type FeedbackConfig struct {
	CSVPath string
	Topic   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Knowledge: KnowledgeConfig{
			DataFilePath:    getEnv("KNOWLEDGE_DATA_FILE", "mht_cet_data.json"),
			TotalCandidates: getEnvAsInt("TOTAL_CANDIDATES", 350000),
			SuggestMargin:   getEnvAsInt("SUGGEST_MARGIN", 50),
			RetrievalLimit:  getEnvAsInt("RETRIEVAL_LIMIT", 5),
		},
		Session: SessionConfig{
			Backend: getEnv("SESSION_BACKEND", "memory"),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "ollama"),
			Model:         getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenRouterKey: getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		},
		Feedback: FeedbackConfig{
			CSVPath: getEnv("FEEDBACK_LOG_PATH", "feedback_log.csv"),
			Topic:   getEnv("FEEDBACK_TOPIC_NAME", "RECORD_FEEDBACK"),
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
