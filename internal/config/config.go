package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Agent    AgentConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	OtelEnabled        bool
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	Jina       string
	Gemini     string
	LLM        string
	IndexTopic string // Resume indexing topic
}

type AIConfig struct {
	EmbeddingProvider string // "ollama", "jina" or "gemini"
	EmbeddingDims     int
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "openai", "deepseek" or "gemini"
	LLMModel          string
	LLMBaseURL        string
	RerankProvider    string // "jina" or "none"
	RerankModel       string
	Temperature       float64
}

type AgentConfig struct {
	MaxToolRounds     int
	ResumeTopK        int
	CandidateTopK     int
	CandidatePrefetch int
	CheckpointBackend string // "memory" or "redis"
	CheckpointTTLHour int
	TaskTTLHour       int
	Timezone          string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Recruiter Assistant"),
		},
		Keys: APIKeys{
			Jina:       getEnv("JINA_API_KEY", ""),
			Gemini:     getEnv("GEMINI_API_KEY", ""),
			LLM:        getEnv("LLM_API_KEY", ""),
			IndexTopic: getEnv("INDEX_TOPIC", "INDEX_RESUME_DOCUMENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingDims:     getEnvAsInt("EMBEDDING_DIMENSIONS", 768),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "qwen3"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			RerankProvider:    getEnv("RERANK_PROVIDER", "none"),
			RerankModel:       getEnv("RERANK_MODEL", "jina-reranker-v2-base-multilingual"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.2),
		},
		Agent: AgentConfig{
			MaxToolRounds:     getEnvAsInt("AGENT_MAX_TOOL_ROUNDS", 5),
			ResumeTopK:        getEnvAsInt("AGENT_RESUME_TOP_K", 5),
			CandidateTopK:     getEnvAsInt("AGENT_CANDIDATE_TOP_K", 5),
			CandidatePrefetch: getEnvAsInt("AGENT_CANDIDATE_PREFETCH", 20),
			CheckpointBackend: getEnv("CHECKPOINT_BACKEND", "memory"),
			CheckpointTTLHour: getEnvAsInt("CHECKPOINT_TTL_HOURS", 24),
			TaskTTLHour:       getEnvAsInt("TASK_TTL_HOURS", 72),
			Timezone:          getEnv("AGENT_TIMEZONE", "Local"),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
