package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Memory   MemoryConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	EmbedTopic   string // watermill topic for embed tasks
}

type AIConfig struct {
	// Ordered embedding backends; the first is primary, the rest are
	// fallbacks ("gemini,ollama" means hosted primary with local fallback).
	EmbeddingBackends []string
	OllamaBaseURL     string
	OllamaEmbedModel  string
	GeminiEmbedModel  string

	// Ordered LLM providers for the synthesis fallback chain.
	LLMProviders  []string
	OllamaModel   string
	GeminiModel   string
}

type MemoryConfig struct {
	InactivityThresholdMinutes int
	SchedulerIntervalMinutes   int
	ChunkWindowWords           int
	ChunkOverlapWords          int
	SmallDocWords              int
	SynthesisThreshold         float64
	SynthesisMaxSessions       int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EmbedTopic:   getEnv("EMBED_TASK_TOPIC_NAME", "EMBED_MEMORY_SOURCE"),
		},
		Ai: AIConfig{
			EmbeddingBackends: getEnvAsList("EMBEDDING_BACKENDS", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiEmbedModel:  getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			LLMProviders:      getEnvAsList("LLM_PROVIDERS", "ollama"),
			OllamaModel:       getEnv("LLM_MODEL", "llama3"),
			GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Memory: MemoryConfig{
			InactivityThresholdMinutes: getEnvAsInt("METADATA_INACTIVITY_MINUTES", 60),
			SchedulerIntervalMinutes:   getEnvAsInt("METADATA_TICK_MINUTES", 5),
			ChunkWindowWords:           getEnvAsInt("CHUNK_WINDOW_WORDS", 500),
			ChunkOverlapWords:          getEnvAsInt("CHUNK_OVERLAP_WORDS", 75),
			SmallDocWords:              getEnvAsInt("SMALL_DOC_WORDS", 600),
			SynthesisThreshold:         getEnvAsFloat("SYNTHESIS_THRESHOLD", 0.3),
			SynthesisMaxSessions:       getEnvAsInt("SYNTHESIS_MAX_SESSIONS", 5),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
