package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	AI       AIConfig
	GigaChat GigaChatConfig
	Redis    RedisConfig
	Chat     ChatConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level   string
	Service string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// AIConfig selects the resolver used by the chat agent. Provider is one of
// "deepseek", "openai" or "gigachat"; the first two share the
// OpenAI-compatible client.
type AIConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

// RedisConfig is optional; an empty Host keeps real-time events in process.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type ChatConfig struct {
	Workers        int
	QueueSize      int
	HistoryLimit   int
	KnowledgeLimit int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	aiMaxTokens, _ := strconv.Atoi(getEnv("AI_MAX_TOKENS", "1000"))
	aiTemperature, _ := strconv.ParseFloat(getEnv("AI_TEMPERATURE", "0.3"), 32)
	aiTimeout, _ := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "30"))
	redisPort, _ := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	workers, _ := strconv.Atoi(getEnv("CHAT_WORKERS", "4"))
	queueSize, _ := strconv.Atoi(getEnv("CHAT_QUEUE_SIZE", "100"))
	historyLimit, _ := strconv.Atoi(getEnv("CHAT_HISTORY_LIMIT", "10"))
	knowledgeLimit, _ := strconv.Atoi(getEnv("CHAT_KNOWLEDGE_LIMIT", "3"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	provider := getEnv("AI_PROVIDER", "deepseek")

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "helpdesk"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		AI: AIConfig{
			Provider:    provider,
			APIKey:      getEnv("AI_API_KEY", ""),
			BaseURL:     getEnv("AI_BASE_URL", defaultBaseURL(provider)),
			Model:       getEnv("AI_MODEL", defaultModel(provider)),
			MaxTokens:   aiMaxTokens,
			Temperature: float32(aiTemperature),
			Timeout:     time.Duration(aiTimeout) * time.Second,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Chat: ChatConfig{
			Workers:        workers,
			QueueSize:      queueSize,
			HistoryLimit:   historyLimit,
			KnowledgeLimit: knowledgeLimit,
		},
		Logger: LoggerConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Service: getEnv("SERVICE_NAME", "helpdesk-agent"),
		},
	}, nil
}

func defaultBaseURL(provider string) string {
	switch provider {
	case "openai":
		return "https://api.openai.com/v1"
	case "gigachat":
		return ""
	default:
		return "https://api.deepseek.com/v1"
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "openai":
		return "gpt-4o-mini"
	case "gigachat":
		return "GigaChat"
	default:
		return "deepseek-chat"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
