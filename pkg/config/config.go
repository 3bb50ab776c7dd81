package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

type Config struct {
	API      APIConfig
	Server   ServerConfig
	Session  SessionConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Client   ClientConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

// APIConfig describes the rag-iishka backend the client talks to.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type SessionConfig struct {
	Store string // memory, redis or postgres
	TTL   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ClientConfig struct {
	CredentialsFile      string
	Locale               string
	DocumentsLimit       int
	AutoProcess          bool
	AutoProcessDelay     time.Duration
	DefaultLoginEmail    string
	DefaultLoginPassword string
}

func Load() (*Config, error) {
	// .env is optional, plain environment variables work the same way
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	httpTimeout, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "120"))
	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "180"))
	sessionTTL, _ := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "168"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	docsLimit, _ := strconv.Atoi(getEnv("DOCUMENTS_LIMIT", "50"))
	autoProcessDelay, _ := strconv.Atoi(getEnv("AUTO_PROCESS_DELAY_MS", "500"))
	autoProcess := getEnv("AUTO_PROCESS", "true") == "true"

	if docsLimit <= 0 {
		docsLimit = 50
	}

	return &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
			Timeout: time.Duration(httpTimeout) * time.Second,
		},
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Session: SessionConfig{
			Store: getEnv("SESSION_STORE", SessionStoreMemory),
			TTL:   time.Duration(sessionTTL) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5433"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "rag_iishka"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Client: ClientConfig{
			CredentialsFile:      getEnv("CLIENT_CREDENTIALS_FILE", defaultCredentialsFile()),
			Locale:               getEnv("CLIENT_LOCALE", getEnv("LANG", "ru")),
			DocumentsLimit:       docsLimit,
			AutoProcess:          autoProcess,
			AutoProcessDelay:     time.Duration(autoProcessDelay) * time.Millisecond,
			DefaultLoginEmail:    getEnv("DEFAULT_LOGIN_EMAIL", ""),
			DefaultLoginPassword: getEnv("DEFAULT_LOGIN_PASSWORD", ""),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rag-iishka", "credentials.json")
	}
	return filepath.Join(home, ".rag-iishka", "credentials.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
