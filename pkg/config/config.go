package config

import (
	"os"
	"strconv"
	"time"

	"github.com/anonto42/threadboard/backend/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	Env                 string
	PostgresConnStr     string
	MongoURI            string
	MongoDatabase       string
	CommentsCollection  string
	StoreTimeout        time.Duration
	CommentWriteRetries int
}

// Load reads the configuration from the environment, after merging in a .env
// file from the working directory when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Info.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		PostgresConnStr:     getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:            getEnv("MONGO_URI", ""),
		MongoDatabase:       getEnv("MONGO_DB", "forum"),
		CommentsCollection:  getEnv("COMMENTS_COLLECTION", "comments"),
		StoreTimeout:        getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		CommentWriteRetries: getEnvInt("COMMENT_WRITE_RETRIES", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn.Printf("ignoring invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		logger.Warn.Printf("ignoring invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
