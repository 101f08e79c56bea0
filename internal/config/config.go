package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string
	DatabaseURL      string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	SecretKey        string
	QuestionsPerPage int
	SwaggerHost      string
}

// Load builds Config from environment with sensible defaults.
// SECRET_KEY must be stable across restarts or all outstanding sessions invalidate.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/trivia?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		SecretKey:        getEnv("SECRET_KEY", "change-me"),
		QuestionsPerPage: getEnvInt("QUESTIONS_PER_PAGE", 8),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
