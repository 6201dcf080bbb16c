package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	HTTPAddr        string
	Environment     string
	LogLevel        string
	Storage         string
	MongoConnString string
	MongoDatabase   string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	TokenTTL        time.Duration
	WorkerCount     int
	TaskBuffer      int
	TaskMaxAttempts int
	// AnnouncementSchedule is a cron spec for refreshing the announcement.
	AnnouncementSchedule string
	ShutdownTimeout      time.Duration
	SMTPAddr             string
	SMTPFrom             string
}

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func Load() Config {
	return Config{
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Storage:              getEnv("STORAGE", StorageMongo),
		MongoConnString:      getEnv("MONGODB_CONNSTRING", "mongodb://localhost:27017/?replicaSet=rs0"),
		MongoDatabase:        getEnv("MONGODB_DATABASE", "conference-central"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		TokenTTL:             time.Duration(getEnvInt("TOKEN_TTL_HOURS", 8)) * time.Hour,
		WorkerCount:          getEnvInt("WORKER_COUNT", 2),
		TaskBuffer:           getEnvInt("TASK_BUFFER", 64),
		TaskMaxAttempts:      getEnvInt("TASK_MAX_ATTEMPTS", 3),
		AnnouncementSchedule: getEnv("ANNOUNCEMENT_SCHEDULE", "@every 1h"),
		ShutdownTimeout:      time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 15)) * time.Second,
		SMTPAddr:             getEnv("SMTP_ADDR", ""),
		SMTPFrom:             getEnv("SMTP_FROM", "noreply@conference-central.local"),
	}
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
