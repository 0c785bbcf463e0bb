package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort        string
	StorageBackend  string
	SlotName        string
	DataDir         string
	RedisURL        string
	RedisPoolSize   int
	RedisKeyPrefix  string
	DatabaseURL     string
	DBPoolSize      int
	KafkaBrokers    []string
	KafkaTopic      string
	KafkaPartitions int
	KafkaGroupID    string
	LogLevel        string
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// LoadEnvFile loads key=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Get returns the application config (loads once from env).
func Get() *Config {
	cfgOnce.Do(func() {
		cfg = Load()
	})
	return cfg
}

// Load reads the configuration from the current environment.
func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		SlotName:        getEnv("SLOT_NAME", "tasks"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPoolSize:   getIntEnv("REDIS_POOL_SIZE", 10),
		RedisKeyPrefix:  getEnv("REDIS_KEY_PREFIX", "tasklist:"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBPoolSize:      getIntEnv("DB_POOL_SIZE", 5),
		KafkaBrokers:    getSliceEnv("KAFKA_BROKERS"),
		KafkaTopic:      getEnv("KAFKA_INTENT_TOPIC", "task-intents"),
		KafkaPartitions: getIntEnv("KAFKA_PARTITIONS", 1),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "task-list"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// KafkaEnabled reports whether the intent ingress should run.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

// getSliceEnv splits a comma-separated variable. Unset means no values.
func getSliceEnv(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
