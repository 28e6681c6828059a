package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	CORS      CORSConfig
	Redis     RedisConfig
	Cache     CacheConfig
	S3        S3Config
	Scheduler SchedulerConfig
	Live      LiveConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	Environment    string
	MaxUploadBytes int64
}

// BackendConfig points at the upstream catalog REST API.
type BackendConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// ServiceToken authenticates background jobs (scheduler, export) that have no caller to forward
	ServiceToken string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	Driver string // memory, redis
	TTL    time.Duration
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

type SchedulerConfig struct {
	LowStockSpec   string
	CachePurgeSpec string
}

type LiveConfig struct {
	SearchDebounce time.Duration
	SearchLimit    int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			MaxUploadBytes: int64(parseInt(getEnv("MAX_UPLOAD_BYTES", "10485760"), 10<<20)),
		},
		Backend: BackendConfig{
			BaseURL:      strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:5000/api"), "/"),
			Timeout:      parseDuration(getEnv("BACKEND_TIMEOUT", "15s"), 15*time.Second),
			UserAgent:    getEnv("BACKEND_USER_AGENT", "catalog-admin/1.0"),
			ServiceToken: getEnv("BACKEND_SERVICE_TOKEN", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Cache: CacheConfig{
			Driver: getEnv("CACHE_DRIVER", "memory"),
			TTL:    parseDuration(getEnv("CACHE_TTL", "30s"), 30*time.Second),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-northeast-2"),
			Bucket:          getEnv("AWS_S3_BUCKET", "catalog-admin-uploads"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Scheduler: SchedulerConfig{
			LowStockSpec:   getEnv("LOW_STOCK_SCAN_SPEC", "@every 15m"),
			CachePurgeSpec: getEnv("CACHE_PURGE_SPEC", "@every 1m"),
		},
		Live: LiveConfig{
			SearchDebounce: parseDuration(getEnv("SEARCH_DEBOUNCE", "300ms"), 300*time.Millisecond),
			SearchLimit:    parseInt(getEnv("SEARCH_LIMIT", "10"), 10),
		},
	}

	if config.Cache.Driver == "redis" && !config.Redis.Enabled {
		return nil, fmt.Errorf("CACHE_DRIVER=redis requires REDIS_ENABLED=true")
	}

	return config, nil
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
