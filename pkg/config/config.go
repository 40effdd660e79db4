package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server (report API)
	Port string
	Env  string // development, staging, production

	// Redis (snapshot cache)
	Redis RedisConfig

	// External data sources
	KRX   KRXConfig
	Naver NaverConfig

	// Batch
	Batch BatchConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// KRXConfig holds KRX (한국거래소) data endpoint configuration
type KRXConfig struct {
	BaseURL string
	// 요청 제한: KRX는 봇 트래픽을 차단하므로 보수적으로 잡는다
	RequestsPerSec float64
	Timeout        time.Duration
}

// NaverConfig holds Naver Finance configuration (종목명 조회)
type NaverConfig struct {
	BaseURL string
}

// BatchConfig holds trigger batch configuration
type BatchConfig struct {
	OutputDir  string
	ParamsFile string // optional YAML overriding trigger parameters

	// Cron expressions (with seconds, KST)
	MorningSchedule   string
	AfternoonSchedule string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		KRX: KRXConfig{
			BaseURL:        getEnv("KRX_BASE_URL", "http://data.krx.co.kr"),
			RequestsPerSec: getEnvAsFloat("KRX_REQUESTS_PER_SEC", 2.0),
			Timeout:        getEnvAsDuration("KRX_TIMEOUT", "30s"),
		},

		Naver: NaverConfig{
			BaseURL: getEnv("NAVER_BASE_URL", "https://finance.naver.com"),
		},

		Batch: BatchConfig{
			OutputDir:         getEnv("BATCH_OUTPUT_DIR", "reports"),
			ParamsFile:        getEnv("BATCH_PARAMS_FILE", ""),
			MorningSchedule:   getEnv("BATCH_MORNING_SCHEDULE", "0 45 8 * * 1-5"),
			AfternoonSchedule: getEnv("BATCH_AFTERNOON_SCHEDULE", "0 40 15 * * 1-5"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.KRX.RequestsPerSec <= 0 {
		return fmt.Errorf("KRX_REQUESTS_PER_SEC must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
