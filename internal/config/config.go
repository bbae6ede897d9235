package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"currency-converter/internal/apperr"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL = "https://api.apilayer.com/exchangerates_data/convert"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Logging LoggingConfig
}
type ServerConfig struct {
	Port         string
	Host         string
	Mode         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}
type APIConfig struct {
	Key     string // ключ apilayer, обязателен
	URL     string
	Timeout time.Duration
}
type SessionConfig struct {
	Store string // "memory" или "redis"
	TTL   time.Duration
}
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}
type LoggingConfig struct {
	Level      string // "debug", "info", "warn", "error"
	Format     string // "json" или "text"
	Output     string // "stdout", "stderr" или путь к файлу
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Метод для получения адреса сервера
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
func getEnv(key string, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
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
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// Load читает .env (если есть) и переменные окружения.
// Без APILAYER_API_KEY приложение не стартует.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию только из окружения процесса
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("HOST", "0.0.0.0"),
			Mode:         getEnv("GIN_MODE", "debug"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 10*time.Second),
		},
		API: APIConfig{
			Key:     getEnv("APILAYER_API_KEY", ""),
			URL:     getEnv("EXCHANGE_API_URL", DefaultAPIURL),
			Timeout: getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Store: strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
			TTL:   getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.API.Key == "" {
		return apperr.Configuration("APILAYER_API_KEY is not defined")
	}
	if c.API.URL == "" {
		return apperr.Configuration("EXCHANGE_API_URL must not be empty")
	}
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return apperr.Configuration("SESSION_STORE must be \"memory\" or \"redis\", got " + strconv.Quote(c.Session.Store))
	}
	return nil
}
