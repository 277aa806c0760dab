package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	// Game
	TickInterval  time.Duration
	SearchBudget  time.Duration
	BotDifficulty string
	HumanColor    string
	MessageLimit  int
	MaxEvents     int
	LogFile       string

	// Server
	Port               string
	ReleaseMode        bool
	AllowedOrigins     []string
	FrontendURL        string
	JWTSecret          string
	SessionTokenTTL    time.Duration
	SessionIdleTimeout time.Duration

	// Cache
	RedisURL      string
	RedisPassword string
}

var AppConfig *Config

func LoadConfig() *Config {
	// Game
	tickInterval := GetEnvAsDuration("TICK_INTERVAL", 16*time.Millisecond)
	searchBudget := GetEnvAsDuration("SEARCH_BUDGET", time.Second)
	botDifficulty := strings.ToLower(GetEnv("BOT_DIFFICULTY", "hard"))
	humanColor := strings.ToLower(GetEnv("HUMAN_COLOR", "first"))
	messageLimit := GetEnvAsInt("MESSAGE_LIMIT", 10)
	maxEvents := GetEnvAsInt("MAX_EVENTS", 64)
	logFile := GetEnv("LOG_FILE", "connect4.log")

	// Frontend & CORS
	port := GetEnv("PORT", "8080")
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		for _, origin := range strings.Split(allowedOriginsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	tokenTTLMin := GetEnvAsInt("SESSION_TOKEN_TTL_MINUTES", 120)
	idleTimeout := GetEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute)

	AppConfig = &Config{
		TickInterval:       tickInterval,
		SearchBudget:       searchBudget,
		BotDifficulty:      botDifficulty,
		HumanColor:         humanColor,
		MessageLimit:       messageLimit,
		MaxEvents:          maxEvents,
		LogFile:            logFile,
		Port:               port,
		ReleaseMode:        GetEnvAsBool("RELEASE_MODE", false),
		AllowedOrigins:     allowedOrigins,
		FrontendURL:        frontendURL,
		JWTSecret:          jwtSecret,
		SessionTokenTTL:    time.Duration(tokenTTLMin) * time.Minute,
		SessionIdleTimeout: idleTimeout,
		RedisURL:           GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:      GetEnv("REDIS_PASSWORD", ""),
	}

	return AppConfig
}

// Validate rejects settings the game loop cannot run with.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return errors.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.SearchBudget <= 0 {
		return errors.Errorf("SEARCH_BUDGET must be positive, got %s", c.SearchBudget)
	}
	if c.MessageLimit < 1 {
		return errors.Errorf("MESSAGE_LIMIT must be at least 1, got %d", c.MessageLimit)
	}
	if c.MaxEvents < c.MessageLimit {
		return errors.Errorf("MAX_EVENTS (%d) must not be below MESSAGE_LIMIT (%d)", c.MaxEvents, c.MessageLimit)
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts Go duration strings ("250ms", "2s") or a bare
// number of milliseconds.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
