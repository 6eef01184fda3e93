package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Postgres; empty means in-memory stores.
	DatabaseURL string

	// Redis session store; empty means in-memory sessions.
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Extractor selects the entity extraction backend: "pattern" or "model".
	Extractor         string
	ExtractionTimeout time.Duration
	OpenAIAPIKey      string
	OpenAIModel       string

	// SendGrid email configuration; empty API key disables email and logs
	// notifications instead.
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// ReminderInterval is how often the reminder queue is drained.
	ReminderInterval time.Duration

	CORSAllowedOrigins []string

	// Per-IP chat rate limiting; zero disables it.
	ChatRatePerSecond float64
	ChatRateBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		Extractor:         strings.ToLower(strings.TrimSpace(getEnv("EXTRACTOR", "pattern"))),
		ExtractionTimeout: getEnvAsDuration("EXTRACTION_TIMEOUT", 10*time.Second),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "appointments@harborview.health"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Harborview Health"),

		ReminderInterval: getEnvAsDuration("REMINDER_INTERVAL", time.Minute),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		ChatRatePerSecond: getEnvAsFloat("CHAT_RATE_PER_SECOND", 2),
		ChatRateBurst:     getEnvAsInt("CHAT_RATE_BURST", 10),
	}
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
