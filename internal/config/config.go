package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	Version        string
	LogLevel       string
	OpenAIKey      string
	OpenAIModel    string // Chat model used for classification and drafting
	OpenAITimeout  int    // OpenAI API timeout in seconds, per call
	SampleDataPath string // CSV fixture with sample support emails
	SeedOnStartup  bool   // Whether to load the sample dataset at boot
	SendGridAPIKey string // SendGrid API key for dispatching approved replies
	ReplyFromEmail string // From address on dispatched replies
	ReplyFromName  string // From display name on dispatched replies
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		Version:        getEnv("VERSION", "1.0.0"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeout:  getEnvInt("OPENAI_TIMEOUT", 30),
		SampleDataPath: getEnv("SAMPLE_DATA_PATH", "data/sample_support_emails.csv"),
		SeedOnStartup:  getEnvBool("SEED_ON_STARTUP", true),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		ReplyFromEmail: getEnv("REPLY_FROM_EMAIL", "support@triage.local"),
		ReplyFromName:  getEnv("REPLY_FROM_NAME", "Support Team"),
	}

	return config
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as boolean with a default fallback
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "triage").
		Str("version", c.Version).
		Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}
