package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	ServerPort    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	RedisAddr     string
	KafkaBrokers  string
	SessionSecret string
	ForceHTTPS    bool
	OpenAIAPIKey  string
	OpenAIBaseURL string
	PlaceholderURL string
}

// Load reads configuration from the environment. Outside production a
// .env file in the working directory is merged in first.
func Load() (Config, error) {
	env := os.Getenv("ENV")
	if env != "production" {
		// Best effort; the file is optional.
		_ = godotenv.Load()
	}

	cfg := Config{
		Env:            env,
		ServerPort:     getenv("SERVER_PORT", "3000"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBUser:         getenv("DB_USER", "root"),
		DBPass:         os.Getenv("DB_PASS"),
		DBName:         getenv("DB_NAME", "wildlife_gallery"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:   os.Getenv("KAFKA_BROKERS"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		PlaceholderURL: getenv("PLACEHOLDER_URL", "https://placehold.co/400x300/3498db/ffffff?text=Image+Not+Found"),
	}

	if v, err := strconv.ParseBool(os.Getenv("FORCE_HTTPS")); err == nil {
		cfg.ForceHTTPS = v
	}

	// The session secret signs nothing by itself but keys server-side
	// session state; a short secret in production is a fatal misconfig.
	if cfg.Env == "production" && len(cfg.SessionSecret) < 32 {
		return Config{}, errors.New("SESSION_SECRET must be set and at least 32 characters in production")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
