// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	DatabasePath string
	JWTSecretKey string
	// OllamaURL and GemmaModel drive the chat flow. Either being empty is
	// fatal for chat specifically; the rest of the app keeps working.
	OllamaURL            string
	GemmaModel           string
	OllamaTimeoutSeconds int
	Environment          string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		DatabasePath:         getEnv("DATABASE_PATH", "astraid.db"),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		OllamaURL:            getEnv("OLLAMA_URL", ""),
		GemmaModel:           getEnv("GEMMA_MODEL", ""),
		OllamaTimeoutSeconds: getEnvAsInt("OLLAMA_TIMEOUT_SECONDS", 30),
		Environment:          env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.OllamaURL == "" {
			missing = append(missing, "OLLAMA_URL")
		}
		if cfg.GemmaModel == "" {
			missing = append(missing, "GEMMA_MODEL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
