package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBDriver   string // sqlite or postgres
	DBName     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBPort     string

	JWTKey      string
	JWTIssuer   string
	JWTAudience string

	BcryptCost int

	CORSOrigins string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "5000"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBName:     getEnv("DB_NAME", "edusync.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey:      getEnv("JWT_SECRET_KEY", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", ""),
		JWTAudience: getEnv("JWT_AUDIENCE", ""),

		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
	}

	// Tokens cannot be signed or checked without these, so refuse to start.
	if AppConfig.JWTKey == "" || AppConfig.JWTIssuer == "" || AppConfig.JWTAudience == "" {
		log.Fatal("JWT_SECRET_KEY, JWT_ISSUER and JWT_AUDIENCE must be configured")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
