package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const credentialsDir = ".partnerhub"

type Config struct {
	Environment     string
	APIBaseURL      string
	CredentialsFile string
	RequestTimeout  time.Duration // zero keeps the transport default
	LogLevel        string

	Sandbox SandboxConfig
}

// SandboxConfig configures the in-process API double started by cmd/server.
type SandboxConfig struct {
	Port         string
	PublicURL    string // origin the sandbox advertises in upload and image URLs
	DatabaseURL  string // postgres URL or sqlite DSN; empty keeps an in-memory sqlite database
	JWTSecret    string
	S3Bucket     string
	S3Region     string
	RateLimitRPS int
	AWSAccessKey string
	AWSSecretKey string
	FromEmail    string
	SMTPHost     string // mail stays in the in-memory outbox when empty
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	BaseURL      string // front-end origin used in password reset links
}

func Load() *Config {
	timeoutSeconds, _ := strconv.Atoi(getEnv("PARTNERHUB_REQUEST_TIMEOUT", "0"))
	rateLimitRPS, _ := strconv.Atoi(getEnv("RATE_LIMIT_RPS", "100"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	port := getEnv("PORT", "8000")

	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		APIBaseURL:      getEnv("PARTNERHUB_API_URL", "http://localhost:8000/api/v1"),
		CredentialsFile: getEnv("PARTNERHUB_CREDENTIALS_FILE", defaultCredentialsFile()),
		RequestTimeout:  time.Duration(max(timeoutSeconds, 0)) * time.Second,
		LogLevel:        getEnv("LOG_LEVEL", ""),
		Sandbox: SandboxConfig{
			Port:         port,
			PublicURL:    getEnv("SANDBOX_PUBLIC_URL", "http://localhost:"+port),
			DatabaseURL:  getEnv("DATABASE_URL", ""),
			JWTSecret:    getEnv("JWT_SECRET", "sandbox-jwt-secret"),
			S3Bucket:     getEnv("S3_BUCKET", "partnerhub-uploads"),
			S3Region:     getEnv("S3_REGION", "ap-northeast-2"),
			RateLimitRPS: rateLimitRPS,
			AWSAccessKey: getEnv("AWS_ACCESS_KEY_ID", "sandbox"),
			AWSSecretKey: getEnv("AWS_SECRET_ACCESS_KEY", "sandbox-secret"),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@partnerhub.local"),
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     smtpPort,
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			BaseURL:      getEnv("BASE_URL", "http://localhost:3000"),
		},
	}
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(credentialsDir, "credentials.json")
	}
	return filepath.Join(home, credentialsDir, "credentials.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
