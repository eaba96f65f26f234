package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	GeminiAPIKey string
	GeminiModel  string

	NominatimBaseURL   string
	NominatimUserAgent string

	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	JWTExpiration     time.Duration

	// ImageVerifyFailOpen decides what a failed photo verification
	// counts as. Defaults to pass so provider outages never block
	// submissions.
	ImageVerifyFailOpen bool
	NotificationTTL     time.Duration
}

func Load() (*Config, error) {
	// load .env in dev
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		NominatimBaseURL:    os.Getenv("NOMINATIM_BASE_URL"),
		NominatimUserAgent:  getEnv("NOMINATIM_USER_AGENT", "SudharSetu/1.0"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTExpiration:       time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 12)) * time.Hour,
		ImageVerifyFailOpen: getEnvBool("IMAGE_VERIFY_FAIL_OPEN", true),
		NotificationTTL:     time.Duration(getEnvInt("NOTIFICATION_TTL_SECONDS", 5)) * time.Second,
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be configured")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
