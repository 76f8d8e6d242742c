package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	SEALionAPIKey string
	SEALionAPIURL string
	SEALionModel  string
	GeminiAPIKey  string
	GeminiModel   string

	MaxUploadMB     int
	ExtractMaxPages int

	AllowedOrigins string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "5000"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		SEALionAPIKey: mustEnv("SEALION_API_KEY", ""),
		SEALionAPIURL: mustEnv("SEALION_API_URL", "https://api.sealion.ai/v1"),
		SEALionModel:  mustEnv("SEALION_MODEL", "sealion-7b-instruct"),
		GeminiAPIKey:  mustEnv("GEMINI_API_KEY", ""),
		GeminiModel:   mustEnv("GEMINI_MODEL", ""),

		MaxUploadMB:     mustEnvInt("MAX_UPLOAD_MB", 10),
		ExtractMaxPages: mustEnvInt("EXTRACT_MAX_PAGES", 10),

		AllowedOrigins: mustEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
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
