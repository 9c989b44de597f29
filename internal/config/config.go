package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL string

	// Kafka
	KafkaBrokers string
	KafkaTopic   string

	// API Configuration
	APIPort string
	APIHost string

	// Public site served from the published rows
	SiteBaseURL string

	// External CSV feed
	FeedURL string

	// SEO rewriter (OpenRouter-compatible completion endpoint)
	SEOAPIURL string
	SEOAPIKey string
	SEOModel  string

	// Image repository contents API
	ImageRepoAPIURL string

	// IndexNow
	IndexNowEndpoint string
	IndexNowKey      string

	// Blob storage for uploaded images
	ImageBucket    string
	ImageCDNDomain string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "sqlite://storepress.db"),
		KafkaBrokers:     getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "product-events"),
		APIPort:          getEnv("API_PORT", "8080"),
		APIHost:          getEnv("API_HOST", "0.0.0.0"),
		SiteBaseURL:      getEnv("SITE_BASE_URL", "https://creativestuff.vercel.app"),
		FeedURL:          getEnv("FEED_URL", "https://raw.githubusercontent.com/alexmalin2020/creative/main/data.csv"),
		SEOAPIURL:        getEnv("SEO_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		SEOAPIKey:        getEnv("SEO_API_KEY", ""),
		SEOModel:         getEnv("SEO_MODEL", "tngtech/deepseek-r1t2-chimera:free"),
		ImageRepoAPIURL:  getEnv("IMAGE_REPO_API_URL", "https://api.github.com/repos/alexmalin2020/creative/contents/images"),
		IndexNowEndpoint: getEnv("INDEXNOW_ENDPOINT", "https://api.indexnow.org/indexnow"),
		IndexNowKey:      getEnv("INDEXNOW_KEY", ""),
		ImageBucket:      getEnv("IMAGE_GCS_BUCKET_NAME", ""),
		ImageCDNDomain:   getEnv("IMAGE_CDN_DOMAIN", ""),
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
