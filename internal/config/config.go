package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	ArtifactSource string
	ArtifactDir    string
	VectorizerKey  string
	ClassifierKey  string
	CategoriesPath string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	GCSBucket          string
	GCSCredentialsFile string

	ArtifactFetchRetries int

	MaxUploadBytes     int64
	APIRateLimitRPS    float64
	APIRateLimitBurst  int
	APIMaxInFlight     int
	APIQueueWaitMillis int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		ArtifactSource: mustEnv("ARTIFACT_SOURCE", "local"),
		ArtifactDir:    mustEnv("ARTIFACT_DIR", "./artifacts"),
		VectorizerKey:  mustEnv("VECTORIZER_KEY", "tfidf.json"),
		ClassifierKey:  mustEnv("CLASSIFIER_KEY", "clf.json"),
		CategoriesPath: mustEnv("CATEGORIES_PATH", ""),

		S3Bucket:    mustEnv("S3_BUCKET", ""),
		S3Region:    mustEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  mustEnv("S3_ENDPOINT", ""),
		S3AccessKey: mustEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: mustEnv("S3_SECRET_KEY", ""),

		GCSBucket:          mustEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: mustEnv("GCS_CREDENTIALS_FILE", ""),

		ArtifactFetchRetries: mustEnvInt("ARTIFACT_FETCH_RETRIES", 3),

		MaxUploadBytes:     int64(mustEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		APIRateLimitRPS:    mustEnvFloat("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst:  mustEnvInt("API_RATE_LIMIT_BURST", 10),
		APIMaxInFlight:     mustEnvInt("API_MAX_IN_FLIGHT", 1),
		APIQueueWaitMillis: mustEnvInt("API_QUEUE_WAIT_MS", 2000),
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

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
