package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"API_PORT", "ARTIFACT_SOURCE", "ARTIFACT_DIR", "VECTORIZER_KEY", "CLASSIFIER_KEY",
		"MAX_UPLOAD_BYTES", "API_RATE_LIMIT_RPS", "API_MAX_IN_FLIGHT", "API_QUEUE_WAIT_MS",
		"ARTIFACT_FETCH_RETRIES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.APIPort)
	}
	if cfg.ArtifactSource != "local" || cfg.ArtifactDir != "./artifacts" {
		t.Fatalf("expected local artifacts in ./artifacts, got %q %q", cfg.ArtifactSource, cfg.ArtifactDir)
	}
	if cfg.VectorizerKey != "tfidf.json" || cfg.ClassifierKey != "clf.json" {
		t.Fatalf("unexpected artifact keys %q %q", cfg.VectorizerKey, cfg.ClassifierKey)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected 10MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitRPS != 0 {
		t.Fatalf("expected rate limit disabled by default, got %f", cfg.APIRateLimitRPS)
	}
	if cfg.APIMaxInFlight != 1 {
		t.Fatalf("expected one in-flight classification by default, got %d", cfg.APIMaxInFlight)
	}
	if cfg.ArtifactFetchRetries != 3 {
		t.Fatalf("expected 3 fetch retries, got %d", cfg.ArtifactFetchRetries)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("ARTIFACT_SOURCE", "s3")
	t.Setenv("S3_BUCKET", "models")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("API_RATE_LIMIT_BURST", "4")
	t.Setenv("API_MAX_IN_FLIGHT", "3")

	cfg := Load()
	if cfg.ArtifactSource != "s3" || cfg.S3Bucket != "models" || cfg.S3Endpoint != "http://minio:9000" {
		t.Fatalf("unexpected s3 settings %+v", cfg)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Fatalf("expected upload limit 2048, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitRPS != 2.5 || cfg.APIRateLimitBurst != 4 {
		t.Fatalf("unexpected rate limit %f/%d", cfg.APIRateLimitRPS, cfg.APIRateLimitBurst)
	}
	if cfg.APIMaxInFlight != 3 {
		t.Fatalf("expected max in-flight 3, got %d", cfg.APIMaxInFlight)
	}
}

func TestLoadFallsBackOnMalformedNumbers(t *testing.T) {
	t.Setenv("API_MAX_IN_FLIGHT", "many")
	t.Setenv("API_RATE_LIMIT_RPS", "fast")

	cfg := Load()
	if cfg.APIMaxInFlight != 1 {
		t.Fatalf("expected fallback max in-flight 1, got %d", cfg.APIMaxInFlight)
	}
	if cfg.APIRateLimitRPS != 0 {
		t.Fatalf("expected fallback rate 0, got %f", cfg.APIRateLimitRPS)
	}
}
