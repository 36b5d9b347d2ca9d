package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "CORS_ALLOW_ORIGINS", "UPLOAD_DIR", "OUTPUT_DIR",
		"OLLAMA_URL", "OLLAMA_MODEL", "OLLAMA_TIMEOUT_SECONDS", "MAX_UPLOAD_MB",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.OllamaModel == "" {
		t.Error("OllamaModel is empty")
	}
	if cfg.OllamaTimeout != 600*time.Second {
		t.Errorf("OllamaTimeout = %v", cfg.OllamaTimeout)
	}
	if cfg.MaxUploadBytes != 16<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "PROD")
	t.Setenv("OLLAMA_MODEL", "llama3.1:8b")
	t.Setenv("OLLAMA_TIMEOUT_SECONDS", "30")
	t.Setenv("MAX_UPLOAD_MB", "4")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.OllamaModel != "llama3.1:8b" {
		t.Errorf("OllamaModel = %q", cfg.OllamaModel)
	}
	if cfg.OllamaTimeout != 30*time.Second {
		t.Errorf("OllamaTimeout = %v", cfg.OllamaTimeout)
	}
	if cfg.MaxUploadBytes != 4<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Errorf("CORSAllowOrigin = %v", cfg.CORSAllowOrigin)
	}
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 5},
		{"abc", 5},
		{"-1", 5},
		{"0", 5},
		{"42", 42},
		{" 42 ", 42},
	}
	for _, tt := range tests {
		t.Setenv("TEST_INT", tt.raw)
		if got := getEnvInt("TEST_INT", 5); got != tt.want {
			t.Errorf("getEnvInt(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
