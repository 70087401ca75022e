package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(dataDirEnv, "")
	t.Setenv(geminiEndpointEnv, "")
	t.Setenv(openAIEndpointEnv, "")
	t.Setenv(defaultModelEnv, "")
	t.Setenv(debugEnv, "")

	cfg := Load()

	if cfg.DefaultModel != "gemini-2.5-flash" {
		t.Errorf("unexpected default model: %s", cfg.DefaultModel)
	}

	if cfg.Gemini.Endpoint == "" || cfg.OpenAI.Endpoint == "" {
		t.Error("expected default endpoints")
	}

	if len(cfg.Models) == 0 {
		t.Error("expected default model list")
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yaml := `
dataDir: /tmp/from-file
defaultModel: gpt-4o
gemini:
  endpoint: https://gemini.example.org
`
	if err := os.WriteFile(configPath, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(configPathEnv, configPath)
	t.Setenv(dataDirEnv, "/tmp/from-env")
	t.Setenv(geminiEndpointEnv, "")
	t.Setenv(openAIEndpointEnv, "")
	t.Setenv(defaultModelEnv, "")
	t.Setenv(debugEnv, "")

	cfg := Load()

	// El archivo pisa los defaults, el entorno pisa al archivo
	if cfg.DataDir != "/tmp/from-env" {
		t.Errorf("expected env override for dataDir, got %s", cfg.DataDir)
	}

	if cfg.DefaultModel != "gpt-4o" {
		t.Errorf("expected file override for model, got %s", cfg.DefaultModel)
	}

	if cfg.Gemini.Endpoint != "https://gemini.example.org" {
		t.Errorf("expected file override for gemini endpoint, got %s", cfg.Gemini.Endpoint)
	}

	// Lo no especificado conserva su default
	if cfg.OpenAI.Endpoint != "https://api.openai.com" {
		t.Errorf("expected default openai endpoint, got %s", cfg.OpenAI.Endpoint)
	}
}

func TestLoad_BadFileFallsBackToDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("{not yaml:::"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(configPathEnv, configPath)
	t.Setenv(dataDirEnv, "")
	t.Setenv(geminiEndpointEnv, "")
	t.Setenv(openAIEndpointEnv, "")
	t.Setenv(defaultModelEnv, "")
	t.Setenv(debugEnv, "")

	cfg := Load()

	if cfg.DefaultModel != "gemini-2.5-flash" {
		t.Errorf("expected defaults for bad file, got %s", cfg.DefaultModel)
	}
}
