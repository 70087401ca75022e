package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NICHE_FINDER_CONFIG"
	dataDirEnv        = "NICHE_FINDER_DATA_DIR"
	geminiEndpointEnv = "GEMINI_API_ENDPOINT"
	openAIEndpointEnv = "OPENAI_API_ENDPOINT"
	defaultModelEnv   = "NICHE_FINDER_MODEL"
	debugEnv          = "NICHE_FINDER_DEBUG"
)

// Config holds high-level settings required across the application.
type Config struct {
	DataDir      string         `yaml:"dataDir"`
	DefaultModel string         `yaml:"defaultModel"`
	Models       []string       `yaml:"models"`
	Gemini       EndpointConfig `yaml:"gemini"`
	OpenAI       EndpointConfig `yaml:"openai"`
	Debug        bool           `yaml:"debug"`
}

// EndpointConfig defines how to reach one LLM provider API.
type EndpointConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// Load reads the optional .env file, then YAML configuration (if present),
// and finally applies environment overrides.
func Load() Config {
	// .env opcional; un archivo ausente no es un error
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			slog.Warn("cannot read config file, using defaults", "path", path, "error", err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				slog.Warn("cannot parse config file, using defaults", "path", path, "error", err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dataDirEnv); v != "" {
		c.DataDir = v
	}

	if v := os.Getenv(geminiEndpointEnv); v != "" {
		c.Gemini.Endpoint = v
	}

	if v := os.Getenv(openAIEndpointEnv); v != "" {
		c.OpenAI.Endpoint = v
	}

	if v := os.Getenv(defaultModelEnv); v != "" {
		c.DefaultModel = v
	}

	if v := os.Getenv(debugEnv); v != "" {
		c.Debug = v == "1" || v == "true"
	}
}

func mergeConfig(base, override Config) Config {
	if override.DataDir != "" {
		base.DataDir = override.DataDir
	}

	if override.DefaultModel != "" {
		base.DefaultModel = override.DefaultModel
	}

	if len(override.Models) > 0 {
		base.Models = override.Models
	}

	if override.Gemini.Endpoint != "" {
		base.Gemini.Endpoint = override.Gemini.Endpoint
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}

	if override.Debug {
		base.Debug = true
	}

	return base
}

func defaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return Config{
		DataDir:      filepath.Join(home, ".niche-finder"),
		DefaultModel: "gemini-2.5-flash",
		Models: []string{
			"gemini-2.5-flash",
			"gemini-2.5-pro",
			"gpt-4o",
			"gpt-4o-mini",
		},
		Gemini: EndpointConfig{Endpoint: "https://generativelanguage.googleapis.com"},
		OpenAI: EndpointConfig{Endpoint: "https://api.openai.com"},
	}
}
