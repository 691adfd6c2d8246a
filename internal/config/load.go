package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML config file, applies environment overrides and
// validates the result. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnv pulls secrets and model overrides from the environment.
// A .env file in the working directory is honored when present.
func (c *Config) loadEnv() error {
	_ = godotenv.Load()

	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, k)
			}
		}
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKeys = []string{key}
	}

	if c.UsesGemini() && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("GEMINI_API_KEY not set: required when the %q provider is selected", ProviderGemini)
	}

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		c.Gemini.TranscribeModel = model
	}

	return nil
}
