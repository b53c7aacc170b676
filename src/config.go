package src

import (
	"errors"
	"fmt"
	"os"

	"summarizer/internal/config"
	"summarizer/src/model"

	"github.com/kelseyhightower/envconfig"
)

// ModelName is the Gemini model every summary is requested from.
const ModelName = "gemini-1.5-flash"

type Config struct {
	LogConfig    model.LogConfig    `yaml:"log" envconfig:"LOG"`
	GeminiConfig model.GeminiConfig `yaml:"gemini" envconfig:"GEMINI"`
	StoreConfig  model.StoreConfig  `yaml:"store" envconfig:"STORE"`
	ServerConfig model.ServerConfig `yaml:"http" envconfig:"HTTP"`
}

// DefaultConfig returns the configuration used when neither the YAML file
// nor the environment set a value.
func DefaultConfig() Config {
	return Config{
		LogConfig: model.LogConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stderr",
			FilePath:   "logs/summarizer.log",
			TimeFormat: "rfc3339",
		},
		GeminiConfig: model.GeminiConfig{
			BaseURL: "https://generativelanguage.googleapis.com/v1",
		},
		StoreConfig: model.StoreConfig{
			Backend: "file",
			Path:    ".summarizer/store.json",
		},
		ServerConfig: model.ServerConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig layers defaults, the optional YAML file at path and the
// environment, in that order. A missing YAML file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		err := config.LoadFile(path, &cfg)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %v", err)
	}

	// Older deployments provide the key as VITE_GEMINI_KEY.
	if cfg.GeminiConfig.APIKey == "" {
		cfg.GeminiConfig.APIKey = os.Getenv("VITE_GEMINI_KEY")
	}

	return &cfg, nil
}
