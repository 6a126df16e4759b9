package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

type Config struct {
	TargetPlatforms  []string `json:"target_platforms"`
	MaxFixAttempts   int      `json:"max_fix_attempts"`
	CITimeoutSeconds int      `json:"ci_timeout_seconds"`
	AutoCommit       bool     `json:"auto_commit"`
	VerboseLogging   bool     `json:"verbose_logging"`
	Language         string   `json:"language"`
	PathFile         string   `json:"path_file"`

	AIConfig AIConfig `json:"ai_config"`
}

type AIConfig struct {
	ActiveAI AI    `json:"active_ai"`
	Model    Model `json:"model"`
}

const (
	defaultLang           = "en"
	defaultMaxFixAttempts = 5
	defaultCITimeout      = 300
)

// SupportedPlatforms are the CI runner families the workflow can target.
func SupportedPlatforms() []string {
	return []string{"ubuntu", "windows", "macos"}
}

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".matebuild")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.PathFile = configPath

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded configuration is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		TargetPlatforms:  SupportedPlatforms(),
		MaxFixAttempts:   defaultMaxFixAttempts,
		CITimeoutSeconds: defaultCITimeout,
		AutoCommit:       true,
		VerboseLogging:   true,
		Language:         defaultLang,
		PathFile:         path,
		AIConfig: AIConfig{
			ActiveAI: AIGemini,
			Model:    DefaultModelForAI(AIGemini),
		},
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error saving default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.MaxFixAttempts < 1 || config.MaxFixAttempts > 10 {
		return errors.New("max_fix_attempts must be between 1 and 10")
	}
	if config.CITimeoutSeconds < 30 {
		return errors.New("ci_timeout_seconds must be at least 30")
	}
	if config.Language == "" {
		return errors.New("language must not be empty")
	}
	if len(config.TargetPlatforms) == 0 {
		return errors.New("at least one target platform is required")
	}
	for _, p := range config.TargetPlatforms {
		if !slices.Contains(SupportedPlatforms(), p) {
			return fmt.Errorf("unsupported target platform: %s", p)
		}
	}
	if config.AIConfig.ActiveAI != "" {
		supported := false
		for _, ai := range SupportedAIs() {
			if config.AIConfig.ActiveAI == ai {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("unsupported AI provider: %s", config.AIConfig.ActiveAI)
		}
	}
	return nil
}
