// Package config handles XDG configuration directory, service URLs and
// file paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskai"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"

	// DefaultServiceURL is used for the persistence and auth services
	// when nothing else is configured.
	DefaultServiceURL = "http://localhost:4000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// TodoURL is the base URL of the persistence service.
	TodoURL string

	// AuthURL is the base URL of the auth service.
	AuthURL string

	// AIURL is the base URL of the AI service. Empty means no remote AI
	// service; suggestions fall back to the local sampler.
	AIURL string

	// OpenAIKey enables the direct-OpenAI assistant backend when set.
	OpenAIKey string

	// OpenAIModel overrides the model used by the OpenAI backend.
	OpenAIModel string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig is the on-disk shape of config.yaml.
type fileConfig struct {
	TodoURL     string `yaml:"todo_url"`
	AuthURL     string `yaml:"auth_url"`
	AIURL       string `yaml:"ai_url"`
	OpenAIKey   string `yaml:"openai_key"`
	OpenAIModel string `yaml:"openai_model"`
}

// New creates a new Config with the default or specified config directory.
// Settings are resolved in order: defaults, then config.yaml if present,
// then environment variables.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:     dir,
		TodoURL: DefaultServiceURL,
		AuthURL: DefaultServiceURL,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.loadEnv()
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// loadFile merges config.yaml into the config. A missing file is not an
// error.
func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.TodoURL != "" {
		c.TodoURL = fc.TodoURL
	}
	if fc.AuthURL != "" {
		c.AuthURL = fc.AuthURL
	}
	if fc.AIURL != "" {
		c.AIURL = fc.AIURL
	}
	if fc.OpenAIKey != "" {
		c.OpenAIKey = fc.OpenAIKey
	}
	if fc.OpenAIModel != "" {
		c.OpenAIModel = fc.OpenAIModel
	}
	return nil
}

// loadEnv merges environment overrides into the config.
func (c *Config) loadEnv() {
	if v := os.Getenv("TASKAI_TODO_URL"); v != "" {
		c.TodoURL = v
	}
	if v := os.Getenv("TASKAI_AUTH_URL"); v != "" {
		c.AuthURL = v
	}
	if v := os.Getenv("TASKAI_AI_URL"); v != "" {
		c.AIURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAIKey = v
	}
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the session token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
