package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when the config file leaves a field empty
const (
	DefaultServerURL = "http://localhost:8080"
	DefaultTimeout   = 30 * time.Second
	DefaultAddr      = ":8080"
)

// Config represents the application configuration
type Config struct {
	Client      ClientConfig `yaml:"client"`
	Board       BoardConfig  `yaml:"board"`
	Serve       ServeConfig  `yaml:"serve"`
	KeyMappings KeyMappings  `yaml:"key_mappings"`
	Theme       Theme        `yaml:"theme"`
}

// ClientConfig points the CLI and TUI at a task service
type ClientConfig struct {
	ServerURL string        `yaml:"server_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// BoardConfig tunes how local moves are applied
type BoardConfig struct {
	// Renumber rewrites every serial in the affected columns after a move
	// instead of only the moved task's
	Renumber bool `yaml:"renumber"`

	// RefetchOnFailure reloads the whole board after a failed move
	RefetchOnFailure bool `yaml:"refetch_on_failure"`
}

// ServeConfig configures `tablero serve`
type ServeConfig struct {
	Addr   string `yaml:"addr"`
	DBPath string `yaml:"db_path"`
	Token  string `yaml:"token"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile merges the theme from TABLERO_THEME_FILE, if set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("TABLERO_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme Theme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.Theme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	config := &Config{}

	configPath, err := getConfigPath()
	if err == nil {
		data, readErr := os.ReadFile(configPath)
		switch {
		case readErr == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, err
			}
		case !os.IsNotExist(readErr):
			return nil, readErr
		}
	}

	loadThemeFile(config)
	config.applyEnv()
	config.applyDefaults()

	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// May hold the serve token
	return os.WriteFile(configPath, data, 0o600)
}

// Path returns where Load reads the config from
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tablero", "config.yaml"), nil
}

// applyEnv lets TABLERO_* variables override file values
func (c *Config) applyEnv() {
	if v := os.Getenv("TABLERO_SERVER_URL"); v != "" {
		c.Client.ServerURL = v
	}
	if v := os.Getenv("TABLERO_TOKEN"); v != "" {
		c.Serve.Token = v
	}
	if v := os.Getenv("TABLERO_DB_PATH"); v != "" {
		c.Serve.DBPath = v
	}
	if v := os.Getenv("TABLERO_ADDR"); v != "" {
		c.Serve.Addr = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Client.ServerURL == "" {
		c.Client.ServerURL = DefaultServerURL
	}
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = DefaultTimeout
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	c.KeyMappings.applyDefaults()
	c.Theme.ApplyDefaults()
}
