package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/brewdex/internal/domain/chart"
)

const defaultBaseURL = "https://api.openbrewerydb.org/v1"

// Config holds the brewdex configuration.
type Config struct {
	Directory DirectoryConfig `yaml:"directory"`
	UI        UIConfig        `yaml:"ui"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// DirectoryConfig holds brewery directory API settings.
type DirectoryConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// UIConfig holds session defaults.
type UIConfig struct {
	Chart           string `yaml:"chart"` // bar, pie (default: bar)
	InitialLocation string `yaml:"initial_location"`
}

// MetricsConfig holds the ops listener settings. An empty Addr disables it.
type MetricsConfig struct {
	Addr        string `yaml:"addr"`
	ShutdownSec int    `yaml:"shutdown_timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, expanding ${VAR} references, then applies
// defaults and validates the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Directory.BaseURL == "" {
		c.Directory.BaseURL = defaultBaseURL
	}
	if c.Directory.UserAgent == "" {
		c.Directory.UserAgent = "brewdex"
	}
	if c.UI.Chart == "" {
		c.UI.Chart = string(chart.Bar)
	}
	if c.UI.InitialLocation == "" {
		c.UI.InitialLocation = "/"
	}
	if c.Metrics.ShutdownSec <= 0 {
		c.Metrics.ShutdownSec = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Directory.BaseURL)
	if err != nil {
		return fmt.Errorf("directory.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("directory.base_url must be an http(s) URL, got %q", c.Directory.BaseURL)
	}
	if _, err := chart.Parse(c.UI.Chart); err != nil {
		return fmt.Errorf("ui.chart must be \"bar\" or \"pie\", got %q", c.UI.Chart)
	}
	if !strings.HasPrefix(c.UI.InitialLocation, "/") {
		return fmt.Errorf("ui.initial_location must start with \"/\", got %q", c.UI.InitialLocation)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
