package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings mealplan reads from config.toml.
type Config struct {
	Environment  string
	Endpoints    map[string]string
	LogFile      string
	LogLevel     string
	PollInterval time.Duration

	// baseOverride comes from MEALPLAN_API_BASE_URL and wins over Endpoints.
	baseOverride string
}

const (
	defaultConfigPath   = "~/.config/mealplan/config.toml"
	defaultLogFile      = "~/.local/state/mealplan/mealplan.log"
	defaultLogLevel     = "info"
	defaultEnvironment  = "local"
	defaultLocalBaseURL = "http://localhost:8080"
	defaultPollInterval = 30 * time.Second

	// BaseURLEnv overrides the endpoint selected by environment.
	BaseURLEnv = "MEALPLAN_API_BASE_URL"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.finish()
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Environment string            `toml:"environment"`
		Endpoints   map[string]string `toml:"endpoints"`
		LogFile     string            `toml:"log_file"`
		LogLevel    string            `toml:"log_level"`
		PollSeconds int               `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if env := strings.TrimSpace(raw.Environment); env != "" {
		cfg.Environment = env
	}
	for name, endpoint := range raw.Endpoints {
		name = strings.TrimSpace(name)
		endpoint = strings.TrimSpace(endpoint)
		if name == "" || endpoint == "" {
			continue
		}
		cfg.Endpoints[name] = endpoint
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = logFile
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}

	return cfg.finish()
}

func defaults() Config {
	return Config{
		Environment:  defaultEnvironment,
		Endpoints:    map[string]string{defaultEnvironment: defaultLocalBaseURL},
		LogFile:      defaultLogFile,
		LogLevel:     defaultLogLevel,
		PollInterval: defaultPollInterval,
	}
}

// finish applies the environment override, expands paths and validates the
// environment selection.
func (c Config) finish() (Config, error) {
	c.LogFile = mustExpand(c.LogFile)
	c.baseOverride = strings.TrimSpace(os.Getenv(BaseURLEnv))
	if c.baseOverride != "" {
		return c, nil
	}
	if _, ok := c.Endpoints[c.Environment]; !ok {
		return Config{}, fmt.Errorf("environment %q has no endpoint (known: %s)",
			c.Environment, strings.Join(c.EnvironmentNames(), ", "))
	}
	return c, nil
}

// APIBaseURL returns the base endpoint of the meal-planning backend.
func (c Config) APIBaseURL() string {
	if c.baseOverride != "" {
		return c.baseOverride
	}
	if endpoint, ok := c.Endpoints[c.Environment]; ok {
		return endpoint
	}
	return defaultLocalBaseURL
}

// EnvironmentNames returns the configured environment names, sorted.
func (c Config) EnvironmentNames() []string {
	names := make([]string, 0, len(c.Endpoints))
	for name := range c.Endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
