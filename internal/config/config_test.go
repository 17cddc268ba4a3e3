package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(BaseURLEnv, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != defaultEnvironment {
		t.Fatalf("Environment = %q, want %q", cfg.Environment, defaultEnvironment)
	}
	if cfg.APIBaseURL() != defaultLocalBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL(), defaultLocalBaseURL)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, defaultPollInterval)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
}

func TestLoad_SelectsEnvironmentEndpoint(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(BaseURLEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
environment = "  vm "
log_file = "  ~/mealplan/logs/client.log  "
log_level = "DEBUG"
poll_seconds = 5

[endpoints]
local = "http://localhost:8080"
vm = "  http://[2001:db8::1]:8080  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != "vm" {
		t.Fatalf("Environment = %q, want vm", cfg.Environment)
	}
	if cfg.APIBaseURL() != "http://[2001:db8::1]:8080" {
		t.Fatalf("APIBaseURL = %q, want the vm endpoint", cfg.APIBaseURL())
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("PollInterval = %v, want 5s", cfg.PollInterval)
	}
	if names := cfg.EnvironmentNames(); len(names) != 2 || names[0] != "local" || names[1] != "vm" {
		t.Fatalf("EnvironmentNames = %v, want [local vm]", names)
	}
}

func TestLoad_EnvOverridesEndpoint(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(BaseURLEnv, " http://10.0.0.5:9999 ")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`environment = "staging"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// An unknown environment is fine when the override supplies the endpoint.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL() != "http://10.0.0.5:9999" {
		t.Fatalf("APIBaseURL = %q, want override", cfg.APIBaseURL())
	}
}

func TestLoad_UnknownEnvironmentFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(BaseURLEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`environment = "staging"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want unknown environment error")
	}
	if !strings.Contains(err.Error(), `environment "staging"`) || !strings.Contains(err.Error(), "local") {
		t.Fatalf("Load error = %q, want it to name the environment and known ones", err.Error())
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(BaseURLEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
environment = "   "
log_file = ""
poll_seconds = -3

[endpoints]
local = "  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL() != defaultLocalBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL(), defaultLocalBaseURL)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, defaultPollInterval)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`environment = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
