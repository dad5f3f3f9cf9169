package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Directory.BaseURL != "https://api.openbrewerydb.org/v1" {
		t.Errorf("unexpected base_url %q", cfg.Directory.BaseURL)
	}
	if cfg.UI.Chart != "bar" {
		t.Errorf("expected bar chart, got %q", cfg.UI.Chart)
	}
	if cfg.UI.InitialLocation != "/" {
		t.Errorf("expected /, got %q", cfg.UI.InitialLocation)
	}
	if cfg.Metrics.Addr != "" {
		t.Errorf("metrics listener must be disabled by default, got %q", cfg.Metrics.Addr)
	}
	if cfg.Metrics.ShutdownSec != 5 {
		t.Errorf("expected 5s shutdown, got %d", cfg.Metrics.ShutdownSec)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Directory: DirectoryConfig{BaseURL: "http://localhost:8080/v1"},
		UI:        UIConfig{Chart: "pie", InitialLocation: "/?search=dog"},
	}
	cfg.ApplyDefaults()

	if cfg.Directory.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("base_url overwritten: %q", cfg.Directory.BaseURL)
	}
	if cfg.UI.Chart != "pie" || cfg.UI.InitialLocation != "/?search=dog" {
		t.Errorf("ui overwritten: %+v", cfg.UI)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad chart", func(c *Config) { c.UI.Chart = "donut" }, `ui.chart must be "bar" or "pie", got "donut"`},
		{"relative base url", func(c *Config) { c.Directory.BaseURL = "api.example.com" }, "directory.base_url must be an http(s) URL"},
		{"unparseable base url", func(c *Config) { c.Directory.BaseURL = "http://[::1" }, "directory.base_url"},
		{"relative location", func(c *Config) { c.UI.InitialLocation = "brewery/1" }, "ui.initial_location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("BREWDEX_TEST_SET", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"a: ${BREWDEX_TEST_SET}", "a: value"},
		{"a: ${BREWDEX_TEST_SET:-fallback}", "a: value"},
		{"a: ${BREWDEX_TEST_UNSET:-fallback}", "a: fallback"},
		{"a: ${BREWDEX_TEST_UNSET}", "a: "},
		{"a: ${BREWDEX_TEST_UNSET:-}", "a: "},
		{"a: plain", "a: plain"},
	}
	for _, tt := range tests {
		if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Setenv("BREWDEX_TEST_CHART", "pie")

	cfg, err := Parse([]byte(`
directory:
  base_url: http://localhost:9999/v1
ui:
  chart: ${BREWDEX_TEST_CHART:-bar}
metrics:
  addr: ":9090"
logging:
  level: debug
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Directory.BaseURL != "http://localhost:9999/v1" {
		t.Errorf("base_url = %q", cfg.Directory.BaseURL)
	}
	if cfg.UI.Chart != "pie" {
		t.Errorf("chart = %q", cfg.UI.Chart)
	}
	if cfg.Metrics.Addr != ":9090" {
		t.Errorf("metrics addr = %q", cfg.Metrics.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if cfg.Directory.UserAgent != "brewdex" {
		t.Errorf("user_agent default not applied: %q", cfg.Directory.UserAgent)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("ui: [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Parse([]byte("ui:\n  chart: donut\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoad_RepoConfigs(t *testing.T) {
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			if _, err := Load(env); err != nil {
				t.Fatalf("config/%s.yaml: %v", env, err)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestFindConfigPath_PrefersWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "scratch.yaml"), []byte("ui:\n  chart: pie\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("scratch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UI.Chart != "pie" {
		t.Errorf("chart = %q", cfg.UI.Chart)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}
