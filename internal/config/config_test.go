package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/miniframe/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Mount.RootID != DefaultRootID {
		t.Errorf("Mount.RootID = %q, want %q", cfg.Mount.RootID, DefaultRootID)
	}
	if cfg.Router.DefaultRoute != DefaultRoute {
		t.Errorf("Router.DefaultRoute = %q, want %q", cfg.Router.DefaultRoute, DefaultRoute)
	}
	if cfg.Preview.Port != DefaultPort {
		t.Errorf("Preview.Port = %d, want %d", cfg.Preview.Port, DefaultPort)
	}
	if cfg.Preview.Host != DefaultHost {
		t.Errorf("Preview.Host = %q, want %q", cfg.Preview.Host, DefaultHost)
	}
	if !cfg.MetricsEnabled() {
		t.Error("MetricsEnabled() = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if err == nil {
		t.Error("Expected error for missing config")
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "name": "todo",
  "mount": {"rootId": "app"},
  "router": {"initialHash": "completed"},
  "preview": {"port": 8080, "host": "0.0.0.0", "metrics": false},
  "publish": {"bucket": "site", "prefix": "todo/"},
  "log": {"level": "debug", "format": "json"}
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Name != "todo" {
		t.Errorf("Name = %q, want todo", cfg.Name)
	}
	if cfg.Mount.RootID != "app" {
		t.Errorf("Mount.RootID = %q, want app", cfg.Mount.RootID)
	}
	if cfg.Router.DefaultRoute != DefaultRoute {
		t.Errorf("Router.DefaultRoute = %q, want default", cfg.Router.DefaultRoute)
	}
	if cfg.Router.InitialHash != "completed" {
		t.Errorf("Router.InitialHash = %q", cfg.Router.InitialHash)
	}
	if cfg.PreviewAddress() != "0.0.0.0:8080" {
		t.Errorf("PreviewAddress() = %q", cfg.PreviewAddress())
	}
	if cfg.PreviewURL() != "http://0.0.0.0:8080" {
		t.Errorf("PreviewURL() = %q", cfg.PreviewURL())
	}
	if cfg.MetricsEnabled() {
		t.Error("MetricsEnabled() = true, want false")
	}
	if cfg.Publish.Bucket != "site" || cfg.Publish.Region != DefaultRegion {
		t.Errorf("Publish = %+v", cfg.Publish)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(tmpDir)
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("Load() error = %T, want *errors.Error", err)
	}
	if e.Code != errors.CodeConfigParse {
		t.Errorf("Code = %q, want %q", e.Code, errors.CodeConfigParse)
	}
	if !strings.Contains(e.Detail, "Failed to parse miniframe.json") {
		t.Errorf("Detail = %q", e.Detail)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Mount.RootID != DefaultRootID {
		t.Errorf("Mount.RootID = %q", cfg.Mount.RootID)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := New()
	cfg.Name = "saved"
	cfg.Preview.Port = 4000

	if err := cfg.Save(); err == nil {
		t.Error("Save() without path should fail")
	}
	if err := cfg.SaveTo(filepath.Join(tmpDir, ConfigFileName)); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if !Exists(tmpDir) {
		t.Fatal("Exists() = false after SaveTo")
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "saved" || loaded.Preview.Port != 4000 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port too large", func(c *Config) { c.Preview.Port = 70000 }, true},
		{"negative port", func(c *Config) { c.Preview.Port = -1 }, true},
		{"root id with hash", func(c *Config) { c.Mount.RootID = "#root" }, true},
		{"route with slash", func(c *Config) { c.Router.DefaultRoute = "a/b" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"warning alias", func(c *Config) { c.Log.Level = "WARNING" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
