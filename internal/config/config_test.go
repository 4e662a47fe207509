package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":4000" {
		t.Fatalf("default addr: %q", cfg.Addr)
	}
	if cfg.WatchInterval != 5*time.Second {
		t.Fatalf("default watch interval: %v", cfg.WatchInterval)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("default log level: %q", cfg.LogLevel)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "addr: \":9999\"\ncatalog_dir: /tmp/scenarios\nseed_sessions: true\nwatch_interval: 30s\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9999" || cfg.CatalogDir != "/tmp/scenarios" || !cfg.SeedSessions {
		t.Fatalf("yaml config not applied: %+v", cfg)
	}
	if cfg.WatchInterval != 30*time.Second {
		t.Fatalf("watch interval: %v", cfg.WatchInterval)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9999\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FINSIM_ADDR", ":7777")
	t.Setenv("FINSIM_SQLITE_PATH", "/tmp/events.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":7777" {
		t.Fatalf("env must beat file: %q", cfg.Addr)
	}
	if cfg.SQLitePath != "/tmp/events.db" {
		t.Fatalf("env sqlite path: %q", cfg.SQLitePath)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("explicit missing config path must error")
	}
}
