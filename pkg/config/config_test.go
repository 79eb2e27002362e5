package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromEnvPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
	  "telegram": {"token": "123:abc"},
	  "storage": {"dir": "/var/lib/sectionbot"},
	  "logging": {"format": "json", "level": "debug", "add_source": true}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("SECTIONBOT_CONFIG", path)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("SECTIONBOT_DATA_DIR", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Fatalf("telegram.token = %q, want %q", cfg.Telegram.Token, "123:abc")
	}
	if cfg.Storage.Dir != "/var/lib/sectionbot" {
		t.Fatalf("storage.dir = %q", cfg.Storage.Dir)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging.format = %q, want %q", cfg.Logging.Format, "json")
	}
	if !cfg.Logging.AddSource {
		t.Fatal("logging.add_source = false, want true")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"telegram": {"token": "from-file"}}`), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("SECTIONBOT_CONFIG", path)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("SECTIONBOT_DATA_DIR", "/data/override")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Telegram.Token != "from-env" {
		t.Fatalf("telegram.token = %q, want env override", cfg.Telegram.Token)
	}
	if cfg.Storage.Dir != "/data/override" {
		t.Fatalf("storage.dir = %q, want env override", cfg.Storage.Dir)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	// Point the cwd at an empty directory so no config.json is found.
	dir := t.TempDir()
	restore, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(restore) })

	t.Setenv("SECTIONBOT_CONFIG", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("SECTIONBOT_DATA_DIR", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Telegram.Token != "" || cfg.Storage.Dir != "" {
		t.Fatalf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadConfigInvalidEnvPath(t *testing.T) {
	t.Setenv("SECTIONBOT_CONFIG", filepath.Join(t.TempDir(), "missing.json"))

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing config path")
	}
}
