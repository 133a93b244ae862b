package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int    `env:"TRAVEL_ADMIN_TEST_PORT" envDefault:"123"`
	Name string `env:"TRAVEL_ADMIN_TEST_NAME"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TRAVEL_ADMIN_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithLookup(t *testing.T) {
	var cfg envTestConfig
	lookup := func(key string) (string, bool) {
		if key == "TRAVEL_ADMIN_TEST_PORT" {
			return "9000", true
		}
		return "", false
	}

	if err := ParseEnvWithLookup(&cfg, lookup); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.Name != "" {
		t.Fatalf("Name = %q, want empty", cfg.Name)
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "TRAVEL_ADMIN_TEST_NAME=from-file\nTRAVEL_ADMIN_TEST_DOTENV_ONLY=loaded\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("TRAVEL_ADMIN_TEST_NAME", "from-env")
	t.Setenv("TRAVEL_ADMIN_TEST_DOTENV_ONLY", "")
	os.Unsetenv("TRAVEL_ADMIN_TEST_DOTENV_ONLY")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("TRAVEL_ADMIN_TEST_NAME"); got != "from-env" {
		t.Fatalf("TRAVEL_ADMIN_TEST_NAME = %q, want from-env", got)
	}
	if got := os.Getenv("TRAVEL_ADMIN_TEST_DOTENV_ONLY"); got != "loaded" {
		t.Fatalf("TRAVEL_ADMIN_TEST_DOTENV_ONLY = %q, want loaded", got)
	}
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), ""); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
