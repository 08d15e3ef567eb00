package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.Assistant.MaxToolRounds != 8 {
		t.Errorf("expected default max_tool_rounds 8, got %d", cfg.Assistant.MaxToolRounds)
	}
	if cfg.Vector.QdrantAddr != "localhost:6334" {
		t.Errorf("unexpected default qdrant addr: %s", cfg.Vector.QdrantAddr)
	}
	if cfg.LLM.APIKey != "" {
		t.Errorf("api key should default to empty, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atelier.yaml")
	content := []byte("log:\n  level: debug\nassistant:\n  max_tool_rounds: 3\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("file should override log level, got %s", cfg.Log.Level)
	}
	if cfg.Assistant.MaxToolRounds != 3 {
		t.Errorf("file should override max_tool_rounds, got %d", cfg.Assistant.MaxToolRounds)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ATELIER_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("env should override log level, got %s", cfg.Log.Level)
	}
}
