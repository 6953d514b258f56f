package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WarmupSeconds != 5 {
		t.Errorf("expected default warmup, got %d", cfg.WarmupSeconds)
	}
	if cfg.StorePath == "" {
		t.Error("expected a default store path")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "warmup_seconds: 10\nstore_path: /tmp/custom.json\nnotification_body: Go do {name}\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WarmupSeconds != 10 {
		t.Errorf("warmup = %d, want 10", cfg.WarmupSeconds)
	}
	if cfg.StorePath != "/tmp/custom.json" {
		t.Errorf("store path = %q", cfg.StorePath)
	}
	if cfg.NotificationBody != "Go do {name}" {
		t.Errorf("body = %q", cfg.NotificationBody)
	}
	// Unset fields keep their defaults.
	if cfg.NotificationTitle != "{name}" {
		t.Errorf("title = %q, want default", cfg.NotificationTitle)
	}
}

func TestLoadRejectsNegativeWarmup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("warmup_seconds: -1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for negative warmup")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("warmup_seconds: [\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv("FITTICK_CONFIG", "/tmp/elsewhere.yaml")
	if got := Path(); got != "/tmp/elsewhere.yaml" {
		t.Errorf("Path() = %q", got)
	}
}
