package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speechstream.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("expected config write to succeed, got %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[service]
endpoint = "wss://example.test/speech/translation"
target_languages = ["de"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.Audio.MaxFrameSize != 4096 {
		t.Fatalf("expected default max frame size 4096, got %d", cfg.Audio.MaxFrameSize)
	}
	if cfg.Service.SourceLanguage != "en-US" {
		t.Fatalf("expected default source language, got %q", cfg.Service.SourceLanguage)
	}
	if cfg.Retry.MaxRetries != 4 || cfg.Retry.InitialBackoffMs != 500 {
		t.Fatalf("unexpected retry defaults: %#v", cfg.Retry)
	}
}

func TestLoadRejectsMissingEndpoint(t *testing.T) {
	path := writeConfig(t, `
[service]
target_languages = ["de"]
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation to fail without an endpoint")
	}
}

func TestLoadRejectsMissingTargets(t *testing.T) {
	path := writeConfig(t, `
[service]
endpoint = "wss://example.test/speech/translation"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation to fail without target languages")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}
