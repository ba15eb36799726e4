package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Config{APIBaseURL: "http://chess.example:9000", NoColor: true}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *got != cfg {
		t.Fatalf("loaded %+v, want %+v", *got, cfg)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFrom(empty)
	if err != nil || got.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("LoadFrom(empty) = %+v, %v", got, err)
	}

	if _, err := LoadFrom(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("LoadFrom on a missing file succeeded")
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"api_url":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(broken); err == nil {
		t.Fatalf("LoadFrom on malformed JSON succeeded")
	}
}
