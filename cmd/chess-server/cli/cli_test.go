package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no subcommand", nil},
		{"unknown subcommand", []string{"vacuum"}},
		{"missing path", []string{"query"}},
		{"bad flag", []string{"init", "-nope"}},
		{"moves without game", []string{"moves", "-path", filepath.Join(t.TempDir(), "x.db")}},
	}
	for _, tt := range tests {
		if err := Run(tt.args); err == nil {
			t.Errorf("%s: Run(%v) succeeded", tt.name, tt.args)
		}
	}
}

func TestInitQueryDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")

	if err := Run([]string{"init", "-path", path}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := Run([]string{"query", "-path", path, "-status", "active"}); err != nil {
		t.Fatalf("query: %v", err)
	}
	if err := Run([]string{"moves", "-path", path, "-gameId", "missing"}); err != nil {
		t.Fatalf("moves: %v", err)
	}
	if err := Run([]string{"delete", "-path", path}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("database file still present: %v", err)
	}
}
