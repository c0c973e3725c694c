package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	contents := `
server:
  host: "127.0.0.1"
  port: 9000
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Fatalf("explicit values not read: %+v", cfg.Server)
	}
	if cfg.Server.TickRate != 20 {
		t.Fatalf("expected default tick rate 20, got %d", cfg.Server.TickRate)
	}
	if cfg.Session.MaxPlayers != 100 {
		t.Fatalf("expected default max players 100, got %d", cfg.Session.MaxPlayers)
	}
	if cfg.Game.DefaultGamemode != "survival" {
		t.Fatalf("expected default gamemode survival, got %s", cfg.Game.DefaultGamemode)
	}
	if cfg.Data.RecipeDir != "./data/recipes" {
		t.Fatalf("expected default recipe dir, got %s", cfg.Data.RecipeDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
