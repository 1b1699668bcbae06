package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Base != "klon.fun" {
		t.Errorf("default base = %q, want klon.fun", cfg.Base)
	}
	if cfg.Player != "mpv" {
		t.Errorf("default player = %q, want mpv", cfg.Player)
	}
	if cfg.SubsLanguage != "ukrainian" {
		t.Errorf("default subs language = %q, want ukrainian", cfg.SubsLanguage)
	}
	if !cfg.History {
		t.Error("default history should be true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid player", func(c *Config) { c.Player = "notepad" }, true},
		{"empty base", func(c *Config) { c.Base = "" }, true},
		{"base with scheme", func(c *Config) { c.Base = "https://klon.fun" }, true},
		{"valid vlc", func(c *Config) { c.Player = "vlc" }, false},
		{"valid celluloid", func(c *Config) { c.Player = "celluloid" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "klon")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `
base = "mirror.example"
player = "vlc"
subs_language = "english"
history = false
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Base != "mirror.example" {
		t.Errorf("base = %q, want mirror.example", cfg.Base)
	}
	if cfg.Player != "vlc" {
		t.Errorf("player = %q, want vlc", cfg.Player)
	}
	if cfg.SubsLanguage != "english" {
		t.Errorf("subs_language = %q, want english", cfg.SubsLanguage)
	}
	if cfg.History {
		t.Error("history should be false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Base != "klon.fun" {
		t.Errorf("missing file should return defaults, got base = %q", cfg.Base)
	}
}

func TestExpandDownloadDir(t *testing.T) {
	cfg := Default()
	cfg.DownloadDir = "/tmp/klon-downloads"

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		t.Fatalf("ExpandDownloadDir() error: %v", err)
	}
	if dir != "/tmp/klon-downloads" {
		t.Errorf("got %q, want /tmp/klon-downloads", dir)
	}
}
