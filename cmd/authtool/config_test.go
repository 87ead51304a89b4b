package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authtool.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "ChainID = 5\nRequireLowS = true\nCacheSize = 16\n")
	cfg := defaultConfig()
	if err := loadConfig(path, &cfg); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.ChainID != 5 || !cfg.RequireLowS || cfg.CacheSize != 16 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Verbosity != 3 {
		t.Fatalf("unset field lost its default: %d", cfg.Verbosity)
	}
}

func TestLoadConfig_UnknownField(t *testing.T) {
	path := writeConfig(t, "ChainId = 5\n")
	cfg := defaultConfig()
	if err := loadConfig(path, &cfg); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg := defaultConfig()
	if err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"), &cfg); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSettings_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "ChainID = 5\nVerbosity = 4\n")

	var got authtoolConfig
	app := newApp()
	app.Action = func(ctx *cli.Context) error {
		var err error
		got, err = loadSettings(ctx)
		return err
	}
	if err := app.Run([]string{"authtool", "--config", path, "--chainid", "7"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.ChainID != 7 {
		t.Errorf("chain id: got %d, want 7 from flag", got.ChainID)
	}
	if got.Verbosity != 4 {
		t.Errorf("verbosity: got %d, want 4 from file", got.Verbosity)
	}
}
