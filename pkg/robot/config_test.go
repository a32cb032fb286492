package robot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{BoxCount: 5}
	cfg.Defaults()

	if cfg.TickMs != 64 {
		t.Errorf("TickMs = %d, want 64", cfg.TickMs)
	}
	if cfg.WheelScale != 6.28 {
		t.Errorf("WheelScale = %f, want 6.28", cfg.WheelScale)
	}
	if cfg.BoxPrefix != "BOX" {
		t.Errorf("BoxPrefix = %q, want BOX", cfg.BoxPrefix)
	}
	if cfg.BoxCount != 5 {
		t.Errorf("BoxCount = %d, want 5 (explicit value kept)", cfg.BoxCount)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", *DefaultConfig(), false},
		{"negative tick", Config{TickMs: -1, WheelScale: 1, BoxCount: 1}, true},
		{"zero scale", Config{TickMs: 64, BoxCount: 1}, true},
		{"too many boxes", Config{TickMs: 64, WheelScale: 1, BoxCount: 21}, true},
		{"no boxes", Config{TickMs: 64, WheelScale: 1}, false},
	}

	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxbot.json")
	if err := os.WriteFile(path, []byte(`{"tick_ms": 32, "legacy_double_step": true}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.TickMs != 32 {
		t.Errorf("TickMs = %d, want 32", cfg.TickMs)
	}
	if !cfg.LegacyDoubleStep {
		t.Error("LegacyDoubleStep should be true")
	}
	if cfg.BoxCount != DefaultBoxCount {
		t.Errorf("BoxCount = %d, want default %d", cfg.BoxCount, DefaultBoxCount)
	}
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxbot.json")
	if err := os.WriteFile(path, []byte(`{"box_count": 99}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfigFrom(path); err == nil {
		t.Error("LoadConfigFrom should reject box_count 99")
	}
}

func TestConfig_SaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxbot.json")
	cfg := DefaultConfig()
	cfg.BoxPrefix = "CAIXA"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if !ConfigExists(path) {
		t.Fatal("ConfigExists should be true after SaveTo")
	}

	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if loaded.BoxPrefix != "CAIXA" {
		t.Errorf("BoxPrefix = %q, want CAIXA", loaded.BoxPrefix)
	}
}

func TestConfig_DefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig should fail without a config file")
	}

	cfg := DefaultConfig()
	cfg.TickMs = 32
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !ConfigExists(DefaultConfigFile) {
		t.Fatalf("Save should write %s", DefaultConfigFile)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.TickMs != 32 {
		t.Errorf("TickMs = %d, want 32", loaded.TickMs)
	}
}
