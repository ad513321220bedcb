package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	want := []string{"protege", "espadazo", "patada", "defensa", "correr"}
	got := cfg.AnimationKeys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
	if cfg.InitialSlider != 0.11 {
		t.Errorf("initial slider %v, want 0.11", cfg.InitialSlider)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	data := `
model: assets/knight.glb
animations:
  - key: idle
    path: assets/idle.glb
window:
  width: 800
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "assets/knight.glb" {
		t.Errorf("model = %q", cfg.Model)
	}
	if len(cfg.Animations) != 1 || cfg.Animations[0].Key != "idle" {
		t.Errorf("animations = %+v", cfg.Animations)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 720 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Character.Scale != 0.012 {
		t.Errorf("scale default lost: %v", cfg.Character.Scale)
	}
}

func TestLoadRejectsInvalidManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	data := `
model: ""
animations:
  - key: protege
window:
  width: 0
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, part := range []string{"model path", "animation 0", "window size"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q does not mention %q", err, part)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	cfg := Default()
	cfg.Camera.EyeSeparation = 0.08
	cfg.Animations = append(cfg.Animations, Animation{Key: "idle", Path: "models/idle.glb"})

	if err := Write(cfg, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Camera.EyeSeparation != 0.08 || len(got.Animations) != 6 || got.Animations[5].Key != "idle" {
		t.Errorf("round trip lost data: %+v", got)
	}
}
