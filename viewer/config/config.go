// Package config holds the viewer manifest: which character and clips to load, and the
// window, camera, lighting and character settings the scene starts with.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the viewer manifest.
type Config struct {
	Model      string      `yaml:"model"`
	Animations []Animation `yaml:"animations"`
	Window     Window      `yaml:"window"`
	Character  Character   `yaml:"character"`
	Camera     Camera      `yaml:"camera"`
	Lights     Lights      `yaml:"lights"`

	// Background is the clear color as RGB in [0, 1].
	Background [3]float64 `yaml:"background"`

	// Ground adds a floor plane under the character.
	Ground bool `yaml:"ground"`

	// InitialSlider is the depth slider value applied once at startup.
	InitialSlider float32 `yaml:"initial_slider"`

	// Grayscale reduces shaded color to luminance before the anaglyph channel split.
	Grayscale bool `yaml:"grayscale"`
}

// Animation names one clip file. The first clip of the file is registered under Key.
type Animation struct {
	Key  string `yaml:"key"`
	Path string `yaml:"path"`
}

// Window is the initial window size and title.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Character is the transform applied to the loaded model.
type Character struct {
	Scale float32    `yaml:"scale"`
	Yaw   float32    `yaml:"yaw"`
	X     float32    `yaml:"x"`
	Y     float32    `yaml:"y"`
	Tint  [4]float32 `yaml:"tint"`
}

// Camera is the orbit rig and stereo setup.
type Camera struct {
	// Fov is the vertical field of view in degrees.
	Fov           float32    `yaml:"fov"`
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	Position      [3]float32 `yaml:"position"`
	Target        [3]float32 `yaml:"target"`
	EyeSeparation float32    `yaml:"eye_separation"`
	Focus         float32    `yaml:"focus"`
	Damping       float32    `yaml:"damping"`
}

// Lights is the key light and the ambient term.
type Lights struct {
	Direction    [3]float32 `yaml:"direction"`
	Color        [3]float32 `yaml:"color"`
	Intensity    float32    `yaml:"intensity"`
	Ambient      [3]float32 `yaml:"ambient"`
	AmbientLevel float32    `yaml:"ambient_intensity"`
}

// Default returns the built-in manifest.
func Default() *Config {
	return &Config{
		Model: "models/character.glb",
		Animations: []Animation{
			{Key: "protege", Path: "models/boxing.glb"},
			{Key: "espadazo", Path: "models/double_dagger_stab.glb"},
			{Key: "patada", Path: "models/martelo.glb"},
			{Key: "defensa", Path: "models/punching.glb"},
			{Key: "correr", Path: "models/fast_run.glb"},
		},
		Window: Window{
			Title:  "Modelos Anaglifos",
			Width:  1280,
			Height: 720,
		},
		Character: Character{
			Scale: 0.012,
		},
		Camera: Camera{
			Fov:           55,
			Near:          0.01,
			Far:           100,
			Position:      [3]float32{1.6, 1.45, 2.0},
			Target:        [3]float32{0, 1.1, 0},
			EyeSeparation: 0.064,
			Focus:         2.5,
			Damping:       0.05,
		},
		Lights: Lights{
			// toward the scene from (-5, 10, -3)
			Direction:    [3]float32{5, -10, 3},
			Color:        [3]float32{1, 1, 1},
			Intensity:    1.45,
			Ambient:      [3]float32{0.55, 0.58, 0.62},
			AmbientLevel: 1.0,
		},
		Background:    [3]float64{0x0b / 255.0, 0x0f / 255.0, 0x1a / 255.0},
		Ground:        true,
		InitialSlider: 0.11,
		Grayscale:     true,
	}
}

// Load reads a manifest from path. Fields missing from the file keep their defaults.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - *Config: the merged and validated manifest
//   - error: an error if the file cannot be read, parsed or fails validation
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Write stores the manifest as YAML.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first problem that would keep the viewer from starting.
// Duplicate animation keys are allowed; the later entry replaces the earlier clip.
func (c *Config) Validate() error {
	var errs []error
	if c.Model == "" {
		errs = append(errs, errors.New("model path is empty"))
	}
	for i, a := range c.Animations {
		if a.Key == "" || a.Path == "" {
			errs = append(errs, fmt.Errorf("animation %d needs both key and path", i))
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Character.Scale <= 0 {
		errs = append(errs, fmt.Errorf("character scale %v must be positive", c.Character.Scale))
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", c.Camera.Fov))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes %v..%v are invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.EyeSeparation < 0 {
		errs = append(errs, fmt.Errorf("eye separation %v must not be negative", c.Camera.EyeSeparation))
	}
	return errors.Join(errs...)
}

// AnimationKeys returns the animation keys in load order.
func (c *Config) AnimationKeys() []string {
	keys := make([]string, len(c.Animations))
	for i, a := range c.Animations {
		keys[i] = a.Key
	}
	return keys
}
