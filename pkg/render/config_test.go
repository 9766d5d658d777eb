package render

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
	if w, h := cfg.InternalSize(); w != 300 || h != 300 {
		t.Errorf("InternalSize = %dx%d, want 300x300", w, h)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero pixel size", func(c *Config) { c.PixelSize = 0 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -5 }},
		{"smaller than pixel", func(c *Config) { c.Width, c.PixelSize = 3, 4 }},
		{"zero aspect", func(c *Config) { c.PixelAspect = 0 }},
		{"zero focal", func(c *Config) { c.FocalLength = 0 }},
		{"zero near", func(c *Config) { c.Near = 0 }},
		{"far before near", func(c *Config) { c.Far = c.Near }},
		{"negative falloff", func(c *Config) { c.FalloffDistance = -1 }},
		{"negative fps", func(c *Config) { c.FPS = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestInternalSizeRoundsDown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.PixelSize = 601, 399, 2
	if w, h := cfg.InternalSize(); w != 300 || h != 199 {
		t.Errorf("InternalSize = %dx%d, want 300x199", w, h)
	}
}
