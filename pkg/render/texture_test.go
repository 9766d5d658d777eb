package render

import (
	"path/filepath"
	"testing"
)

func TestSampleFlipsV(t *testing.T) {
	top, bottom := RGB(255, 0, 0), RGB(0, 0, 255)
	tex := NewTexture(1, 2)
	tex.SetPixel(0, 0, top)
	tex.SetPixel(0, 1, bottom)

	if got := tex.Sample(0.5, 0.9); got != top {
		t.Errorf("Sample(v=0.9) = %v, want top row", got)
	}
	if got := tex.Sample(0.5, 0.1); got != bottom {
		t.Errorf("Sample(v=0.1) = %v, want bottom row", got)
	}
}

func TestSampleWrap(t *testing.T) {
	left, right := RGB(255, 0, 0), RGB(0, 255, 0)
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, left)
	tex.SetPixel(1, 0, right)

	tests := []struct {
		name string
		mode WrapMode
		u    float64
		want Color
	}{
		{"repeat past one", WrapRepeat, 1.25, left},
		{"repeat negative", WrapRepeat, -0.25, right},
		{"clamp high", WrapClamp, 3, right},
		{"clamp low", WrapClamp, -3, left},
		{"u of one", WrapClamp, 1, right},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tex.WrapU = tc.mode
			if got := tex.Sample(tc.u, 0.5); got != tc.want {
				t.Errorf("Sample(%v) = %v, want %v", tc.u, got, tc.want)
			}
		})
	}
}

func TestSampleBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, ColorBlack)
	tex.SetPixel(1, 0, ColorWhite)
	tex.FilterMode = FilterBilinear

	got := tex.Sample(0.5, 0.5)
	if got.R != 127 || got.G != 127 || got.B != 127 {
		t.Errorf("midpoint = %v, want mid gray", got)
	}
}

func TestCheckerTexture(t *testing.T) {
	tex := NewCheckerTexture(8, 8, 4, ColorWhite, ColorBlack)
	tests := []struct {
		x, y int
		want Color
	}{
		{0, 0, ColorWhite},
		{3, 3, ColorWhite},
		{4, 0, ColorBlack},
		{0, 4, ColorBlack},
		{7, 7, ColorWhite},
	}
	for _, tc := range tests {
		if got := tex.GetPixel(tc.x, tc.y); got != tc.want {
			t.Errorf("GetPixel(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}

	if NewCheckerTexture(2, 2, 0, ColorWhite, ColorBlack).GetPixel(1, 0) != ColorBlack {
		t.Error("check size below one should clamp to one")
	}
}

func TestLoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.png")
	writePNG(t, path, 2, 3, ColorGreen)

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 2 || tex.Height != 3 || tex.GetPixel(1, 2) != ColorGreen {
		t.Errorf("unexpected texture %dx%d", tex.Width, tex.Height)
	}

	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestShade(t *testing.T) {
	c := Shade(RGB(200, 100, 10), 0.5)
	if c != RGB(100, 50, 5) {
		t.Errorf("Shade = %v", c)
	}
	if c := Shade(RGB(200, 200, 200), 2); c != RGB(255, 255, 255) {
		t.Errorf("Shade did not saturate: %v", c)
	}
}
