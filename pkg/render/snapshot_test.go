package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPNGDisplayNumbersFrames(t *testing.T) {
	dir := t.TempDir()
	d := NewPNGDisplay(filepath.Join(dir, "frame-%03d.png"), 3)

	fb := NewFramebuffer(4, 2)
	fb.Clear(ColorBlack)
	fb.SetPixel(1, 0, ColorWhite)

	for range 2 {
		if err := d.Present(fb); err != nil {
			t.Fatal(err)
		}
	}
	if d.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", d.Frames())
	}

	f, err := os.Open(filepath.Join(dir, "frame-001.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Errorf("size = %dx%d, want 12x6", b.Dx(), b.Dy())
	}
	// internal pixel (1, 0) covers x 3..5, y 0..2
	if r, _, _, _ := img.At(4, 2).RGBA(); r != 0xffff {
		t.Error("scaled pixel is not white")
	}
	if r, _, _, _ := img.At(6, 2).RGBA(); r != 0 {
		t.Error("neighbor pixel is not black")
	}
}

func TestPNGDisplayPath(t *testing.T) {
	tests := []struct {
		pattern string
		n       int
		want    string
	}{
		{"out.png", 7, "out.png"},
		{"out-%d.png", 7, "out-7.png"},
		{"shots/%04d.png", 12, "shots/0012.png"},
	}
	for _, tc := range tests {
		d := NewPNGDisplay(tc.pattern, 1)
		if got := d.Path(tc.n); got != tc.want {
			t.Errorf("Path(%q, %d) = %q, want %q", tc.pattern, tc.n, got, tc.want)
		}
	}
}

func TestSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "x.png"), 1); err == nil {
		t.Error("expected error for missing directory")
	}
}
