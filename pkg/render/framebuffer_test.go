package render

import (
	"testing"
)

func TestFramebufferClear(t *testing.T) {
	for _, n := range []int{1, 3, 7, 64} {
		fb := NewFramebuffer(n, 3)
		fb.SetPixel(0, 0, ColorWhite)
		fb.Clear(ColorGreen)
		if got := fb.CountNot(ColorGreen); got != 0 {
			t.Errorf("%dx3: %d pixels not cleared", n, got)
		}
	}
	NewFramebuffer(0, 0).Clear(ColorGreen)
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(-1, 0, ColorWhite)
	fb.SetPixel(0, 2, ColorWhite)
	if fb.CountNot(Color{}) != 0 {
		t.Error("out of bounds write landed in the buffer")
	}
	if got := fb.GetPixel(5, 5); got != (Color{}) {
		t.Errorf("GetPixel out of bounds = %v", got)
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"point", 3, 3, 3, 3, 1},
		{"horizontal", 1, 2, 8, 2, 8},
		{"vertical up", 4, 9, 4, 0, 10},
		{"diagonal", 0, 0, 5, 5, 6},
		{"shallow", 0, 0, 9, 3, 10},
		{"steep backwards", 6, 9, 3, 0, 10},
		{"clipped", -5, 5, 15, 5, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorWhite)
			if got := fb.CountNot(Color{}); got != tc.want {
				t.Errorf("drew %d pixels, want %d", got, tc.want)
			}
			for _, p := range [][2]int{{tc.x0, tc.y0}, {tc.x1, tc.y1}} {
				if p[0] < 0 || p[0] >= 10 {
					continue
				}
				if fb.GetPixel(p[0], p[1]) != ColorWhite {
					t.Errorf("endpoint %v not drawn", p)
				}
			}
		})
	}
}

func TestCopyTo(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.SetPixel(1, 0, RGB(1, 2, 3))
	pix := make([]byte, 8)
	fb.CopyTo(pix)
	want := []byte{0, 0, 0, 0, 1, 2, 3, 255}
	for i := range want {
		if pix[i] != want[i] {
			t.Fatalf("pix = %v, want %v", pix, want)
		}
	}
}

func TestScaled(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(1, 1, ColorWhite)

	img := fb.Scaled(3)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("scaled size = %v", b)
	}
	if img.RGBAAt(4, 4) != ColorWhite || img.RGBAAt(2, 2) != (Color{}) {
		t.Error("pixel blocks not scaled nearest-neighbor")
	}
	if fb.Scaled(1).Bounds().Dx() != 2 {
		t.Error("pixel size 1 should not scale")
	}
}
