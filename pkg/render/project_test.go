package render

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestProjectRoundTrip(t *testing.T) {
	cfg := testConfig()
	cfg.PixelAspect = 0.75
	f := NewFrustum(cfg, 1.2)
	p := NewProjector(cfg, 1.2)

	points := []math3d.Vec3{
		math3d.V3(0, 0, 1),
		math3d.V3(0.3, -0.2, 2),
		math3d.V3(-4, 3, 20),
		math3d.V3(10, 10, 900),
	}
	for _, v := range points {
		if !f.ContainsPoint(v) {
			t.Fatalf("test point %v outside frustum", v)
		}
		s := p.Project(v)
		if s.Z != v.Z {
			t.Errorf("Project(%v).Z = %v, want retained depth", v, s.Z)
		}
		assertVec(t, "Unproject(Project)", p.Unproject(s), v, 1e-6)
	}
}

func TestProjectCenterAndScale(t *testing.T) {
	p := NewProjector(testConfig(), 1)

	s := p.Project(math3d.V3(0, 0, 5))
	assertVec(t, "center", s, math3d.V3(0, 0, 5), 1e-12)

	// focal 100: one unit right at depth 2 lands 50 pixels right
	s = p.Project(math3d.V3(1, -1, 2))
	assertVec(t, "offset", s, math3d.V3(50, -50, 2), 1e-9)
}

func TestProjectZeroW(t *testing.T) {
	p := NewProjector(testConfig(), 1)
	s := p.Project(math3d.V3(1, 2, 0))
	if math.IsInf(s.X, 0) || math.IsNaN(s.X) || math.IsInf(s.Y, 0) || math.IsNaN(s.Y) {
		t.Errorf("Project with w=0 = %v, want finite", s)
	}
}

func TestFOVScalesProjection(t *testing.T) {
	cfg := testConfig()
	narrow := NewProjector(cfg, 1.5).Project(math3d.V3(1, 0, 4))
	wide := NewProjector(cfg, 0.5).Project(math3d.V3(1, 0, 4))
	if !(narrow.X > wide.X) {
		t.Errorf("zoomed x %v should exceed unzoomed %v", narrow.X, wide.X)
	}
}
