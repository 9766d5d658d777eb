package render

import (
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestIsBackface(t *testing.T) {
	tests := []struct {
		name     string
		tri      [3]math3d.Vec3
		backface bool
	}{
		{"ccw ahead", ccwTriangle(5), false},
		{"cw ahead", cwTriangle(5), true},
		{"ccw behind reads as cw", ccwTriangle(-5), true},
		{"floor seen from above", [3]math3d.Vec3{
			math3d.V3(-1, -2, 3), math3d.V3(1, -2, 3), math3d.V3(1, -2, 5),
		}, false},
		{"edge on", [3]math3d.Vec3{
			math3d.V3(0, -1, 3), math3d.V3(0, -1, 5), math3d.V3(0, 1, 4),
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBackface(tc.tri); got != tc.backface {
				t.Errorf("IsBackface(%v) = %v, want %v", tc.tri, got, tc.backface)
			}
		})
	}
}

func TestCullBackfacesSkipsCulled(t *testing.T) {
	buf := bufferOf(ccwTriangle(5), cwTriangle(5), cwTriangle(6))
	buf.Culled[2] = true

	if n := CullBackfaces(buf); n != 1 {
		t.Errorf("culled %d, want 1", n)
	}
	want := []bool{false, true, true}
	for i := range want {
		if buf.Culled[i] != want[i] {
			t.Errorf("Culled[%d] = %v, want %v", i, buf.Culled[i], want[i])
		}
	}
}
