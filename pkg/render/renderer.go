// Package render implements the scanline pipeline: camera transform,
// frustum clipping, backface culling, perspective projection and a z-buffered
// scanline rasterizer with perspective-correct texturing.
package render

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrMismatchedCounts is returned when a mesh's triangle, UV and texture
// counts differ.
var ErrMismatchedCounts = errors.New("render: triangle, uv and texture counts differ")

// MeshSource is the asset contract the pipeline consumes. It lives here
// rather than in models to avoid an import cycle.
type MeshSource interface {
	TriangleCount() int
	// Triangle returns the i-th triangle in mesh-local space with its UVs
	// and atlas key.
	Triangle(i int) ([3]math3d.Vec3, [3]math3d.Vec2, int)
	// Offset is added to every vertex before the camera transform.
	Offset() math3d.Vec3
}

// CountedMesh is implemented by meshes that can report their parallel
// slice lengths, so AddMesh can enforce that they match.
type CountedMesh interface {
	Counts() (tris, uvs, textures int)
}

// BoundedMesh is implemented by meshes that can report a bounding box in
// mesh-local space. Such meshes are rejected whole when the box's sphere
// is outside the frustum.
type BoundedMesh interface {
	GetBounds() (min, max math3d.Vec3)
}

// Display presents a finished frame.
type Display interface {
	Present(fb *Framebuffer) error
}

// FrameStats summarizes one RenderFrame call.
type FrameStats struct {
	MeshesTested   int
	MeshesCulled   int // Rejected whole by the bounding sphere test
	TrianglesIn    int
	ClipCulled     int
	ClipSplit      int
	BackfaceCulled int
	TrianglesDrawn int
	PixelsWritten  int
}

// Renderer owns the per-frame buffers and runs the pipeline over its
// meshes.
type Renderer struct {
	cfg    Config
	camera *Camera
	atlas  *Atlas
	meshes []MeshSource

	fb         *Framebuffer
	rasterizer *Rasterizer
	clipper    *Clipper
	scratch    TriangleBuffer

	frustum   Frustum
	projector Projector

	outline      bool
	outlineColor Color
	cull         bool
}

// NewRenderer validates cfg and allocates buffers at the internal
// resolution.
func NewRenderer(cfg Config, cam *Camera, atlas *Atlas) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cam == nil {
		return nil, fmt.Errorf("%w: nil camera", ErrInvalidConfig)
	}
	if cam.FOV <= 0 {
		return nil, fmt.Errorf("%w: camera fov %v must be positive", ErrInvalidConfig, cam.FOV)
	}
	if atlas == nil {
		atlas = NewAtlas()
	}
	w, h := cfg.InternalSize()
	fb := NewFramebuffer(w, h)
	return &Renderer{
		cfg:          cfg,
		camera:       cam,
		atlas:        atlas,
		fb:           fb,
		rasterizer:   NewRasterizer(fb, cfg.Near, cfg.FalloffDistance),
		clipper:      NewClipper(),
		outline:      cfg.Outline,
		outlineColor: ColorGreen,
		cull:         true,
	}, nil
}

// AddMesh appends m to the meshes drawn each frame.
func (r *Renderer) AddMesh(m MeshSource) error {
	if cm, ok := m.(CountedMesh); ok {
		t, u, x := cm.Counts()
		if t != u || t != x {
			return fmt.Errorf("%w: %d triangles, %d uvs, %d textures", ErrMismatchedCounts, t, u, x)
		}
	}
	r.meshes = append(r.meshes, m)
	Logger().Info("mesh added", slog.Int("triangles", m.TriangleCount()), slog.Int("meshes", len(r.meshes)))
	return nil
}

// Meshes returns the meshes in draw order.
func (r *Renderer) Meshes() []MeshSource {
	return r.meshes
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Camera returns the camera the renderer views through.
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Atlas returns the texture atlas.
func (r *Renderer) Atlas() *Atlas {
	return r.atlas
}

// Framebuffer returns the color buffer of the last frame.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Rasterizer returns the rasterizer, for depth inspection.
func (r *Renderer) Rasterizer() *Rasterizer {
	return r.rasterizer
}

// SetOutline toggles drawing triangle outlines over the fill.
func (r *Renderer) SetOutline(on bool) {
	r.outline = on
}

// Outline reports whether outlines are drawn.
func (r *Renderer) Outline() bool {
	return r.outline
}

// SetMeshCulling toggles whole-mesh bounding sphere rejection.
func (r *Renderer) SetMeshCulling(on bool) {
	r.cull = on
}

// Frustum returns the planes used by the last frame.
func (r *Renderer) Frustum() Frustum {
	return r.frustum
}

// RenderFrame clears the buffers and draws every mesh.
func (r *Renderer) RenderFrame() FrameStats {
	var stats FrameStats

	r.fb.Clear(r.cfg.Background)
	r.rasterizer.ClearDepth()

	r.frustum = NewFrustum(r.cfg, r.camera.FOV)
	r.projector = NewProjector(r.cfg, r.camera.FOV)

	for _, m := range r.meshes {
		stats.MeshesTested++
		if r.cull && r.meshOutside(m) {
			stats.MeshesCulled++
			continue
		}
		r.drawMesh(m, &stats)
	}

	stats.PixelsWritten = r.rasterizer.Stats.PixelsWritten
	Logger().Debug("frame",
		slog.Int("meshes", stats.MeshesTested),
		slog.Int("meshes_culled", stats.MeshesCulled),
		slog.Int("triangles", stats.TrianglesIn),
		slog.Int("drawn", stats.TrianglesDrawn),
		slog.Int("pixels", stats.PixelsWritten))
	return stats
}

func (r *Renderer) meshOutside(m MeshSource) bool {
	bm, ok := m.(BoundedMesh)
	if !ok {
		return false
	}
	lo, hi := bm.GetBounds()
	center, radius := BoundingSphere(lo, hi)
	center = r.camera.TransformPoint(center.Add(m.Offset()))
	return !r.frustum.IntersectsSphere(center, radius)
}

func (r *Renderer) drawMesh(m MeshSource, stats *FrameStats) {
	r.scratch.Reset()
	r.camera.transformInto(&r.scratch, m)
	stats.TrianglesIn += r.scratch.Len()

	buf := r.clipper.Clip(&r.scratch, r.frustum.Planes[:])
	stats.ClipCulled += r.clipper.Stats.Culled
	stats.ClipSplit += r.clipper.Stats.Split
	stats.BackfaceCulled += CullBackfaces(buf)

	for i := range buf.Tris {
		if buf.Culled[i] {
			continue
		}
		screen := r.projector.ProjectTriangle(buf.Tris[i])
		r.rasterizer.DrawTriangle(screen, buf.UVs[i], r.atlas.Get(buf.Tex[i]))
		if r.outline {
			r.rasterizer.DrawOutline(screen, r.outlineColor)
		}
		stats.TrianglesDrawn++
	}
}

// Present hands the last frame to d.
func (r *Renderer) Present(d Display) error {
	if err := d.Present(r.fb); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
