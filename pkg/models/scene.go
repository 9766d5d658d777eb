package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Scene is a set of meshes and where the camera starts.
type Scene struct {
	Meshes []*Mesh
	Start  math3d.Vec3
}

// modelDistance is how far in front of the start position a loaded model is
// placed, after being normalized to modelSize.
const (
	modelSize     = 2.0
	modelDistance = 4.0
)

// LoadScene loads the model at path, or the demo scene when path is empty.
// A loaded model is centered, scaled to a 2-unit cube and placed in front
// of the camera. When texture is set it is loaded into atlas and applied to
// every triangle; a texture that fails to load is reported and replaced by
// the placeholder.
func LoadScene(path, texture string, atlas *render.Atlas) (*Scene, error) {
	if path == "" {
		return &Scene{Meshes: DemoScene(atlas), Start: DemoStart}, nil
	}

	var mesh *Mesh
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		m, err := LoadGLTF(path, atlas)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		mesh = m
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}

	var texErr error
	if texture != "" {
		key, err := atlas.LoadFile(filepath.Base(texture), texture)
		texErr = err
		for i := range mesh.Textures {
			mesh.Textures[i] = key
		}
	}

	mesh.Normalize(modelSize)
	mesh.Position = math3d.V3(0, 0, modelDistance)
	return &Scene{Meshes: []*Mesh{mesh}, Start: math3d.Zero3()}, texErr
}

// AddTo adds every mesh of s to r.
func (s *Scene) AddTo(r *render.Renderer) error {
	for _, m := range s.Meshes {
		if err := r.AddMesh(m); err != nil {
			return err
		}
	}
	return nil
}

// TriangleCount returns the number of triangles across all meshes.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, m := range s.Meshes {
		n += m.TriangleCount()
	}
	return n
}
