package models

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// gltfLoader holds the state of one LoadGLTF call.
type gltfLoader struct {
	doc   *gltf.Document
	dir   string
	name  string
	atlas *render.Atlas

	images map[int]int // glTF image index -> atlas key
}

// LoadGLTF loads every triangle primitive of a glTF or GLB file into one
// mesh. glTF is right-handed, so z is negated; the index order is kept,
// which leaves front faces counter-clockwise on screen.
//
// Base color textures are decoded into atlas under "<file>#<image>".
// Primitives without one, or whose image fails to decode, use
// render.MissingKey. A nil atlas skips textures entirely.
func LoadGLTF(path string, atlas *render.Atlas) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	l := &gltfLoader{
		doc:    doc,
		dir:    filepath.Dir(path),
		name:   filepath.Base(path),
		atlas:  atlas,
		images: make(map[int]int),
	}
	mesh := NewMesh(l.name)

	for _, m := range doc.Meshes {
		if err := l.processMesh(m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("%s: %w", l.name, ErrNoGeometry)
	}

	mesh.CalculateBounds()
	render.Logger().Info("model loaded",
		slog.String("file", l.name),
		slog.Int("triangles", mesh.TriangleCount()),
		slog.Int("textures", len(l.images)))
	return mesh, nil
}

// processMesh appends the triangles of every primitive in m.
func (l *gltfLoader) processMesh(m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := l.readVec3(posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = l.readVec2(uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = l.readIndices(*prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		tex := l.textureKey(prim.Material)
		for i := 0; i+2 < len(indices); i += 3 {
			var tri [3]math3d.Vec3
			var uv [3]math3d.Vec2
			for j := range 3 {
				idx := indices[i+j]
				if idx < 0 || idx >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
				}
				p := positions[idx]
				tri[j] = math3d.V3(p.X, p.Y, -p.Z)
				if idx < len(uvs) {
					// glTF puts V=0 at the top of the image
					uv[j] = math3d.V2(uvs[idx].X, 1-uvs[idx].Y)
				}
			}
			mesh.AddTriangle(tri, uv, tex)
		}
	}
	return nil
}

// textureKey returns the atlas key of a material's base color texture.
func (l *gltfLoader) textureKey(material *int) int {
	if material == nil || l.atlas == nil || *material < 0 || *material >= len(l.doc.Materials) {
		return render.MissingKey
	}
	pbr := l.doc.Materials[*material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil {
		return render.MissingKey
	}
	ti := pbr.BaseColorTexture.Index
	if ti < 0 || ti >= len(l.doc.Textures) || l.doc.Textures[ti].Source == nil {
		return render.MissingKey
	}
	return l.imageKey(*l.doc.Textures[ti].Source)
}

// imageKey decodes image i into the atlas once and caches its key.
func (l *gltfLoader) imageKey(i int) int {
	if key, ok := l.images[i]; ok {
		return key
	}

	alias := fmt.Sprintf("%s#%d", l.name, i)
	key := render.MissingKey
	img, err := l.decodeImage(i)
	if err != nil {
		render.Logger().Warn("texture fallback", slog.String("alias", alias), slog.Any("err", err))
	} else {
		key = l.atlas.AddImage(alias, img)
	}
	l.images[i] = key
	return key
}

func (l *gltfLoader) decodeImage(i int) (image.Image, error) {
	if i < 0 || i >= len(l.doc.Images) {
		return nil, fmt.Errorf("image %d out of range", i)
	}
	data, err := l.imageData(l.doc.Images[i])
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %d: %w", i, err)
	}
	return img, nil
}

// imageData returns the encoded bytes of img from a buffer view, a data
// URI or a file next to the model.
func (l *gltfLoader) imageData(img *gltf.Image) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		return l.bufferView(*img.BufferView)
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		data, err := os.ReadFile(filepath.Join(l.dir, img.URI))
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("image has no data")
}

// bufferView returns the bytes covered by buffer view i.
func (l *gltfLoader) bufferView(i int) ([]byte, error) {
	if i < 0 || i >= len(l.doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", i)
	}
	bv := l.doc.BufferViews[i]
	if bv.Buffer < 0 || bv.Buffer >= len(l.doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bv.Buffer)
	}
	data := l.doc.Buffers[bv.Buffer].Data
	if data == nil {
		return nil, fmt.Errorf("buffer %d has no data", bv.Buffer)
	}
	end := bv.ByteOffset + bv.ByteLength
	if end > len(data) {
		return nil, fmt.Errorf("buffer view %d ends at %d past buffer length %d", i, end, len(data))
	}
	return data[bv.ByteOffset:end], nil
}

// accessor returns accessor i, the bytes of its buffer view and its stride.
func (l *gltfLoader) accessor(i int, elemSize int) (*gltf.Accessor, []byte, int, error) {
	if i < 0 || i >= len(l.doc.Accessors) {
		return nil, nil, 0, fmt.Errorf("accessor %d out of range", i)
	}
	acc := l.doc.Accessors[i]
	if acc.BufferView == nil {
		return nil, nil, 0, errors.New("accessor has no buffer view")
	}
	data, err := l.bufferView(*acc.BufferView)
	if err != nil {
		return nil, nil, 0, err
	}
	stride := l.doc.BufferViews[*acc.BufferView].ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if acc.Count > 0 {
		if end := acc.ByteOffset + (acc.Count-1)*stride + elemSize; end > len(data) {
			return nil, nil, 0, fmt.Errorf("accessor %d reads past its buffer view", i)
		}
	}
	return acc, data[acc.ByteOffset:], stride, nil
}

func (l *gltfLoader) readVec3(i int) ([]math3d.Vec3, error) {
	acc, data, stride, err := l.accessor(i, 12)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", acc.Type, acc.ComponentType)
	}
	out := make([]math3d.Vec3, acc.Count)
	for k := range out {
		b := data[k*stride:]
		out[k] = math3d.V3(readFloat32(b), readFloat32(b[4:]), readFloat32(b[8:]))
	}
	return out, nil
}

func (l *gltfLoader) readVec2(i int) ([]math3d.Vec2, error) {
	acc, data, stride, err := l.accessor(i, 8)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorVec2 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC2, got %v / %v", acc.Type, acc.ComponentType)
	}
	out := make([]math3d.Vec2, acc.Count)
	for k := range out {
		b := data[k*stride:]
		out[k] = math3d.V2(readFloat32(b), readFloat32(b[4:]))
	}
	return out, nil
}

func (l *gltfLoader) readIndices(i int) ([]int, error) {
	if i < 0 || i >= len(l.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", i)
	}
	var size int
	switch l.doc.Accessors[i].ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", l.doc.Accessors[i].ComponentType)
	}

	acc, data, stride, err := l.accessor(i, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, acc.Count)
	for k := range out {
		b := data[k*stride:]
		switch size {
		case 1:
			out[k] = int(b[0])
		case 2:
			out[k] = int(binary.LittleEndian.Uint16(b))
		case 4:
			out[k] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
