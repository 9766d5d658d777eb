package render

import (
	"fmt"
	"image"
	"log/slog"
)

// MissingKey is the atlas key of the placeholder texture. The empty alias
// always resolves to it.
const MissingKey = 0

// Atlas maps integer keys and string aliases to textures. Key 0 always holds
// a placeholder, so every lookup yields a usable texture.
//
// An Atlas is filled at load time and only read while rendering.
type Atlas struct {
	aliases  map[string]int
	textures []*Texture
}

// NewAtlas returns an atlas holding only the placeholder texture.
func NewAtlas() *Atlas {
	return &Atlas{
		aliases:  map[string]int{"": MissingKey},
		textures: []*Texture{NewMissingTexture()},
	}
}

// NewMissingTexture returns the magenta and black checker used for absent
// textures.
func NewMissingTexture() *Texture {
	return NewCheckerTexture(16, 16, 8, ColorMagenta, ColorBlack)
}

// Add registers tex under alias and returns its key. An alias that is
// already present keeps its key and has its texture replaced. A nil tex is
// stored as the placeholder. The empty alias is reserved for the placeholder:
// adding under it changes nothing and returns MissingKey.
func (a *Atlas) Add(alias string, tex *Texture) int {
	if alias == "" {
		Logger().Warn("texture alias reserved", slog.String("alias", alias))
		return MissingKey
	}
	if tex == nil {
		tex = a.textures[MissingKey]
	}
	if key, ok := a.aliases[alias]; ok {
		a.textures[key] = tex
		Logger().Info("texture replaced", slog.String("alias", alias), slog.Int("key", key))
		return key
	}
	key := len(a.textures)
	a.aliases[alias] = key
	a.textures = append(a.textures, tex)
	Logger().Info("texture added", slog.String("alias", alias), slog.Int("key", key),
		slog.Int("width", tex.Width), slog.Int("height", tex.Height))
	return key
}

// AddImage converts img and registers it under alias.
func (a *Atlas) AddImage(alias string, img image.Image) int {
	return a.Add(alias, TextureFromImage(img))
}

// LoadFile decodes the image at path and registers it under alias. When the
// file cannot be loaded the alias is not registered, a warning is logged and
// MissingKey is returned along with the error, so callers may keep going.
func (a *Atlas) LoadFile(alias, path string) (int, error) {
	tex, err := LoadTexture(path)
	if err != nil {
		Logger().Warn("texture fallback", slog.String("alias", alias), slog.String("path", path), slog.Any("err", err))
		return MissingKey, fmt.Errorf("atlas %q: %w", alias, err)
	}
	return a.Add(alias, tex), nil
}

// Get returns the texture for key, or the placeholder for unknown keys.
func (a *Atlas) Get(key int) *Texture {
	if key < 0 || key >= len(a.textures) {
		return a.textures[MissingKey]
	}
	return a.textures[key]
}

// Lookup returns the key registered for alias.
func (a *Atlas) Lookup(alias string) (int, bool) {
	key, ok := a.aliases[alias]
	return key, ok
}

// Key returns the key for alias, or MissingKey if it is unknown.
func (a *Atlas) Key(alias string) int {
	if key, ok := a.aliases[alias]; ok {
		return key
	}
	return MissingKey
}

// Len returns the number of textures, placeholder included.
func (a *Atlas) Len() int {
	return len(a.textures)
}
