// Package assets handles texture asset loading and caching.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Faultbox/sunshade/internal/engine/sky"
	"github.com/Faultbox/sunshade/internal/engine/texture"
)

// Manager handles asset loading from plain directories.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddRoot adds a directory to the manager.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("opening asset root %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset root %s is not a directory", path)
	}

	m.mu.Lock()
	m.roots = append(m.roots, path)
	m.mu.Unlock()

	return nil
}

// Load loads a file from the roots.
func (m *Manager) Load(path string) ([]byte, error) {
	// Check cache first
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Search roots in reverse order
	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(m.roots[i], filepath.FromSlash(path)))
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("file not found: %s", path)
}

// LoadTexture loads and decodes an image asset.
// TGA and PNG are supported, chosen by file extension.
func (m *Manager) LoadTexture(path string) (*texture.Texture2D, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(path, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return texture.FromImage(img), nil
}

// LoadSky assembles a sky cube map from six face images sharing a common
// prefix. With prefix "sky/day" and ext ".png" the faces are
// "sky/day_rt.png" through "sky/day_ft.png".
func (m *Manager) LoadSky(prefix, ext string) (*sky.CubeMap, error) {
	var faces [6]*texture.Texture2D
	for i, suffix := range sky.FaceSuffixes {
		tex, err := m.LoadTexture(prefix + suffix + ext)
		if err != nil {
			return nil, fmt.Errorf("loading sky face %s: %w", suffix, err)
		}
		faces[i] = tex
	}
	return sky.NewCubeMap(faces)
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.cache.Clear()
}

// decodeImage decodes image bytes by extension.
func decodeImage(path string, data []byte) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga":
		return texture.DecodeTGA(data)
	case ".png":
		return png.Decode(bytes.NewReader(data))
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		return img, err
	}
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
