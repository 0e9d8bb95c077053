package images

import (
	"fmt"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
)

type previewKey struct {
	path string
	w, h int
}

// PreviewCache decodes photo files into display-sized PNG bytes and keeps the
// most recently used results.
type PreviewCache struct {
	cache *lru.Cache[previewKey, []byte]
}

// NewPreviewCache returns a cache holding up to size previews.
func NewPreviewCache(size int) (*PreviewCache, error) {
	if size <= 0 {
		size = 1
	}
	c, err := lru.New[previewKey, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("preview cache: %w", err)
	}
	return &PreviewCache{cache: c}, nil
}

// Load returns PNG bytes of the photo at path fitted into w x h.
func (c *PreviewCache) Load(path string, w, h int) ([]byte, error) {
	key := previewKey{path: path, w: w, h: h}
	if c != nil {
		if b, ok := c.cache.Get(key); ok {
			return b, nil
		}
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preview %s: %w", path, err)
	}
	b := EncodePNG(ScaleToFit(img, w, h))
	if c != nil {
		c.cache.Add(key, b)
	}
	return b, nil
}

// Len reports the number of cached previews.
func (c *PreviewCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
