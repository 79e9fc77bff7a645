package preview

import (
	"fmt"
	"image"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Cache keeps rendered previews, so that repeated requests for an
// unchanged road do not render again.  It is safe for concurrent use.
type Cache struct {
	m *xsync.MapOf[string, *image.RGBA]
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{m: xsync.NewMapOf[string, *image.RGBA]()}
}

// Get returns the cached image for key.  If there is none, render is
// called to create it.  Concurrent calls for the same key call render
// only once.
func (c *Cache) Get(key string, render func() *image.RGBA) *image.RGBA {
	img, _ := c.m.LoadOrCompute(key, render)
	return img
}

// Invalidate removes all entries whose key starts with prefix.
func (c *Cache) Invalidate(prefix string) {
	c.m.Range(func(key string, _ *image.RGBA) bool {
		if strings.HasPrefix(key, prefix) {
			c.m.Delete(key)
		}
		return true
	})
}

// Len returns the number of cached previews.
func (c *Cache) Len() int {
	return c.m.Size()
}

// Key builds a cache key from a road ID and the settings used to draw it.
// Keys for the same road share the prefix id + "/".
func Key(id string, settings any) string {
	return fmt.Sprintf("%s/%+v", id, settings)
}
