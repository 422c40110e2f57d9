// Package icon resolves application icons for windows.
//
// Icons are immutable for a window's lifetime, so resolved results are
// cached by handle with no expiry and no invalidation.
package icon

import (
	"sync"

	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/window"
)

// DefaultSize is the icon edge length in pixels.
const DefaultSize = 32

// Resolver produces a PNG data URI icon for a window.
type Resolver interface {
	Resolve(h window.Handle, exePath string, size int) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(h window.Handle, exePath string, size int) (string, error)

func (f ResolverFunc) Resolve(h window.Handle, exePath string, size int) (string, error) {
	return f(h, exePath, size)
}

// Cache wraps a Resolver with a process-lifetime, set-once cache.
type Cache struct {
	mu       sync.Mutex
	icons    map[window.Handle]string
	resolver Resolver
}

// NewCache returns an empty icon cache over the given resolver.
func NewCache(r Resolver) *Cache {
	return &Cache{
		icons:    make(map[window.Handle]string),
		resolver: r,
	}
}

// Get returns the icon for the window, resolving and caching it on first
// use. Resolution failures degrade to the empty image and are not cached,
// so a later call may still succeed.
func (c *Cache) Get(h window.Handle, exePath string, size int) string {
	c.mu.Lock()
	if cached, ok := c.icons[h]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	if c.resolver == nil {
		return imaging.Empty
	}

	resolved, err := c.resolver.Resolve(h, exePath, size)
	if err != nil || imaging.IsEmpty(resolved) {
		return imaging.Empty
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have resolved concurrently; first write wins.
	if cached, ok := c.icons[h]; ok {
		return cached
	}

	c.icons[h] = resolved
	return resolved
}

// Forget drops the cached icon for a window.
func (c *Cache) Forget(h window.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.icons, h)
}

// Len returns the number of cached icons.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.icons)
}
