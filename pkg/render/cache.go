package render

import (
	"sync"

	"github.com/joeblew999/plat-mailview/pkg/privacy"
)

type entry struct {
	preview string
	body    *Body
}

// Cache maps message id to render result for one thread view session. An
// absent or pending entry reads as "not ready", never as an error. Writes
// are single-writer per id (the worker completing that id's render);
// concurrent readers observe either the old not-ready state or the complete
// body, never a partial one.
type Cache struct {
	mu       sync.RWMutex
	settings privacy.Settings
	entries  map[string]entry
}

// NewCache creates an empty cache bound to a settings snapshot.
func NewCache(settings privacy.Settings) *Cache {
	return &Cache{
		settings: settings,
		entries:  make(map[string]entry),
	}
}

// Reset rebinds the cache to a settings snapshot. If the snapshot differs
// from the one entries were rendered under, everything is dropped: a stale
// body must never be served for the wrong settings.
func (c *Cache) Reset(settings privacy.Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if settings != c.settings {
		c.settings = settings
		c.entries = make(map[string]entry)
	}
}

// SeedPlaceholder stores cheap preview text for a message so the UI has
// something to show with zero latency. A body already rendered for the
// current settings is kept.
func (c *Cache) SeedPlaceholder(id, preview string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entries[id]
	e.preview = preview
	c.entries[id] = e
}

// Publish stores a completed render for id. The settings snapshot the body
// was rendered under must match the cache's current snapshot; a mismatched
// write is dropped, so a pass started before a Reset cannot publish stale
// bodies into the rebound cache.
func (c *Cache) Publish(id string, body Body, settings privacy.Settings) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if settings != c.settings {
		return false
	}
	e := c.entries[id]
	e.body = &body
	c.entries[id] = e
	return true
}

// Lookup returns the rendered body for id, or ok=false while the render is
// pending or was never scheduled.
func (c *Cache) Lookup(id string) (Body, bool) {
	c.mu.RLock()
	e, found := c.entries[id]
	c.mu.RUnlock()

	if !found || e.body == nil {
		cacheMisses.Inc()
		return Body{}, false
	}
	cacheHits.Inc()
	return *e.body, true
}

// Preview returns the placeholder text seeded for id.
func (c *Cache) Preview(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, found := c.entries[id]
	if !found {
		return "", false
	}
	return e.preview, true
}

// Settings returns the snapshot the cached entries were rendered under.
func (c *Cache) Settings() privacy.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Len reports how many messages have a completed render.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, e := range c.entries {
		if e.body != nil {
			n++
		}
	}
	return n
}
