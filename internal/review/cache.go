package review

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"skelreview/internal/skeleton"
)

// DocumentCache keeps parsed skeleton documents so navigating back to a clip
// does not parse it again. Failed parses are never cached.
type DocumentCache struct {
	cache *gocache.Cache
	ttl   time.Duration
	load  func(path string) (*skeleton.Document, error)
}

// NewDocumentCache returns a cache retaining documents for ttl. A ttl of zero
// disables retention; load defaults to skeleton.ParseFile.
func NewDocumentCache(ttl time.Duration, load func(string) (*skeleton.Document, error)) *DocumentCache {
	if load == nil {
		load = skeleton.ParseFile
	}
	dc := &DocumentCache{ttl: ttl, load: load}
	if ttl > 0 {
		dc.cache = gocache.New(ttl, 2*ttl)
	}
	return dc
}

// Get returns the document for path and whether it came from the cache.
func (c *DocumentCache) Get(path string) (*skeleton.Document, bool, error) {
	if c.cache != nil {
		if val, found := c.cache.Get(path); found {
			return val.(*skeleton.Document), true, nil
		}
	}
	doc, err := c.load(path)
	if err != nil {
		return nil, false, err
	}
	if c.cache != nil {
		c.cache.Set(path, doc, gocache.DefaultExpiration)
	}
	return doc, false, nil
}

// Len returns the number of retained documents.
func (c *DocumentCache) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.ItemCount()
}
