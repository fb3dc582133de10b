package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/platinummonkey/i18nlint/pkg/locale"
	"github.com/platinummonkey/i18nlint/pkg/observability"
)

// Cache keeps parsed catalog sources between runs of a watch session.
// Entries are keyed by path, block offset, content hash and build options,
// so an edited file is never served stale.
type Cache struct {
	lru     *lru.LRU[string, *locale.LocaleMessage]
	metrics *observability.Metrics
}

// NewCache creates a cache holding up to size sources for ttl
func NewCache(size int, ttl time.Duration, metrics *observability.Metrics) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{
		lru:     lru.NewLRU[string, *locale.LocaleMessage](size, nil, ttl),
		metrics: metrics,
	}
}

// Get returns the cached message for key
func (c *Cache) Get(key string) (*locale.LocaleMessage, bool) {
	if c == nil {
		return nil, false
	}
	m, ok := c.lru.Get(key)
	c.metrics.RecordCache(ok)
	return m, ok
}

// Add stores a parsed message
func (c *Cache) Add(key string, m *locale.LocaleMessage) {
	if c == nil {
		return
	}
	c.lru.Add(key, m)
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge drops every entry
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// cacheKey identifies one parse of src under the loader settings in
// fingerprint
func cacheKey(src locale.Source, fingerprint string) string {
	sum := sha256.Sum256(src.Content)
	offset := -1
	declared := ""
	if src.Block != nil {
		offset = src.Block.Offset
		declared = src.Block.DeclaredLocale
	}
	return fmt.Sprintf("%s|%d:%d:%d|%s|%s|%s|%s",
		src.Path, offset, src.Base.Line, src.Base.Column, declared, src.Format, fingerprint, hex.EncodeToString(sum[:]))
}
