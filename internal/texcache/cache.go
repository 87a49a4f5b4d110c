// Package texcache keeps device images uploaded from palette swatches, keyed
// by swatch key and bounded by their pixel memory.
package texcache

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/kjkrol/goktile/pkg/gfx"
)

// Cache uploads a swatch on its first lookup and serves the uploaded value
// afterwards. Evicted values are handed to the release func.
type Cache[V any] struct {
	store   *ristretto.Cache[uint64, V]
	upload  func(*gfx.Swatch) V
	uploads int
}

func New[V any](maxBytes int64, upload func(*gfx.Swatch) V, release func(V)) (*Cache[V], error) {
	if upload == nil {
		panic("upload func is required")
	}
	conf := &ristretto.Config[uint64, V]{
		NumCounters: 10000,
		MaxCost:     maxBytes,
		BufferItems: 64,
	}
	if release != nil {
		conf.OnEvict = func(item *ristretto.Item[V]) {
			release(item.Value)
		}
	}
	store, err := ristretto.NewCache(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture cache: %w", err)
	}
	return &Cache[V]{store: store, upload: upload}, nil
}

// Lookup returns the uploaded value for swatch. Sets are applied before it
// returns, so the next lookup of the same key hits.
func (c *Cache[V]) Lookup(swatch *gfx.Swatch) V {
	if v, ok := c.store.Get(swatch.Key); ok {
		return v
	}
	v := c.upload(swatch)
	c.uploads++
	c.store.Set(swatch.Key, v, cost(swatch))
	c.store.Wait()
	return v
}

// Uploads counts cache misses.
func (c *Cache[V]) Uploads() int {
	return c.uploads
}

func (c *Cache[V]) Close() {
	c.store.Close()
}

// cost is the RGBA byte size of the swatch image.
func cost(swatch *gfx.Swatch) int64 {
	b := swatch.Image.Bounds()
	return int64(b.Dx() * b.Dy() * 4)
}
