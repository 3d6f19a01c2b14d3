package tui

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"geomap/internal/ingest"
)

const defaultCacheEntries = 16

// resultCache remembers ingestion results by content, so reopening an
// unchanged file skips decoding. Failures are not cached.
type resultCache struct {
	lru *lru.Cache[uint64, *ingest.Result]
}

func newResultCache(size int) *resultCache {
	if size <= 0 {
		size = defaultCacheEntries
	}
	c, _ := lru.New[uint64, *ingest.Result](size)
	return &resultCache{lru: c}
}

// key covers the format as well as the bytes: the same text parsed as CSV
// and as JSON gives different results.
func cacheKey(format ingest.Format, data []byte) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(format))
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(data)
	return d.Sum64()
}

// ingest returns the cached result for data or runs in and stores it.
func (c *resultCache) ingest(in *ingest.Ingester, name string, data []byte) (res *ingest.Result, hit bool, err error) {
	format, err := ingest.DetectFormat(name)
	if err != nil {
		return nil, false, err
	}
	key := cacheKey(format, data)
	if res, ok := c.lru.Get(key); ok {
		return res, true, nil
	}
	res, err = in.IngestBytes(name, data)
	if err != nil {
		return nil, false, err
	}
	c.lru.Add(key, res)
	return res, false, nil
}

func (c *resultCache) Len() int { return c.lru.Len() }
