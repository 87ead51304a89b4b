package crypto

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/ethereum/go-ethereum/metrics"
)

// DefaultSigCacheSize is the default number of entries in the signature cache.
const DefaultSigCacheSize = 4096

var (
	sigCacheHitCounter  = metrics.NewRegisteredCounter("typedtx/crypto/recovercache/hit", nil)
	sigCacheMissCounter = metrics.NewRegisteredCounter("typedtx/crypto/recovercache/miss", nil)
)

// CachedBackend decorates a Backend with an LRU of successful recoveries,
// keyed by keccak256(digest || sig). Unlike the per-value memo in
// core/types it is shared across separately decoded copies of the same
// authorization. Failures are not cached. Safe for concurrent use.
type CachedBackend struct {
	inner Backend
	cache *lru.Cache[common.Hash, []byte]
}

// NewCachedBackend wraps inner. If size <= 0, DefaultSigCacheSize is used.
func NewCachedBackend(inner Backend, size int) *CachedBackend {
	if size <= 0 {
		size = DefaultSigCacheSize
	}
	return &CachedBackend{
		inner: inner,
		cache: lru.NewCache[common.Hash, []byte](size),
	}
}

// Keccak256Hash implements Hasher by delegating to the wrapped backend.
func (c *CachedBackend) Keccak256Hash(data ...[]byte) common.Hash {
	return c.inner.Keccak256Hash(data...)
}

// Ecrecover implements Recoverer. The returned slice is a copy and may be
// modified by the caller.
func (c *CachedBackend) Ecrecover(digest common.Hash, sig []byte) ([]byte, error) {
	key := c.inner.Keccak256Hash(digest[:], sig)
	if pub, ok := c.cache.Get(key); ok {
		sigCacheHitCounter.Inc(1)
		return common.CopyBytes(pub), nil
	}
	sigCacheMissCounter.Inc(1)

	pub, err := c.inner.Ecrecover(digest, sig)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, common.CopyBytes(pub))
	return pub, nil
}

// Len returns the number of cached recoveries.
func (c *CachedBackend) Len() int {
	return c.cache.Len()
}
