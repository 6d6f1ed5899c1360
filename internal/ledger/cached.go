package ledger

import (
	"github.com/coocood/freecache"
)

// cachedStorage is a read-through cache in front of another Storage.
// Reverts drop the whole cache: a revert is the rare path and tracking the
// exact keys it touches is not worth the bookkeeping.
type cachedStorage struct {
	Storage
	cache *freecache.Cache
}

// NewCachedStorage wraps s with a freecache read cache of the given size.
func NewCachedStorage(s Storage, megabytesLimit int) Storage {
	if megabytesLimit <= 0 {
		megabytesLimit = 32
	}
	return &cachedStorage{
		Storage: s,
		cache:   freecache.NewCache(megabytesLimit * 1024 * 1024),
	}
}

func (c *cachedStorage) Get(key []byte) (bool, []byte) {
	if v, err := c.cache.Get(key); err == nil {
		return true, v
	}
	ok, v := c.Storage.Get(key)
	if ok {
		_ = c.cache.Set(key, v, 0)
	}
	return ok, v
}

func (c *cachedStorage) Put(key []byte, value []byte) {
	c.Storage.Put(key, value)
	_ = c.cache.Set(key, value, 0)
}

func (c *cachedStorage) Delete(key []byte) {
	c.Storage.Delete(key)
	c.cache.Del(key)
}

func (c *cachedStorage) Has(key []byte) bool {
	ok, _ := c.Get(key)
	return ok
}

func (c *cachedStorage) RevertToSnapshot(id int) {
	c.Storage.RevertToSnapshot(id)
	c.cache.Clear()
}
