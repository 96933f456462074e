// Package cache is a get-or-put store for expensive computations,
// bounded by a freshness lifetime.
package cache

import (
	"encoding/binary"
	"time"

	"github.com/akrylysov/pogreb"
	"github.com/akrylysov/pogreb/fs"
)

type Cache struct {
	db *pogreb.DB
}

// Open opens (or creates) a cache database at path.
func Open(path string) (*Cache, error) {
	db, err := pogreb.Open(path, nil)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// OpenMem opens a throwaway in-memory cache.
func OpenMem() (*Cache, error) {
	// BUG pogreb.Open always calls os.MkdirAll
	db, err := pogreb.Open(".", &pogreb.Options{
		FileSystem: fs.Mem,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// GetOrPut returns the cached value for key if it was stored within
// lifetime, otherwise computes it via fn and stores it. A failed fn
// leaves the cache untouched.
func (c *Cache) GetOrPut(key string, lifetime time.Duration, fn func() ([]byte, error)) ([]byte, error) {
	k := []byte(key)
	if v, err := c.db.Get(k); err != nil {
		return nil, err
	} else if v != nil {
		if payload, ok := fresh(v, lifetime); ok {
			return payload, nil
		}
	}

	payload, err := fn()
	if err != nil {
		return nil, err
	}
	v := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint64(v, uint64(time.Now().Unix()))
	copy(v[8:], payload)
	if err := c.db.Put(k, v); err != nil {
		return nil, err
	}
	return payload, nil
}

func fresh(v []byte, lifetime time.Duration) ([]byte, bool) {
	if len(v) < 8 {
		return nil, false
	}
	stored := time.Unix(int64(binary.BigEndian.Uint64(v)), 0)
	if time.Since(stored) > lifetime {
		return nil, false
	}
	return v[8:], true
}
