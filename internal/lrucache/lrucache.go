package lrucache

import (
	lru "github.com/hashicorp/golang-lru"
)

// LruCache is a typed view over a size-bounded LRU cache. It is safe for
// concurrent use.
type LruCache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Add(key K, val V)
	Len() int
}

type lruCache[K comparable, V any] struct {
	c *lru.Cache
}

func NewLruCache[K comparable, V any](capacity int) LruCache[K, V] {
	// lru.New only fails for a non-positive size
	c, _ := lru.New(max(1, capacity))
	return &lruCache[K, V]{c: c}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.c.Get(key)
	if !ok {
		return *new(V), false
	}
	return v.(V), true
}

func (c *lruCache[K, V]) Add(key K, val V) {
	c.c.Add(key, val)
}

func (c *lruCache[K, V]) Len() int {
	return c.c.Len()
}
