// Package cache provides a small generic LRU cache.
//
// Backends use it to memoize expensive per-resource conversions, such as
// encoding an image region, across the draw calls of a single replay.
//
//	c := cache.New[string, int](64)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
