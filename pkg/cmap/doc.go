// Package cmap provides a generic sharded concurrent map.
//
// It reduces lock contention compared to a single mutex guarding a plain
// Go map: each key hashes to one of a fixed number of shards, and only
// that shard's RWMutex is taken for a given operation.
//
// Usage:
//
//	m := cmap.New[string, *Entry]()
//	m.Set("key", entry)
//	val, ok := m.Get("key")
//
// All operations are thread-safe. Read operations (Get, Has, Range) take
// a shard's RLock; write operations (Set, Delete, Locked) take its Lock.
package cmap
