package cmap

// Range iterates over all key-value pairs.
//
// The callback returns false to stop iteration.
// Note: this acquires locks shard by shard, so the view may not be consistent
// across the whole map at any single instant.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, shard := range m.shards {
		shard.mu.RLock()
		for k, v := range shard.items {
			if !fn(k, v) {
				shard.mu.RUnlock()
				return
			}
		}
		shard.mu.RUnlock()
	}
}
