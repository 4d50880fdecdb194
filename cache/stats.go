package cache

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64 // capacity evictions chosen by the policy
	Expirations uint64 // entries purged because their TTL elapsed
	Rejections  uint64 // insertions refused with ErrCapacityExceeded
	Entries     int
	Size        int64
	Limit       int64
	HitRate     float64
}

func (c *cache) Stats() Stats {
	c.mu.Lock()
	entries, size := c.st.Len(), c.st.Size()
	c.mu.Unlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Hits:        hits,
		Misses:      misses,
		Evictions:   c.evicts.Load(),
		Expirations: c.expired.Load(),
		Rejections:  c.rejects.Load(),
		Entries:     entries,
		Size:        size,
		Limit:       c.st.limit,
		HitRate:     hitRate,
	}
}
