package cache

// entry is the stored record: payload bytes plus TTL bookkeeping.
// Entries are never mutated in place; an overwrite replaces the pointer.
type entry struct {
	key     string
	payload []byte

	// insertedAt is the UnixNano timestamp of the Set that created the entry.
	insertedAt int64

	// Absolute expiration deadline in UnixNano. Zero means "no TTL".
	exp int64
}

// live reports whether the entry may still be served at now.
// The deadline itself is already expired.
func (e *entry) live(now int64) bool {
	return e.exp == 0 || now < e.exp
}

// cost is the number of bytes the entry charges against the size limit.
func (e *entry) cost() int64 { return int64(len(e.payload)) }
