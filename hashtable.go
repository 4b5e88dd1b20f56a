package collections

import (
	"fmt"
	"io"
	"math"
	"strings"

	"go.uber.org/zap"
)

// entry is a key/value pair in a bucket chain. Each entry is owned by the entry
// before it in the chain, the first one by its bucket.
type entry struct {
	key   string
	value float64
	next  *entry
}

// HashTable maps string keys to float64 values using separate chaining.
// Before an insert, if count/buckets exceeds the load factor (0.7 by default),
// the bucket array doubles and every entry is relinked into its new bucket.
// The check uses the occupancy before the insert, so the table may sit just
// above the load factor until the next insert.
// The zero value for a HashTable is not ready to use; NewHashTable must be called.
//
// HashTable คือตารางแฮชแบบ separate chaining ที่ใช้ key เป็น string
type HashTable struct {
	buckets   []*entry
	count     int
	allocator nodeAllocator[entry]
	hash      Hasher
	cfg       *config
}

// NewHashTable creates an empty table with DefaultCapacity buckets unless WithCapacity is given.
func NewHashTable(opts ...Option) *HashTable {
	cfg := newConfig(opts)
	return &HashTable{
		buckets:   make([]*entry, cfg.capacity),
		allocator: newNodeAllocator(cfg, cfg.entryAllocator),
		hash:      cfg.hasher,
		cfg:       cfg,
	}
}

func (h *HashTable) check() error {
	if h == nil {
		return invalid(errNilContainer)
	}
	if h.buckets == nil {
		return invalid(errDestroyed)
	}
	return nil
}

func (h *HashTable) index(key string) int {
	return int(h.hash(key) % uint32(len(h.buckets)))
}

// rehash doubles the bucket array and moves every entry to its bucket for the new size.
// Entries are relinked, not copied.
func (h *HashTable) rehash() error {
	newCap, err := h.cfg.grownCapacity(len(h.buckets))
	if err != nil {
		return err
	}
	if uint64(newCap) > math.MaxUint32 {
		return fmt.Errorf("%w: %d buckets exceed the hash range", ErrAllocation, newCap)
	}
	buckets := make([]*entry, newCap)
	for _, current := range h.buckets {
		for current != nil {
			next := current.next
			i := int(h.hash(current.key) % uint32(newCap))
			current.next = buckets[i]
			buckets[i] = current
			current = next
		}
	}
	h.cfg.logger.Debug("hash table rehashed",
		zap.Int("old_buckets", len(h.buckets)),
		zap.Int("new_buckets", newCap),
		zap.Int("entries", h.count),
	)
	h.buckets = buckets
	return nil
}

// find returns the entry stored under key, or nil.
func (h *HashTable) find(key string) *entry {
	for current := h.buckets[h.index(key)]; current != nil; current = current.next {
		if current.key == key {
			return current
		}
	}
	return nil
}

// Insert stores value under key. An existing key has its value overwritten in
// place; a new key is copied so the table owns it, and goes to the front of its chain.
// The entry for a new key is allocated before any rehash, so a failed insert
// leaves the table as it was.
func (h *HashTable) Insert(key string, value float64) error {
	if err := h.check(); err != nil {
		return err
	}
	existing := h.find(key)
	var e *entry
	if existing == nil {
		var err error
		if e, err = h.allocator.Get(); err != nil {
			return fmt.Errorf("hash table insert %q: %w: %w", key, ErrAllocation, err)
		}
	}
	if float64(h.count)/float64(len(h.buckets)) > h.cfg.loadFactor {
		if err := h.rehash(); err != nil {
			if e != nil {
				h.allocator.Put(e)
			}
			return fmt.Errorf("hash table insert %q: %w", key, err)
		}
	}
	if existing != nil {
		// Rehashing relinks entries, so existing is still the live entry.
		existing.value = value
		return nil
	}
	i := h.index(key)
	e.key = strings.Clone(key)
	e.value = value
	e.next = h.buckets[i]
	h.buckets[i] = e
	h.count++
	return nil
}

// Delete removes key from the table. It returns ErrNotFound if the key is absent.
func (h *HashTable) Delete(key string) error {
	if err := h.check(); err != nil {
		return err
	}
	i := h.index(key)
	var previous *entry
	for current := h.buckets[i]; current != nil; current = current.next {
		if current.key != key {
			previous = current
			continue
		}
		if previous == nil {
			h.buckets[i] = current.next
		} else {
			previous.next = current.next
		}
		h.allocator.Put(current)
		h.count--
		return nil
	}
	return fmt.Errorf("hash table delete %q: %w", key, ErrNotFound)
}

// Search returns the value stored under key, or ErrNotFound.
func (h *HashTable) Search(key string) (float64, error) {
	if err := h.check(); err != nil {
		return 0, err
	}
	if e := h.find(key); e != nil {
		return e.value, nil
	}
	return 0, fmt.Errorf("hash table search %q: %w", key, ErrNotFound)
}

// Len returns the number of stored keys.
func (h *HashTable) Len() int {
	if h.check() != nil {
		return 0
	}
	return h.count
}

// Cap returns the number of buckets.
func (h *HashTable) Cap() int {
	if h.check() != nil {
		return 0
	}
	return len(h.buckets)
}

// LoadFactor returns count/buckets.
func (h *HashTable) LoadFactor() float64 {
	if h.check() != nil {
		return 0
	}
	return float64(h.count) / float64(len(h.buckets))
}

// Range calls f for every key/value pair, bucket by bucket. The order is
// unspecified. If f returns false, iteration stops. f must not mutate the table.
func (h *HashTable) Range(f func(key string, value float64) bool) {
	if h.check() != nil {
		return
	}
	for _, current := range h.buckets {
		for ; current != nil; current = current.next {
			if !f(current.key, current.value) {
				return
			}
		}
	}
}

// Destroy releases every entry with its key, the allocator behind them and the bucket array.
// Any further call fails with ErrInvalidArgument.
func (h *HashTable) Destroy() error {
	if err := h.check(); err != nil {
		return err
	}
	if !reclaimsNodes(h.allocator) {
		for _, current := range h.buckets {
			for current != nil {
				next := current.next
				h.allocator.Put(current)
				current = next
			}
		}
	}
	h.allocator.Release()
	h.cfg.logger.Debug("hash table destroyed",
		zap.Int("buckets", len(h.buckets)),
		zap.Int("entries", h.count),
	)
	h.buckets = nil
	h.allocator = nil
	h.count = 0
	return nil
}

// Close is an alias for Destroy.
func (h *HashTable) Close() error {
	return h.Destroy()
}

// Dump writes one line per bucket, e.g. "Bucket 3: [pi: 3.14] -> NULL".
func (h *HashTable) Dump(w io.Writer) error {
	if err := h.check(); err != nil {
		return err
	}
	var b strings.Builder
	for i, current := range h.buckets {
		fmt.Fprintf(&b, "Bucket %d: ", i)
		for ; current != nil; current = current.next {
			fmt.Fprintf(&b, "[%s: %.2f] -> ", current.key, current.value)
		}
		b.WriteString("NULL\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (h *HashTable) String() string {
	var b strings.Builder
	if err := h.Dump(&b); err != nil {
		return "<invalid hash table>"
	}
	return strings.TrimSuffix(b.String(), "\n")
}
