// Package collections implements five classic in-memory containers of float64
// values: a dynamic stack, a circular-buffer queue, a singly linked list, a
// separate-chaining hash table keyed by string, and an array-backed max-heap.
//
// Containers are created with a New function, mutated only through their own
// methods and released with Destroy (or Close). They hold no internal locking
// and must not be mutated from multiple goroutines without external
// synchronization.
//
// แพ็กเกจ collections รวมโครงสร้างข้อมูลพื้นฐานห้าแบบสำหรับค่า float64
// ทุกโครงสร้างไม่ thread-safe และต้องเรียก Destroy เมื่อเลิกใช้งาน
package collections

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	// DefaultCapacity is the initial capacity of every container: elements for the
	// stack, queue and heap, buckets for the hash table.
	// DefaultCapacity คือขนาดเริ่มต้นของทุกโครงสร้าง
	DefaultCapacity = 100
	// DefaultLoadFactor is the entries-per-bucket ratio above which the hash table
	// doubles its bucket array before the next insert.
	DefaultLoadFactor = 0.7
)

// Option is a function that configures a container.
// Option คือฟังก์ชันสำหรับกำหนดค่าของโครงสร้างข้อมูล
type Option func(*config)

type config struct {
	capacity          int
	maxCapacity       int // 0 means unbounded
	logger            *zap.Logger
	hasher            Hasher
	loadFactor        float64
	arenaInitialNodes int
	arenaGrowthFactor float64
	arenaGrowthBytes  int
	arenaThreshold    float64

	// Allocator overrides, set by tests.
	listAllocator  nodeAllocator[listNode]
	entryAllocator nodeAllocator[entry]
}

func newConfig(opts []Option) *config {
	c := &config{
		capacity:   DefaultCapacity,
		logger:     zap.NewNop(),
		hasher:     DJB2,
		loadFactor: DefaultLoadFactor,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.maxCapacity > 0 && c.capacity > c.maxCapacity {
		c.capacity = c.maxCapacity
	}
	return c
}

// WithCapacity sets the initial capacity. Values <= 0 are ignored.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithMaxCapacity bounds the backing storage of a container: elements for the
// stack, queue and heap, nodes for the linked list and buckets for the hash table.
// An operation that would need to grow past the bound fails with ErrAllocation
// and leaves the container unchanged. Values <= 0 are ignored.
func WithMaxCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxCapacity = n
		}
	}
}

// WithLogger sets the logger used to report growth, rehashing and teardown.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHasher replaces the hash table's hash function. It has no effect on other containers.
func WithHasher(h Hasher) Option {
	return func(c *config) {
		if h != nil {
			c.hasher = h
		}
	}
}

// WithLoadFactor sets the hash table's rehash threshold. Values <= 0 are ignored.
func WithLoadFactor(f float64) Option {
	return func(c *config) {
		if f > 0 {
			c.loadFactor = f
		}
	}
}

// WithArena makes the linked list and the hash table allocate their nodes from
// an arena holding the given number of nodes per chunk instead of a sync.Pool.
// WithArena กำหนดให้ใช้ arena ในการจัดสรรโหนด โดยระบุจำนวนโหนดต่อ chunk
func WithArena(nodes int) Option {
	return func(c *config) {
		if nodes > 0 {
			c.arenaInitialNodes = nodes
		}
	}
}

// WithArenaGrowthFactor makes each new arena chunk factor times the size of the previous one.
// This option is only effective when used with WithArena.
func WithArenaGrowthFactor(factor float64) Option {
	return func(c *config) {
		if factor > 1.0 {
			c.arenaGrowthFactor = factor
		}
	}
}

// WithArenaGrowthBytes makes each new arena chunk hold a fixed number of bytes worth of nodes.
// This option is only effective when used with WithArena.
func WithArenaGrowthBytes(bytes int) Option {
	return func(c *config) {
		if bytes > 0 {
			c.arenaGrowthBytes = bytes
		}
	}
}

// WithArenaGrowthThreshold makes the arena allocate its next chunk ahead of time
// once the current chunk is filled past threshold (e.g. 0.9 for 90%).
// This option is only effective when used with WithArena.
func WithArenaGrowthThreshold(threshold float64) Option {
	return func(c *config) {
		if threshold > 0.0 && threshold < 1.0 {
			c.arenaThreshold = threshold
		}
	}
}

// grownCapacity returns the doubled capacity for backing storage that is full.
func (c *config) grownCapacity(current int) (int, error) {
	if current > math.MaxInt/2 {
		return 0, fmt.Errorf("%w: capacity %d cannot be doubled", ErrAllocation, current)
	}
	next := current * 2
	if next == 0 {
		next = 1
	}
	if c.maxCapacity > 0 && next > c.maxCapacity {
		return 0, fmt.Errorf("%w: capacity %d exceeds limit %d", ErrAllocation, next, c.maxCapacity)
	}
	return next, nil
}

func newNodeAllocator[N any](c *config, override nodeAllocator[N]) nodeAllocator[N] {
	if override != nil {
		return override
	}
	if c.arenaInitialNodes > 0 {
		var opts []ArenaOption
		if c.arenaGrowthBytes > 0 {
			opts = append(opts, WithGrowthBytes(c.arenaGrowthBytes))
		}
		if c.arenaGrowthFactor > 1.0 {
			opts = append(opts, WithGrowthFactor(c.arenaGrowthFactor))
		}
		if c.arenaThreshold > 0.0 {
			opts = append(opts, WithGrowthThreshold(c.arenaThreshold))
		}
		return newArenaAllocator[N](c.arenaInitialNodes, c.logger, opts...)
	}
	return newPoolAllocator[N]()
}
