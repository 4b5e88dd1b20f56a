package collections

import (
	"sync"

	"go.uber.org/zap"
)

// --- Node Allocator Abstraction ---

// nodeAllocator defines the interface for memory allocation strategies for the
// linked nodes of the list and the hash table chains.
// This allows swapping between sync.Pool, memory arenas, or other strategies.
// nodeAllocator คือ interface สำหรับกลยุทธ์การจัดสรรหน่วยความจำสำหรับโหนด
// ทำให้สามารถสลับระหว่าง sync.Pool, memory arena, หรือกลยุทธ์อื่นๆ ได้
type nodeAllocator[N any] interface {
	// Get returns a zeroed node owned by the caller.
	Get() (*N, error)
	// Put releases a node. The node must not be used afterwards.
	Put(*N)
	// Release frees every node handed out so far together with the allocator's
	// own storage. The allocator must not be used afterwards.
	Release()
}

// reclaimsNodes reports whether a's Release also frees nodes that were never Put,
// so a container being torn down can skip returning its nodes one by one.
func reclaimsNodes[N any](a nodeAllocator[N]) bool {
	_, ok := a.(*arenaAllocator[N])
	return ok
}

// --- sync.Pool Implementation ---

// poolAllocator implements nodeAllocator using a sync.Pool.
type poolAllocator[N any] struct {
	pool sync.Pool
}

func newPoolAllocator[N any]() *poolAllocator[N] {
	return &poolAllocator[N]{
		pool: sync.Pool{
			New: func() any { return new(N) },
		},
	}
}

func (p *poolAllocator[N]) Get() (*N, error) {
	return p.pool.Get().(*N), nil
}

func (p *poolAllocator[N]) Put(n *N) {
	// Clear the node so the pool does not keep keys or successors alive.
	var zero N
	*n = zero
	p.pool.Put(n)
}

func (p *poolAllocator[N]) Release() {
	// Nodes handed out by a sync.Pool are owned by the garbage collector once
	// the container drops them; there is nothing to reclaim here.
}

// --- Arena Implementation ---

// arenaAllocator implements nodeAllocator using a memory arena.
type arenaAllocator[N any] struct {
	arena *arena[N]
}

func newArenaAllocator[N any](initialNodes int, logger *zap.Logger, opts ...ArenaOption) *arenaAllocator[N] {
	return &arenaAllocator[N]{
		arena: newArena[N](initialNodes, logger, opts...),
	}
}

// Get allocates a node from the arena, growing it by a new chunk when full.
func (a *arenaAllocator[N]) Get() (*N, error) {
	return a.arena.alloc(), nil
}

// Put returns the node to the arena's free list.
func (a *arenaAllocator[N]) Put(n *N) {
	a.arena.release(n)
}

// Release drops the arena's chunks, reclaiming every node at once.
func (a *arenaAllocator[N]) Release() {
	a.arena.drop()
}
