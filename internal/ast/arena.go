package ast

import (
	"fmt"
	"sync"
	"sync/atomic"
)

const (
	numSubPools       = 3 // small K, purely to spread allocations across cache lines
	initialChunkSize  = 64
	maxChunkSize      = 4096
)

// SubPoolStats reports per-pool allocation counters for diagnostics and
// tests: how many nodes have been handed out and returned, current and
// peak live usage, how many chunks have been grown, and how many
// allocation/double-free anomalies were observed.
type SubPoolStats struct {
	Allocations  uint64
	Deallocations uint64
	CurrentUsage uint64
	PeakUsage    uint64
	ChunkCount   int
	MallocCalls  uint64
	DoubleFrees  uint64
}

type subPool struct {
	mu         sync.Mutex
	chunks     [][]Node
	chunkSize  int
	freeHead   *Node
	allocs     atomic.Uint64
	frees      atomic.Uint64
	current    atomic.Uint64
	peak       atomic.Uint64
	mallocCnt  atomic.Uint64
	doubleFree atomic.Uint64
}

func newSubPool() *subPool {
	return &subPool{chunkSize: initialChunkSize}
}

// grow appends a new chunk, geometrically doubled up to maxChunkSize,
// and threads its nodes onto the free list. Caller must hold p.mu.
func (p *subPool) grow() {
	size := p.chunkSize
	chunk := make([]Node, size)
	p.chunks = append(p.chunks, chunk)
	p.mallocCnt.Add(1)

	for i := range chunk {
		chunk[i].inPool = true
		chunk[i].Kind = freeKind
		chunk[i].free = p.freeHead
		p.freeHead = &chunk[i]
	}

	if p.chunkSize < maxChunkSize {
		p.chunkSize *= 2
		if p.chunkSize > maxChunkSize {
			p.chunkSize = maxChunkSize
		}
	}
}

func (p *subPool) alloc(kind Kind, poolID int) *Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.freeHead == nil {
		p.grow()
	}

	n := p.freeHead
	p.freeHead = n.free
	n.free = nil
	n.Kind = kind
	n.inPool = true
	n.poolID = poolID

	p.allocs.Add(1)
	cur := p.current.Add(1)
	for {
		peak := p.peak.Load()
		if cur <= peak || p.peak.CompareAndSwap(peak, cur) {
			break
		}
	}
	return n
}

// free returns n to the pool's free list, detecting double-free by
// walking the existing list: if n is already on it, the free is
// rejected and counted rather than corrupting the list. This is
// O(free-list length), a deliberate tradeoff of safety over speed on
// the free path.
func (p *subPool) free(n *Node) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for cur := p.freeHead; cur != nil; cur = cur.free {
		if cur == n {
			p.doubleFree.Add(1)
			return false
		}
	}

	poolID := n.poolID
	n.reset()
	n.inPool = true
	n.poolID = poolID
	n.Kind = freeKind
	n.free = p.freeHead
	p.freeHead = n

	p.frees.Add(1)
	p.current.Add(^uint64(0)) // decrement
	return true
}

func (p *subPool) stats() SubPoolStats {
	return SubPoolStats{
		Allocations:   p.allocs.Load(),
		Deallocations: p.frees.Load(),
		CurrentUsage:  p.current.Load(),
		PeakUsage:     p.peak.Load(),
		ChunkCount:    len(p.chunks),
		MallocCalls:   p.mallocCnt.Load(),
		DoubleFrees:   p.doubleFree.Load(),
	}
}

// Manager owns numSubPools sub-pools and round-robins allocation
// requests across them for cache-line distribution.
type Manager struct {
	mu       sync.Mutex
	pools    []*subPool
	counter  atomic.Uint64
	enabled  atomic.Bool
	doubleFreeLog []string
	logMu    sync.Mutex
}

// NewManager creates an enabled arena manager with numSubPools
// sub-pools.
func NewManager() *Manager {
	m := &Manager{pools: make([]*subPool, numSubPools)}
	for i := range m.pools {
		m.pools[i] = newSubPool()
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled toggles pooling; when disabled, AllocNode falls through to
// the host allocator (plain Go heap allocation).
func (m *Manager) SetEnabled(enabled bool) { m.enabled.Store(enabled) }

// AllocNode returns a zero-initialized node of the given kind, either
// from a round-robin-selected sub-pool (which grows a new chunk when its
// free list is empty) or, if pooling is disabled, directly from the host
// allocator.
func (m *Manager) AllocNode(kind Kind) *Node {
	if !m.enabled.Load() {
		return &Node{Kind: kind}
	}
	idx := int(m.counter.Add(1) % uint64(len(m.pools)))
	return m.pools[idx].alloc(kind, idx)
}

// FreeNode returns n to its originating sub-pool, or releases it
// directly if it was a host-allocator fallback. Freeing nil is a no-op.
func (m *Manager) FreeNode(n *Node) {
	if n == nil {
		return
	}
	if !n.inPool {
		return // host-allocated fallback: nothing to do, GC reclaims it
	}
	p := m.pools[n.poolID]
	if !p.free(n) {
		m.logDoubleFree(n)
	}
}

func (m *Manager) logDoubleFree(n *Node) {
	m.logMu.Lock()
	defer m.logMu.Unlock()
	m.doubleFreeLog = append(m.doubleFreeLog, fmt.Sprintf("double free of node at %s (pool %d)", n.Pos, n.poolID))
}

// DoubleFreeLog returns the messages recorded for detected double-frees.
func (m *Manager) DoubleFreeLog() []string { return m.doubleFreeLog }

// Stats returns per-sub-pool statistics.
func (m *Manager) Stats() []SubPoolStats {
	out := make([]SubPoolStats, len(m.pools))
	for i, p := range m.pools {
		out[i] = p.stats()
	}
	return out
}

// CleanupGlobal frees every chunk and resets the manager. Callers must
// ensure no live node handles remain — this is a bulk release, not a
// per-node sweep.
func (m *Manager) CleanupGlobal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pools {
		p.mu.Lock()
		p.chunks = nil
		p.freeHead = nil
		p.chunkSize = initialChunkSize
		p.mu.Unlock()
	}
}
