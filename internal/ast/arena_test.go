package ast

import "testing"

func TestAllocNodeMarksInPool(t *testing.T) {
	m := NewManager()
	n := m.AllocNode(KindNumberLiteral)
	if !n.InPool() {
		t.Fatalf("expected node allocated from manager to be in-pool")
	}
	if n.Kind != KindNumberLiteral {
		t.Fatalf("expected kind to be set, got %v", n.Kind)
	}
}

func TestFreeNodeThenDoubleFreeIsDetected(t *testing.T) {
	m := NewManager()
	n := m.AllocNode(KindIdentifier)
	m.FreeNode(n)
	if !n.IsFreed() {
		t.Fatalf("expected freed node to carry the free-list sentinel kind")
	}

	m.FreeNode(n) // double free
	if len(m.DoubleFreeLog()) != 1 {
		t.Fatalf("expected exactly one double-free to be logged, got %d", len(m.DoubleFreeLog()))
	}
}

func TestAllocDeallocCountsMatchLiveCount(t *testing.T) {
	m := NewManager()
	var nodes []*Node
	for i := 0; i < 500; i++ {
		nodes = append(nodes, m.AllocNode(KindBlock))
	}
	for _, n := range nodes[:200] {
		m.FreeNode(n)
	}

	var totalAlloc, totalDealloc uint64
	for i, s := range m.Stats() {
		totalAlloc += s.Allocations
		totalDealloc += s.Deallocations
		if poolLive := s.Allocations - s.Deallocations; s.PeakUsage < poolLive {
			t.Fatalf("pool %d: peak usage %d should be >= live count %d", i, s.PeakUsage, poolLive)
		}
	}

	live := totalAlloc - totalDealloc
	if live != 300 {
		t.Fatalf("expected 300 live nodes, got %d (allocs=%d deallocs=%d)", live, totalAlloc, totalDealloc)
	}
}

func TestDisabledManagerFallsBackToHostAllocator(t *testing.T) {
	m := NewManager()
	m.SetEnabled(false)
	n := m.AllocNode(KindStringLiteral)
	if n.InPool() {
		t.Fatalf("expected fallback node to not be in-pool")
	}
	m.FreeNode(n) // must be a safe no-op
}

func TestFreeNilIsNoOp(t *testing.T) {
	m := NewManager()
	m.FreeNode(nil)
}

func TestCleanupGlobalResetsChunks(t *testing.T) {
	m := NewManager()
	for i := 0; i < 10; i++ {
		m.AllocNode(KindCall)
	}
	m.CleanupGlobal()
	for _, s := range m.Stats() {
		if s.ChunkCount != 0 {
			t.Fatalf("expected chunks to be released after cleanup, got %d", s.ChunkCount)
		}
	}
}
