package alloc

import "testing"

func TestAllocZeroSizeReturnsNil(t *testing.T) {
	a := New(Options{})
	if b := a.Alloc(0); b != nil {
		t.Fatalf("expected nil block for zero-size alloc, got %v", b)
	}
}

func TestAllocIsZeroed(t *testing.T) {
	a := New(Options{ClassSizes: []int{16, 64}})
	b := a.Alloc(10)
	for i, v := range b.Bytes() {
		if v != 0 {
			t.Fatalf("byte %d not zeroed: %d", i, v)
		}
	}
}

func TestFreeThenReuseIsZeroedAgain(t *testing.T) {
	a := New(Options{ClassSizes: []int{16}})
	b := a.Alloc(8)
	copy(b.Bytes(), []byte("dirty"))
	a.Free(b)

	b2 := a.Alloc(8)
	for _, v := range b2.Bytes() {
		if v != 0 {
			t.Fatalf("reused pooled block was not re-zeroed")
		}
	}
}

func TestReallocPreservesPrefix(t *testing.T) {
	a := New(Options{})
	b := a.Alloc(4)
	copy(b.Bytes(), []byte("abcd"))
	b2 := a.Realloc(b, 8)
	if string(b2.Bytes()[:4]) != "abcd" {
		t.Fatalf("expected prefix preserved, got %q", b2.Bytes()[:4])
	}
}

func TestReallocToZeroFrees(t *testing.T) {
	a := New(Options{})
	b := a.Alloc(4)
	if got := a.Realloc(b, 0); got != nil {
		t.Fatalf("expected nil after realloc to 0, got %v", got)
	}
}

func TestMaxSingleAllocRejectsOversizedRequest(t *testing.T) {
	a := New(Options{MaxSingleAlloc: 16})
	if b := a.Alloc(17); b != nil {
		t.Fatalf("expected allocation over max_single to fail")
	}
	if b := a.Alloc(16); b == nil {
		t.Fatalf("expected allocation at the limit to succeed")
	}
}

func TestMaxTotalBytesRejectsOverBudget(t *testing.T) {
	a := New(Options{MaxTotalBytes: 20})
	first := a.Alloc(12)
	if first == nil {
		t.Fatalf("expected first allocation to succeed")
	}
	if second := a.Alloc(12); second != nil {
		t.Fatalf("expected second allocation to exceed total budget and fail")
	}
}

func TestLowMemoryCallbackFiresBeforeReturn(t *testing.T) {
	var called bool
	var remaining int64
	a := New(Options{
		MaxTotalBytes:      100,
		LowMemoryThreshold: 10,
		LowMemoryCallback: func(r int64) {
			called = true
			remaining = r
		},
	})
	a.Alloc(20)
	if !called {
		t.Fatalf("expected low-memory callback to fire")
	}
	if remaining != 80 {
		t.Fatalf("expected remaining budget 80, got %d", remaining)
	}
}

func TestLeakTrackingReportsUnfreed(t *testing.T) {
	a := New(Options{TrackLeaks: true})
	a.Alloc(8)
	b2 := a.Alloc(8)
	a.Free(b2)

	report := a.LeakReport()
	if len(report) != 1 {
		t.Fatalf("expected exactly one leaked block, got %d: %v", len(report), report)
	}
}

func TestRefCountIncDecRoundTrips(t *testing.T) {
	rc := NewRefCount()
	if got := rc.Get(); got != 1 {
		t.Fatalf("expected initial count 1, got %d", got)
	}
	rc.Inc()
	if got := rc.Get(); got != 2 {
		t.Fatalf("expected count 2 after Inc, got %d", got)
	}
	if got := rc.Dec(); got != 1 {
		t.Fatalf("expected count 1 after Dec, got %d", got)
	}
}

func TestRefCountDecOnNilReturnsZero(t *testing.T) {
	var rc *RefCount
	if got := rc.Dec(); got != 0 {
		t.Fatalf("expected 0 for nil ref-count Dec, got %d", got)
	}
}
