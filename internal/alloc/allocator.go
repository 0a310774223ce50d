// Package alloc is the single allocation surface used by every other
// interpreter component (value, ast, evaluator, yamlcodec). It wraps
// Go's host allocator with optional small-object pooling, leak
// tracking, and configurable limits, pooling arbitrary byte-sized
// classes via per-class sync.Pool instances.
package alloc

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Block is a handle to a live allocation. The zero value is not valid;
// use Allocator.Alloc. A nil *Block represents an absent allocation,
// e.g. when a request was rejected by a configured limit.
type Block struct {
	data  []byte
	class int // index into Allocator.classes, or -1 if host-allocated
	id    uint64
}

// Bytes exposes the block's storage for the caller to read/write. Callers
// must not retain the slice past a Free/Realloc of this Block.
func (b *Block) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Len reports the block's usable size.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// LowMemoryFunc is invoked with the remaining byte budget when live
// bytes cross the configured threshold, before the triggering
// allocation returns.
type LowMemoryFunc func(remaining int64)

// Options configures an Allocator at construction time.
type Options struct {
	ClassSizes         []int // small-object pool class sizes, ascending
	MaxTotalBytes      int64 // 0 = unbounded
	MaxSingleAlloc     int64 // 0 = unbounded
	LowMemoryThreshold int64 // 0 = disabled
	LowMemoryCallback  LowMemoryFunc
	TrackLeaks         bool
}

// Allocator is the process-wide (or per-caller) allocation surface.
type Allocator struct {
	opts   Options
	pools  []*classPool
	nextID atomic.Uint64

	liveBytes atomic.Int64
	peakBytes atomic.Int64
	allocs    atomic.Uint64
	frees     atomic.Uint64
	poolHits  atomic.Uint64
	poolMiss  atomic.Uint64

	tracking   sync.Map // id -> *trackRecord, only populated if opts.TrackLeaks
	trackCount atomic.Int64
}

type trackRecord struct {
	size      int
	allocated time.Time
	lastTouch time.Time
}

type classPool struct {
	size int
	pool sync.Pool
	gets atomic.Uint64
	puts atomic.Uint64
	cap  atomic.Int64
}

// New creates an Allocator. With no class sizes configured, every
// request falls straight through to the host allocator.
func New(opts Options) *Allocator {
	a := &Allocator{opts: opts}
	for _, size := range opts.ClassSizes {
		size := size
		cp := &classPool{size: size}
		cp.pool.New = func() any {
			return make([]byte, size)
		}
		a.pools = append(a.pools, cp)
	}
	return a
}

// classFor returns the smallest configured class size >= n, or -1 if
// none fits (falls through to the host allocator).
func (a *Allocator) classFor(n int) int {
	for i, p := range a.pools {
		if p.size >= n {
			return i
		}
	}
	return -1
}

// Alloc returns a zeroed block of at least n bytes, or nil if n is 0 or
// a configured limit rejects the request.
func (a *Allocator) Alloc(n int) *Block {
	if n <= 0 {
		return nil
	}
	if a.opts.MaxSingleAlloc > 0 && int64(n) > a.opts.MaxSingleAlloc {
		return nil
	}
	if a.opts.MaxTotalBytes > 0 && a.liveBytes.Load()+int64(n) > a.opts.MaxTotalBytes {
		return nil
	}

	class := a.classFor(n)
	var data []byte
	if class >= 0 {
		cp := a.pools[class]
		buf := cp.pool.Get().([]byte)
		cp.gets.Add(1)
		a.poolHits.Add(1)
		for i := range buf {
			buf[i] = 0
		}
		data = buf
	} else {
		data = make([]byte, n)
		a.poolMiss.Add(1)
	}

	b := &Block{data: data, class: class, id: a.nextID.Add(1)}
	a.accountAlloc(b)
	return b
}

func (a *Allocator) accountAlloc(b *Block) {
	a.allocs.Add(1)
	live := a.liveBytes.Add(int64(len(b.data)))
	for {
		peak := a.peakBytes.Load()
		if live <= peak || a.peakBytes.CompareAndSwap(peak, live) {
			break
		}
	}

	if a.opts.TrackLeaks {
		now := time.Now()
		a.tracking.Store(b.id, &trackRecord{size: len(b.data), allocated: now, lastTouch: now})
		a.trackCount.Add(1)
	}

	if a.opts.LowMemoryCallback != nil && a.opts.LowMemoryThreshold > 0 && live > a.opts.LowMemoryThreshold {
		remaining := int64(0)
		if a.opts.MaxTotalBytes > 0 {
			remaining = a.opts.MaxTotalBytes - live
		}
		a.opts.LowMemoryCallback(remaining)
	}
}

// Realloc resizes b to n bytes, preserving the original contents up to
// min(old, new) length. A nil b behaves like Alloc; n == 0 behaves like
// Free and returns nil.
func (a *Allocator) Realloc(b *Block, n int) *Block {
	if b == nil {
		return a.Alloc(n)
	}
	if n == 0 {
		a.Free(b)
		return nil
	}
	nb := a.Alloc(n)
	if nb == nil {
		return nil
	}
	copy(nb.data, b.data)
	a.Free(b)
	return nb
}

// Free releases b. Freeing nil is a no-op.
func (a *Allocator) Free(b *Block) {
	if b == nil {
		return
	}
	a.frees.Add(1)
	a.liveBytes.Add(-int64(len(b.data)))

	if a.opts.TrackLeaks {
		if _, ok := a.tracking.LoadAndDelete(b.id); ok {
			a.trackCount.Add(-1)
		}
	}

	if b.class >= 0 {
		a.pools[b.class].pool.Put(b.data)
		a.pools[b.class].puts.Add(1)
	}
	b.data = nil
}

// Strdup copies s into a freshly allocated block, NUL-terminated for
// interop with components that expect that convention.
func (a *Allocator) Strdup(s string) *Block {
	b := a.Alloc(len(s) + 1)
	if b == nil {
		return nil
	}
	copy(b.data, s)
	b.data[len(s)] = 0
	return b
}

// Stats reports aggregate allocator counters.
type Stats struct {
	LiveBytes        int64
	PeakBytes        int64
	Allocations      uint64
	Frees            uint64
	PoolHits         uint64
	PoolMisses       uint64
	FragmentationPct float64 // 0-100, live / reserved-from-host
}

func (a *Allocator) Stats() Stats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	frag := 0.0
	if memStats.HeapSys > 0 {
		live := a.liveBytes.Load()
		if live < 0 {
			live = 0
		}
		frag = float64(live) / float64(memStats.HeapSys) * 100
		if frag > 100 {
			frag = 100
		}
	}

	return Stats{
		LiveBytes:        a.liveBytes.Load(),
		PeakBytes:        a.peakBytes.Load(),
		Allocations:      a.allocs.Load(),
		Frees:            a.frees.Load(),
		PoolHits:         a.poolHits.Load(),
		PoolMisses:       a.poolMiss.Load(),
		FragmentationPct: frag,
	}
}

// LeakReport enumerates allocations that have not yet been freed. Only
// meaningful when the Allocator was constructed with TrackLeaks: true.
func (a *Allocator) LeakReport() []string {
	var out []string
	a.tracking.Range(func(key, value any) bool {
		id := key.(uint64)
		rec := value.(*trackRecord)
		out = append(out, leakLine(id, rec))
		return true
	})
	return out
}

func leakLine(id uint64, rec *trackRecord) string {
	return fmt.Sprintf("block #%d: %d bytes, live %s", id, rec.size, time.Since(rec.allocated))
}
