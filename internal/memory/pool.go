// Package memory implements the engine's own allocator: a pool allocator
// for small fixed-size records backed by a coalescing heap, and compressed
// 16-bit pointers into that heap's arena. It mirrors the accounting the
// rest of the engine relies on for its memory-pressure behavior (GC
// triggering, OOM recovery) without replacing Go's own memory safety —
// records still live as ordinary Go values; this package only tracks
// their nominal size against a simulated arena so the stats and recovery
// cascade spec.md describes are real and testable.
package memory

import "fmt"

// chunk size classes the pool allocator serves. Allocation requests are
// rounded up to the next class; anything larger goes straight to the heap.
var poolClasses = [4]uint32{16, 32, 64, 128}

const poolPageChunks = 64 // chunks per page requested from the heap

// Pool is a free-list allocator over four fixed chunk classes. Each class
// keeps its own singly-linked free list threaded through freed chunks'
// first bytes; pages are requested from the backing Heap on demand.
type Pool struct {
	heap      *Heap
	freeLists [4]CompressedPtr
	pages     [4][]CompressedPtr // page base pointers per class, for stats only
	stats     PoolStats
}

// PoolStats tracks pool-level bookkeeping per TESTABLE PROPERTIES §8.
type PoolStats struct {
	PoolsCount      int
	AllocatedChunks int
	PeakChunks      int
}

// NewPool creates a pool allocator backed by heap.
func NewPool(heap *Heap) *Pool {
	return &Pool{heap: heap}
}

func classIndex(size uint32) (int, bool) {
	for i, c := range poolClasses {
		if size <= c {
			return i, true
		}
	}
	return 0, false
}

// Alloc returns a compressed pointer to a zeroed chunk able to hold size
// bytes, or (0, ErrOutOfMemory) if the backing heap cannot grow the pool.
func (p *Pool) Alloc(size uint32) (CompressedPtr, error) {
	idx, ok := classIndex(size)
	if !ok {
		return 0, fmt.Errorf("memory: pool.Alloc: size %d exceeds largest pool class %d", size, poolClasses[len(poolClasses)-1])
	}
	if p.freeLists[idx] == 0 {
		if err := p.growClass(idx); err != nil {
			return 0, err
		}
	}
	cp := p.freeLists[idx]
	next := p.heap.readPtr(cp)
	p.freeLists[idx] = next
	p.heap.zero(cp, poolClasses[idx])
	p.stats.AllocatedChunks++
	if p.stats.AllocatedChunks > p.stats.PeakChunks {
		p.stats.PeakChunks = p.stats.AllocatedChunks
	}
	return cp, nil
}

// Free returns a chunk of the given size class to its free list. If that
// leaves an entire page free and the class has another page to allocate
// from, the page is returned to the backing heap.
func (p *Pool) Free(cp CompressedPtr, size uint32) {
	idx, ok := classIndex(size)
	if !ok || cp == 0 {
		return
	}
	p.heap.writePtr(cp, p.freeLists[idx])
	p.freeLists[idx] = cp
	p.stats.AllocatedChunks--
	p.maybeReturnPage(idx, cp)
}

// maybeReturnPage checks whether the page cp belongs to is now entirely
// free, and if so — and it isn't the class's only page — unlinks every
// one of its chunks from the free list and gives the page back to the
// heap.
func (p *Pool) maybeReturnPage(idx int, cp CompressedPtr) {
	if len(p.pages[idx]) < 2 {
		return // keep the last page even when empty; the class needs somewhere to allocate from
	}
	chunkSize := poolClasses[idx]
	pageEnd := chunkSize * poolPageChunks
	var base CompressedPtr
	found := false
	for _, b := range p.pages[idx] {
		if cp >= b && cp < b+CompressedPtr(pageEnd) {
			base, found = b, true
			break
		}
	}
	if !found {
		return
	}

	free := 0
	for n := p.freeLists[idx]; n != 0; n = p.heap.readPtr(n) {
		if n >= base && n < base+CompressedPtr(pageEnd) {
			free++
		}
	}
	if free != int(poolPageChunks) {
		return
	}

	var head, tail CompressedPtr
	for n := p.freeLists[idx]; n != 0; {
		next := p.heap.readPtr(n)
		if n < base || n >= base+CompressedPtr(pageEnd) {
			if head == 0 {
				head = n
			} else {
				p.heap.writePtr(tail, n)
			}
			tail = n
		}
		n = next
	}
	if tail != 0 {
		p.heap.writePtr(tail, 0)
	}
	p.freeLists[idx] = head

	for i, b := range p.pages[idx] {
		if b == base {
			p.pages[idx] = append(p.pages[idx][:i], p.pages[idx][i+1:]...)
			break
		}
	}
	p.heap.Free(base)
	p.stats.PoolsCount--
}

// growClass requests one new page from the heap and threads it onto the
// class's free list.
func (p *Pool) growClass(idx int) error {
	chunkSize := poolClasses[idx]
	pageSize := chunkSize * poolPageChunks
	base, err := p.heap.Alloc(pageSize)
	if err != nil {
		return err
	}
	p.pages[idx] = append(p.pages[idx], base)
	p.stats.PoolsCount++
	// thread the page into chunkSize-sized free chunks, last one terminates with 0
	for i := uint32(0); i < poolPageChunks; i++ {
		cp := base + CompressedPtr(i*chunkSize)
		var next CompressedPtr
		if i+1 < poolPageChunks {
			next = base + CompressedPtr((i+1)*chunkSize)
		}
		p.heap.writePtr(cp, next)
	}
	p.freeLists[idx] = base
	return nil
}

// Stats returns a snapshot of pool bookkeeping.
func (p *Pool) Stats() PoolStats { return p.stats }
