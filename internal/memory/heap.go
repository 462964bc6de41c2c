package memory

import "fmt"

// CompressedPtr is a 16-bit offset into a Heap's arena, relative to the
// arena's base. Zero is the null pointer; no live allocation ever begins
// at offset zero because the arena reserves its first 8 bytes as a guard
// block.
type CompressedPtr uint16

const (
	align     = 8
	guardSize = align // offset 0 is never a valid allocation
)

// ErrOutOfMemory is returned once the allocation-failure recovery cascade
// (drop caches, minor GC, major GC) has run and the heap is still full.
var ErrOutOfMemory = fmt.Errorf("memory: heap exhausted")

// Reclaimer lets a Heap ask its owner to free memory before giving up.
// The owner (the garbage collector) is wired in by whoever constructs the
// engine; the heap package itself has no notion of objects or roots.
type Reclaimer interface {
	// DropCaches releases any best-effort caches (e.g. property lookup
	// caches) without affecting program semantics.
	DropCaches()
	// MinorGC collects only recently allocated (young) objects. Returns
	// true if it freed anything.
	MinorGC() bool
	// MajorGC collects the whole heap. Returns true if it freed anything.
	MajorGC() bool
}

// freeBlock is the boundary-tag header written at the start of every free
// block in the arena: its own size and the offsets of its free-list
// neighbors. Allocated blocks carry only a size header (no links).
type freeBlock struct {
	size uint32
	prev CompressedPtr
	next CompressedPtr
}

const blockHeaderSize = align // the size field, padded to the alignment so payloads stay 8-byte aligned; prev/next only exist while free

// Heap is a single contiguous byte arena with a boundary-tag coalescing
// free list, 8-byte aligned allocations, and bounded to 64KiB by the
// 16-bit CompressedPtr space.
type Heap struct {
	arena     []byte
	freeHead  CompressedPtr
	reclaimer Reclaimer
	stats     HeapStats
}

// HeapStats tracks heap-level bookkeeping per TESTABLE PROPERTIES §8.
type HeapStats struct {
	AllocatedBytes uint64
	WasteBytes     uint64
	PeakAllocated  uint64
	PeakWaste      uint64
}

// globalPeakAllocated/globalPeakWaste are the high-water marks across
// every Heap this process has created, for a --mem-stats report that
// outlives any single Heap's own lifetime (e.g. a host that tears down
// and rebuilds an Engine without restarting the process). Single-
// threaded per spec.md §5, so no synchronization is needed.
var globalPeakAllocated, globalPeakWaste uint64

func updateGlobalPeaks(allocated, waste uint64) {
	if allocated > globalPeakAllocated {
		globalPeakAllocated = allocated
	}
	if waste > globalPeakWaste {
		globalPeakWaste = waste
	}
}

// GlobalPeaks returns the highest allocated/waste byte counts observed
// across every Heap constructed in this process.
func GlobalPeaks() (peakAllocated, peakWaste uint64) {
	return globalPeakAllocated, globalPeakWaste
}

// NewHeap allocates an arena of the given size (capped to 65536 bytes,
// the limit CompressedPtr can address) and initializes it as one large
// free block.
func NewHeap(size uint32) *Heap {
	if size > 65536 {
		size = 65536
	}
	h := &Heap{arena: make([]byte, size)}
	h.freeHead = guardSize
	h.writeFreeBlock(h.freeHead, freeBlock{size: size - guardSize, prev: 0, next: 0})
	return h
}

// SetReclaimer wires in the collector used by the allocation-failure
// recovery cascade. Must be called before the heap can recover from
// exhaustion; an unset reclaimer makes Alloc fail fast at stage four.
func (h *Heap) SetReclaimer(r Reclaimer) { h.reclaimer = r }

func (h *Heap) readPtr(cp CompressedPtr) CompressedPtr {
	return CompressedPtr(h.arena[cp])<<8 | CompressedPtr(h.arena[cp+1])
}

func (h *Heap) writePtr(cp, v CompressedPtr) {
	h.arena[cp] = byte(v >> 8)
	h.arena[cp+1] = byte(v)
}

func (h *Heap) readU32(cp CompressedPtr) uint32 {
	return uint32(h.arena[cp])<<24 | uint32(h.arena[cp+1])<<16 | uint32(h.arena[cp+2])<<8 | uint32(h.arena[cp+3])
}

func (h *Heap) writeU32(cp CompressedPtr, v uint32) {
	h.arena[cp] = byte(v >> 24)
	h.arena[cp+1] = byte(v >> 16)
	h.arena[cp+2] = byte(v >> 8)
	h.arena[cp+3] = byte(v)
}

func (h *Heap) readFreeBlock(cp CompressedPtr) freeBlock {
	return freeBlock{
		size: h.readU32(cp),
		prev: h.readPtr(cp + 4),
		next: h.readPtr(cp + 6),
	}
}

func (h *Heap) writeFreeBlock(cp CompressedPtr, b freeBlock) {
	h.writeU32(cp, b.size)
	h.writePtr(cp+4, b.prev)
	h.writePtr(cp+6, b.next)
}

func alignUp(n uint32) uint32 {
	return (n + align - 1) &^ (align - 1)
}

// Alloc returns a compressed pointer to size bytes of zeroed memory. On
// exhaustion it runs the four-stage recovery cascade spec.md prescribes:
// drop caches, minor GC, major GC, then ErrOutOfMemory.
func (h *Heap) Alloc(size uint32) (CompressedPtr, error) {
	need := alignUp(size + blockHeaderSize)
	if cp, ok := h.tryAlloc(need, size); ok {
		return cp, nil
	}
	if h.reclaimer != nil {
		h.reclaimer.DropCaches()
		if cp, ok := h.tryAlloc(need, size); ok {
			return cp, nil
		}
		if h.reclaimer.MinorGC() {
			if cp, ok := h.tryAlloc(need, size); ok {
				return cp, nil
			}
		}
		if h.reclaimer.MajorGC() {
			if cp, ok := h.tryAlloc(need, size); ok {
				return cp, nil
			}
		}
	}
	return 0, ErrOutOfMemory
}

func (h *Heap) tryAlloc(need, requested uint32) (CompressedPtr, bool) {
	cp := h.freeHead
	for cp != 0 {
		blk := h.readFreeBlock(cp)
		if blk.size >= need {
			h.unlink(cp, blk)
			remaining := blk.size - need
			// keep the remainder as a new free block if it's big enough
			// to hold a boundary tag plus at least one aligned chunk.
			if remaining >= align+blockHeaderSize {
				rem := cp + CompressedPtr(need)
				h.writeFreeBlock(rem, freeBlock{size: remaining})
				h.insert(rem)
				h.writeU32(cp, need)
			} else {
				h.writeU32(cp, blk.size)
			}
			h.zero(cp+blockHeaderSize, requested)
			h.stats.AllocatedBytes += uint64(h.readU32(cp))
			h.stats.WasteBytes += uint64(h.readU32(cp) - requested - blockHeaderSize)
			if h.stats.AllocatedBytes > h.stats.PeakAllocated {
				h.stats.PeakAllocated = h.stats.AllocatedBytes
			}
			if h.stats.WasteBytes > h.stats.PeakWaste {
				h.stats.PeakWaste = h.stats.WasteBytes
			}
			updateGlobalPeaks(h.stats.AllocatedBytes, h.stats.WasteBytes)
			return cp + blockHeaderSize, true
		}
		cp = blk.next
	}
	return 0, false
}

func (h *Heap) unlink(cp CompressedPtr, blk freeBlock) {
	if blk.prev != 0 {
		p := h.readFreeBlock(blk.prev)
		p.next = blk.next
		h.writeFreeBlock(blk.prev, p)
	} else {
		h.freeHead = blk.next
	}
	if blk.next != 0 {
		n := h.readFreeBlock(blk.next)
		n.prev = blk.prev
		h.writeFreeBlock(blk.next, n)
	}
}

func (h *Heap) insert(cp CompressedPtr) {
	blk := h.readFreeBlock(cp)
	blk.next = h.freeHead
	blk.prev = 0
	if h.freeHead != 0 {
		head := h.readFreeBlock(h.freeHead)
		head.prev = cp
		h.writeFreeBlock(h.freeHead, head)
	}
	h.writeFreeBlock(cp, blk)
	h.freeHead = cp
}

// Free releases a previously allocated block and coalesces it with any
// adjacent free neighbors.
func (h *Heap) Free(cp CompressedPtr) {
	if cp == 0 {
		return
	}
	header := cp - blockHeaderSize
	size := h.readU32(header)
	h.stats.AllocatedBytes -= uint64(size)
	h.writeFreeBlock(header, freeBlock{size: size})
	h.insert(header)
	h.coalesce(header)
}

// coalesce merges the block at cp with the free blocks directly after
// and directly before it. This is a simplified scan of the free list
// rather than true boundary tags on both sides; sufficient for the
// engine's own allocation patterns.
func (h *Heap) coalesce(cp CompressedPtr) {
	blk := h.readFreeBlock(cp)
	end := cp + CompressedPtr(blk.size)
	next := h.freeHead
	for next != 0 {
		if next == end {
			nb := h.readFreeBlock(next)
			h.unlink(next, nb)
			cur := h.readFreeBlock(cp)
			cur.size += nb.size
			h.writeFreeBlock(cp, cur)
			break
		}
		next = h.readFreeBlock(next).next
	}
	prev := h.freeHead
	for prev != 0 {
		pb := h.readFreeBlock(prev)
		if prev+CompressedPtr(pb.size) == cp {
			cur := h.readFreeBlock(cp)
			h.unlink(cp, cur)
			pb = h.readFreeBlock(prev)
			pb.size += cur.size
			h.writeFreeBlock(prev, pb)
			break
		}
		prev = pb.next
	}
}

func (h *Heap) zero(cp CompressedPtr, n uint32) {
	for i := uint32(0); i < n; i++ {
		h.arena[cp+CompressedPtr(i)] = 0
	}
}

// Stats returns a snapshot of heap bookkeeping.
func (h *Heap) Stats() HeapStats { return h.stats }

// Size returns the arena's total capacity in bytes.
func (h *Heap) Size() uint32 { return uint32(len(h.arena)) }
