package memory

import "testing"

func TestHeapAllocZeroed(t *testing.T) {
	h := NewHeap(1024)
	cp, err := h.Alloc(32)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	for i := uint32(0); i < 32; i++ {
		if h.arena[cp+CompressedPtr(i)] != 0 {
			t.Fatalf("byte %d not zeroed", i)
		}
	}
}

func TestHeapAllocIsAligned(t *testing.T) {
	h := NewHeap(1024)
	sizes := []uint32{1, 3, 7, 8, 9, 15, 31}
	for _, sz := range sizes {
		cp, err := h.Alloc(sz)
		if err != nil {
			t.Fatalf("Alloc(%d): %v", sz, err)
		}
		if cp%align != 0 {
			t.Errorf("Alloc(%d) returned unaligned pointer %d", sz, cp)
		}
	}
}

func TestHeapFreeCoalesces(t *testing.T) {
	h := NewHeap(256)
	a, _ := h.Alloc(32)
	b, _ := h.Alloc(32)
	c, _ := h.Alloc(32)
	_ = c
	h.Free(a)
	h.Free(b)
	// a and b are adjacent; freeing both should yield a single block big
	// enough to satisfy a 64-byte request without growing the arena.
	big, err := h.Alloc(56)
	if err != nil {
		t.Fatalf("Alloc after coalesce: %v", err)
	}
	if big == 0 {
		t.Fatal("expected non-null pointer")
	}
}

func TestHeapOutOfMemoryWithoutReclaimer(t *testing.T) {
	h := NewHeap(64)
	_, err := h.Alloc(1000)
	if err != ErrOutOfMemory {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}
}

type countingReclaimer struct {
	dropped, minor, major int
	freeFunc               func()
}

func (r *countingReclaimer) DropCaches() { r.dropped++ }
func (r *countingReclaimer) MinorGC() bool {
	r.minor++
	return false
}
func (r *countingReclaimer) MajorGC() bool {
	r.major++
	if r.freeFunc != nil {
		r.freeFunc()
		return true
	}
	return false
}

func TestHeapAllocRunsRecoveryCascade(t *testing.T) {
	h := NewHeap(64)
	a, _ := h.Alloc(32)
	rec := &countingReclaimer{freeFunc: func() { h.Free(a) }}
	h.SetReclaimer(rec)
	_, err := h.Alloc(32)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if rec.dropped != 1 || rec.minor != 1 || rec.major != 1 {
		t.Fatalf("expected cascade to run drop+minor+major once each, got %+v", rec)
	}
}

func TestCompressedPtrZeroIsNull(t *testing.T) {
	h := NewHeap(64)
	if h.freeHead == 0 {
		t.Fatal("guard block should prevent offset 0 from being the free head")
	}
}
