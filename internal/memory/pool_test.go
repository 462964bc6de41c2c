package memory

import "testing"

func TestPoolAllocRoundsToClass(t *testing.T) {
	h := NewHeap(4096)
	p := NewPool(h)
	cp, err := p.Alloc(10) // rounds up to the 16-byte class
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if cp == 0 {
		t.Fatal("expected non-null pointer")
	}
}

func TestPoolFreeReuse(t *testing.T) {
	h := NewHeap(4096)
	p := NewPool(h)
	a, _ := p.Alloc(16)
	p.Free(a, 16)
	b, _ := p.Alloc(16)
	if a != b {
		t.Fatalf("expected freed chunk to be reused, got a=%d b=%d", a, b)
	}
}

func TestPoolGrowsOnExhaustion(t *testing.T) {
	h := NewHeap(65536)
	p := NewPool(h)
	for i := 0; i < poolPageChunks+1; i++ {
		if _, err := p.Alloc(16); err != nil {
			t.Fatalf("Alloc #%d: %v", i, err)
		}
	}
	if p.stats.PoolsCount < 2 {
		t.Fatalf("expected pool to grow past one page, got %d pages", p.stats.PoolsCount)
	}
}

func TestPoolAllocOversizeRejected(t *testing.T) {
	h := NewHeap(4096)
	p := NewPool(h)
	if _, err := p.Alloc(256); err == nil {
		t.Fatal("expected error for size above largest pool class")
	}
}

func TestPoolReturnsEmptyPageToHeap(t *testing.T) {
	h := NewHeap(65536)
	p := NewPool(h)

	chunks := make([]CompressedPtr, poolPageChunks+1)
	for i := range chunks {
		cp, err := p.Alloc(16)
		if err != nil {
			t.Fatalf("Alloc #%d: %v", i, err)
		}
		chunks[i] = cp
	}
	if p.stats.PoolsCount != 2 {
		t.Fatalf("expected 2 pages after growth, got %d", p.stats.PoolsCount)
	}

	// free every chunk from the second page; once it's entirely free it
	// should be handed back to the heap, leaving only the first page.
	for _, cp := range chunks[poolPageChunks:] {
		p.Free(cp, 16)
	}
	if p.stats.PoolsCount != 1 {
		t.Fatalf("expected the emptied second page to be returned to the heap, got %d pages", p.stats.PoolsCount)
	}

	// the first page is still the class's only page and must be kept even
	// once fully freed.
	for _, cp := range chunks[:poolPageChunks] {
		p.Free(cp, 16)
	}
	if p.stats.PoolsCount != 1 {
		t.Fatalf("expected the last remaining page to be kept, got %d pages", p.stats.PoolsCount)
	}
}

func TestPoolStatsTrackPeak(t *testing.T) {
	h := NewHeap(4096)
	p := NewPool(h)
	a, _ := p.Alloc(16)
	_, _ = p.Alloc(16)
	p.Free(a, 16)
	if p.stats.PeakChunks < 2 {
		t.Fatalf("expected peak chunks >= 2, got %d", p.stats.PeakChunks)
	}
	if p.stats.AllocatedChunks != 1 {
		t.Fatalf("expected 1 allocated chunk after free, got %d", p.stats.AllocatedChunks)
	}
}
