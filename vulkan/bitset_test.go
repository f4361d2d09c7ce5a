package vulkan

import "testing"

func TestBitsetAllocator(t *testing.T) {
	a := newBitsetAllocator(3)

	got := make(map[int]bool)
	for i := 0; i < 3; i++ {
		slot, ok := a.allocate()
		if !ok {
			t.Fatalf("allocation %d failed", i)
		}
		if got[slot] {
			t.Fatalf("slot %d handed out twice", slot)
		}
		got[slot] = true
	}

	if _, ok := a.allocate(); ok {
		t.Error("allocation from a full pool succeeded")
	}

	a.release(1)
	slot, ok := a.allocate()
	if !ok {
		t.Fatal("allocation after release failed")
	}
	if slot != 1 {
		t.Errorf("reallocated slot = %d, want 1", slot)
	}

	// Out-of-range releases are ignored.
	a.release(-1)
	a.release(99)
}

func TestBitsetAllocatorEmpty(t *testing.T) {
	a := newBitsetAllocator(0)
	if _, ok := a.allocate(); ok {
		t.Error("allocation from an empty pool succeeded")
	}

	a = newBitsetAllocator(-5)
	if _, ok := a.allocate(); ok {
		t.Error("allocation from a negative-size pool succeeded")
	}
}
