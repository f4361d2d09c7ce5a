package vulkan

// bitsetAllocator hands out integer slots from a fixed-size pool. The
// device uses it for timer-query indices.
type bitsetAllocator struct {
	used []bool
	next int
}

func newBitsetAllocator(size int) *bitsetAllocator {
	if size < 0 {
		size = 0
	}
	return &bitsetAllocator{used: make([]bool, size)}
}

// allocate returns a free slot, scanning from the position after the last
// grant so consecutive allocations spread across the pool. It reports
// false when every slot is taken.
func (a *bitsetAllocator) allocate() (int, bool) {
	n := len(a.used)
	for i := 0; i < n; i++ {
		idx := (a.next + i) % n
		if !a.used[idx] {
			a.used[idx] = true
			a.next = idx + 1
			return idx, true
		}
	}
	return 0, false
}

// release returns a slot to the pool. Out-of-range and already-free slots
// are ignored.
func (a *bitsetAllocator) release(index int) {
	if index < 0 || index >= len(a.used) {
		return
	}
	a.used[index] = false
}
