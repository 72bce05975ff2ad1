package export

import (
	"sync"

	"github.com/san-kum/gofmi/internal/instance"
)

// Handle is an opaque instance reference handed across the export
// boundary. The low half is a 1-based slot index, the high half the
// slot's generation, so a handle freed and reallocated cannot be confused
// with its successor.
type Handle uint64

// InvalidHandle is never returned for a live instance.
const InvalidHandle Handle = 0

func packHandle(index, gen uint32) Handle {
	return Handle(gen)<<32 | Handle(index)
}

func unpackHandle(h Handle) (index, gen uint32) {
	return uint32(h), uint32(h >> 32)
}

type slot struct {
	inst *instance.Instance
	gen  uint32
	live bool
}

// Table is the arena of live instances. Instances themselves are
// single-threaded, but handles may be created and freed from different
// goroutines, so the table locks.
type Table struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32
}

// NewTable returns an empty instance table.
func NewTable() *Table {
	return &Table{slots: make([]slot, 0, 16)}
}

// Put stores an instance and returns its handle.
func (t *Table) Put(in *instance.Instance) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.free); n > 0 {
		index := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[index-1]
		s.inst = in
		s.live = true
		return packHandle(index, s.gen)
	}

	t.slots = append(t.slots, slot{inst: in, live: true})
	return packHandle(uint32(len(t.slots)), 0)
}

// Get resolves a handle. Stale or unknown handles miss.
func (t *Table) Get(h Handle) (*instance.Instance, bool) {
	index, gen := unpackHandle(h)
	if index == 0 {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(index) > len(t.slots) {
		return nil, false
	}
	s := t.slots[index-1]
	if !s.live || s.gen != gen {
		return nil, false
	}
	return s.inst, true
}

// Remove frees a handle's slot. The generation bump invalidates every
// outstanding copy of the handle.
func (t *Table) Remove(h Handle) bool {
	index, gen := unpackHandle(h)
	if index == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(index) > len(t.slots) {
		return false
	}
	s := &t.slots[index-1]
	if !s.live || s.gen != gen {
		return false
	}
	s.inst = nil
	s.live = false
	s.gen++
	t.free = append(t.free, index)
	return true
}

// Len counts the live instances.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, s := range t.slots {
		if s.live {
			count++
		}
	}
	return count
}
