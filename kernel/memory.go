package kernel

import (
	"container/list"
	"sort"
)

// Frame is the externally observable {page_number, frame_number, pid}
// triple the spec calls a MemoryItem.
type Frame struct {
	Page  uint64
	Frame uint64
	PID   PID
}

type pidPage struct {
	pid  PID
	page uint64
}

// memFrameEntry is the value stored in the LRU list; it is shared by
// reference with the byFrame/byKey indexes so eviction never has to search.
type memFrameEntry struct {
	page  uint64
	frame uint64
	pid   PID
}

// memoryManager owns the bounded frame table and its LRU recency list. Per
// spec.md §9, frame numbers are a monotonically increasing counter and are
// never recycled, so the LRU list and the frame table always contain the
// same set of {pid, page, frame} triples (invariant I4) - a container/list
// doubly-linked list plus two maps keyed for O(1) hit/evict lookups, the
// shape spec.md §9's design notes describe.
type memoryManager struct {
	maxFrames int
	nextFrame uint64
	lru       *list.List // front = MRU, back = LRU
	byKey     map[pidPage]*list.Element
	byFrame   map[uint64]*list.Element
}

func newMemoryManager(maxFrames int) *memoryManager {
	return &memoryManager{
		maxFrames: maxFrames,
		lru:       list.New(),
		byKey:     make(map[pidPage]*list.Element),
		byFrame:   make(map[uint64]*list.Element),
	}
}

func (m *memoryManager) frameCount() int {
	return len(m.byFrame)
}

// access implements AccessMemoryAddress's three predicates: hit, miss with
// free space, and miss without free space (spec.md §4.6). The caller has
// already translated address to page and validated there is a running
// process.
func (m *memoryManager) access(pid PID, page uint64) {
	key := pidPage{pid: pid, page: page}

	if el, ok := m.byKey[key]; ok {
		// Hit: move to front, no other change to the frame table.
		m.lru.MoveToFront(el)
		return
	}

	if m.maxFrames <= 0 {
		// Degenerate configuration (ram_bytes < page_size): there is no
		// capacity for any frame, ever. Nothing to evict, nothing to add.
		return
	}

	if len(m.byFrame) >= m.maxFrames {
		m.evictOne()
	}

	entry := &memFrameEntry{page: page, frame: m.nextFrame, pid: pid}
	m.nextFrame++
	el := m.lru.PushFront(entry)
	m.byKey[key] = el
	m.byFrame[entry.frame] = el
}

// evictOne removes the back (least recently used) entry from both the LRU
// list and the frame table, keyed by (pid, page, frame) triple equality
// between the two (spec.md §4.6 "Attribution on eviction").
func (m *memoryManager) evictOne() {
	back := m.lru.Back()
	if back == nil {
		return
	}
	evicted := back.Value.(*memFrameEntry)
	m.lru.Remove(back)
	delete(m.byKey, pidPage{pid: evicted.pid, page: evicted.page})
	delete(m.byFrame, evicted.frame)
}

// purge removes every frame belonging to pid from both the frame table and
// the LRU list. Called on process removal (exit, cascade) so that the
// memory invariant (no frame in the table for a removed PID) holds
// pointwise (spec.md §4.4, invariant I7).
func (m *memoryManager) purge(pid PID) {
	for frameNum, el := range m.byFrame {
		entry := el.Value.(*memFrameEntry)
		if entry.pid != pid {
			continue
		}
		m.lru.Remove(el)
		delete(m.byFrame, frameNum)
		delete(m.byKey, pidPage{pid: entry.pid, page: entry.page})
	}
}

// snapshot returns a copy of the frame table sorted ascending by frame
// number - the canonical externally visible order (spec.md §4.6).
func (m *memoryManager) snapshot() []Frame {
	out := make([]Frame, 0, len(m.byFrame))
	for _, el := range m.byFrame {
		entry := el.Value.(*memFrameEntry)
		out = append(out, Frame{Page: entry.page, Frame: entry.frame, PID: entry.pid})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Frame < out[j].Frame })
	return out
}
