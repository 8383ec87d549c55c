package kernel

// scheduler owns the ready queue: a FIFO of PIDs, each naming a Process in
// state Ready. The running PID itself lives on [Kernel] - the scheduler
// only ever holds PIDs that are not currently on the CPU.
//
// A plain slice is enough here: the teacher pack reaches for queue/list
// libraries only where mid-sequence removal by pointer is needed (see the
// LRU recency list in memory.go, grounded the same way); the ready queue
// pushes at the tail and pops at the head, and its only mid-queue removal
// (remove, during cascade termination) is a linear scan by PID value.
type scheduler struct {
	ready []PID
}

func newScheduler() *scheduler {
	return &scheduler{ready: []PID{}}
}

// enqueue appends pid to the tail of the ready queue.
func (s *scheduler) enqueue(pid PID) {
	s.ready = append(s.ready, pid)
}

// dequeue pops the head of the ready queue. ok is false if the queue was
// empty.
func (s *scheduler) dequeue() (pid PID, ok bool) {
	if len(s.ready) == 0 {
		return NoProcess, false
	}
	pid = s.ready[0]
	s.ready = s.ready[1:]
	return pid, true
}

// snapshot returns a copy of the ready queue, head first. Mutating the
// result must not affect scheduler state.
func (s *scheduler) snapshot() []PID {
	out := make([]PID, len(s.ready))
	copy(out, s.ready)
	return out
}

// remove deletes pid from the ready queue if present, preserving the order
// of the rest. Used when a process is cascade-terminated while still
// sitting in the queue rather than running (spec.md invariant I2: no PID in
// the ready queue may name a record absent from the table).
func (s *scheduler) remove(pid PID) {
	for i, p := range s.ready {
		if p == pid {
			s.ready = append(s.ready[:i], s.ready[i+1:]...)
			return
		}
	}
}
