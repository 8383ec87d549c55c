package kernel

// FileReadRequest is the opaque disk read record the spec defines: a disk
// request is never an actual file read, only a {pid, filename} pair sitting
// in a disk's FIFO.
type FileReadRequest struct {
	PID      PID
	Filename string
}

// diskBank holds a fixed-size array of disks, each owning a FIFO of pending
// read requests. The head of a non-empty queue is "being serviced" and is
// only removed when the environment announces completion for that disk
// (spec.md §4.2).
type diskBank struct {
	disks [][]FileReadRequest
}

func newDiskBank(numDisks int) *diskBank {
	return &diskBank{disks: make([][]FileReadRequest, numDisks)}
}

func (d *diskBank) numDisks() int {
	return len(d.disks)
}

func (d *diskBank) validIndex(idx int) bool {
	return idx >= 0 && idx < len(d.disks)
}

// enqueue appends req to the tail of disk idx's FIFO. The caller must have
// already validated idx.
func (d *diskBank) enqueue(idx int, req FileReadRequest) {
	d.disks[idx] = append(d.disks[idx], req)
}

// completeHead removes the head request of disk idx's FIFO, returning it.
// ok is false if the queue was already empty, in which case the call is a
// no-op (spec.md §4.2).
func (d *diskBank) completeHead(idx int) (req FileReadRequest, ok bool) {
	q := d.disks[idx]
	if len(q) == 0 {
		return FileReadRequest{}, false
	}
	req = q[0]
	d.disks[idx] = q[1:]
	return req, true
}

// head returns the request currently being serviced by disk idx, or the
// {NoProcess, ""} sentinel if the queue is empty.
func (d *diskBank) head(idx int) FileReadRequest {
	q := d.disks[idx]
	if len(q) == 0 {
		return FileReadRequest{PID: NoProcess, Filename: ""}
	}
	return q[0]
}

// queueExcludingHead returns a snapshot of disk idx's queue, excluding the
// head: the currently-serviced request is surfaced separately by head
// (spec.md §9 Open Questions).
func (d *diskBank) queueExcludingHead(idx int) []FileReadRequest {
	q := d.disks[idx]
	if len(q) <= 1 {
		return []FileReadRequest{}
	}
	out := make([]FileReadRequest, len(q)-1)
	copy(out, q[1:])
	return out
}

// length returns the full length of disk idx's queue, including the head.
// This is a SPEC_FULL.md §9 supplement for harness/CLI summaries.
func (d *diskBank) length(idx int) int {
	return len(d.disks[idx])
}

// removePID drops every request belonging to pid from every disk's queue,
// head included. Called when pid is cascade-terminated while Waiting on a
// disk job that will now never complete (spec.md invariant I3: a removed
// process sits in no scheduling structure).
func (d *diskBank) removePID(pid PID) {
	for i, q := range d.disks {
		kept := q[:0:0]
		for _, req := range q {
			if req.PID != pid {
				kept = append(kept, req)
			}
		}
		d.disks[i] = kept
	}
}
