package kernel

import (
	"fmt"
	"sort"
	"sync"
)

// Kernel is the façade that owns every piece of simulated machine state:
// the process table, the scheduler's ready queue and running PID, the disk
// bank, and the memory manager's frame table and LRU list. Every exported
// operation is a single transaction: preconditions are checked first, and a
// rejected call leaves every field of Kernel untouched (spec.md §7, §9).
//
// Kernel is single-threaded by contract (spec.md §5): callers must not
// invoke two operations concurrently and expect anything beyond
// linearizability. The embedded mutex exists only so that a Kernel *can* be
// shared across goroutines without corrupting its internal maps/slices; it
// is not a substitute for the caller serializing logically-dependent calls.
type Kernel struct {
	mu sync.Mutex

	numDisks int
	ramBytes uint64
	pageSize uint32

	lastPID    PID
	runningPID PID

	table *processTable
	sched *scheduler
	disks *diskBank
	mem   *memoryManager
}

// NewKernel constructs a Kernel with numDisks disks, ramBytes of simulated
// RAM, and the given pageSize. max_frames is derived as
// floor(ramBytes/pageSize). An error is returned if pageSize is zero (which
// would make the derived frame count a division by zero) or numDisks is
// negative; these are constructor-argument validation failures, not one of
// the two operational error kinds documented on [Error].
func NewKernel(numDisks int, ramBytes uint64, pageSize uint32) (*Kernel, error) {
	if pageSize == 0 {
		return nil, fmt.Errorf("simos: NewKernel: pageSize must be > 0")
	}
	if numDisks < 0 {
		return nil, fmt.Errorf("simos: NewKernel: numDisks must be >= 0, got %d", numDisks)
	}

	maxFrames := int(ramBytes / uint64(pageSize))

	return &Kernel{
		numDisks:   numDisks,
		ramBytes:   ramBytes,
		pageSize:   pageSize,
		runningPID: NoProcess,
		table:      newProcessTable(),
		sched:      newScheduler(),
		disks:      newDiskBank(numDisks),
		mem:        newMemoryManager(maxFrames),
	}, nil
}

// --- read-only accessors (spec.md §6, plus SPEC_FULL.md §9 supplements) ---

// GetCPU returns the currently running PID, or NoProcess if the CPU is
// idle.
func (k *Kernel) GetCPU() PID {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.runningPID
}

// GetReadyQueue returns a snapshot of the ready queue, head first. Mutating
// the result does not affect Kernel state.
func (k *Kernel) GetReadyQueue() []PID {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.sched.snapshot()
}

// GetDisk returns the request currently being serviced by disk idx, or
// {NoProcess, ""} if its queue is empty.
func (k *Kernel) GetDisk(idx int) (FileReadRequest, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.disks.validIndex(idx) {
		return FileReadRequest{}, errRange("GetDisk", fmt.Sprintf("disk index %d out of range [0,%d)", idx, k.numDisks))
	}
	return k.disks.head(idx), nil
}

// GetDiskQueue returns a snapshot of disk idx's queue, excluding the head -
// the currently-serviced request, which GetDisk surfaces separately
// (spec.md §9 Open Questions).
func (k *Kernel) GetDiskQueue(idx int) ([]FileReadRequest, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.disks.validIndex(idx) {
		return nil, errRange("GetDiskQueue", fmt.Sprintf("disk index %d out of range [0,%d)", idx, k.numDisks))
	}
	return k.disks.queueExcludingHead(idx), nil
}

// DiskQueueLength returns the full length of disk idx's queue, including
// the head. SPEC_FULL.md §9 supplement.
func (k *Kernel) DiskQueueLength(idx int) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.disks.validIndex(idx) {
		return 0, errRange("DiskQueueLength", fmt.Sprintf("disk index %d out of range [0,%d)", idx, k.numDisks))
	}
	return k.disks.length(idx), nil
}

// GetMemory returns a snapshot of the frame table sorted ascending by frame
// number - the canonical externally visible order (spec.md §4.6).
func (k *Kernel) GetMemory() []Frame {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.mem.snapshot()
}

// LastPID returns the most recently allocated PID. SPEC_FULL.md §9
// supplement, grounded in the original SimOS's lastPID counter.
func (k *Kernel) LastPID() PID {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.lastPID
}

// MaxFrames returns the derived frame-table capacity (ramBytes/pageSize).
func (k *Kernel) MaxFrames() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.mem.maxFrames
}

// GetNumDisks returns the number of disks this Kernel was constructed with.
func (k *Kernel) GetNumDisks() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.numDisks
}

// GetPageSize returns the page size this Kernel was constructed with.
func (k *Kernel) GetPageSize() uint32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pageSize
}

// GetRamSize returns the amount of simulated RAM this Kernel was
// constructed with.
func (k *Kernel) GetRamSize() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ramBytes
}

// ProcessInfo returns a snapshot of a single process's record: PID, state,
// parent PID, and children PIDs. SPEC_FULL.md §9 supplement, additive to
// GetCPU/GetReadyQueue and grounded in the original SimOS's per-PCB
// introspection methods.
func (k *Kernel) ProcessInfo(pid PID) (ProcessSnapshot, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	p, ok := k.table.get(pid)
	if !ok {
		return ProcessSnapshot{}, fmt.Errorf("simos: ProcessInfo: no process with PID %d", pid)
	}
	return p.snapshot(), nil
}

// AllProcesses returns a snapshot of every process currently in the
// process table (New/Ready/Running/Waiting/Terminated-zombie alike),
// sorted ascending by PID for deterministic rendering. SPEC_FULL.md §9
// supplement for the CLI harness's table/tree output; not used by any
// scheduling or lifecycle logic.
func (k *Kernel) AllProcesses() []ProcessSnapshot {
	k.mu.Lock()
	defer k.mu.Unlock()

	out := make([]ProcessSnapshot, 0, len(k.table.procs))
	for _, p := range k.table.procs {
		out = append(out, p.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// --- scheduling-affecting operations (spec.md §4.1, §4.2, §4.6) ---

// TimerInterrupt requires a running process. It moves the running process
// to the ready queue's tail and promotes the ready queue's head to Running.
// If the ready queue was empty, the running process is still cycled through
// Ready and immediately re-selected: the running PID is observably
// unchanged, but its state transitions Running -> Ready -> Running within
// the one atomic event (spec.md §4.1 Preemption, §9 Open Questions).
func (k *Kernel) TimerInterrupt() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.runningPID == NoProcess {
		return errLogic("TimerInterrupt", "no running process")
	}

	k.yieldRunningToReady()
	k.dispatchNext()
	return nil
}

// DiskReadRequest requires a running process and a valid disk index. It
// moves the running process to Waiting, enqueues {running_pid, filename} on
// disk idx's FIFO, clears the CPU, and dispatches the next ready process
// (spec.md §4.2).
func (k *Kernel) DiskReadRequest(idx int, filename string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.runningPID == NoProcess {
		return errLogic("DiskReadRequest", "no running process")
	}
	if !k.disks.validIndex(idx) {
		return errRange("DiskReadRequest", fmt.Sprintf("disk index %d out of range [0,%d)", idx, k.numDisks))
	}

	self := k.runningPID
	proc, _ := k.table.get(self)
	proc.State = Waiting

	k.disks.enqueue(idx, FileReadRequest{PID: self, Filename: filename})

	k.runningPID = NoProcess
	k.dispatchNext()
	return nil
}

// DiskJobCompleted requires a valid disk index. If disk idx's queue is
// empty the call is a no-op. Otherwise the head request is removed and its
// PID is admitted back to Ready, which may start it running immediately if
// the CPU is idle (spec.md §4.2).
func (k *Kernel) DiskJobCompleted(idx int) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.disks.validIndex(idx) {
		return errRange("DiskJobCompleted", fmt.Sprintf("disk index %d out of range [0,%d)", idx, k.numDisks))
	}

	req, ok := k.disks.completeHead(idx)
	if !ok {
		return nil
	}

	proc, stillPresent := k.table.get(req.PID)
	if !stillPresent {
		// The process was reaped/cascaded away while its disk job was
		// outstanding. Nothing to admit back.
		return nil
	}
	k.admitReady(proc)
	return nil
}

// AccessMemoryAddress requires a running process. page = address/pageSize.
// A hit moves the owning frame to the front of the LRU list; a miss with
// free space allocates a fresh frame; a miss without free space evicts the
// LRU frame first (spec.md §4.6).
func (k *Kernel) AccessMemoryAddress(address uint64) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.runningPID == NoProcess {
		return errLogic("AccessMemoryAddress", "no running process")
	}

	page := address / uint64(k.pageSize)
	k.mem.access(k.runningPID, page)
	return nil
}

// --- internal scheduling helpers shared by lifecycle.go ---

// yieldRunningToReady moves the currently running process to state Ready
// and enqueues it at the ready queue's tail. The caller must hold k.mu and
// must already know k.runningPID != NoProcess.
func (k *Kernel) yieldRunningToReady() {
	self := k.runningPID
	proc, _ := k.table.get(self)
	proc.State = Ready
	k.sched.enqueue(self)
}

// dispatchNext pops the ready queue's head and makes it Running. If the
// ready queue is empty, the CPU goes idle (spec.md §4.1).
func (k *Kernel) dispatchNext() {
	next, ok := k.sched.dequeue()
	if !ok {
		k.runningPID = NoProcess
		return
	}
	proc, _ := k.table.get(next)
	proc.State = Running
	k.runningPID = next
}

// admitReady implements the shared "New/Waiting -> Ready" admission path:
// if the CPU is idle, proc runs immediately; otherwise it is enqueued. Used
// by NewProcess, SimFork's child, and any process returning to Ready
// (spec.md §4.1 Admission).
func (k *Kernel) admitReady(proc *Process) {
	proc.State = Ready
	if k.runningPID == NoProcess {
		proc.State = Running
		k.runningPID = proc.PID
		return
	}
	k.sched.enqueue(proc.PID)
}

func (k *Kernel) allocatePID() PID {
	k.lastPID++
	return k.lastPID
}
