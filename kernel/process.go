package kernel

// Process is the process control block (PCB) the spec calls the process
// record. ChildrenPIDs preserves insertion order, since SimWait's tie-break
// between multiple terminated children is defined by that order (spec.md
// §4.5).
type Process struct {
	PID          PID
	State        State
	ParentPID    PID
	ChildrenPIDs []PID
}

// ProcessSnapshot is a read-only copy of a single Process, returned by
// [Kernel.ProcessInfo]. It is a SPEC_FULL.md §9 supplement grounded in the
// original SimOS's per-PCB introspection; it changes no kernel invariant.
type ProcessSnapshot struct {
	PID          PID
	State        State
	ParentPID    PID
	ChildrenPIDs []PID
}

func newProcess(pid, parent PID) *Process {
	return &Process{
		PID:          pid,
		State:        New,
		ParentPID:    parent,
		ChildrenPIDs: nil,
	}
}

func (p *Process) addChild(child PID) {
	p.ChildrenPIDs = append(p.ChildrenPIDs, child)
}

// removeChild deletes child from p's children list, preserving the order of
// the rest.
func (p *Process) removeChild(child PID) {
	for i, c := range p.ChildrenPIDs {
		if c == child {
			p.ChildrenPIDs = append(p.ChildrenPIDs[:i], p.ChildrenPIDs[i+1:]...)
			return
		}
	}
}

func (p *Process) snapshot() ProcessSnapshot {
	children := make([]PID, len(p.ChildrenPIDs))
	copy(children, p.ChildrenPIDs)
	return ProcessSnapshot{
		PID:          p.PID,
		State:        p.State,
		ParentPID:    p.ParentPID,
		ChildrenPIDs: children,
	}
}

// processTable is the authoritative map from PID to process record. It owns
// the parent/child tree: every traversal (cascade termination, reaping, tree
// rendering) goes through this table rather than following owning pointers
// in both directions, so there is no ownership cycle to manage (spec.md §9).
type processTable struct {
	procs map[PID]*Process
}

func newProcessTable() *processTable {
	return &processTable{procs: make(map[PID]*Process)}
}

func (t *processTable) get(pid PID) (*Process, bool) {
	p, ok := t.procs[pid]
	return p, ok
}

func (t *processTable) insert(p *Process) {
	t.procs[p.PID] = p
}

func (t *processTable) remove(pid PID) {
	delete(t.procs, pid)
}
