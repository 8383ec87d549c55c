package kernel

// lifecycle.go implements process creation, fork, exit (with cascade
// termination), and wait (with zombie reaping) - spec.md §4.3, §4.4, §4.5.

// NewProcess allocates a fresh PID, creates a process record in state New,
// and admits it: if the CPU is idle the new process runs immediately,
// otherwise it joins the ready queue's tail (spec.md §4.1 Admission).
func (k *Kernel) NewProcess() {
	k.mu.Lock()
	defer k.mu.Unlock()

	pid := k.allocatePID()
	proc := newProcess(pid, NoParent)
	k.table.insert(proc)
	k.admitReady(proc)
}

// SimFork requires a running process. It allocates a fresh PID for the
// child, registers the child under the parent's ChildrenPIDs, inserts the
// child into the process table, and admits it to Ready. The parent
// continues running (spec.md §4.3).
func (k *Kernel) SimFork() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.runningPID == NoProcess {
		return errLogic("SimFork", "no running process")
	}

	parentPID := k.runningPID
	parent, _ := k.table.get(parentPID)

	childPID := k.allocatePID()
	child := newProcess(childPID, parentPID)
	k.table.insert(child)
	parent.addChild(childPID)
	k.admitReady(child)
	return nil
}

// SimExit requires a running process. It cascade-terminates the subtree
// rooted at the running process's children, purges the running process's
// own frames, notifies (and possibly wakes) its parent, and dispatches the
// next ready process (spec.md §4.4).
func (k *Kernel) SimExit() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.runningPID == NoProcess {
		return errLogic("SimExit", "no running process")
	}

	self := k.runningPID
	proc, _ := k.table.get(self)

	// 1. Cascade-terminate the subtree rooted at self's children,
	// depth-first: every descendant's frames are purged before its record
	// is removed from the table, so the memory invariant holds pointwise
	// at every step (spec.md §4.4 step 1, invariant I7). Every direct and
	// transitive child is gone from the table once this returns, so self's
	// own ChildrenPIDs must be cleared too - otherwise self's record keeps
	// naming children that no longer exist anywhere (spec.md invariant I5).
	k.cascadeTerminateChildren(self)
	proc.ChildrenPIDs = nil

	// 2. Purge self's own frames.
	k.mem.purge(self)

	// 3. Notify the parent. A parent that is already Waiting on self is
	// consuming this exit right now, so self is reaped immediately rather
	// than left as a zombie (spec.md §8 scenario S4: "table no longer
	// contains PID 2" as soon as the wakeup happens). A parent that is not
	// Waiting hasn't asked for self yet, so self lingers as a zombie in the
	// table - reaped later by that parent's own SimWait (S3), or never, if
	// self has no live parent (the root-process edge case).
	parent, hasParent := k.table.get(proc.ParentPID)
	proc.State = Terminated
	if hasParent && parent.State == Waiting {
		parent.removeChild(self)
		k.table.remove(self)
		k.admitReady(parent)
	}

	// 4. Clear the CPU and dispatch the next ready process.
	k.runningPID = NoProcess
	k.dispatchNext()
	return nil
}

// cascadeTerminateChildren walks the subtree rooted at root's children
// depth-first, matching spec.md §4.4 step 1 and §9's design notes: a
// descendant D's own children are visited (and removed) before D's
// siblings are. Worklist entries are popped from the front, and a popped
// node's children are spliced onto the front of what remains, so each
// branch is walked to its leaves before the next sibling is touched. For
// each D, its frames are purged, it is dropped from the ready queue if it
// was sitting there rather than running (a cascaded descendant is never
// itself the running process, since root is the one running and only one
// PID may run at a time), and then it is removed from the process table.
func (k *Kernel) cascadeTerminateChildren(root PID) {
	rootProc, _ := k.table.get(root)
	worklist := append([]PID{}, rootProc.ChildrenPIDs...)

	for len(worklist) > 0 {
		d := worklist[0]
		worklist = worklist[1:]

		dProc, ok := k.table.get(d)
		if !ok {
			continue
		}
		worklist = append(append([]PID{}, dProc.ChildrenPIDs...), worklist...)

		k.mem.purge(d)
		k.sched.remove(d)
		k.disks.removePID(d)
		k.table.remove(d)
	}
}

// SimWait requires a running process.
//
//   - No children: no-op, the process keeps running.
//   - A terminated child exists: reap the first one in ChildrenPIDs
//     insertion order, removing it from both the parent's children list and
//     the process table; the process keeps running.
//   - Otherwise: the process becomes Waiting and the next ready process is
//     dispatched. It resumes only when one of its children exits (spec.md
//     §4.5).
func (k *Kernel) SimWait() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.runningPID == NoProcess {
		return errLogic("SimWait", "no running process")
	}

	self := k.runningPID
	proc, _ := k.table.get(self)

	if len(proc.ChildrenPIDs) == 0 {
		return nil
	}

	for _, childPID := range proc.ChildrenPIDs {
		child, ok := k.table.get(childPID)
		if ok && child.State == Terminated {
			proc.removeChild(childPID)
			k.table.remove(childPID)
			return nil
		}
	}

	proc.State = Waiting
	k.runningPID = NoProcess
	k.dispatchNext()
	return nil
}
