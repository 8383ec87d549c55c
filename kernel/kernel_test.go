package kernel

import "testing"

func TestNewKernelRejectsZeroPageSize(t *testing.T) {
	_, err := NewKernel(1, 1024, 0)
	if err == nil {
		t.Fatalf("expected an error constructing a kernel with page_size=0, got none")
	}
}

func TestNewKernelRejectsNegativeDisks(t *testing.T) {
	_, err := NewKernel(-1, 1024, 256)
	if err == nil {
		t.Fatalf("expected an error constructing a kernel with numDisks=-1, got none")
	}
}

func TestNewKernelDerivesMaxFrames(t *testing.T) {
	k, err := NewKernel(1, 1024, 256)
	if err != nil {
		t.Fatalf("unexpected error constructing kernel: %s", err)
	}
	if got := k.MaxFrames(); got != 4 {
		t.Fatalf("max_frames = %d, expected 4 (1024/256)", got)
	}
}

// TestS1BasicScheduling is spec scenario S1: basic admission and FIFO
// round-robin dispatch across two processes.
func TestS1BasicScheduling(t *testing.T) {
	k, err := NewKernel(1, 1024, 256)
	if err != nil {
		t.Fatalf("unexpected error constructing kernel: %s", err)
	}

	k.NewProcess()
	if got := k.GetCPU(); got != 1 {
		t.Fatalf("after first NewProcess, GetCPU() = %d, expected 1", got)
	}

	k.NewProcess()
	if got := k.GetCPU(); got != 1 {
		t.Fatalf("after second NewProcess, GetCPU() = %d, expected 1", got)
	}
	assertPIDSlice(t, "ready queue", k.GetReadyQueue(), []PID{2})

	if err := k.TimerInterrupt(); err != nil {
		t.Fatalf("unexpected error from TimerInterrupt: %s", err)
	}
	if got := k.GetCPU(); got != 2 {
		t.Fatalf("after TimerInterrupt, GetCPU() = %d, expected 2", got)
	}
	assertPIDSlice(t, "ready queue", k.GetReadyQueue(), []PID{1})
}

// TestS2DiskRoundTrip is spec scenario S2: a running process issues a disk
// read, yields the CPU, and is admitted back to Ready once the job
// completes.
func TestS2DiskRoundTrip(t *testing.T) {
	k, err := NewKernel(1, 1024, 256)
	if err != nil {
		t.Fatalf("unexpected error constructing kernel: %s", err)
	}
	k.NewProcess()
	k.NewProcess()
	if err := k.TimerInterrupt(); err != nil {
		t.Fatalf("unexpected error from TimerInterrupt: %s", err)
	}
	// running = 2, ready = [1]

	if err := k.DiskReadRequest(0, "a"); err != nil {
		t.Fatalf("unexpected error from DiskReadRequest: %s", err)
	}
	if got := k.GetCPU(); got != 1 {
		t.Fatalf("after DiskReadRequest, GetCPU() = %d, expected 1", got)
	}
	assertPIDSlice(t, "ready queue", k.GetReadyQueue(), []PID{})

	head, err := k.GetDisk(0)
	if err != nil {
		t.Fatalf("unexpected error from GetDisk: %s", err)
	}
	if head.PID != 2 || head.Filename != "a" {
		t.Fatalf("GetDisk(0) = %+v, expected {PID:2 Filename:a}", head)
	}

	if err := k.DiskJobCompleted(0); err != nil {
		t.Fatalf("unexpected error from DiskJobCompleted: %s", err)
	}
	if got := k.GetCPU(); got != 1 {
		t.Fatalf("after DiskJobCompleted, GetCPU() = %d, expected 1", got)
	}
	assertPIDSlice(t, "ready queue", k.GetReadyQueue(), []PID{2})
}

// TestS5LRUEviction is spec scenario S5: a two-frame memory evicts its
// least recently used page on the third distinct access.
func TestS5LRUEviction(t *testing.T) {
	k, err := NewKernel(0, 512, 256)
	if err != nil {
		t.Fatalf("unexpected error constructing kernel: %s", err)
	}
	if got := k.MaxFrames(); got != 2 {
		t.Fatalf("max_frames = %d, expected 2", got)
	}

	k.NewProcess()

	if err := k.AccessMemoryAddress(0); err != nil {
		t.Fatalf("unexpected error from AccessMemoryAddress: %s", err)
	}
	if err := k.AccessMemoryAddress(256); err != nil {
		t.Fatalf("unexpected error from AccessMemoryAddress: %s", err)
	}
	// page 0 -> frame 0, page 1 -> frame 1

	if err := k.AccessMemoryAddress(0); err != nil { // hit: page 0 becomes MRU
		t.Fatalf("unexpected error from AccessMemoryAddress: %s", err)
	}
	if err := k.AccessMemoryAddress(512); err != nil { // page 2 faults, evicts page 1
		t.Fatalf("unexpected error from AccessMemoryAddress: %s", err)
	}

	mem := k.GetMemory()
	if len(mem) != 2 {
		t.Fatalf("GetMemory() returned %d frames, expected 2: %+v", len(mem), mem)
	}

	pages := map[uint64]bool{}
	for _, f := range mem {
		pages[f.Page] = true
	}
	if !pages[0] {
		t.Fatalf("expected page 0 to survive eviction, GetMemory() = %+v", mem)
	}
	if !pages[2] {
		t.Fatalf("expected page 2 (the new fault) to be present, GetMemory() = %+v", mem)
	}
	if pages[1] {
		t.Fatalf("expected page 1 to have been evicted as LRU, GetMemory() = %+v", mem)
	}
}

func TestAccessMemoryAddressRequiresRunningProcess(t *testing.T) {
	k, err := NewKernel(1, 1024, 256)
	if err != nil {
		t.Fatalf("unexpected error constructing kernel: %s", err)
	}
	err = k.AccessMemoryAddress(0)
	if !IsLogicError(err) {
		t.Fatalf("expected a logic error from AccessMemoryAddress on an idle CPU, got: %v", err)
	}
}

func TestGetDiskAndGetDiskQueueRejectOutOfRangeIndex(t *testing.T) {
	k, err := NewKernel(1, 1024, 256)
	if err != nil {
		t.Fatalf("unexpected error constructing kernel: %s", err)
	}

	if _, err := k.GetDisk(1); !IsRangeError(err) {
		t.Fatalf("expected a range error from GetDisk(1) on a 1-disk kernel, got: %v", err)
	}
	if _, err := k.GetDiskQueue(-1); !IsRangeError(err) {
		t.Fatalf("expected a range error from GetDiskQueue(-1), got: %v", err)
	}

	k.NewProcess()
	if err := k.DiskReadRequest(5, "x"); !IsRangeError(err) {
		t.Fatalf("expected a range error from DiskReadRequest(5, ...) with a running process, got: %v", err)
	}
}

func TestDiskQueueExcludesHead(t *testing.T) {
	k, err := NewKernel(1, 1024, 256)
	if err != nil {
		t.Fatalf("unexpected error constructing kernel: %s", err)
	}
	k.NewProcess()
	k.NewProcess()
	k.NewProcess()

	if err := k.DiskReadRequest(0, "a"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := k.TimerInterrupt(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := k.DiskReadRequest(0, "b"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	head, err := k.GetDisk(0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if head.Filename != "a" {
		t.Fatalf("GetDisk(0).Filename = %q, expected %q", head.Filename, "a")
	}

	queue, err := k.GetDiskQueue(0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(queue) != 1 || queue[0].Filename != "b" {
		t.Fatalf("GetDiskQueue(0) = %+v, expected a single entry for %q", queue, "b")
	}

	length, err := k.DiskQueueLength(0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if length != 2 {
		t.Fatalf("DiskQueueLength(0) = %d, expected 2 (head + queue)", length)
	}
}

func assertPIDSlice(t *testing.T, what string, got, want []PID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, expected %v", what, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, expected %v", what, got, want)
		}
	}
}
