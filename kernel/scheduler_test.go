package kernel

import "testing"

// TestL1RoundRobinLaw exercises spec.md law L1: with no other events, the
// running PID cycles through the ready queue in FIFO order.
func TestL1RoundRobinLaw(t *testing.T) {
	k := newTestKernel(t)

	k.NewProcess() // PID 1
	k.NewProcess() // PID 2
	k.NewProcess() // PID 3
	k.NewProcess() // PID 4

	want := []PID{2, 3, 4, 1, 2, 3, 4, 1}
	for i, expected := range want {
		if err := k.TimerInterrupt(); err != nil {
			t.Fatalf("unexpected error on interrupt %d: %s", i, err)
		}
		if got := k.GetCPU(); got != expected {
			t.Fatalf("after interrupt %d, GetCPU() = %d, expected %d", i, got, expected)
		}
	}
}

func TestTimerInterruptRequiresRunningProcess(t *testing.T) {
	k := newTestKernel(t)
	if err := k.TimerInterrupt(); !IsLogicError(err) {
		t.Fatalf("expected a logic error from TimerInterrupt on an idle CPU, got: %v", err)
	}
}

func TestTimerInterruptWithEmptyReadyQueueReselectsSamePID(t *testing.T) {
	k := newTestKernel(t)
	k.NewProcess()

	if err := k.TimerInterrupt(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := k.GetCPU(); got != 1 {
		t.Fatalf("GetCPU() = %d, expected 1 to be re-selected with no other ready process", got)
	}
	assertPIDSlice(t, "ready queue", k.GetReadyQueue(), []PID{})
}

func TestNewProcessRunsImmediatelyOnIdleCPUOtherwiseQueues(t *testing.T) {
	k := newTestKernel(t)
	k.NewProcess()
	if got := k.GetCPU(); got != 1 {
		t.Fatalf("GetCPU() = %d, expected 1 to start running immediately on an idle CPU", got)
	}

	k.NewProcess()
	if got := k.GetCPU(); got != 1 {
		t.Fatalf("GetCPU() = %d, expected the CPU to still belong to PID 1", got)
	}
	assertPIDSlice(t, "ready queue", k.GetReadyQueue(), []PID{2})
}
