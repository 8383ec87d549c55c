package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arctir/simos/kernel"
	"github.com/arctir/simos/kernel/kernelfmt"
	"github.com/spf13/cobra"
)

// runRunScript implements `simos run <script-file>`. Each non-blank,
// non-comment line of the script is one kernel event; a snapshot is printed
// after each event unless --quiet is set, in which case only the final
// snapshot is printed.
func runRunScript(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		cmd.Help()
		os.Exit(0)
	}

	opts := newKernelOpts(cmd.Flags())
	k, err := kernel.NewKernel(opts.disks, opts.ram, opts.pageSize)
	if err != nil {
		outputErrorAndFail(fmt.Sprintf("failed constructing kernel: %s", err))
	}

	f, err := os.Open(args[0])
	if err != nil {
		outputErrorAndFail(fmt.Sprintf("failed opening script %q: %s", args[0], err))
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := applyEvent(k, line); err != nil {
			outputErrorAndFail(fmt.Sprintf("line %d: %q: %s", lineNum, line, err))
		}

		if !opts.quiet {
			fmt.Printf("--- after %q ---\n", line)
			printSnapshot(k, opts.outType)
		}
	}
	if err := scanner.Err(); err != nil {
		outputErrorAndFail(fmt.Sprintf("failed reading script %q: %s", args[0], err))
	}

	if opts.quiet {
		printSnapshot(k, opts.outType)
	}
}

// applyEvent parses and executes a single script line against k. Supported
// events:
//
//	new
//	fork
//	exit
//	wait
//	timer
//	disk-read <disk> <filename>
//	disk-done <disk>
//	access <address>
func applyEvent(k *kernel.Kernel, line string) error {
	fields := strings.Fields(line)
	op := fields[0]
	switch op {
	case "new":
		k.NewProcess()
		return nil
	case "fork":
		return k.SimFork()
	case "exit":
		return k.SimExit()
	case "wait":
		return k.SimWait()
	case "timer":
		return k.TimerInterrupt()
	case "disk-read":
		if len(fields) < 3 {
			return fmt.Errorf("disk-read requires <disk> <filename>")
		}
		disk, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid disk index %q: %w", fields[1], err)
		}
		return k.DiskReadRequest(disk, fields[2])
	case "disk-done":
		if len(fields) < 2 {
			return fmt.Errorf("disk-done requires <disk>")
		}
		disk, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid disk index %q: %w", fields[1], err)
		}
		return k.DiskJobCompleted(disk)
	case "access":
		if len(fields) < 2 {
			return fmt.Errorf("access requires <address>")
		}
		addr, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid address %q: %w", fields[1], err)
		}
		return k.AccessMemoryAddress(addr)
	default:
		return fmt.Errorf("unknown event %q", op)
	}
}

// snapshot is the JSON-rendering shape for `--output json`; it has no
// bearing on kernel.Kernel's own state, it only packages the read-only
// views the façade already exposes.
type snapshot struct {
	CPU        kernel.PID               `json:"cpu"`
	ReadyQueue []kernel.PID             `json:"ready_queue"`
	Disks      []diskSnapshot           `json:"disks"`
	Memory     []kernel.Frame           `json:"memory"`
	Processes  []kernel.ProcessSnapshot `json:"processes"`
}

type diskSnapshot struct {
	Head        kernel.FileReadRequest   `json:"head"`
	QueueLength int                      `json:"queue_length"`
	Queue       []kernel.FileReadRequest `json:"queue"`
}

func buildSnapshot(k *kernel.Kernel) snapshot {
	numDisks := k.GetNumDisks()
	disks := make([]diskSnapshot, numDisks)
	for i := 0; i < numDisks; i++ {
		head, _ := k.GetDisk(i)
		queue, _ := k.GetDiskQueue(i)
		length, _ := k.DiskQueueLength(i)
		disks[i] = diskSnapshot{Head: head, QueueLength: length, Queue: queue}
	}

	return snapshot{
		CPU:        k.GetCPU(),
		ReadyQueue: k.GetReadyQueue(),
		Disks:      disks,
		Memory:     k.GetMemory(),
		Processes:  k.AllProcesses(),
	}
}

func printSnapshot(k *kernel.Kernel, outType string) {
	snap := buildSnapshot(k)

	if outType == jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(snap)
		return
	}

	fmt.Printf("CPU: %d\n", snap.CPU)
	fmt.Println(kernelfmt.ProcessTable(snap.Processes))
	fmt.Println(kernelfmt.ReadyQueue(snap.ReadyQueue))

	heads := make([]kernel.FileReadRequest, len(snap.Disks))
	lengths := make([]int, len(snap.Disks))
	for i, d := range snap.Disks {
		heads[i] = d.Head
		lengths[i] = d.QueueLength
	}
	fmt.Println(kernelfmt.Disks(heads, lengths))
	fmt.Println(kernelfmt.Memory(snap.Memory))
}
