// Package kernelfmt renders [kernel.Kernel] snapshots as text, for the
// cmd/simos CLI harness. It holds no kernel state of its own and performs
// no mutation - it only reads the snapshots kernel.Kernel already exposes.
//
// The rendering idiom (buffer + tablewriter.NewWriter + SetHeader/Append)
// is taken directly from arctir-proctor/proctor/cmd/cmd.go's
// createTableListOutput.
package kernelfmt

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/arctir/simos/kernel"
	"github.com/olekukonko/tablewriter"
)

// ProcessTable renders the given process snapshots as a table of PID,
// state, parent PID, and children PIDs.
func ProcessTable(procs []kernel.ProcessSnapshot) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"PID", "STATE", "PARENT", "CHILDREN"})
	for _, p := range procs {
		table.Append([]string{
			strconv.Itoa(int(p.PID)),
			p.State.String(),
			strconv.Itoa(int(p.ParentPID)),
			formatPIDs(p.ChildrenPIDs),
		})
	}
	table.Render()
	return buf.String()
}

// ReadyQueue renders a ready-queue snapshot, head first.
func ReadyQueue(pids []kernel.PID) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"POSITION", "PID"})
	for i, pid := range pids {
		table.Append([]string{strconv.Itoa(i), strconv.Itoa(int(pid))})
	}
	table.Render()
	return buf.String()
}

// Disks renders one row per disk: the head request currently being
// serviced and queueLens[i] as its QUEUED count. The cmd/simos harness
// passes [kernel.Kernel.DiskQueueLength], which counts the head too.
func Disks(heads []kernel.FileReadRequest, queueLens []int) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"DISK", "SERVICING PID", "FILENAME", "QUEUED"})
	for i, head := range heads {
		table.Append([]string{
			strconv.Itoa(i),
			strconv.Itoa(int(head.PID)),
			head.Filename,
			strconv.Itoa(queueLens[i]),
		})
	}
	table.Render()
	return buf.String()
}

// Memory renders the frame table, already sorted ascending by frame number
// by [kernel.Kernel.GetMemory].
func Memory(frames []kernel.Frame) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"FRAME", "PAGE", "PID"})
	for _, f := range frames {
		table.Append([]string{
			strconv.FormatUint(f.Frame, 10),
			strconv.FormatUint(f.Page, 10),
			strconv.Itoa(int(f.PID)),
		})
	}
	table.Render()
	return buf.String()
}

func formatPIDs(pids []kernel.PID) string {
	if len(pids) == 0 {
		return "-"
	}
	s := ""
	for i, p := range pids {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", p)
	}
	return s
}
