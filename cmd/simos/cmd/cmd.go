package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	disksFlag    = "disks"
	ramFlag      = "ram"
	pageSizeFlag = "page-size"
	outputFlag   = "output"
	quietFlag    = "quiet"

	jsonOut  = "json"
	tableOut = "table"
)

// SetupCLI constructs the cobra hierarchy that makes up the simos CLI. Do
// not use this function from other Go packages; import the kernel package
// directly instead.
func SetupCLI() *cobra.Command {
	simosCmd.PersistentFlags().Int(disksFlag, 1, "number of simulated disks")
	simosCmd.PersistentFlags().Uint64(ramFlag, 4096, "simulated RAM, in bytes")
	simosCmd.PersistentFlags().Uint32(pageSizeFlag, 256, "simulated page size, in bytes")
	simosCmd.PersistentFlags().String(outputFlag, tableOut, "output format: table or json")
	runScriptCmd.Flags().Bool(quietFlag, false, "suppress the per-event snapshot, printing only the final state")

	simosCmd.AddCommand(runScriptCmd)
	return simosCmd
}

func runSimos(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		cmd.Help()
		os.Exit(0)
	}
}

// kernelOpts are the constructor parameters for a kernel.Kernel, resolved
// from CLI flags.
type kernelOpts struct {
	disks    int
	ram      uint64
	pageSize uint32
	outType  string
	quiet    bool
}

func newKernelOpts(fs *pflag.FlagSet) kernelOpts {
	disks, _ := fs.GetInt(disksFlag)
	ram, _ := fs.GetUint64(ramFlag)
	pageSize, _ := fs.GetUint32(pageSizeFlag)
	outType, _ := fs.GetString(outputFlag)
	quiet, _ := fs.GetBool(quietFlag)

	switch outType {
	case jsonOut, tableOut:
	default:
		outType = tableOut
	}

	return kernelOpts{
		disks:    disks,
		ram:      ram,
		pageSize: pageSize,
		outType:  outType,
		quiet:    quiet,
	}
}

func outputErrorAndFail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
