package main

import (
	"fmt"
	"os"

	"github.com/arctir/simos/cmd/simos/cmd"
)

func main() {
	simosCmd := cmd.SetupCLI()
	if err := simosCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
