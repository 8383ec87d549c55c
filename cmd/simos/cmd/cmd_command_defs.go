package cmd

import (
	"github.com/spf13/cobra"
)

var simosCmd = &cobra.Command{
	Use:   "simos",
	Short: "A command-line harness for driving the simos kernel simulator.",
	Run:   runSimos,
}

var runScriptCmd = &cobra.Command{
	Use:   "run [script-file]",
	Short: "Replays an event script against a fresh kernel, printing a snapshot after each event.",
	Run:   runRunScript,
}
