// Command fibarview drives the fibar reconstruction core from the
// command line: reconstructing PNGs from an event log, loading and
// reporting calibration statistics, and benchmarking the sharded
// runner.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fibarview",
		Short: "Reconstruct and inspect log-intensity images from event-camera streams",
	}
	root.AddCommand(newReconstructCmd())
	root.AddCommand(newCalibrateCmd())
	root.AddCommand(newBenchCmd())
	return root
}
