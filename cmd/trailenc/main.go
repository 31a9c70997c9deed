// Command trailenc is the CLI front end for the trail encoder: it
// loads a JSON event dump and drives encoder.Encode against it,
// following the command/flag shape of the retrieved process-mining
// conversion CLI this tool is modeled on.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "trailenc",
		Short:   "trailenc encodes per-actor event trails into a compact binary format",
		Version: version,
	}
	root.AddCommand(encodeCmd())
	return root
}
