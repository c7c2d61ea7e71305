// Command plyconv converts, inspects, and benchmarks PLY files from the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "plyconv",
		Short: "Convert, inspect, and benchmark PLY (Polygon File Format) files.",
	}

	root.AddCommand(newConvertCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newBenchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
