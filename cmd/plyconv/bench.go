package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/plyio/ply"
)

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench <input.ply>",
		Short: "Time decoding every element of a PLY file into schema-agnostic ElementData.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			r, err := ply.NewReader(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for i, elem := range r.Elements() {
				start := time.Now()

				data, err := r.ReadElementData(i)
				if err != nil {
					return err
				}

				elapsed := time.Since(start)
				fmt.Fprintf(out, "%s: %d records in %s (%.0f records/s)\n",
					elem.Name, data.Element.Count, elapsed, float64(data.Element.Count)/elapsed.Seconds())
			}

			return nil
		},
	}
}
