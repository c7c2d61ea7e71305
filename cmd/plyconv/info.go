package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/plyio/internal/hash"
	"github.com/arloliu/plyio/ply"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input.ply>",
		Short: "Print the header schema of a PLY file without decoding its body.",
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

			fmt.Fprintf(out, "format: %s\n", r.Format())
			fmt.Fprintf(out, "fingerprint: %016x\n", schemaFingerprint(r))

			for _, c := range r.Comments() {
				fmt.Fprintf(out, "comment: %s\n", c.Text)
			}

			for _, elem := range r.Elements() {
				fmt.Fprintf(out, "element %s (%d)\n", elem.Name, elem.Count)

				for _, p := range elem.Properties {
					if p.IsList {
						fmt.Fprintf(out, "  property list %s %s %s\n", p.SizeType, p.Type, p.Name)

						continue
					}

					fmt.Fprintf(out, "  property %s %s\n", p.Type, p.Name)
				}
			}

			return nil
		},
	}
}

// schemaFingerprint hashes the element/property names of r's schema into a
// single stable identifier, useful for spotting schema drift between files
// without diffing their full headers.
func schemaFingerprint(r *ply.Reader) uint64 {
	var sb strings.Builder

	for _, elem := range r.Elements() {
		sb.WriteString(elem.Name)

		for _, p := range elem.Properties {
			sb.WriteByte(':')
			sb.WriteString(p.Name)
		}

		sb.WriteByte(';')
	}

	return hash.ID(sb.String())
}
