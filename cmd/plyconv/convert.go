package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"

	"github.com/arloliu/plyio/format"
	"github.com/arloliu/plyio/internal/compressio"
	"github.com/arloliu/plyio/ply"
)

func newConvertCmd() *cobra.Command {
	var (
		outFormat string
		zstd      bool
		lz4       bool
		progress  bool
		checksum  bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input.ply> <output.ply>",
		Short: "Convert a PLY file between ascii/binary_little_endian/binary_big_endian.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, ok := format.FromKeyword(outFormat)
			if !ok {
				return fmt.Errorf("plyconv: unknown format %q", outFormat)
			}

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer out.Close()

			codec := compressio.None
			switch {
			case zstd:
				codec = compressio.Zstd
			case lz4:
				codec = compressio.LZ4
			}

			var sp *spinner.Spinner
			if progress {
				sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Prefix = fmt.Sprintf("Converting %s -> %s... ", args[0], args[1])
				sp.Start()
				defer sp.Stop()
			}

			sink, err := compressio.WrapWriter(out, codec)
			if err != nil {
				return err
			}
			defer sink.Close()

			var w io.Writer = sink

			var hasher *checksumWriter
			if checksum {
				hasher = newChecksumWriter(sink)
				w = hasher
			}

			if err := ply.Convert(in, w, target); err != nil {
				return err
			}

			if hasher != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "xxhash64: %016x\n", hasher.Sum())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&outFormat, "format", "binary_little_endian", "target format: ascii, binary_little_endian, binary_big_endian")
	cmd.Flags().BoolVar(&zstd, "zstd", false, "compress the output with zstd")
	cmd.Flags().BoolVar(&lz4, "lz4", false, "compress the output with lz4")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress spinner")
	cmd.Flags().BoolVar(&checksum, "checksum", false, "print the xxhash64 checksum of the converted output")

	return cmd
}

// checksumWriter tees every write through a running xxHash64 digest of the
// bytes written so far, so the checksum is available without buffering the
// whole converted output in memory.
type checksumWriter struct {
	w      io.Writer
	digest *xxhash.Digest
}

func newChecksumWriter(w io.Writer) *checksumWriter {
	return &checksumWriter{w: w, digest: xxhash.New()}
}

func (c *checksumWriter) Write(p []byte) (int, error) {
	c.digest.Write(p) //nolint:errcheck // xxhash.Digest.Write never errors

	return c.w.Write(p)
}

func (c *checksumWriter) Sum() uint64 {
	return c.digest.Sum64()
}
