package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tes4tools/sdpack/internal/sdp"
	"github.com/tes4tools/sdpack/internal/shaderdir"
	"github.com/tes4tools/sdpack/internal/utils"
)

var packCmd = &cobra.Command{
	Use:   "pack <directory> <archive>",
	Short: "Pack loose shader files from a directory into a shader package",
	Long: `Pack collects every loose shader object file in the given directory
(matched case-insensitively against the extension allow-list, .vso and .pso
by default) and writes them into a single shader package file.

Files are packed in lexical name order, so packing the same directory twice
produces byte-identical archives.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, out := args[0], args[1]
		start := time.Now()

		opts, err := codecOptions()
		if err != nil {
			return err
		}

		slog.Info("Packing directory", "dir", dir, "archive", out)

		archive, err := shaderdir.Scan(dir, cfg.Extensions)
		if err != nil {
			return fmt.Errorf("collecting loose shaders: %w", err)
		}
		if archive.Len() == 0 {
			slog.Warn("No loose shader files found", "dir", dir, "extensions", cfg.Extensions)
		}

		written, err := sdp.EncodeFile(out, archive, opts...)
		if err != nil {
			return err
		}

		elapsed := time.Since(start)
		rate := 0.0
		if secs := elapsed.Seconds(); secs > 0 {
			rate = float64(written) / secs
		}

		fmt.Printf("Shaders packed: %d\n", archive.Len())
		fmt.Printf("Archive size: %s (%s bytes)\n", utils.Bytes(written), utils.Number(written))
		fmt.Printf("Duration: %s\n", utils.Duration(elapsed))
		fmt.Printf("Throughput: %s bytes/sec\n", utils.Rate(rate))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
}
