package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tes4tools/sdpack/internal/sdp"
	"github.com/tes4tools/sdpack/internal/utils"
)

var listCmd = &cobra.Command{
	Use:   "list <archive>",
	Short: "List the entries of a shader package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		opts, err := codecOptions()
		if err != nil {
			return err
		}

		archive, err := sdp.DecodeFile(path, opts...)
		if err != nil {
			return err
		}

		// The header's data_size is informational; a mismatch against the
		// file length means the package was written by sloppy tooling.
		if info, err := os.Stat(path); err == nil {
			if want := archive.EncodedSize(); info.Size() != want {
				slog.Warn("File length disagrees with entry array",
					"file_size", info.Size(),
					"expected", want)
			}
		}

		fmt.Printf("%-40s %12s\n", "Name", "Size")
		for _, e := range archive.Entries() {
			fmt.Printf("%-40s %12s\n", e.Name, utils.Number(int64(len(e.Data))))
		}
		fmt.Printf("\n%d entries, %s entry bytes (%s total)\n",
			archive.Len(),
			utils.Number(archive.DataSize()),
			utils.Bytes(archive.EncodedSize()))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
