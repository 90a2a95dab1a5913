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

var unpackCmd = &cobra.Command{
	Use:   "unpack <archive> <directory>",
	Short: "Unpack a shader package into loose shader files",
	Long: `Unpack decodes a shader package and writes each entry to the given
directory as a loose shader object file, creating the directory if it does
not exist. Entries sharing a name overwrite each other in archive order.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, dir := args[0], args[1]
		start := time.Now()

		opts, err := codecOptions()
		if err != nil {
			return err
		}

		slog.Info("Unpacking archive", "archive", in, "dir", dir)

		archive, err := sdp.DecodeFile(in, opts...)
		if err != nil {
			return err
		}

		progress := utils.NewProgress(archive.Len(),
			!(noProgress || cfg.LogFormat == "json" || cfg.LogLevel == "debug"))

		err = shaderdir.Unpack(archive, dir, func(current, total int, description string) {
			progress.Update(current, description)
		})
		progress.Finish()
		if err != nil {
			return err
		}

		var payload int64
		for _, e := range archive.Entries() {
			payload += int64(len(e.Data))
		}

		fmt.Printf("Shaders unpacked: %d\n", archive.Len())
		fmt.Printf("Bytes written: %s\n", utils.Number(payload))
		fmt.Printf("Duration: %s\n", utils.Duration(time.Since(start)))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(unpackCmd)
}
