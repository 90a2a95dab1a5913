package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tes4tools/sdpack/internal/catalog"
	"github.com/tes4tools/sdpack/internal/sdp"
	"github.com/tes4tools/sdpack/internal/utils"
)

var indexCmd = &cobra.Command{
	Use:   "index <archive>...",
	Short: "Index shader package contents into the SQLite catalog",
	Long: `Index decodes each given shader package and records the archive and
its entries (name, order, size) in the catalog database, making package
contents queryable without re-reading the files. Run queries with the query
command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		start := time.Now()

		opts, err := codecOptions()
		if err != nil {
			return err
		}

		cat, err := catalog.Open(catalog.DefaultOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		defer cat.Close()

		progress := utils.NewProgress(len(args),
			!(noProgress || cfg.LogFormat == "json" || cfg.LogLevel == "debug"))

		var archives, entries int
		for i, path := range args {
			progress.Update(i+1, path)

			archive, err := sdp.DecodeFile(path, opts...)
			if err != nil {
				progress.Finish()
				return err
			}

			id, err := cat.IndexArchive(ctx, path, archive)
			if err != nil {
				progress.Finish()
				return fmt.Errorf("indexing %s: %w", path, err)
			}

			slog.Info("Indexed archive", "path", path, "archive_id", id, "entries", archive.Len())
			archives++
			entries += archive.Len()
		}
		progress.Finish()

		fmt.Printf("Archives indexed: %d\n", archives)
		fmt.Printf("Entries recorded: %s\n", utils.Number(int64(entries)))
		fmt.Printf("Duration: %s\n", utils.Duration(time.Since(start)))
		fmt.Println("Try running: sdpack query --tables")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
