package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tes4tools/sdpack/internal/sdp"
)

// insertBatchSize bounds how many entry rows go into one transaction.
const insertBatchSize = 500

// IndexArchive records an archive and all of its entries in the catalog,
// returning the new archive row id. The same path can be indexed repeatedly;
// each call adds a fresh snapshot row.
func (c *Catalog) IndexArchive(ctx context.Context, path string, a *sdp.Archive) (int64, error) {
	if c.db == nil {
		return 0, fmt.Errorf("catalog connection is closed")
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO archives (path, entry_count, data_size, indexed_at) VALUES (?, ?, ?, ?)`,
		path, a.Len(), a.DataSize(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("inserting archive row for %s: %w", path, err)
	}

	archiveID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("reading archive row id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing archive row: %w", err)
	}

	entries := a.Entries()
	for start := 0; start < len(entries); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		if err := c.insertEntryBatch(ctx, archiveID, start, entries[start:end]); err != nil {
			return archiveID, fmt.Errorf("inserting entries %d-%d: %w", start, end-1, err)
		}
	}

	slog.Debug("Indexed archive", "path", path, "archive_id", archiveID, "entries", a.Len())
	return archiveID, nil
}

// insertEntryBatch writes one batch of entry rows in a single transaction
func (c *Catalog) insertEntryBatch(ctx context.Context, archiveID int64, offset int, entries []*sdp.Entry) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (archive_id, seq, name, size) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, archiveID, offset+i, e.Name, len(e.Data)); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting entry %q: %w", e.Name, err)
		}
	}

	return tx.Commit()
}
