package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tes4tools/sdpack/internal/sdp"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(DefaultOptions(filepath.Join(t.TempDir(), "catalog.db")))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpenValidation(t *testing.T) {
	_, err := Open(nil)
	require.Error(t, err)

	_, err = Open(&Options{})
	require.Error(t, err)
}

func TestIndexArchive(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	a := sdp.NewArchive()
	a.Append(&sdp.Entry{Name: "A.vso", Data: make([]byte, 10)})
	a.Append(&sdp.Entry{Name: "B.pso", Data: nil})

	id, err := c.IndexArchive(ctx, "Data/Shaders/shaderpackage001.sdp", a)
	require.NoError(t, err)
	require.Positive(t, id)

	var path string
	var entryCount, dataSize int64
	row := c.QueryRow(ctx, `SELECT path, entry_count, data_size FROM archives WHERE id = ?`, id)
	require.NoError(t, row.Scan(&path, &entryCount, &dataSize))
	assert.Equal(t, "Data/Shaders/shaderpackage001.sdp", path)
	assert.Equal(t, int64(2), entryCount)
	assert.Equal(t, int64(530), dataSize)

	rows, err := c.Query(ctx, `SELECT seq, name, size FROM entries WHERE archive_id = ? ORDER BY seq`, id)
	require.NoError(t, err)
	defer rows.Close()

	type entryRow struct {
		seq  int
		name string
		size int64
	}
	var got []entryRow
	for rows.Next() {
		var r entryRow
		require.NoError(t, rows.Scan(&r.seq, &r.name, &r.size))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []entryRow{
		{0, "A.vso", 10},
		{1, "B.pso", 0},
	}, got)
}

func TestIndexArchiveBatching(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	// more entries than one insert batch
	a := sdp.NewArchive()
	for i := 0; i < insertBatchSize+7; i++ {
		a.Append(&sdp.Entry{Name: "shader.vso", Data: []byte{1}})
	}

	id, err := c.IndexArchive(ctx, "big.sdp", a)
	require.NoError(t, err)

	var count int
	row := c.QueryRow(ctx, `SELECT COUNT(*) FROM entries WHERE archive_id = ?`, id)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, insertBatchSize+7, count)
}

func TestIndexArchiveClosedCatalog(t *testing.T) {
	c := openTestCatalog(t)
	require.NoError(t, c.Close())

	_, err := c.IndexArchive(context.Background(), "x.sdp", sdp.NewArchive())
	require.Error(t, err)
}
