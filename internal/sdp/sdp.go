// Package sdp reads and writes Oblivion shader package (.sdp) files.
//
// A shader package bundles compiled shader binaries (.vso/.pso object files)
// into a single archive. The layout is simple and packed, all integers
// little-endian signed 32-bit:
//
//	HEADER:
//	    magic      int32    always 100
//	    count      int32    number of entries
//	    data_size  int32    byte length of the entry array (file size - 12)
//	ENTRY (count times, no padding between entries):
//	    name       256 bytes, null-padded shader file name
//	    size       int32    payload length
//	    payload    size bytes of compiled shader data
//
// The engine-facing format carries no checksums and no per-entry offsets;
// entries can only be walked in order. data_size is written authoritatively
// on encode but is not trusted on decode, matching the engine's own
// permissive reader.
package sdp

const (
	// Magic is the fixed leading value of every shader package.
	Magic int32 = 100

	// NameFieldSize is the fixed on-disk size of an entry name, including
	// null padding.
	NameFieldSize = 256

	headerSize    = 12
	entryOverhead = NameFieldSize + 4
)

// Entry is one named shader blob inside a package. The payload is opaque to
// the codec; it is byte-for-byte what the loose .vso/.pso file would contain.
type Entry struct {
	Name string
	Data []byte
}

// EncodedSize returns the number of bytes the entry occupies on disk.
func (e *Entry) EncodedSize() int64 {
	return int64(entryOverhead) + int64(len(e.Data))
}

// Archive is an ordered collection of entries. Insertion order is significant:
// it determines the on-disk layout and is the only thing distinguishing
// entries that share a name (the format allows duplicates).
type Archive struct {
	entries []*Entry
}

// NewArchive returns an empty archive.
func NewArchive() *Archive {
	return &Archive{}
}

// Append adds an entry to the end of the archive.
func (a *Archive) Append(e *Entry) {
	a.entries = append(a.entries, e)
}

// Len returns the number of entries.
func (a *Archive) Len() int {
	return len(a.entries)
}

// At returns the entry at index i.
func (a *Archive) At(i int) *Entry {
	return a.entries[i]
}

// Entries returns the entries in archive order. The returned slice is shared
// with the archive and must not be modified.
func (a *Archive) Entries() []*Entry {
	return a.entries
}

// DataSize returns the value the data_size header field will hold when the
// archive is encoded: the summed on-disk size of all entries.
func (a *Archive) DataSize() int64 {
	var n int64
	for _, e := range a.entries {
		n += e.EncodedSize()
	}
	return n
}

// EncodedSize returns the total file size of the encoded archive,
// header included.
func (a *Archive) EncodedSize() int64 {
	return headerSize + a.DataSize()
}
