package sdp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// Encode writes the archive to w and returns the total bytes written,
// header included.
//
// When w supports seeking the header is written with a placeholder data_size
// that is backpatched once the entry array is on disk. For non-seekable
// targets the entry array is buffered in memory and written in a single
// forward pass. The output bytes are identical either way.
//
// A failed encode may leave a truncated, structurally invalid file behind;
// there is no rollback.
func Encode(w io.Writer, a *Archive, opts ...Option) (int64, error) {
	cfg := newCodecConfig(opts)
	if ws, ok := w.(io.WriteSeeker); ok {
		return encodeSeekable(ws, a, cfg.charset)
	}
	return encodeBuffered(w, a, cfg.charset)
}

// EncodeFile creates path and writes the archive to it.
func EncodeFile(path string, a *Archive, opts ...Option) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	n, err := Encode(f, a, opts...)
	if err != nil {
		f.Close()
		return n, fmt.Errorf("encoding %s: %w", path, err)
	}
	return n, f.Close()
}

func encodeSeekable(w io.WriteSeeker, a *Archive, cm *charmap.Charmap) (int64, error) {
	if err := writeInt32(w, Magic); err != nil {
		return 0, err
	}
	if err := writeInt32(w, int32(a.Len())); err != nil {
		return 4, err
	}

	sizePos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 8, err
	}
	if err := writeInt32(w, 0); err != nil {
		return 8, err
	}

	var dataSize int64
	for i, e := range a.Entries() {
		n, err := writeEntry(w, e, cm)
		dataSize += n
		if err != nil {
			return headerSize + dataSize, fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
	}
	if dataSize > math.MaxInt32 {
		return headerSize + dataSize, fmt.Errorf("%w: entry array is %d bytes", ErrPayloadTooLarge, dataSize)
	}

	if _, err := w.Seek(sizePos, io.SeekStart); err != nil {
		return headerSize + dataSize, err
	}
	if err := writeInt32(w, int32(dataSize)); err != nil {
		return headerSize + dataSize, err
	}
	// back to end-of-written-data, which is not end-of-file when encoding
	// over a longer pre-existing stream
	if _, err := w.Seek(sizePos+4+dataSize, io.SeekStart); err != nil {
		return headerSize + dataSize, err
	}

	return headerSize + dataSize, nil
}

func encodeBuffered(w io.Writer, a *Archive, cm *charmap.Charmap) (int64, error) {
	var body bytes.Buffer
	body.Grow(int(min(a.DataSize(), 1<<20)))

	for i, e := range a.Entries() {
		if _, err := writeEntry(&body, e, cm); err != nil {
			return 0, fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
	}
	if int64(body.Len()) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: entry array is %d bytes", ErrPayloadTooLarge, body.Len())
	}

	var written int64
	for _, v := range []int32{Magic, int32(a.Len()), int32(body.Len())} {
		if err := writeInt32(w, v); err != nil {
			return written, err
		}
		written += 4
	}

	n, err := w.Write(body.Bytes())
	written += int64(n)
	if err != nil {
		return written, err
	}
	return written, nil
}

// writeEntry encodes one entry. The returned byte count includes whatever was
// written before a failure, so callers can report how much of the output is
// already unrecoverable.
func writeEntry(w io.Writer, e *Entry, cm *charmap.Charmap) (int64, error) {
	field, err := encodeName(e.Name, cm)
	if err != nil {
		return 0, err
	}
	if int64(len(e.Data)) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(e.Data))
	}

	if _, err := w.Write(field[:]); err != nil {
		return 0, err
	}
	if err := writeInt32(w, int32(len(e.Data))); err != nil {
		return NameFieldSize, err
	}
	n, err := w.Write(e.Data)
	return NameFieldSize + 4 + int64(n), err
}

func writeInt32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}
