package sdp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// Decode reads a complete shader package from r.
//
// The decoder trusts count and the per-entry sizes, exactly like the game
// engine does. The data_size header field is informational: a mismatch with
// the actual entry array is logged at debug level, never rejected. Bytes past
// the last entry are left unread.
//
// Negative count or a negative per-entry size fail with ErrInvalidCount and
// ErrInvalidSize. The original tooling passed these straight into read calls;
// rejecting them is a deliberate hardening.
func Decode(r io.Reader, opts ...Option) (*Archive, error) {
	cfg := newCodecConfig(opts)

	magic, err := readInt32(r, "magic")
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadMagic, magic, Magic)
	}

	count, err := readInt32(r, "count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	declared, err := readInt32(r, "data_size")
	if err != nil {
		return nil, err
	}

	a := NewArchive()
	for i := int32(0); i < count; i++ {
		e, err := readEntry(r, cfg.charset)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		a.Append(e)
	}

	if int64(declared) != a.DataSize() {
		slog.Debug("data_size header disagrees with entry array",
			"declared", declared,
			"actual", a.DataSize())
	}

	return a, nil
}

// DecodeFile opens and decodes a shader package file.
func DecodeFile(path string, opts ...Option) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return a, nil
}

// readEntry decodes one entry, consuming exactly 256 + 4 + size bytes.
func readEntry(r io.Reader, cm *charmap.Charmap) (*Entry, error) {
	var field [NameFieldSize]byte
	if _, err := io.ReadFull(r, field[:]); err != nil {
		return nil, truncatedOr(err, "name")
	}
	name, err := decodeName(field[:], cm)
	if err != nil {
		return nil, err
	}

	size, err := readInt32(r, "shader size")
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, truncatedOr(err, "shader data")
	}

	return &Entry{Name: name, Data: data}, nil
}

// readInt32 reads one little-endian signed 32-bit field.
func readInt32(r io.Reader, what string) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, truncatedOr(err, what)
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

// truncatedOr maps short reads to ErrTruncated and lets real I/O failures
// from the underlying stream propagate wrapped.
func truncatedOr(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: short read at %s", ErrTruncated, what)
	}
	return fmt.Errorf("reading %s: %w", what, err)
}
