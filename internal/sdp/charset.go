package sdp

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// The format predates any official statement on name encoding; the packages
// shipped with the game only ever use ASCII names. Names are mapped through a
// configurable single-byte charmap so non-ASCII bytes found in the wild stay
// readable, defaulting to Windows-1252. Transcoding is never silent: a byte
// the charmap does not define, or a rune it cannot represent, is a hard error.
var charsets = map[string]*charmap.Charmap{
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"ibm437":       charmap.CodePage437,
	"macintosh":    charmap.Macintosh,
}

// DefaultCharset is the charset used when no option is given.
const DefaultCharset = "windows-1252"

// LookupCharset resolves a charset name from configuration to its charmap.
func LookupCharset(name string) (*charmap.Charmap, error) {
	cm, ok := charsets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported charset %q (supported: %s)", name, strings.Join(CharsetNames(), ", "))
	}
	return cm, nil
}

// CharsetNames returns the supported charset names in stable order.
func CharsetNames() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// decodeName interprets a raw 256-byte name field: trailing null padding is
// stripped and the remainder decoded through the charmap.
func decodeName(field []byte, cm *charmap.Charmap) (string, error) {
	end := len(field)
	for end > 0 && field[end-1] == 0 {
		end--
	}

	var b strings.Builder
	b.Grow(end)
	for _, c := range field[:end] {
		r := cm.DecodeByte(c)
		if r == utf8.RuneError {
			return "", fmt.Errorf("%w: byte 0x%02x undefined", ErrNameEncoding, c)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// encodeName maps a shader name into the fixed name field, null-padded.
func encodeName(name string, cm *charmap.Charmap) ([NameFieldSize]byte, error) {
	var field [NameFieldSize]byte
	n := 0
	for _, r := range name {
		b, ok := cm.EncodeRune(r)
		if !ok {
			return field, fmt.Errorf("%w: rune %q", ErrNameEncoding, r)
		}
		if n >= NameFieldSize {
			return field, fmt.Errorf("%w: %q encodes to more than %d bytes", ErrNameTooLong, name, NameFieldSize)
		}
		field[n] = b
		n++
	}
	return field, nil
}
