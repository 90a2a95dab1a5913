package config

import (
	"fmt"
	"strings"

	"github.com/tes4tools/sdpack/internal/sdp"
)

// validateCharset ensures the configured name charset is one the codec knows.
// An empty value is valid and falls back to the codec default.
func validateCharset(charset string) error {
	if charset == "" {
		return nil
	}

	if _, err := sdp.LookupCharset(charset); err != nil {
		return err
	}
	return nil
}

// normalizeExtensions lowercases the loose-file extension allow-list and
// ensures every element is a proper extension (".vso" style). An empty list
// is valid and falls back to the shaderdir defaults.
func normalizeExtensions(exts []string) ([]string, error) {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			return nil, fmt.Errorf("extension cannot be empty")
		}
		if ext[0] != '.' {
			return nil, fmt.Errorf("invalid extension %q: must start with '.'", ext)
		}
		if len(ext) == 1 {
			return nil, fmt.Errorf("invalid extension %q: missing suffix after '.'", ext)
		}
		out = append(out, strings.ToLower(ext))
	}
	return out, nil
}
