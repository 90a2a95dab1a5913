package sdp

import "golang.org/x/text/encoding/charmap"

type codecConfig struct {
	charset *charmap.Charmap
}

// Option customizes Decode and Encode behavior.
type Option func(*codecConfig)

// WithCharset sets the single-byte charmap used for entry names.
// The default is Windows-1252.
func WithCharset(cm *charmap.Charmap) Option {
	return func(c *codecConfig) {
		c.charset = cm
	}
}

func newCodecConfig(opts []Option) codecConfig {
	cfg := codecConfig{charset: charmap.Windows1252}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
