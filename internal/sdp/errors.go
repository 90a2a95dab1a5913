package sdp

import "errors"

var (
	ErrBadMagic        = errors.New("sdp: bad magic")
	ErrInvalidCount    = errors.New("sdp: invalid entry count")
	ErrInvalidSize     = errors.New("sdp: invalid shader size")
	ErrTruncated       = errors.New("sdp: truncated package")
	ErrNameTooLong     = errors.New("sdp: shader name too long")
	ErrNameEncoding    = errors.New("sdp: shader name not representable in charset")
	ErrPayloadTooLarge = errors.New("sdp: shader payload too large")
)
