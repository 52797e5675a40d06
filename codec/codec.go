package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Codec identifies a compression family.
type Codec uint8

const (
	LZ4 Codec = iota + 1
	LZ4HC
	Zstd
	Zlib
	Deflate
	Gzip
)

var codecNames = [...]string{
	LZ4:     "lz4",
	LZ4HC:   "lz4hc",
	Zstd:    "zstd",
	Zlib:    "zlib",
	Deflate: "deflate",
	Gzip:    "gzip",
}

// Status values returned by the entry points on error.
const (
	StatusBadArgument   = -1 // level out of range
	StatusCorrupt       = -2 // malformed frame or payload
	StatusCodecMismatch = -3 // frame written by another codec
	StatusInternal      = -4 // codec library failure
)

// MaxLevel is the highest compression level.
const MaxLevel = 9

var (
	// ErrUnknownCodec indicates a codec name or id that is not supported.
	ErrUnknownCodec = errors.New("codec: unknown codec")

	// ErrDestTooSmall indicates the destination cannot hold the result.
	ErrDestTooSmall = errors.New("codec: destination too small")

	// ErrCorrupt indicates a malformed frame or payload.
	ErrCorrupt = errors.New("codec: corrupt input")

	// ErrBadLevel indicates a level outside 0..MaxLevel.
	ErrBadLevel = errors.New("codec: level out of range")
)

// Valid reports whether c is a supported codec.
func (c Codec) Valid() bool {
	return c >= LZ4 && c <= Gzip
}

func (c Codec) String() string {
	if !c.Valid() {
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
	return codecNames[c]
}

// Codecs lists the supported codecs in id order.
func Codecs() []Codec {
	return []Codec{LZ4, LZ4HC, Zstd, Zlib, Deflate, Gzip}
}

// Lookup finds a codec by name, case-insensitively.
func Lookup(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Codecs() {
		if codecNames[c] == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// StatusError converts a negative status to an error. It returns nil for
// non-negative values.
func StatusError(status int) error {
	switch {
	case status >= 0:
		return nil
	case status == StatusBadArgument:
		return ErrBadLevel
	case status == StatusCorrupt:
		return ErrCorrupt
	case status == StatusCodecMismatch:
		return fmt.Errorf("%w: codec mismatch", ErrCorrupt)
	default:
		return fmt.Errorf("codec: internal error (status %d)", status)
	}
}
