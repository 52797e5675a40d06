package codec

import (
	"fmt"
	"math"

	"github.com/joshuapare/memkit/internal/buf"
)

const (
	// headerSize is the frame header: codec, flags, two reserved bytes and
	// the raw length as a little-endian uint64.
	headerSize = 12

	// MaxOverhead is the most a frame adds to its input.
	MaxOverhead = 16

	flagStored = 1 << 0
)

type header struct {
	codec  Codec
	stored bool
	rawLen uint64
}

func (h header) put(dst []byte) {
	dst[0] = byte(h.codec)
	dst[1] = 0
	if h.stored {
		dst[1] = flagStored
	}
	dst[2], dst[3] = 0, 0
	buf.PutU64LE(dst[4:], h.rawLen)
}

func parseHeader(src []byte) (header, bool) {
	if !buf.Has(src, 0, headerSize) {
		return header{}, false
	}
	h := header{
		codec:  Codec(src[0]),
		stored: src[1]&flagStored != 0,
		rawLen: buf.U64LE(src[4:]),
	}
	if !h.codec.Valid() || src[1]&^flagStored != 0 || src[2] != 0 || src[3] != 0 {
		return header{}, false
	}
	if h.rawLen > math.MaxInt {
		return header{}, false
	}
	return h, true
}

// Bound returns a destination size that guarantees compression of n bytes
// succeeds.
func Bound(n int) int {
	return n + MaxOverhead
}

// Info reads the frame header of src.
func Info(src []byte) (c Codec, rawLen int, err error) {
	h, ok := parseHeader(src)
	if !ok {
		return 0, 0, fmt.Errorf("%w: bad frame header", ErrCorrupt)
	}
	return h.codec, int(h.rawLen), nil
}

// compress writes a frame of src into dst.
func compress(c Codec, src, dst []byte, level int) int {
	if level < 0 || level > MaxLevel {
		return StatusBadArgument
	}
	if len(dst) < headerSize {
		return 0
	}

	var payload []byte
	if level > 0 && len(src) > 0 {
		p, err := encoders[c](src, level)
		if err != nil {
			return StatusInternal
		}
		if p != nil && len(p) < len(src) {
			payload = p
		}
	}

	h := header{codec: c, rawLen: uint64(len(src))}
	if payload == nil {
		h.stored = true
		payload = src
	}
	if len(dst)-headerSize < len(payload) {
		return 0
	}
	h.put(dst)
	copy(dst[headerSize:], payload)
	return headerSize + len(payload)
}

// decompress checks that src is a frame written by c and decodes it.
func decompress(c Codec, src, dst []byte) int {
	h, ok := parseHeader(src)
	if !ok {
		return StatusCorrupt
	}
	if h.codec != c {
		return StatusCodecMismatch
	}
	return decodeFrame(h, src[headerSize:], dst)
}

func decodeFrame(h header, payload, dst []byte) int {
	if h.rawLen > uint64(len(dst)) {
		return 0
	}
	raw := int(h.rawLen)
	out := dst[:raw]
	if h.stored {
		if len(payload) != raw {
			return StatusCorrupt
		}
		copy(out, payload)
		return raw
	}
	if raw == 0 {
		return StatusCorrupt
	}
	n, err := decoders[h.codec](payload, out)
	if err != nil || n != raw {
		return StatusCorrupt
	}
	return raw
}
