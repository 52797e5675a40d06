package codec

import "fmt"

// Compress returns a frame of src compressed with c.
func Compress(c Codec, level int, src []byte) ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(c))
	}
	if level < 0 || level > MaxLevel {
		return nil, fmt.Errorf("%w: %d", ErrBadLevel, level)
	}
	dst := make([]byte, Bound(len(src)))
	n := compress(c, src, dst, level)
	if n <= 0 {
		return nil, fmt.Errorf("compress %s: %w", c, statusOrShort(n))
	}
	return dst[:n], nil
}

// Decompress decodes a frame produced by any codec.
func Decompress(src []byte) ([]byte, error) {
	_, rawLen, err := Info(src)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, rawLen)
	n := DecompressTo(src, dst)
	if n < 0 || (n == 0 && rawLen != 0) {
		return nil, fmt.Errorf("decompress: %w", statusOrShort(n))
	}
	return dst[:n], nil
}

func statusOrShort(n int) error {
	if n == 0 {
		return ErrDestTooSmall
	}
	return StatusError(n)
}
