package codec

import "fmt"

// Shuffle transposes the bytes of whole typeSize-byte elements of src into
// dst: all first bytes, then all second bytes, and so on. Trailing bytes
// that do not form a whole element are copied unchanged. It improves
// compression of arrays of fixed-size numbers.
func Shuffle(typeSize int, src, dst []byte) error {
	elems, err := shuffleShape(typeSize, src, dst)
	if err != nil {
		return err
	}
	for j := 0; j < typeSize; j++ {
		for i := 0; i < elems; i++ {
			dst[j*elems+i] = src[i*typeSize+j]
		}
	}
	tail := elems * typeSize
	copy(dst[tail:len(src)], src[tail:])
	return nil
}

// Unshuffle reverses Shuffle.
func Unshuffle(typeSize int, src, dst []byte) error {
	elems, err := shuffleShape(typeSize, src, dst)
	if err != nil {
		return err
	}
	for j := 0; j < typeSize; j++ {
		for i := 0; i < elems; i++ {
			dst[i*typeSize+j] = src[j*elems+i]
		}
	}
	tail := elems * typeSize
	copy(dst[tail:len(src)], src[tail:])
	return nil
}

func shuffleShape(typeSize int, src, dst []byte) (int, error) {
	if typeSize <= 0 {
		return 0, fmt.Errorf("codec: invalid type size %d", typeSize)
	}
	if len(dst) < len(src) {
		return 0, fmt.Errorf("%w: shuffle needs %d bytes, have %d", ErrDestTooSmall, len(src), len(dst))
	}
	return len(src) / typeSize, nil
}
