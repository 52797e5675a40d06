package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffle_Layout(t *testing.T) {
	// Three 4-byte elements and two trailing bytes.
	src := []byte{
		0x00, 0x01, 0x02, 0x03,
		0x10, 0x11, 0x12, 0x13,
		0x20, 0x21, 0x22, 0x23,
		0xAA, 0xBB,
	}
	dst := make([]byte, len(src))
	require.NoError(t, Shuffle(4, src, dst))
	assert.Equal(t, []byte{
		0x00, 0x10, 0x20,
		0x01, 0x11, 0x21,
		0x02, 0x12, 0x22,
		0x03, 0x13, 0x23,
		0xAA, 0xBB,
	}, dst)

	back := make([]byte, len(src))
	require.NoError(t, Unshuffle(4, dst, back))
	assert.Equal(t, src, back)
}

func TestShuffle_RoundTrip(t *testing.T) {
	src := random(1001)
	for _, typeSize := range []int{1, 2, 3, 8, 16, 1001, 2000} {
		shuffled := make([]byte, len(src))
		require.NoError(t, Shuffle(typeSize, src, shuffled))
		out := make([]byte, len(src))
		require.NoError(t, Unshuffle(typeSize, shuffled, out))
		assert.Equal(t, src, out, "type size %d", typeSize)
	}
}

func TestShuffle_ImprovesCompression(t *testing.T) {
	// Small counters: high bytes are all zero.
	src := make([]byte, 8*4096)
	for i := 0; i < 4096; i++ {
		src[i*8] = byte(i)
		src[i*8+1] = byte(i >> 8)
	}
	shuffled := make([]byte, len(src))
	require.NoError(t, Shuffle(8, src, shuffled))

	plain, err := Compress(LZ4, 5, src)
	require.NoError(t, err)
	packed, err := Compress(LZ4, 5, shuffled)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))
}

func TestShuffle_Errors(t *testing.T) {
	assert.Error(t, Shuffle(0, []byte{1}, make([]byte, 1)))
	assert.ErrorIs(t, Shuffle(2, []byte{1, 2, 3}, make([]byte, 2)), ErrDestTooSmall)
	assert.ErrorIs(t, Unshuffle(2, []byte{1, 2, 3}, make([]byte, 2)), ErrDestTooSmall)
}
