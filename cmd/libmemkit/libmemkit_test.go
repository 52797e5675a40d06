//go:build cgo

package main

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/codec"
)

func TestLayoutOf(t *testing.T) {
	l, ok := layoutOf(24, 8)
	require.True(t, ok)
	assert.Equal(t, uintptr(24), l.Size)

	_, ok = layoutOf(24, 0)
	assert.False(t, ok)
	_, ok = layoutOf(24, 24)
	assert.False(t, ok)
}

func TestLib_RouterRoundTrip(t *testing.T) {
	r := lib().Router()
	assert.Same(t, r, lib().Router())

	l, ok := layoutOf(100, 64)
	require.True(t, ok)
	p := r.AllocZeroed(l)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%64)
	for _, b := range unsafe.Slice((*byte)(p), 100) {
		require.Zero(t, b)
	}

	q := r.Realloc(p, l, 300)
	require.NotNil(t, q)
	r.Dealloc(q, rawLayout(300, 64))
	r.Dealloc(nil, rawLayout(0, 1))
}

func TestCompressWith(t *testing.T) {
	src := bytes.Repeat([]byte("shared library "), 200)
	dst := make([]byte, codec.Bound(len(src)))

	n := compressWith(codec.CompressZstd, unsafe.Pointer(&src[0]), len(src), unsafe.Pointer(&dst[0]), len(dst), 3)
	require.Positive(t, n)

	out := make([]byte, len(src))
	m := decompressWith(codec.DecompressZstd, unsafe.Pointer(&dst[0]), n, unsafe.Pointer(&out[0]), len(out))
	require.Equal(t, len(src), m)
	assert.Equal(t, src, out)

	m = decompressWith(codec.DecompressTo, unsafe.Pointer(&dst[0]), n, unsafe.Pointer(&out[0]), len(out)/2)
	assert.Zero(t, m)
}

func TestCompressWith_BadArguments(t *testing.T) {
	dst := make([]byte, 64)
	assert.Equal(t, codec.StatusBadArgument,
		compressWith(codec.CompressLZ4, nil, 10, unsafe.Pointer(&dst[0]), len(dst), 1))
	assert.Equal(t, codec.StatusBadArgument,
		compressWith(codec.CompressLZ4, nil, 0, unsafe.Pointer(&dst[0]), -1, 1))
	assert.Equal(t, codec.StatusBadArgument,
		decompressWith(codec.DecompressLZ4, nil, -5, nil, 0))
}

func TestShuffleWith(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	shuffled := make([]byte, len(src))
	require.Zero(t, shuffleWith(codec.Shuffle, 4, len(src), unsafe.Pointer(&src[0]), unsafe.Pointer(&shuffled[0])))
	assert.Equal(t, []byte{1, 5, 2, 6, 3, 7, 4, 8, 9}, shuffled)

	back := make([]byte, len(src))
	require.Zero(t, shuffleWith(codec.Unshuffle, 4, len(src), unsafe.Pointer(&shuffled[0]), unsafe.Pointer(&back[0])))
	assert.Equal(t, src, back)

	assert.Equal(t, codec.StatusBadArgument,
		shuffleWith(codec.Shuffle, 0, len(src), unsafe.Pointer(&src[0]), unsafe.Pointer(&back[0])))
	assert.Equal(t, codec.StatusBadArgument,
		shuffleWith(codec.Shuffle, 4, len(src), nil, unsafe.Pointer(&back[0])))
	assert.Zero(t, shuffleWith(codec.Shuffle, 4, 0, nil, nil))
}
