package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name  string
		size  uintptr
		align uintptr
		err   error
	}{
		{"byte", 1, 1, nil},
		{"page", 4096, 4096, nil},
		{"zero size", 0, 8, nil},
		{"zero align", 8, 0, ErrBadAlign},
		{"odd align", 8, 12, ErrBadAlign},
		{"wraps", ^uintptr(0), 16, ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLayout(tt.size, tt.align)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Layout{Size: tt.size, Align: tt.align}, l)
		})
	}
}

func TestLayoutOf(t *testing.T) {
	type pair struct {
		a uint8
		b uint64
	}
	l := LayoutOf[pair]()
	assert.Equal(t, unsafe.Sizeof(pair{}), l.Size)
	assert.Equal(t, unsafe.Alignof(pair{}), l.Align)

	arr, err := ArrayLayout[uint32](10)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 40, Align: 4}, arr)

	_, err = ArrayLayout[uint64](^uintptr(0))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestLayout_String(t *testing.T) {
	assert.Equal(t, "64@16", Layout{Size: 64, Align: 16}.String())
	assert.Equal(t, Layout{Size: 8, Align: 16}, Layout{Size: 64, Align: 16}.WithSize(8))
}
