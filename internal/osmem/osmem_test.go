package osmem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMapWriteUnmap(t *testing.T) {
	const size = 1 << 20

	data, err := Map(size, false)
	require.NoError(t, err)
	require.Len(t, data, size)

	for i := range data {
		require.Zero(t, data[i], "fresh mapping must be zeroed at %d", i)
		if i > 4096 {
			break
		}
	}
	data[0] = 0xAB
	data[size-1] = 0xCD
	require.Equal(t, byte(0xAB), data[0])
	require.Equal(t, byte(0xCD), data[size-1])

	require.NoError(t, Unmap(data))
	// Second unmap is a no-op.
	require.NoError(t, Unmap(data))
}

func TestMapHugeHint(t *testing.T) {
	data, err := Map(4<<20, true)
	require.NoError(t, err)
	data[len(data)-1] = 1
	require.NoError(t, Unmap(data))
}

func TestMapRejectsZero(t *testing.T) {
	_, err := Map(0, false)
	require.Error(t, err)
}

func TestUnmapEmpty(t *testing.T) {
	require.NoError(t, Unmap(nil))
}

func TestReserveHugeZeroPages(t *testing.T) {
	regions, err := ReserveHuge(0, -1, time.Now().Add(time.Second))
	require.NoError(t, err)
	require.Empty(t, regions)
}

func TestReserveHugeDeadlinePassed(t *testing.T) {
	regions, err := ReserveHuge(4, -1, time.Now().Add(-time.Second))
	require.ErrorIs(t, err, ErrTimeout)
	require.Empty(t, regions)
}
