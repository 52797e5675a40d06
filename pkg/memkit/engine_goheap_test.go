//go:build !(cgo && mimalloc)

package memkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_OwnsDefaultEngine(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.Equal(t, "goheap", EngineName)

	p := s.Malloc(32)
	require.NotNil(t, p)
	require.NoError(t, s.Close())

	assert.Nil(t, s.Malloc(32))
}
