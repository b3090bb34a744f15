package hepoc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yigyaps/yigyaps/internal/types"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func TestSealOpenRoundTrip(t *testing.T) {
	s, err := NewSealer(testKey())
	require.NoError(t, err)

	sealed, err := s.Seal(types.USD(50000))
	require.NoError(t, err)
	got, err := s.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, types.USD(50000), got)

	// Tampering is detected.
	sealed[len(sealed)-1] ^= 0xff
	_, err = s.Open(sealed)
	require.Error(t, err)
}

func TestAddSealed(t *testing.T) {
	s, err := NewSealer(testKey())
	require.NoError(t, err)

	a, err := s.Seal(types.USD(10000))
	require.NoError(t, err)
	b, err := s.Seal(types.USD(25000))
	require.NoError(t, err)

	sum, err := s.AddSealed(a, b)
	require.NoError(t, err)
	got, err := s.Open(sum)
	require.NoError(t, err)
	require.Equal(t, types.USD(35000), got)
}

func TestBadKeyLength(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	require.Error(t, err)
}
