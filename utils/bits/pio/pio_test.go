package pio

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nareix/h264bits/av"
)

func TestLengthRoundTrip(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4} {
		b := make([]byte, 8)
		n := 0
		v := uint32(0x12345678) & (1<<uint(size*8) - 1)
		WriteLength(b, &n, v, size)
		assert.Equal(t, size, n)

		n = 0
		got, err := ReadLength(b, &n, size)
		require.NoError(t, err)
		assert.Equal(t, v, got, "size %d", size)
	}
}

func TestShortRead(t *testing.T) {
	n := 1
	_, err := ReadLength([]byte{0, 1}, &n, 2)
	assert.True(t, errors.Is(err, av.ErrMalformedStream))
	assert.Equal(t, 1, n)

	_, err = ReadBytes([]byte{1, 2, 3}, &n, 3)
	assert.Error(t, err)
}

func TestU32BE(t *testing.T) {
	b := make([]byte, 4)
	PutU32BE(b, 0xdeadbeef)
	assert.Equal(t, uint32(0xdeadbeef), U32BE(b))
	assert.Equal(t, uint32(0xadbeef), U24BE(b[1:]))
	assert.Equal(t, uint16(0xbeef), U16BE(b[2:]))

	for size, want := range map[int]uint32{1: 0xde, 2: 0xdead, 3: 0xdeadbe, 4: 0xdeadbeef} {
		assert.Equal(t, want, UBE(b, size), "size %d", size)
		c := make([]byte, 4)
		PutUBE(c, want, size)
		assert.Equal(t, b[:size], c[:size], "size %d", size)
	}
}
