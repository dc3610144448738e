package sha256

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPadEmpty(t *testing.T) {
	blocks, err := Pad(nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	var want Block
	want[0] = 0x80
	require.Equal(t, want, blocks[0])
}

func TestPadABC(t *testing.T) {
	blocks, err := Pad([]byte("abc"))
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	b := blocks[0]
	require.Equal(t, []byte{'a', 'b', 'c', 0x80}, b[:4])
	for _, v := range b[4:56] {
		require.Zero(t, v)
	}
	require.Equal(t, uint64(24), binary.BigEndian.Uint64(b[56:]))
}

func TestPadBlockCount(t *testing.T) {
	for n := 0; n <= 3*BlockSize; n++ {
		msg := make([]byte, n)
		blocks, err := Pad(msg)
		require.NoError(t, err)

		want := (n + 9 + 63) / 64
		require.Len(t, blocks, want, "message of %d bytes", n)
		require.Equal(t, want, BlockCount(uint64(n)))

		last := blocks[len(blocks)-1]
		require.Equal(t, uint64(n)*8, binary.BigEndian.Uint64(last[56:]))
	}
}

func TestPadBoundaries(t *testing.T) {
	// 55 bytes leaves room for the 0x80 and the length in a single block, 56
	// does not.
	blocks, err := Pad(make([]byte, 55))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, byte(0x80), blocks[0][55])

	blocks, err = Pad(make([]byte, 56))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Equal(t, byte(0x80), blocks[0][56])

	blocks, err = Pad(make([]byte, 64))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Equal(t, byte(0x80), blocks[1][0])
}

func TestPadLength(t *testing.T) {
	for n := uint64(0); n < 200; n++ {
		trailer, err := PadLength(n)
		require.NoError(t, err)
		require.Zero(t, (n+uint64(len(trailer)))%BlockSize)
		require.GreaterOrEqual(t, len(trailer), 9)
		require.LessOrEqual(t, len(trailer), 72)
		require.Equal(t, byte(0x80), trailer[0])
	}
}

func TestPadLengthOverflow(t *testing.T) {
	_, err := PadLength(maxLen)
	require.NoError(t, err)

	_, err = PadLength(maxLen + 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrLengthOverflow))

	var lerr LengthOverflowError
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, uint64(maxLen+1), lerr.Length())
	require.Equal(t, LengthOverflowErrorName, lerr.Name())
	require.NotEmpty(t, lerr.Stack())
}
