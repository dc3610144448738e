package trace

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/storacha/go-sha256/core/sha256"
	"github.com/stretchr/testify/require"
)

var roundZeroABC = sha256.State{
	0x5d6aebcd, 0x6a09e667, 0xbb67ae85, 0x3c6ef372,
	0xfa2a4622, 0x510e527f, 0x9b05688c, 0x1f83d9ab,
}

func TestMessageABC(t *testing.T) {
	d, rec, err := Message([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, sha256.Sum256([]byte("abc")), d)

	blocks := rec.Blocks()
	require.Len(t, blocks, 1)

	bt := blocks[0]
	require.Equal(t, sha256.IV, bt.Input)
	require.Equal(t, uint32(0x61626380), bt.Schedule[0])
	require.Equal(t, uint32(0x18), bt.Schedule[15])
	require.Equal(t, roundZeroABC, bt.Rounds[0])
	require.Equal(t, d.Words(), bt.Output)
	require.NoError(t, Expect(bt, 0, roundZeroABC))
}

func TestMessageChainsBlocks(t *testing.T) {
	msg := []byte("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq")
	d, rec, err := Message(msg)
	require.NoError(t, err)

	blocks := rec.Blocks()
	require.Len(t, blocks, 2)
	require.Equal(t, uint64(0), blocks[0].Index)
	require.Equal(t, uint64(1), blocks[1].Index)
	require.Equal(t, blocks[0].Output, blocks[1].Input)
	require.Equal(t, d.Words(), blocks[1].Output)
}

func TestRecorderLimit(t *testing.T) {
	_, rec, err := Message(bytes.Repeat([]byte{1}, 300), WithLimit(2))
	require.NoError(t, err)
	require.Len(t, rec.Blocks(), 2)
	require.Equal(t, rec.Blocks()[0].Output, rec.Blocks()[1].Input)
}

func TestExpectMismatch(t *testing.T) {
	_, rec, err := Message([]byte("abc"))
	require.NoError(t, err)

	wrong := roundZeroABC
	wrong[0] = 0x8cfcab6b
	err = Expect(rec.Blocks()[0], 0, wrong)
	require.Error(t, err)

	var merr MismatchError
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Mismatches, 1)
	require.Equal(t, "a", merr.Mismatches[0].Word)
	require.Equal(t, uint32(0x5d6aebcd), merr.Mismatches[0].Got)
	require.Contains(t, err.Error(), "a=0x5d6aebcd (should be 0x8cfcab6b)")

	require.Error(t, Expect(rec.Blocks()[0], 64, wrong))
}

func TestFprint(t *testing.T) {
	_, rec, err := Message([]byte("abc"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, rec.Blocks()[0], 0))
	out := buf.String()

	require.Contains(t, out, "block 0")
	require.Contains(t, out, "W[ 0] = 0x61626380")
	require.Contains(t, out, "W[63] = 0x12b1edeb")
	require.Contains(t, out, "round 0:")
	require.Contains(t, out, "e = 0xfa2a4622")
	require.NotContains(t, out, "round 1:")
	require.Equal(t, 1, strings.Count(out, "output:"))

	buf.Reset()
	require.NoError(t, Fprint(&buf, rec.Blocks()[0]))
	require.Contains(t, buf.String(), "round 63:")

	require.Error(t, Fprint(&buf, rec.Blocks()[0], 64))
}
