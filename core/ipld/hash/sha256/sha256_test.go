package sha256

import (
	"strings"
	"testing"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/storacha/go-sha256/core/ipld/hash"
	"github.com/storacha/go-sha256/core/sha256"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	d, err := Hasher.Sum([]byte("abc"))
	require.NoError(t, err)

	require.Equal(t, uint64(Code), d.Code())
	require.Equal(t, uint64(Size), d.Size())
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sha256.Digest(d.Digest()).String())
	require.Len(t, d.Bytes(), 34)
	require.Equal(t, []byte{0x12, 0x20}, d.Bytes()[:2])
}

func TestSumMatchesMultihash(t *testing.T) {
	for _, s := range []string{"", "abc", strings.Repeat("x", 1000)} {
		d, err := Hasher.Sum([]byte(s))
		require.NoError(t, err)

		want, err := multihash.Sum([]byte(s), multihash.SHA2_256, -1)
		require.NoError(t, err)
		require.Equal(t, []byte(want), d.Bytes())

		decoded, err := hash.Decode(d.Bytes())
		require.NoError(t, err)
		require.True(t, hash.Equal(d, decoded))
	}
}

func TestSumReader(t *testing.T) {
	msg := strings.Repeat("abcdefgh", 100)
	d, err := SumReader(strings.NewReader(msg))
	require.NoError(t, err)

	want, err := Hasher.Sum([]byte(msg))
	require.NoError(t, err)
	require.True(t, hash.Equal(want, d))
}

func TestDigestConversion(t *testing.T) {
	sum := sha256.Sum256([]byte("abc"))
	d, err := FromDigest(sum)
	require.NoError(t, err)

	back, err := ToDigest(d)
	require.NoError(t, err)
	require.Equal(t, sum, back)

	_, err = ToDigest(hash.NewDigest(0x13, 64, make([]byte, 64), nil))
	require.Error(t, err)

	_, err = ToDigest(hash.NewDigest(Code, 4, make([]byte, 4), nil))
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	d, err := Hasher.Sum([]byte("abc"))
	require.NoError(t, err)

	s, err := hash.Format(d, multibase.Base32)
	require.NoError(t, err)
	require.Equal(t, "bciqlu6awx6hqdt7kifaubxs5vyrchmadmgrzmf32ts2bb73b6iablli", s)
}
