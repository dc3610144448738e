package car

import (
	"bytes"
	"io"
	"iter"
	"testing"
	"time"

	"github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/ipld/go-car/util"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/storacha/go-sha256/core/dag/blockstore"
	"github.com/storacha/go-sha256/core/ipld"
	"github.com/storacha/go-sha256/core/ipld/block"
	"github.com/storacha/go-sha256/testing/helpers"
	"github.com/storacha/go-sha256/testing/helpers/printer"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) []block.Block {
	t.Helper()
	return []block.Block{
		helpers.Must(block.Encode([]byte("abc"))),
		helpers.RandomBlock(100),
		helpers.RandomBlock(4096),
	}
}

func seq(blks []block.Block) iter.Seq2[block.Block, error] {
	return func(yield func(block.Block, error) bool) {
		for _, b := range blks {
			if !yield(b, nil) {
				return
			}
		}
	}
}

func TestEncodeDecodeCAR(t *testing.T) {
	blks := fixture(t)
	roots := []ipld.Link{blks[0].Link()}

	encoded, err := io.ReadAll(Encode(roots, seq(blks)))
	require.NoError(t, err)

	decodedRoots, decoded, err := Decode(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, decodedRoots, 1)
	require.Equal(t, roots[0].String(), decodedRoots[0].String())

	var got []block.Block
	for b, err := range decoded {
		require.NoError(t, err)
		got = append(got, b)
	}
	require.Len(t, got, len(blks))
	for i, b := range blks {
		require.Equal(t, b.Link().String(), got[i].Link().String())
		require.Equal(t, b.Bytes(), got[i].Bytes())
	}
	printer.PrintBlocks(t, seq(got), 1)

	// round trip is byte for byte
	reencoded, err := io.ReadAll(Encode(decodedRoots, seq(got)))
	require.NoError(t, err)
	require.Equal(t, encoded, reencoded)
}

func TestDecodeIntoBlockStore(t *testing.T) {
	blks := fixture(t)
	encoded, err := io.ReadAll(Encode(nil, seq(blks)))
	require.NoError(t, err)

	roots, decoded, err := Decode(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Empty(t, roots)

	bs, err := blockstore.NewBlockStore(blockstore.WithoutVerification())
	require.NoError(t, err)
	require.NoError(t, blockstore.WriteInto(decoded, bs))

	for _, b := range blks {
		_, ok, err := bs.Get(b.Link())
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestDecodeTamperedBlock(t *testing.T) {
	good := helpers.RandomBlock(32)
	tampered := block.NewBlock(good.Link(), helpers.RandomBytes(32))

	encoded, err := io.ReadAll(Encode(nil, seq([]block.Block{tampered})))
	require.NoError(t, err)

	_, decoded, err := Decode(bytes.NewReader(encoded))
	require.NoError(t, err)

	var errs int
	for _, err := range decoded {
		if err != nil {
			require.Contains(t, err.Error(), "mismatch in content integrity")
			errs++
		}
	}
	require.Equal(t, 1, errs)
}

func TestDecodeInvalidVersion(t *testing.T) {
	hb, err := cbor.DumpObject(carHeader{Roots: []cid.Cid{}, Version: 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, util.LdWrite(&buf, hb))

	_, _, err = Decode(&buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid car version")
}

func TestEncodeUnsupportedLink(t *testing.T) {
	var link ipld.Link = unsupportedLink{}
	_, err := io.ReadAll(Encode([]ipld.Link{link}, seq(nil)))
	require.Error(t, err)
}

func TestEncodeCloseStopsWriter(t *testing.T) {
	b := helpers.RandomBlock(64)
	started := make(chan struct{})
	stopped := make(chan struct{})
	endless := func(yield func(block.Block, error) bool) {
		defer close(stopped)
		close(started)
		for yield(b, nil) {
		}
	}

	r := Encode(nil, endless)
	one := make([]byte, 1)
	for waiting := true; waiting; {
		select {
		case <-started:
			waiting = false
		default:
			_, err := io.ReadFull(r, one)
			require.NoError(t, err)
		}
	}
	require.NoError(t, r.Close())

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("encoder kept writing after the reader was closed")
	}
}

type unsupportedLink struct {
	cidlink.Link
}
