package car

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	logging "github.com/ipfs/go-log/v2"
	"github.com/ipld/go-car/util"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/storacha/go-sha256/core/ipld"
	"github.com/storacha/go-sha256/core/ipld/block"
)

var log = logging.Logger("sha256/car")

func init() {
	cbor.RegisterCborType(carHeader{})
}

type carHeader struct {
	Roots   []cid.Cid
	Version uint64
}

func toCids(links []ipld.Link) ([]cid.Cid, error) {
	cids := make([]cid.Cid, 0, len(links))
	for _, l := range links {
		cl, ok := l.(cidlink.Link)
		if !ok {
			return nil, fmt.Errorf("unsupported link type: %T", l)
		}
		cids = append(cids, cl.Cid)
	}
	return cids, nil
}

// Encode streams a CARv1 archive of the given roots and blocks. Errors are
// delivered through the returned reader. Callers that stop reading early must
// Close it so the writing goroutine exits.
func Encode(roots []ipld.Link, blocks iter.Seq2[block.Block, error]) io.ReadCloser {
	reader, writer := io.Pipe()
	go func() {
		cids, err := toCids(roots)
		if err != nil {
			writer.CloseWithError(fmt.Errorf("writing CAR header: %w", err))
			return
		}
		hb, err := cbor.DumpObject(carHeader{Roots: cids, Version: 1})
		if err != nil {
			writer.CloseWithError(fmt.Errorf("writing CAR header: %w", err))
			return
		}
		if err := util.LdWrite(writer, hb); err != nil {
			writer.CloseWithError(fmt.Errorf("writing CAR header: %w", err))
			return
		}
		for b, err := range blocks {
			if err != nil {
				writer.CloseWithError(fmt.Errorf("writing CAR blocks: %w", err))
				return
			}
			cl, ok := b.Link().(cidlink.Link)
			if !ok {
				writer.CloseWithError(fmt.Errorf("writing CAR blocks: unsupported link type: %T", b.Link()))
				return
			}
			if err := util.LdWrite(writer, cl.Cid.Bytes(), b.Bytes()); err != nil {
				writer.CloseWithError(fmt.Errorf("writing CAR blocks: %w", err))
				return
			}
		}
		writer.Close()
	}()
	return reader
}

// Decode reads a CARv1 header and returns its roots along with an iterator
// over the blocks that follow. Every block is verified against its CID as it
// is read; iteration stops at the first error.
func Decode(reader io.Reader) ([]ipld.Link, iter.Seq2[block.Block, error], error) {
	br := bufio.NewReader(reader)

	hb, err := util.LdRead(br)
	if err != nil {
		return nil, nil, err
	}

	var ch carHeader
	if err := cbor.DecodeInto(hb, &ch); err != nil {
		return nil, nil, fmt.Errorf("invalid header: %v", err)
	}

	if ch.Version != 1 {
		return nil, nil, fmt.Errorf("invalid car version: %d", ch.Version)
	}

	roots := make([]ipld.Link, 0, len(ch.Roots))
	for _, r := range ch.Roots {
		roots = append(roots, cidlink.Link{Cid: r})
	}

	return roots, func(yield func(block.Block, error) bool) {
		for {
			c, bytes, err := util.ReadNode(br)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				yield(nil, err)
				return
			}

			blk := block.NewBlock(cidlink.Link{Cid: c}, bytes)
			if err := block.Verify(blk); err != nil {
				yield(nil, err)
				return
			}
			log.Debugw("read block", "cid", c.String(), "size", len(bytes))

			if !yield(blk, nil) {
				return
			}
		}
	}, nil
}
