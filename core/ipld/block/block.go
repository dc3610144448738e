package block

import (
	"bytes"
	"fmt"

	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"github.com/ipld/go-ipld-prime"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/multiformats/go-multicodec"
	"github.com/storacha/go-sha256/core/ipld/hash"
	"github.com/storacha/go-sha256/core/ipld/hash/sha256"
)

var log = logging.Logger("sha256/block")

type Block interface {
	Link() ipld.Link
	Bytes() []byte
}

type block struct {
	link  ipld.Link
	bytes []byte
}

func (b *block) Link() ipld.Link {
	return b.link
}

func (b *block) Bytes() []byte {
	return b.bytes
}

// NewBlock pairs a link with bytes without checking that they match. Use
// [Encode] to derive the link, or [Verify] to check one.
func NewBlock(link ipld.Link, bytes []byte) Block {
	return &block{link, bytes}
}

// Encode content addresses data as a raw block: a CIDv1 with the raw codec
// over the sha2-256 digest of data.
func Encode(data []byte) (Block, error) {
	return EncodeWithCodec(data, uint64(multicodec.Raw))
}

// EncodeWithCodec is like [Encode] but tags the CID with the given codec.
// data is hashed as-is, the codec is only recorded in the link.
func EncodeWithCodec(data []byte, codec uint64) (Block, error) {
	d, err := sha256.Hasher.Sum(data)
	if err != nil {
		return nil, fmt.Errorf("hashing block: %w", err)
	}
	return NewBlock(Link(codec, d), data), nil
}

// Link builds a CIDv1 link for the given codec and multihash digest.
func Link(codec uint64, d hash.Digest) ipld.Link {
	return cidlink.Link{Cid: cid.NewCidV1(codec, d.Bytes())}
}

// Verify recomputes the digest of the block bytes and compares it with the
// multihash in its link. Only sha2-256 links are supported.
func Verify(b Block) error {
	cl, ok := b.Link().(cidlink.Link)
	if !ok {
		return fmt.Errorf("unsupported link type: %T", b.Link())
	}
	linked, err := hash.Decode(cl.Cid.Hash())
	if err != nil {
		return fmt.Errorf("decoding link multihash: %w", err)
	}
	if linked.Code() != uint64(multicodec.Sha2_256) {
		return fmt.Errorf("unsupported multihash 0x%x in %s", linked.Code(), cl)
	}
	computed, err := sha256.Hasher.Sum(b.Bytes())
	if err != nil {
		return fmt.Errorf("hashing block: %w", err)
	}
	if !bytes.Equal(linked.Bytes(), computed.Bytes()) {
		log.Debugw("block integrity mismatch", "link", cl.String(), "size", len(b.Bytes()))
		return fmt.Errorf("mismatch in content integrity, name: %s, data: %s", cl, Link(cl.Cid.Prefix().Codec, computed))
	}
	return nil
}
