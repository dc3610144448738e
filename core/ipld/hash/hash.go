package hash

import (
	"bytes"
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-varint"
)

type Hasher interface {
	Code() uint64
	Size() uint64
	Sum(bytes []byte) (Digest, error)
}

// Digest is a multihash: the raw hash output tagged with the hash function
// code and the output size.
type Digest interface {
	Code() uint64
	Size() uint64
	// Digest is the raw hash output.
	Digest() []byte
	// Bytes is the multihash encoding, <code><size><digest>.
	Bytes() []byte
}

type digest struct {
	code   uint64
	size   uint64
	digest []byte
	bytes  []byte
}

func (d *digest) Bytes() []byte {
	return d.bytes
}

func (d *digest) Code() uint64 {
	return d.code
}

func (d *digest) Digest() []byte {
	return d.digest
}

func (d *digest) Size() uint64 {
	return d.size
}

func NewDigest(code uint64, size uint64, digst []byte, bytes []byte) Digest {
	return &digest{code, size, digst, bytes}
}

// Decode parses multihash bytes. The declared size must match the number of
// bytes that follow the header.
func Decode(b []byte) (Digest, error) {
	r := bytes.NewReader(b)
	code, err := varint.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("reading multihash code: %w", err)
	}
	size, err := varint.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("reading multihash size: %w", err)
	}
	if uint64(r.Len()) != size {
		return nil, fmt.Errorf("multihash declares %d digest bytes, found %d", size, r.Len())
	}
	offset := len(b) - r.Len()
	return NewDigest(code, size, b[offset:], b), nil
}

// Equal reports whether two digests have the same multihash encoding.
func Equal(a, b Digest) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// Format renders the multihash bytes of d in the given multibase encoding.
func Format(d Digest, base multibase.Encoding) (string, error) {
	return multibase.Encode(base, d.Bytes())
}

// Parse decodes a multibase string produced by [Format].
func Parse(s string) (Digest, error) {
	_, b, err := multibase.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decoding multibase digest: %w", err)
	}
	return Decode(b)
}
