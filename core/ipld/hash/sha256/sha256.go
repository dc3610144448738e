package sha256

import (
	"fmt"
	"io"

	"github.com/multiformats/go-multihash"
	"github.com/storacha/go-sha256/core/ipld/hash"
	"github.com/storacha/go-sha256/core/sha256"
)

// sha2-256
const Code = multihash.SHA2_256

// sha2-256 hash has a 32-byte sum
const Size = sha256.Size

type hasher struct{}

func (hasher) Code() uint64 {
	return Code
}

func (hasher) Size() uint64 {
	return Size
}

func (hasher) Sum(b []byte) (hash.Digest, error) {
	sum, err := sha256.Sum(b)
	if err != nil {
		return nil, err
	}
	return encode(sum)
}

var Hasher = hasher{}

// SumReader streams r through the hash function.
func SumReader(r io.Reader) (hash.Digest, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return nil, fmt.Errorf("hashing reader: %w", err)
	}
	sum, err := h.Finalize()
	if err != nil {
		return nil, err
	}
	return encode(sum)
}

// FromDigest tags a raw digest as a sha2-256 multihash.
func FromDigest(sum sha256.Digest) (hash.Digest, error) {
	return encode(sum)
}

// ToDigest extracts the raw digest from a sha2-256 multihash.
func ToDigest(d hash.Digest) (sha256.Digest, error) {
	var sum sha256.Digest
	if d.Code() != Code {
		return sum, fmt.Errorf("expected sha2-256 multihash (0x%x), got 0x%x", Code, d.Code())
	}
	if len(d.Digest()) != Size {
		return sum, fmt.Errorf("sha2-256 multihash carries %d bytes, want %d", len(d.Digest()), Size)
	}
	copy(sum[:], d.Digest())
	return sum, nil
}

func encode(sum sha256.Digest) (hash.Digest, error) {
	raw := sum.Bytes()
	mh, err := multihash.Encode(raw, Code)
	if err != nil {
		return nil, fmt.Errorf("encoding multihash: %w", err)
	}
	return hash.NewDigest(Code, Size, raw, mh), nil
}

var _ hash.Hasher = Hasher
