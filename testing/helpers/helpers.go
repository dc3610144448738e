package helpers

import (
	crand "crypto/rand"

	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/storacha/go-sha256/core/ipld/block"
)

// Must takes return values from a function and returns the non-error one. If
// the error value is non-nil then it panics.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func RandomBytes(size int) []byte {
	bytes := make([]byte, size)
	_, _ = crand.Read(bytes)
	return bytes
}

// RandomBlock returns a raw block of size random bytes.
func RandomBlock(size int) block.Block {
	return Must(block.Encode(RandomBytes(size)))
}

func RandomCID() datamodel.Link {
	return RandomBlock(10).Link()
}
