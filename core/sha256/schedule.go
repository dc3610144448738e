package sha256

import (
	"encoding/binary"
	"math/bits"
)

// Schedule is the message schedule W[0..63] derived from a single block.
type Schedule [Rounds]uint32

func sigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ x>>3
}

func sigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ x>>10
}

// Expand derives the message schedule for b. The first 16 words are the
// block's big-endian words, every later word depends only on earlier ones.
func Expand(b *Block) Schedule {
	var w Schedule
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	for i := 16; i < Rounds; i++ {
		w[i] = sigma1(w[i-2]) + w[i-7] + sigma0(w[i-15]) + w[i-16]
	}
	return w
}
