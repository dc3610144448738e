package sha256

import "math/bits"

// State is the chaining value, the eight working words a through h.
type State [8]uint32

func bigSigma0(a uint32) uint32 {
	return bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
}

func bigSigma1(e uint32) uint32 {
	return bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
}

func ch(e, f, g uint32) uint32 {
	return (e & f) ^ (^e & g)
}

func maj(a, b, c uint32) uint32 {
	return (a & b) ^ (a & c) ^ (b & c)
}

// Step applies a single compression round to s using schedule word w and
// round constant k.
func Step(s State, w, k uint32) State {
	a, b, c, d, e, f, g, h := s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7]
	t1 := h + bigSigma1(e) + ch(e, f, g) + k + w
	t2 := bigSigma0(a) + maj(a, b, c)
	return State{t1 + t2, a, b, c, d + t1, e, f, g}
}

// Compress runs all 64 rounds of b over s and adds the result back into s,
// returning the chaining value for the next block.
func Compress(s State, b *Block) State {
	return compress(s, b, 0, nil)
}

func compress(s State, b *Block, index uint64, t Tracer) State {
	w := Expand(b)
	if t != nil {
		t.Block(index, b, &w)
	}

	v := s
	for i := 0; i < Rounds; i++ {
		v = Step(v, w[i], K[i])
		if t != nil {
			t.Round(index, i, v)
		}
	}

	for i := range s {
		s[i] += v[i]
	}
	if t != nil {
		t.Chain(index, s)
	}
	return s
}
