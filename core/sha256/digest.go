package sha256

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest is a SHA-256 digest: the big-endian serialization of the final
// chaining value.
type Digest [Size]byte

func digestOf(s State) Digest {
	var d Digest
	for i, v := range s {
		binary.BigEndian.PutUint32(d[i*4:], v)
	}
	return d
}

// Bytes returns a copy of the raw digest.
func (d Digest) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, d[:])
	return b
}

// Words returns the digest as the chaining value it was serialized from.
func (d Digest) Words() State {
	var s State
	for i := range s {
		s[i] = binary.BigEndian.Uint32(d[i*4:])
	}
	return s
}

// String returns the 64 character lowercase hex rendering of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Format implements [fmt.Formatter]; %X renders uppercase hex, every other
// verb lowercase.
func (d Digest) Format(f fmt.State, verb rune) {
	s := d.String()
	if verb == 'X' {
		s = strings.ToUpper(s)
	}
	fmt.Fprint(f, s)
}

// ParseDigest parses a 64 character hex string, in either case, into a
// Digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return d, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(d[:], decoded)
	return d, nil
}
