package sha256

import "encoding/binary"

// Block is one 64 byte unit of padded message.
type Block [BlockSize]byte

// BlockCount returns the number of blocks a message of n bytes occupies once
// padded.
func BlockCount(n uint64) int {
	return int((n + 9 + BlockSize - 1) / BlockSize)
}

// PadLength returns the bytes appended to a message of n bytes: a single 0x80,
// zeros up to 56 mod 64, then the bit-length as a big-endian uint64.
func PadLength(n uint64) ([]byte, error) {
	if n > maxLen {
		return nil, NewLengthOverflowError(n)
	}
	zeros := (BlockSize + 55 - n%BlockSize) % BlockSize
	trailer := make([]byte, 1+zeros+8)
	trailer[0] = 0x80
	binary.BigEndian.PutUint64(trailer[1+zeros:], n<<3)
	return trailer, nil
}

// Pad splits message into the sequence of blocks fed to the compression
// function. The empty message yields exactly one block.
func Pad(message []byte) ([]Block, error) {
	trailer, err := PadLength(uint64(len(message)))
	if err != nil {
		return nil, err
	}

	padded := make([]byte, 0, len(message)+len(trailer))
	padded = append(padded, message...)
	padded = append(padded, trailer...)

	blocks := make([]Block, len(padded)/BlockSize)
	for i := range blocks {
		blocks[i] = Block(padded[i*BlockSize : (i+1)*BlockSize])
	}
	return blocks, nil
}
