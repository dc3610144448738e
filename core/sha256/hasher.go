package sha256

// Hasher computes a SHA-256 digest incrementally. The zero value is not
// usable, construct one with [New]. A Hasher is finalized exactly once; to
// hash another message construct a new one.
//
// A Hasher is not safe for concurrent use. Independent Hashers share nothing
// but the read-only constant tables.
type Hasher struct {
	h      State
	x      Block
	nx     int
	len    uint64
	blocks uint64
	done   bool
	tracer Tracer
}

// New returns a Hasher holding the initial chaining value and an empty buffer.
func New(opts ...Option) *Hasher {
	h := &Hasher{h: IV}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Size returns the digest size in bytes.
func (h *Hasher) Size() int { return Size }

// BlockSize returns the block size in bytes.
func (h *Hasher) BlockSize() int { return BlockSize }

// Len returns the number of message bytes accepted so far.
func (h *Hasher) Len() uint64 { return h.len }

// Finalized reports whether Finalize has been called.
func (h *Hasher) Finalized() bool { return h.done }

// Update appends p to the message. Every complete block is compressed
// immediately, a trailing partial block stays buffered until more input or
// Finalize arrives.
func (h *Hasher) Update(p []byte) error {
	if h.done {
		return NewInvalidStateError("update")
	}
	if uint64(len(p)) > maxLen-h.len {
		return NewLengthOverflowError(h.len + uint64(len(p)))
	}
	h.len += uint64(len(p))
	h.absorb(p)
	return nil
}

// Write implements [io.Writer] on top of Update.
func (h *Hasher) Write(p []byte) (int, error) {
	if err := h.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finalize pads the buffered remainder, compresses the final block(s) and
// returns the digest. The Hasher accepts no further input afterwards.
func (h *Hasher) Finalize() (Digest, error) {
	if h.done {
		return Digest{}, NewInvalidStateError("finalize")
	}
	trailer, err := PadLength(h.len)
	if err != nil {
		return Digest{}, err
	}
	h.done = true
	h.absorb(trailer)
	if h.nx != 0 {
		panic("sha256: padded message is not a whole number of blocks")
	}
	return digestOf(h.h), nil
}

func (h *Hasher) absorb(p []byte) {
	if h.nx > 0 {
		n := copy(h.x[h.nx:], p)
		h.nx += n
		p = p[n:]
		if h.nx < BlockSize {
			return
		}
		h.compress(&h.x)
		h.nx = 0
	}
	for len(p) >= BlockSize {
		h.compress((*Block)(p[:BlockSize]))
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		h.nx = copy(h.x[:], p)
	}
}

func (h *Hasher) compress(b *Block) {
	h.h = compress(h.h, b, h.blocks, h.tracer)
	h.blocks++
}

// Sum returns the digest of message.
func Sum(message []byte) (Digest, error) {
	h := New()
	if err := h.Update(message); err != nil {
		return Digest{}, err
	}
	return h.Finalize()
}

// Sum256 returns the digest of message. It panics only if message is too
// long for its bit count to fit in 64 bits, which no in-memory slice can be.
func Sum256(message []byte) Digest {
	d, err := Sum(message)
	if err != nil {
		panic(err)
	}
	return d
}
