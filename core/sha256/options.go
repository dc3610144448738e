package sha256

// Tracer observes a computation block by block. Every method is called
// synchronously from the goroutine driving the Hasher.
type Tracer interface {
	// Block is called with each block and its schedule before the rounds run.
	// index counts blocks from zero.
	Block(index uint64, b *Block, w *Schedule)
	// Round is called with the working state after round t of block index.
	Round(index uint64, t int, s State)
	// Chain is called with the chaining value after the feed-forward addition.
	Chain(index uint64, s State)
}

// Option configures a Hasher.
type Option func(h *Hasher)

// WithTracer reports the internals of every compressed block to t.
func WithTracer(t Tracer) Option {
	return func(h *Hasher) {
		h.tracer = t
	}
}
