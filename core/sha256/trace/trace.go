// Package trace records the internals of a SHA-256 computation: every padded
// block, its message schedule, the working state after each round and the
// chaining value after the feed-forward addition.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/storacha/go-sha256/core/sha256"
)

var words = [8]string{"a", "b", "c", "d", "e", "f", "g", "h"}

// BlockTrace is everything observed while compressing one block.
type BlockTrace struct {
	Index    uint64
	Block    sha256.Block
	Schedule sha256.Schedule
	// Input is the chaining value the block started from.
	Input  sha256.State
	Rounds [sha256.Rounds]sha256.State
	Output sha256.State
}

// Recorder is a [sha256.Tracer] that keeps a copy of every block it sees.
type Recorder struct {
	blocks []BlockTrace
	chain  sha256.State
	limit  int
}

// Option configures a Recorder.
type Option func(r *Recorder)

// WithLimit stops recording after n blocks. Later blocks are still hashed,
// they are simply not kept.
func WithLimit(n int) Option {
	return func(r *Recorder) {
		r.limit = n
	}
}

func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{chain: sha256.IV}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) full() bool {
	return r.limit > 0 && len(r.blocks) >= r.limit
}

func (r *Recorder) Block(index uint64, b *sha256.Block, w *sha256.Schedule) {
	if r.full() {
		return
	}
	r.blocks = append(r.blocks, BlockTrace{
		Index:    index,
		Block:    *b,
		Schedule: *w,
		Input:    r.chain,
	})
}

func (r *Recorder) Round(index uint64, t int, s sha256.State) {
	if bt := r.current(index); bt != nil {
		bt.Rounds[t] = s
	}
}

func (r *Recorder) Chain(index uint64, s sha256.State) {
	r.chain = s
	if bt := r.current(index); bt != nil {
		bt.Output = s
	}
}

func (r *Recorder) current(index uint64) *BlockTrace {
	if len(r.blocks) == 0 {
		return nil
	}
	bt := &r.blocks[len(r.blocks)-1]
	if bt.Index != index {
		return nil
	}
	return bt
}

// Blocks returns the recorded blocks in the order they were compressed.
func (r *Recorder) Blocks() []BlockTrace {
	return r.blocks
}

var _ sha256.Tracer = (*Recorder)(nil)

// Message hashes message with a fresh Recorder attached and returns both.
func Message(message []byte, opts ...Option) (sha256.Digest, *Recorder, error) {
	rec := NewRecorder(opts...)
	h := sha256.New(sha256.WithTracer(rec))
	if err := h.Update(message); err != nil {
		return sha256.Digest{}, nil, err
	}
	d, err := h.Finalize()
	if err != nil {
		return sha256.Digest{}, nil, err
	}
	return d, rec, nil
}

// Fprint writes a human readable dump of bt to w: the block bytes, the full
// schedule, the state after each selected round and the chaining value.
// Passing no rounds prints all 64.
func Fprint(w io.Writer, bt BlockTrace, rounds ...int) error {
	p := &printer{w: w}
	p.printf("block %d\n", bt.Index)
	p.printf("  bytes: %x\n", bt.Block[:])

	p.printf("  schedule:\n")
	for i, v := range bt.Schedule {
		p.printf("    W[%2d] = 0x%08x\n", i, v)
	}

	p.printf("  input:\n")
	p.state("    ", bt.Input)

	if len(rounds) == 0 {
		rounds = make([]int, sha256.Rounds)
		for i := range rounds {
			rounds[i] = i
		}
	}
	for _, t := range rounds {
		if t < 0 || t >= sha256.Rounds {
			return fmt.Errorf("round %d out of range [0, %d)", t, sha256.Rounds)
		}
		p.printf("  round %d:\n", t)
		p.state("    ", bt.Rounds[t])
	}

	p.printf("  output:\n")
	p.state("    ", bt.Output)
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) state(indent string, s sha256.State) {
	for i, v := range s {
		p.printf("%s%s = 0x%08x\n", indent, words[i], v)
	}
}

// Mismatch is one working word that differs from its expected value.
type Mismatch struct {
	Word     string
	Got      uint32
	Expected uint32
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s=0x%08x (should be 0x%08x)", m.Word, m.Got, m.Expected)
}

// MismatchError lists every word of a round state that did not match.
type MismatchError struct {
	Block      uint64
	Round      int
	Mismatches []Mismatch
}

func (e MismatchError) Name() string {
	return "RoundMismatch"
}

func (e MismatchError) Error() string {
	parts := make([]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		parts = append(parts, m.String())
	}
	return fmt.Sprintf("block %d round %d: %s", e.Block, e.Round, strings.Join(parts, ", "))
}

// Expect compares the state after round t of bt with expected and returns a
// MismatchError naming every word that differs.
func Expect(bt BlockTrace, t int, expected sha256.State) error {
	if t < 0 || t >= sha256.Rounds {
		return fmt.Errorf("round %d out of range [0, %d)", t, sha256.Rounds)
	}
	var mismatches []Mismatch
	for i, got := range bt.Rounds[t] {
		if got != expected[i] {
			mismatches = append(mismatches, Mismatch{words[i], got, expected[i]})
		}
	}
	if len(mismatches) > 0 {
		return MismatchError{Block: bt.Index, Round: t, Mismatches: mismatches}
	}
	return nil
}
