package blockstore

import (
	"fmt"
	"iter"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/storacha/go-sha256/core/ipld"
	"github.com/storacha/go-sha256/core/ipld/block"
)

type BlockReader interface {
	Get(link ipld.Link) (block.Block, bool, error)
	Iterator() iter.Seq2[block.Block, error]
}

type BlockWriter interface {
	Put(b block.Block) error
}

type BlockStore interface {
	BlockReader
	BlockWriter
}

type blockreader struct {
	keys []string
	blks map[string]block.Block
}

func (br *blockreader) Get(link ipld.Link) (block.Block, bool, error) {
	b, ok := br.blks[link.String()]
	return b, ok, nil
}

func (br *blockreader) Iterator() iter.Seq2[block.Block, error] {
	return func(yield func(block.Block, error) bool) {
		for _, k := range br.keys {
			v, ok := br.blks[k]
			var err error
			if !ok {
				err = fmt.Errorf("missing block for key: %s", k)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

func (br *blockreader) add(b block.Block) {
	key := b.Link().String()
	if _, ok := br.blks[key]; ok {
		return
	}
	br.blks[key] = b
	br.keys = append(br.keys, key)
}

type blockstore struct {
	sync.RWMutex
	blockreader
	verify bool
}

func (bs *blockstore) Put(b block.Block) error {
	if bs.verify {
		if err := block.Verify(b); err != nil {
			return fmt.Errorf("putting block %s: %w", b.Link(), err)
		}
	}

	bs.Lock()
	defer bs.Unlock()
	bs.add(b)
	return nil
}

func (bs *blockstore) Get(link ipld.Link) (block.Block, bool, error) {
	bs.RLock()
	defer bs.RUnlock()
	return bs.blockreader.Get(link)
}

func (bs *blockstore) Iterator() iter.Seq2[block.Block, error] {
	bs.RLock()
	keys := append([]string(nil), bs.keys...)
	bs.RUnlock()
	return func(yield func(block.Block, error) bool) {
		for _, k := range keys {
			bs.RLock()
			v, ok := bs.blks[k]
			bs.RUnlock()
			var err error
			if !ok {
				err = fmt.Errorf("missing block for key: %s", k)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

// Option is an option configuring a block reader/writer.
type Option func(cfg *bsConfig) error

type bsConfig struct {
	blks       []block.Block
	blksiter   iter.Seq2[block.Block, error]
	skipVerify bool
}

// WithBlocks configures the blocks the blockstore should contain.
func WithBlocks(blks []block.Block) Option {
	return func(cfg *bsConfig) error {
		cfg.blks = blks
		return nil
	}
}

// WithBlocksIterator configures the blocks the blockstore should contain.
func WithBlocksIterator(blks iter.Seq2[block.Block, error]) Option {
	return func(cfg *bsConfig) error {
		cfg.blksiter = blks
		return nil
	}
}

// WithoutVerification stores blocks without checking that their bytes hash
// to their link. Only use it for blocks that were verified elsewhere.
func WithoutVerification() Option {
	return func(cfg *bsConfig) error {
		cfg.skipVerify = true
		return nil
	}
}

func configure(options []Option) (bsConfig, error) {
	cfg := bsConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func fill(cfg bsConfig, put func(block.Block) error) error {
	for _, b := range cfg.blks {
		if err := put(b); err != nil {
			return err
		}
	}
	if cfg.blksiter != nil {
		for b, err := range cfg.blksiter {
			if err != nil {
				return err
			}
			if err := put(b); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewBlockStore creates an in memory blockstore. Every block put into it is
// verified against its link unless [WithoutVerification] is given.
func NewBlockStore(options ...Option) (BlockStore, error) {
	cfg, err := configure(options)
	if err != nil {
		return nil, err
	}
	bs := &blockstore{
		blockreader: blockreader{
			keys: []string{},
			blks: map[string]block.Block{},
		},
		verify: !cfg.skipVerify,
	}
	if err := fill(cfg, bs.Put); err != nil {
		return nil, err
	}
	return bs, nil
}

// NewBlockReader creates a read only view over the configured blocks.
// Duplicate blocks are ignored.
func NewBlockReader(options ...Option) (BlockReader, error) {
	cfg, err := configure(options)
	if err != nil {
		return nil, err
	}
	br := &blockreader{keys: []string{}, blks: map[string]block.Block{}}
	err = fill(cfg, func(b block.Block) error {
		if !cfg.skipVerify {
			if err := block.Verify(b); err != nil {
				return err
			}
		}
		br.add(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return br, nil
}

var DefaultLRUSize = 1024

type lrustore struct {
	data *lru.Cache[string, block.Block]
}

func (s *lrustore) Get(link ipld.Link) (block.Block, bool, error) {
	b, ok := s.data.Get(link.String())
	return b, ok, nil
}

func (s *lrustore) Put(b block.Block) error {
	if err := block.Verify(b); err != nil {
		return fmt.Errorf("putting block %s: %w", b.Link(), err)
	}
	s.data.Add(b.Link().String(), b)
	return nil
}

// Iterator yields the cached blocks from least to most recently used.
func (s *lrustore) Iterator() iter.Seq2[block.Block, error] {
	return func(yield func(block.Block, error) bool) {
		for _, k := range s.data.Keys() {
			b, ok := s.data.Peek(k)
			if !ok {
				continue
			}
			if !yield(b, nil) {
				return
			}
		}
	}
}

// NewLRUBlockStore creates a blockstore holding at most size verified blocks,
// evicting the least recently used. Pass a value less than 1 to use
// [DefaultLRUSize].
func NewLRUBlockStore(size int) (BlockStore, error) {
	if size <= 0 {
		size = DefaultLRUSize
	}
	cache, err := lru.New[string, block.Block](size)
	if err != nil {
		return nil, fmt.Errorf("creating block LRU: %w", err)
	}
	return &lrustore{data: cache}, nil
}

// WriteInto puts every block yielded by blks into bs.
func WriteInto(blks iter.Seq2[block.Block, error], bs BlockWriter) error {
	for b, err := range blks {
		if err != nil {
			return fmt.Errorf("reading block: %w", err)
		}
		if err := bs.Put(b); err != nil {
			return fmt.Errorf("putting block: %w", err)
		}
	}
	return nil
}
