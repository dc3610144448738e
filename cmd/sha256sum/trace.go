package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/storacha/go-sha256/core/sha256"
	"github.com/storacha/go-sha256/core/sha256/trace"
)

type traceOptions struct {
	message string
	block   int
	rounds  []int
}

func newTraceCmd() *cobra.Command {
	opts := traceOptions{}
	cmd := &cobra.Command{
		Use:   "trace [FILE]",
		Short: "Dump the message schedule and round states of one block",
		Long: `Hash FILE (or standard input, or the --string message) and print the
padded block, its 64 schedule words, the working state after each round and
the chaining value after the feed-forward addition.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var msg []byte
			if cmd.Flags().Changed("string") {
				msg = []byte(opts.message)
			} else {
				name := stdinName
				if len(args) == 1 {
					name = args[0]
				}
				r, err := open(cmd, name)
				if err != nil {
					return err
				}
				defer r.Close()
				msg, err = io.ReadAll(r)
				if err != nil {
					return fmt.Errorf("reading %s: %w", name, err)
				}
			}

			if opts.block < 0 {
				return fmt.Errorf("invalid block index %d", opts.block)
			}
			d, rec, err := trace.Message(msg, trace.WithLimit(opts.block+1))
			if err != nil {
				return err
			}
			blocks := rec.Blocks()
			if opts.block >= len(blocks) {
				return fmt.Errorf("message pads to %d block(s), no block %d", sha256.BlockCount(uint64(len(msg))), opts.block)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "message: %d bytes, %d block(s)\n", len(msg), sha256.BlockCount(uint64(len(msg))))
			if err := trace.Fprint(out, blocks[opts.block], opts.rounds...); err != nil {
				return err
			}
			fmt.Fprintf(out, "digest: %s\n", d)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.message, "string", "s", "", "trace this message instead of reading a file")
	flags.IntVarP(&opts.block, "block", "b", 0, "index of the block to print")
	flags.IntSliceVarP(&opts.rounds, "rounds", "r", nil, "rounds to print (default all)")
	return cmd
}
