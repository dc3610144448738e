package main

import (
	"fmt"
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/storacha/go-sha256/core/ipld/block"
	"github.com/storacha/go-sha256/core/ipld/hash"
	mhsha256 "github.com/storacha/go-sha256/core/ipld/hash/sha256"
	"github.com/storacha/go-sha256/core/sha256"
)

var log = logging.Logger("sha256/cmd")

const stdinName = "-"

type rootOptions struct {
	format   string
	check    string
	logLevel string
}

func (o *rootOptions) bindFlags(flags, persistent *pflag.FlagSet) {
	flags.StringVarP(&o.format, "format", "f", "hex", "digest format: hex, HEX, base32, base58btc or cid")
	flags.StringVarP(&o.check, "check", "c", "", "read digests from FILE and check them")
	persistent.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to GOLOG_LOG_LEVEL")
}

func newRootCmd() *cobra.Command {
	opts := rootOptions{}
	cmd := &cobra.Command{
		Use:   "sha256sum [FILE]...",
		Short: "Print or check SHA-256 digests",
		Long: `Print the SHA-256 digest of each FILE, or of standard input when no FILE
is given or FILE is -.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel == "" {
				return nil
			}
			if err := logging.SetLogLevel("*", opts.logLevel); err != nil {
				return fmt.Errorf("setting log level: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.check != "" {
				return runCheck(cmd, opts.check)
			}
			if len(args) == 0 {
				args = []string{stdinName}
			}
			for _, name := range args {
				d, err := hashFile(cmd, name)
				if err != nil {
					return err
				}
				s, err := formatDigest(d, opts.format)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", s, name)
			}
			return nil
		},
	}

	opts.bindFlags(cmd.Flags(), cmd.PersistentFlags())

	cmd.AddCommand(newTraceCmd())
	return cmd
}

func open(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == stdinName {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return f, nil
}

func hashFile(cmd *cobra.Command, name string) (sha256.Digest, error) {
	r, err := open(cmd, name)
	if err != nil {
		return sha256.Digest{}, err
	}
	defer r.Close()

	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return sha256.Digest{}, fmt.Errorf("hashing %s: %w", name, err)
	}
	d, err := h.Finalize()
	if err != nil {
		return sha256.Digest{}, fmt.Errorf("hashing %s: %w", name, err)
	}
	log.Debugw("hashed", "name", name, "bytes", n, "blocks", sha256.BlockCount(uint64(n)))
	return d, nil
}

func formatDigest(d sha256.Digest, format string) (string, error) {
	switch format {
	case "hex":
		return d.String(), nil
	case "HEX":
		return fmt.Sprintf("%X", d), nil
	}

	mh, err := mhsha256.FromDigest(d)
	if err != nil {
		return "", err
	}
	switch format {
	case "base32":
		return hash.Format(mh, multibase.Base32)
	case "base58btc":
		return hash.Format(mh, multibase.Base58BTC)
	case "cid":
		return block.Link(uint64(multicodec.Raw), mh).String(), nil
	}
	return "", fmt.Errorf("unknown digest format: %q", format)
}
