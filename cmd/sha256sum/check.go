package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/storacha/go-sha256/core/sha256"
)

// runCheck verifies every "<hex digest>  <name>" line of the list file.
func runCheck(cmd *cobra.Command, list string) error {
	r, err := open(cmd, list)
	if err != nil {
		return err
	}
	defer r.Close()

	out := cmd.OutOrStdout()
	var failed, malformed int
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		sum, name, ok := strings.Cut(text, " ")
		name = strings.TrimPrefix(strings.TrimLeft(name, " "), "*")
		if !ok || name == "" {
			log.Warnw("malformed check line", "file", list, "line", line)
			malformed++
			continue
		}
		want, err := sha256.ParseDigest(sum)
		if err != nil {
			log.Warnw("malformed check line", "file", list, "line", line, "error", err)
			malformed++
			continue
		}

		got, err := hashFile(cmd, name)
		if err != nil {
			fmt.Fprintf(out, "%s: FAILED open or read\n", name)
			failed++
			continue
		}
		if got != want {
			fmt.Fprintf(out, "%s: FAILED\n", name)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s: OK\n", name)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", list, err)
	}

	if malformed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "sha256sum: WARNING: %d line(s) improperly formatted\n", malformed)
	}
	if failed > 0 {
		return fmt.Errorf("%d computed checksum(s) did NOT match", failed)
	}
	return nil
}
