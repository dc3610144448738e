// Command sha256sum prints and checks SHA-256 digests of files.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
