// Command blueprint browses the idea catalog and renders dashboards and
// generated blueprints in the terminal.
//
// Usage:
//
//	blueprint ideas [--category AgriTech]
//	blueprint dashboard 1
//	API_KEY=... blueprint show 1 3
//	blueprint parse notes.md
//	cat notes.md | blueprint parse -
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
