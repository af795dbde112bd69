// Command retextgrep exercises the retext library end to end: compiling
// a pattern, matching, replacing, and splitting against real files, and
// watching a directory for coalesced change events.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	log "gopkg.in/inconshreveable/log15.v2"
)

var logger = log.New("component", "retextgrep")

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", "err", err)
	}

	root := &cobra.Command{
		Use:   "retextgrep",
		Short: "a PCRE-backed grep/replace/split/watch CLI built on the retext library",
	}

	root.AddCommand(newMatchCmd())
	root.AddCommand(newReplaceCmd())
	root.AddCommand(newSplitCmd())
	root.AddCommand(newWatchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
