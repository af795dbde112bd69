package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/retext/retext"
)

func newMatchCmd() *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "match <pattern> <file>...",
		Short: "print every line matching pattern, like grep",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, files := args[0], args[1:]

			re, err := retext.Compile(pattern, flags.options(), 0)
			if err != nil {
				return errors.Wrap(err, "compile pattern")
			}
			defer re.Close()

			for _, path := range files {
				if err := matchFile(cmd, re, path); err != nil {
					logger.Error("match failed", "file", path, "err", err)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func matchFile(cmd *cobra.Command, re *retext.Regexp, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		ok, err := retext.MatchSimple(re, line)
		if err != nil {
			return errors.Wrapf(err, "match line %d", lineNo)
		}
		if ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%s\n", path, lineNo, line)
		}
	}
	return scanner.Err()
}
