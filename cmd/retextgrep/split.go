package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/retext/retext"
)

func newSplitCmd() *cobra.Command {
	var flags compileFlags
	var maxTokens int

	cmd := &cobra.Command{
		Use:   "split <pattern> <file>",
		Short: "split file's contents on pattern and print each token on its own line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, path := args[0], args[1]

			re, err := retext.Compile(pattern, flags.options(), 0)
			if err != nil {
				return errors.Wrap(err, "compile pattern")
			}
			defer re.Close()

			contents, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "read %s", path)
			}

			tokens, err := retext.SplitFull(re, string(contents), 0, 0, maxTokens)
			if err != nil {
				return errors.Wrap(err, "split")
			}

			for _, token := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), token)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "maximum number of tokens (0 = unlimited)")
	return cmd
}
