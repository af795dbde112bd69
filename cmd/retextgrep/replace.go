package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/retext/retext"
)

func newReplaceCmd() *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "replace <pattern> <template> <file>",
		Short: "replace every match of pattern in file with template, printed to stdout",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, template, path := args[0], args[1], args[2]

			re, err := retext.Compile(pattern, flags.options(), 0)
			if err != nil {
				return errors.Wrap(err, "compile pattern")
			}
			defer re.Close()

			contents, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "read %s", path)
			}

			out, err := retext.ReplaceTemplate(re, string(contents), 0, 0, template)
			if err != nil {
				return errors.Wrap(err, "replace")
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
