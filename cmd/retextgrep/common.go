package main

import (
	"github.com/spf13/cobra"

	"github.com/retext/retext"
)

// compileFlags holds the subset of retext.CompileOptions exposed as CLI
// flags; the rest default to the library's zero value.
type compileFlags struct {
	caseless  bool
	multiline bool
	dotall    bool
	raw       bool
}

func (f *compileFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.caseless, "ignore-case", "i", false, "case-insensitive match")
	cmd.Flags().BoolVarP(&f.multiline, "multiline", "m", false, "^ and $ match at embedded newlines")
	cmd.Flags().BoolVar(&f.dotall, "dotall", false, "'.' also matches newline")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "treat pattern and subject as opaque bytes, not UTF-8")
}

func (f *compileFlags) options() retext.CompileOptions {
	var opts retext.CompileOptions
	if f.caseless {
		opts |= retext.Caseless
	}
	if f.multiline {
		opts |= retext.Multiline
	}
	if f.dotall {
		opts |= retext.DotAll
	}
	if f.raw {
		opts |= retext.Raw
	}
	return opts
}
