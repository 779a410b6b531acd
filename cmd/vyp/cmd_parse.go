package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vyparse/asdl"
	"github.com/dhamidi/vyparse/diag"
	"github.com/dhamidi/vyparse/format"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var trace bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an .asdl file and dump the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			if !cmd.Flags().Changed("format") {
				outputFormat = a.cfg.Parse.Format
			}
			encoder, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read asdl file: %w", err)
			}
			src := string(data)

			opts := a.parseOptions()
			if trace {
				opts = append(opts, asdl.WithTrace())
			}
			m, err := asdl.Parse(src, opts...)
			if err != nil {
				d := diag.FromError(src, err)
				d.File = filename
				fmt.Fprint(os.Stderr, diag.Render(src, d))
				return fmt.Errorf("parse asdl file: %w", err)
			}

			if err := encoder.Encode(m); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, lines, asdl)")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every grammar rule at debug level (use with -vv)")

	return cmd
}
