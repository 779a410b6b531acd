package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vyparse/asdl"
	"github.com/dhamidi/vyparse/diag"
)

func newCheckCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:          "check <file>...",
		Short:        "Report syntax errors in .asdl files",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read asdl file: %w", err)
				}
				src := string(data)

				if _, err := asdl.Parse(src, a.parseOptions()...); err != nil {
					failed++
					d := diag.FromError(src, err)
					d.File = filename
					fmt.Print(diag.Render(src, d))
					continue
				}
				if !quiet {
					fmt.Printf("%s: ok\n", filename)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files have errors", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print files with errors")

	return cmd
}
