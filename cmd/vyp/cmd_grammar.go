package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/vyparse/asdl"
)

func newGrammarCmd() *cobra.Command {
	var startProduction string
	var printGrammar bool

	cmd := &cobra.Command{
		Use:           "grammar [file]",
		Short:         "Parse and verify an EBNF grammar (the built-in ASDL grammar by default)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "asdl.ebnf"
			var src io.Reader = bytes.NewReader(asdl.GrammarSource())

			if len(args) == 1 {
				filename = args[0]
				f, err := os.Open(filename)
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				src = f
			}

			if printGrammar {
				data, err := io.ReadAll(src)
				if err != nil {
					return fmt.Errorf("read grammar: %w", err)
				}
				os.Stdout.Write(data)
				src = bytes.NewReader(data)
			}

			grammar, err := ebnf.Parse(filename, src)
			if err != nil {
				printErrors(err)
				return err
			}

			if err := ebnf.Verify(grammar, startProduction); err != nil {
				printErrors(err)
				return err
			}

			if !printGrammar {
				fmt.Printf("%s: %d productions, start %s\n", filename, len(grammar), startProduction)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", asdl.Start, "start production for verification")
	cmd.Flags().BoolVar(&printGrammar, "print", false, "print the grammar before verifying it")

	return cmd
}

func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(os.Stderr, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}
