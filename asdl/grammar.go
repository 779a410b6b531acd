package asdl

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/exp/ebnf"
)

// Start is the start production of the reference grammar.
const Start = "Module"

//go:embed asdl.ebnf
var grammarSource []byte

// GrammarSource returns the reference grammar in EBNF notation.
func GrammarSource() []byte {
	return bytes.Clone(grammarSource)
}

// Grammar parses and verifies the reference grammar.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("asdl.ebnf", bytes.NewReader(grammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}
