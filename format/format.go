// Package format renders parsed ASDL modules.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/vyparse/asdl"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(m *asdl.Module) error
}

// Names lists the formats accepted by New.
var Names = []string{"json", "lines", "asdl"}

// New returns the encoder called name writing to w.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "lines":
		return NewLineEncoder(w), nil
	case "asdl":
		return NewASDLEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

func write(w io.Writer, e encoding.TextMarshaler) error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
