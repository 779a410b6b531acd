package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/vyparse/asdl"
)

type JSONEncoder struct {
	w      io.Writer
	module *asdl.Module
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(m *asdl.Module) error {
	e.module = m
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(e.module, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
