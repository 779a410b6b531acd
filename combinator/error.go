package combinator

import (
	"errors"
	"fmt"
	"strings"
)

// Reason classifies a parse failure by severity.
type Reason int

const (
	// ReasonNone is reported for nil and for errors that did not come from
	// a parser.
	ReasonNone Reason = iota

	// ReasonEOF means the input ran out while at least one more item was
	// required.
	ReasonEOF

	// ReasonError is a recoverable mismatch. A choice may try another
	// alternative from the same input.
	ReasonError

	// ReasonFailure aborts the enclosing parse. Choices and repetitions
	// propagate it without trying anything else.
	ReasonFailure
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonEOF:
		return "eof"
	case ReasonError:
		return "error"
	case ReasonFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Frame is one entry of an error's context stack.
type Frame[I any] struct {
	Label string
	Input I
}

// Error is the failure value every parser returns. Input is the input at
// the point of failure.
type Error[I any] struct {
	Reason  Reason
	Input   I
	Message string

	// Context holds the labels pushed by Context, innermost first.
	Context []Frame[I]
}

// EOF returns an end-of-input failure at in.
func EOF[I any](in I) *Error[I] {
	return &Error[I]{Reason: ReasonEOF, Input: in}
}

// Errorf returns a recoverable mismatch at in.
func Errorf[I any](in I, format string, args ...any) *Error[I] {
	return &Error[I]{Reason: ReasonError, Input: in, Message: fmt.Sprintf(format, args...)}
}

// Failf returns a failure that aborts the parse.
func Failf[I any](in I, format string, args ...any) *Error[I] {
	return &Error[I]{Reason: ReasonFailure, Input: in, Message: fmt.Sprintf(format, args...)}
}

func (e *Error[I]) Error() string {
	msg := e.Message
	if e.Reason == ReasonEOF && msg == "" {
		msg = "unexpected end of input"
	}
	if len(e.Context) == 0 {
		return msg
	}
	labels := make([]string, 0, len(e.Context)+1)
	for i := len(e.Context) - 1; i >= 0; i-- {
		labels = append(labels, e.Context[i].Label)
	}
	labels = append(labels, msg)
	return strings.Join(labels, ": ")
}

func (e *Error[I]) reason() Reason {
	return e.Reason
}

// withReason returns a copy of e with its reason replaced.
func (e *Error[I]) withReason(r Reason) *Error[I] {
	c := *e
	c.Reason = r
	c.Context = append([]Frame[I](nil), e.Context...)
	return &c
}

type reasoner interface {
	reason() Reason
}

// ReasonOf returns the severity of err, looking through wrapped errors. It
// returns ReasonNone for nil and for errors no parser produced.
func ReasonOf(err error) Reason {
	var r reasoner
	if errors.As(err, &r) {
		return r.reason()
	}
	return ReasonNone
}

func IsEOF(err error) bool {
	return ReasonOf(err) == ReasonEOF
}

func IsError(err error) bool {
	return ReasonOf(err) == ReasonError
}

func IsFailure(err error) bool {
	return ReasonOf(err) == ReasonFailure
}

// recoverable reports whether a choice may backtrack over err.
func recoverable(err error) bool {
	switch ReasonOf(err) {
	case ReasonEOF, ReasonError:
		return true
	}
	return false
}
