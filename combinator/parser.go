// Package combinator provides parser combinators over any input that
// implements Input.
//
// A Parser is a plain function from an input view to the remaining input, an
// output and an error. Inputs are values: a parser never changes the view it
// was given, so backtracking is keeping the old value around.
//
// Failures are *Error values classified by Reason:
//
//	ReasonEOF      the input ran out
//	ReasonError    the input did not match; try something else
//	ReasonFailure  stop parsing
//
// Primitive parsers only produce ReasonEOF and ReasonError. ReasonFailure is
// raised by grammar code, usually through Cut.
package combinator

// Parser consumes a prefix of its input and returns the rest together with
// its output. On failure the returned input is the one the parser was given.
type Parser[I, O any] func(in I) (I, O, error)

// Run applies p to in exactly once.
func Run[I, O any](p Parser[I, O], in I) (I, O, error) {
	return p(in)
}

// RunText applies p to src viewed as Text.
func RunText[O any](p Parser[Text, O], src string) (Text, O, error) {
	return Run(p, Text(src))
}

// Item matches the single item expected.
func Item[I Input[I, T], T comparable](expected T) Parser[I, T] {
	return func(in I) (I, T, error) {
		actual, ok := first[I, T](in)
		if !ok {
			return in, actual, EOF(in)
		}
		if actual != expected {
			var zero T
			return in, zero, Errorf(in, "expected %s", quote(expected))
		}
		end, _ := in.Boundary(1)
		_, rest := in.SplitAt(end)
		return rest, actual, nil
	}
}

// Take matches exactly n items and returns them as a view.
func Take[I Input[I, T], T comparable](n int) Parser[I, I] {
	return func(in I) (I, I, error) {
		end, ok := in.Boundary(n)
		if !ok {
			var zero I
			if in.Len() == 0 {
				return in, zero, EOF(in)
			}
			return in, zero, Errorf(in, "expected at least %d chars", n)
		}
		head, rest := in.SplitAt(end)
		return rest, head, nil
	}
}

// TakeWhile matches the longest non-empty prefix whose items all satisfy
// pred. If the first item does not satisfy pred it fails with msg; an empty
// match is never a success.
func TakeWhile[I Input[I, T], T comparable](pred func(T) bool, msg string) Parser[I, I] {
	return func(in I) (I, I, error) {
		var zero I
		i := in.IndexFunc(func(item T) bool { return !pred(item) })
		switch {
		case i < 0 && in.Len() == 0:
			return in, zero, EOF(in)
		case i < 0:
			head, rest := in.SplitAt(in.Len())
			return rest, head, nil
		case i == 0:
			return in, zero, Errorf(in, "%s", msg)
		}
		head, rest := in.SplitAt(i)
		return rest, head, nil
	}
}

// Satisfy matches one item for which pred reports true.
func Satisfy[I Input[I, T], T comparable](pred func(T) bool, msg string) Parser[I, T] {
	return func(in I) (I, T, error) {
		item, ok := first[I, T](in)
		if !ok {
			return in, item, EOF(in)
		}
		if !pred(item) {
			var zero T
			return in, zero, Errorf(in, "%s", msg)
		}
		end, _ := in.Boundary(1)
		_, rest := in.SplitAt(end)
		return rest, item, nil
	}
}

// End succeeds only when the input is exhausted.
func End[I Sized]() Parser[I, struct{}] {
	return func(in I) (I, struct{}, error) {
		if in.Len() != 0 {
			return in, struct{}{}, Errorf(in, "expected end of input")
		}
		return in, struct{}{}, nil
	}
}
