package combinator

import (
	"errors"
)

// Tuple holds the outputs of Pair.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// Map transforms the output of p.
func Map[I, A, B any](p Parser[I, A], f func(A) B) Parser[I, B] {
	return func(in I) (I, B, error) {
		rest, a, err := p(in)
		if err != nil {
			var zero B
			return in, zero, err
		}
		return rest, f(a), nil
	}
}

// MapErr transforms the output of p with a function that may fail. An error
// from f becomes a recoverable mismatch at the input p started from.
func MapErr[I, A, B any](p Parser[I, A], f func(A) (B, error)) Parser[I, B] {
	return func(in I) (I, B, error) {
		var zero B
		rest, a, err := p(in)
		if err != nil {
			return in, zero, err
		}
		b, err := f(a)
		if err != nil {
			return in, zero, Errorf(in, "%v", err)
		}
		return rest, b, nil
	}
}

// Value replaces the output of p with v.
func Value[I, A, B any](v B, p Parser[I, A]) Parser[I, B] {
	return Map(p, func(A) B { return v })
}

// Pair runs a then b.
func Pair[I, A, B any](a Parser[I, A], b Parser[I, B]) Parser[I, Tuple[A, B]] {
	return func(in I) (I, Tuple[A, B], error) {
		var t Tuple[A, B]
		rest, x, err := a(in)
		if err != nil {
			return in, t, err
		}
		rest, y, err := b(rest)
		if err != nil {
			return in, t, err
		}
		t.First, t.Second = x, y
		return rest, t, nil
	}
}

// Preceded runs prefix then p, keeping the output of p.
func Preceded[I, A, B any](prefix Parser[I, A], p Parser[I, B]) Parser[I, B] {
	return Map(Pair(prefix, p), func(t Tuple[A, B]) B { return t.Second })
}

// Terminated runs p then suffix, keeping the output of p.
func Terminated[I, A, B any](p Parser[I, A], suffix Parser[I, B]) Parser[I, A] {
	return Map(Pair(p, suffix), func(t Tuple[A, B]) A { return t.First })
}

// Delimited runs left, p and right, keeping the output of p.
func Delimited[I, A, B, C any](left Parser[I, A], p Parser[I, B], right Parser[I, C]) Parser[I, B] {
	return Preceded(left, Terminated(p, right))
}

// Alt tries each parser in order from the same input and returns the first
// success. A Failure, or an error no parser produced, stops the search. If
// every alternative ran out of input the result is EOF, otherwise it is the
// last mismatch.
func Alt[I, O any](parsers ...Parser[I, O]) Parser[I, O] {
	return func(in I) (I, O, error) {
		var zero O
		var eof, mismatch error
		for _, p := range parsers {
			rest, out, err := p(in)
			if err == nil {
				return rest, out, nil
			}
			switch ReasonOf(err) {
			case ReasonEOF:
				eof = err
			case ReasonError:
				mismatch = err
			default:
				return in, zero, err
			}
		}
		if mismatch != nil {
			return in, zero, mismatch
		}
		if eof != nil {
			return in, zero, eof
		}
		return in, zero, Errorf(in, "no alternatives")
	}
}

// Opt runs p and yields the zero value instead of a recoverable failure.
func Opt[I, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) (I, O, error) {
		rest, out, err := p(in)
		if err != nil {
			var zero O
			if recoverable(err) {
				return in, zero, nil
			}
			return in, zero, err
		}
		return rest, out, nil
	}
}

// Many0 applies p until it fails recoverably and collects the outputs.
func Many0[I Sized, O any](p Parser[I, O]) Parser[I, []O] {
	return func(in I) (I, []O, error) {
		var out []O
		cur := in
		for {
			rest, o, err := p(cur)
			if err != nil {
				if recoverable(err) {
					return cur, out, nil
				}
				return in, nil, err
			}
			if rest.Len() == cur.Len() {
				return in, nil, Errorf(cur, "repeated parser consumed no input")
			}
			out = append(out, o)
			cur = rest
		}
	}
}

// Many1 is Many0 but requires at least one match.
func Many1[I Sized, O any](p Parser[I, O]) Parser[I, []O] {
	return func(in I) (I, []O, error) {
		rest, o, err := p(in)
		if err != nil {
			return in, nil, err
		}
		rest, more, err := Many0(p)(rest)
		if err != nil {
			return in, nil, err
		}
		return rest, append([]O{o}, more...), nil
	}
}

// SeparatedList1 matches one or more p separated by sep. A separator that is
// not followed by p is left unconsumed.
func SeparatedList1[I Sized, O, S any](sep Parser[I, S], p Parser[I, O]) Parser[I, []O] {
	return func(in I) (I, []O, error) {
		rest, o, err := p(in)
		if err != nil {
			return in, nil, err
		}
		rest, more, err := Many0(Preceded(sep, p))(rest)
		if err != nil {
			return in, nil, err
		}
		return rest, append([]O{o}, more...), nil
	}
}

// SeparatedList0 is SeparatedList1 that also accepts zero items.
func SeparatedList0[I Sized, O, S any](sep Parser[I, S], p Parser[I, O]) Parser[I, []O] {
	return Opt(SeparatedList1(sep, p))
}

// Cut commits to p: any failure of p, including running out of input, is
// upgraded to ReasonFailure so no enclosing choice backtracks over it.
func Cut[I, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) (I, O, error) {
		rest, out, err := p(in)
		if err == nil {
			return rest, out, nil
		}
		var e *Error[I]
		if errors.As(err, &e) && e.Reason != ReasonFailure {
			f := e.withReason(ReasonFailure)
			if e.Reason == ReasonEOF && f.Message == "" {
				f.Message = "unexpected end of input"
			}
			return in, out, f
		}
		return in, out, err
	}
}

// Context pushes label onto the context stack of errors from p.
func Context[I, O any](label string, p Parser[I, O]) Parser[I, O] {
	return func(in I) (I, O, error) {
		rest, out, err := p(in)
		if err == nil {
			return rest, out, nil
		}
		var e *Error[I]
		if errors.As(err, &e) {
			c := *e
			c.Context = append(append([]Frame[I](nil), e.Context...), Frame[I]{Label: label, Input: in})
			return in, out, &c
		}
		return in, out, err
	}
}

// Peek runs p without consuming input.
func Peek[I, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) (I, O, error) {
		_, out, err := p(in)
		return in, out, err
	}
}

// Not succeeds without consuming input when p fails recoverably.
func Not[I, O any](p Parser[I, O], msg string) Parser[I, struct{}] {
	return func(in I) (I, struct{}, error) {
		_, _, err := p(in)
		switch {
		case err == nil:
			return in, struct{}{}, Errorf(in, "%s", msg)
		case recoverable(err):
			return in, struct{}{}, nil
		}
		return in, struct{}{}, err
	}
}

// Verify runs p and fails with msg when check rejects its output.
func Verify[I, O any](p Parser[I, O], check func(O) bool, msg string) Parser[I, O] {
	return func(in I) (I, O, error) {
		rest, out, err := p(in)
		if err != nil {
			return in, out, err
		}
		if !check(out) {
			var zero O
			return in, zero, Errorf(in, "%s", msg)
		}
		return rest, out, nil
	}
}

// AllConsuming runs p and requires that it leaves no input behind.
func AllConsuming[I Sized, O any](p Parser[I, O]) Parser[I, O] {
	return Terminated(p, End[I]())
}
