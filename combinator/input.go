package combinator

import (
	"iter"
	"unicode/utf8"
)

// Input is the capability set the primitive parsers need from their input.
// I is the concrete input type (views returned by SplitAt have the same type)
// and T is the item type.
//
// Positions are unstructured: byte offsets for text, element indices for
// slices. Only positions produced by All, IndexFunc and Boundary are
// meaningful arguments to SplitAt.
type Input[I any, T comparable] interface {
	// All yields (position, item) pairs in forward order.
	All() iter.Seq2[int, T]

	// Items yields the items in forward order.
	Items() iter.Seq[T]

	// IndexFunc returns the position of the first item for which f
	// reports true, or -1 if there is none.
	IndexFunc(f func(T) bool) int

	// Boundary returns the position just after the n-th item. If exactly
	// n items remain it returns Len(). It reports false when fewer than n
	// items remain.
	Boundary(n int) (int, bool)

	// SplitAt returns the items before position i and the items from i on.
	SplitAt(i int) (I, I)

	// Len returns the end position of the input. That is the item count for
	// Slice but the byte length, not the item count, for Text. Callers only
	// compare it with zero or with another Len of the same input.
	Len() int
}

// Sized is implemented by inputs that can report how much is left. The
// repetition combinators use it to detect parsers that make no progress.
type Sized interface {
	Len() int
}

// Text is an Input over a string whose items are runes.
type Text string

var _ Input[Text, rune] = Text("")

func (t Text) All() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for i, r := range string(t) {
			if !yield(i, r) {
				return
			}
		}
	}
}

func (t Text) Items() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range string(t) {
			if !yield(r) {
				return
			}
		}
	}
}

func (t Text) IndexFunc(f func(rune) bool) int {
	for i, r := range string(t) {
		if f(r) {
			return i
		}
	}
	return -1
}

func (t Text) Boundary(n int) (int, bool) {
	if n <= 0 {
		return 0, true
	}
	count := 0
	for i := range string(t) {
		if count == n {
			return i, true
		}
		count++
	}
	if count == n {
		return len(t), true
	}
	return 0, false
}

// SplitAt clamps i to the input and, when i falls inside a multi-byte
// encoding, moves it back to the start of that rune. A stray continuation
// byte is an item of its own, as All reports it, and is never merged with
// its neighbours.
func (t Text) SplitAt(i int) (Text, Text) {
	i = clamp(i, len(t))
	if i > 0 && i < len(t) && !utf8.RuneStart(t[i]) {
		start := i - 1
		for start > 0 && i-start < utf8.UTFMax && !utf8.RuneStart(t[start]) {
			start--
		}
		if _, size := utf8.DecodeRuneInString(string(t[start:])); start+size > i {
			i = start
		}
	}
	return t[:i], t[i:]
}

func (t Text) Len() int {
	return len(t)
}

func (t Text) String() string {
	return string(t)
}

// Slice is an Input over a slice of comparable items, typically tokens.
type Slice[T comparable] []T

func (s Slice[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range s {
			if !yield(i, item) {
				return
			}
		}
	}
}

func (s Slice[T]) Items() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range s {
			if !yield(item) {
				return
			}
		}
	}
}

func (s Slice[T]) IndexFunc(f func(T) bool) int {
	for i, item := range s {
		if f(item) {
			return i
		}
	}
	return -1
}

func (s Slice[T]) Boundary(n int) (int, bool) {
	if n <= 0 {
		return 0, true
	}
	if n > len(s) {
		return 0, false
	}
	return n, true
}

func (s Slice[T]) SplitAt(i int) (Slice[T], Slice[T]) {
	i = clamp(i, len(s))
	return s[:i:i], s[i:]
}

func (s Slice[T]) Len() int {
	return len(s)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// first returns the first item of in.
func first[I Input[I, T], T comparable](in I) (T, bool) {
	for _, item := range in.All() {
		return item, true
	}
	var zero T
	return zero, false
}
