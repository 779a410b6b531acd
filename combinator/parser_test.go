package combinator

import (
	"errors"
	"testing"
	"unicode"
	"unicode/utf8"
)

func isAlpha(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsLetter(r)
}

// checkErr asserts err is an *Error[Text] with the given reason, message and
// input.
func checkErr(t *testing.T, err error, reason Reason, msg string, input Text) {
	t.Helper()
	var e *Error[Text]
	if !errors.As(err, &e) {
		t.Fatalf("err = %v, want *Error[Text]", err)
	}
	if e.Reason != reason {
		t.Errorf("Reason = %v, want %v", e.Reason, reason)
	}
	if e.Message != msg {
		t.Errorf("Message = %q, want %q", e.Message, msg)
	}
	if e.Input != input {
		t.Errorf("Input = %q, want %q", e.Input, input)
	}
}

func TestItem(t *testing.T) {
	item := Item[Text, rune]('c')

	rest, got, err := item("c")
	if err != nil {
		t.Fatalf("item(%q) error: %v", "c", err)
	}
	if got != 'c' || rest != "" {
		t.Errorf("item(%q) = (%q, %q), want ('c', \"\")", "c", got, rest)
	}

	rest, _, err = item("d")
	checkErr(t, err, ReasonError, "expected 'c'", "d")
	if rest != "d" {
		t.Errorf("rest = %q, want %q", rest, "d")
	}

	_, _, err = item("")
	checkErr(t, err, ReasonEOF, "", "")
}

func TestItemMultiByte(t *testing.T) {
	rest, got, err := Item[Text, rune]('λ')("λx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 'λ' || rest != "x" {
		t.Errorf("got (%q, %q), want ('λ', \"x\")", got, rest)
	}
}

func TestTake(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		input  Text
		want   Text
		rest   Text
		reason Reason
		msg    string
	}{
		{name: "exact", n: 4, input: "asdf", want: "asdf", rest: ""},
		{name: "prefix", n: 4, input: "asdfzxcv", want: "asdf", rest: "zxcv"},
		{name: "multi-byte", n: 2, input: "äöü", want: "äö", rest: "ü"},
		{name: "zero", n: 0, input: "abc", want: "", rest: "abc"},
		{name: "negative", n: -1, input: "abc", want: "", rest: "abc"},
		{name: "stray continuation byte", n: 1, input: "a\x80b", want: "a", rest: "\x80b"},
		{name: "stray byte counts as one", n: 2, input: "a\x80b", want: "a\x80", rest: "b"},
		{name: "too short", n: 4, input: "c", reason: ReasonError, msg: "expected at least 4 chars"},
		{name: "eof", n: 4, input: "", reason: ReasonEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, got, err := Take[Text, rune](tt.n)(tt.input)
			if tt.reason != ReasonNone {
				checkErr(t, err, tt.reason, tt.msg, tt.input)
				if rest != tt.input {
					t.Errorf("rest = %q, want input unchanged", rest)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || rest != tt.rest {
				t.Errorf("Take(%d)(%q) = (%q, %q), want (%q, %q)", tt.n, tt.input, got, rest, tt.want, tt.rest)
			}
		})
	}
}

func TestTakeCodepointCounts(t *testing.T) {
	inputs := []Text{"a", "asdf", "日本語テキスト", "a\r\nb", "🙂x🙂"}
	for _, input := range inputs {
		count := 0
		for range input.Items() {
			count++
		}
		for n := 1; n <= count; n++ {
			rest, got, err := Take[Text, rune](n)(input)
			if err != nil {
				t.Fatalf("Take(%d)(%q) error: %v", n, input, err)
			}
			if got+rest != input {
				t.Errorf("Take(%d)(%q): %q + %q does not rebuild input", n, input, got, rest)
			}
			if c := len([]rune(string(got))); c != n {
				t.Errorf("Take(%d)(%q) took %d codepoints", n, input, c)
			}
		}
		_, _, err := Take[Text, rune](count + 1)(input)
		if !IsError(err) {
			t.Errorf("Take(%d)(%q) err = %v, want mismatch", count+1, input, err)
		}
	}
}

func TestTakeWhile(t *testing.T) {
	alpha := TakeWhile[Text, rune](isAlpha, "expected alphabetic chars")

	tests := []struct {
		name   string
		input  Text
		want   Text
		rest   Text
		reason Reason
		msg    string
	}{
		{name: "prefix", input: "asdfASDF1234", want: "asdfASDF", rest: "1234"},
		{name: "whole input", input: "asdf", want: "asdf", rest: ""},
		{name: "stops at invalid byte", input: "ab\x80", want: "ab", rest: "\x80"},
		{name: "no match", input: "1234", reason: ReasonError, msg: "expected alphabetic chars"},
		{name: "invalid first byte", input: "\x80a", reason: ReasonError, msg: "expected alphabetic chars"},
		{name: "eof", input: "", reason: ReasonEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, got, err := alpha(tt.input)
			if tt.reason != ReasonNone {
				checkErr(t, err, tt.reason, tt.msg, tt.input)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || rest != tt.rest {
				t.Errorf("got (%q, %q), want (%q, %q)", got, rest, tt.want, tt.rest)
			}
		})
	}
}

func TestSatisfyAndEnd(t *testing.T) {
	digit := Satisfy[Text, rune](unicode.IsDigit, "expected digit")

	rest, got, err := digit("7x")
	if err != nil || got != '7' || rest != "x" {
		t.Errorf("digit(%q) = (%q, %q, %v)", "7x", got, rest, err)
	}
	_, _, err = digit("x")
	checkErr(t, err, ReasonError, "expected digit", "x")

	if _, _, err := End[Text]()(""); err != nil {
		t.Errorf("End on empty input: %v", err)
	}
	_, _, err = End[Text]()("x")
	checkErr(t, err, ReasonError, "expected end of input", "x")
}

type token struct {
	Kind    string
	Literal string
}

func TestSliceInput(t *testing.T) {
	name := token{"NAME", "foo"}
	eq := token{"OP", "="}
	num := token{"NUMBER", "1"}
	tokens := Slice[token]{name, eq, num}

	rest, got, err := Item[Slice[token], token](name)(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != name || rest.Len() != 2 {
		t.Errorf("got (%v, %d items)", got, rest.Len())
	}

	_, _, err = Item[Slice[token], token](eq)(tokens)
	if !IsError(err) {
		t.Errorf("mismatched token err = %v, want mismatch", err)
	}

	isName := func(tok token) bool { return tok.Kind == "NAME" || tok.Kind == "OP" }
	rest, head, err := TakeWhile[Slice[token], token](isName, "expected names")(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(head) != 2 || len(rest) != 1 || rest[0] != num {
		t.Errorf("TakeWhile split = %v / %v", head, rest)
	}

	_, _, err = Take[Slice[token], token](4)(tokens)
	if !IsError(err) {
		t.Errorf("Take(4) err = %v, want mismatch", err)
	}
	_, _, err = Take[Slice[token], token](1)(nil)
	if !IsEOF(err) {
		t.Errorf("Take(1) on empty err = %v, want eof", err)
	}
}

func TestTextSplitAtNeverSplitsRunes(t *testing.T) {
	text := Text("aé日🙂")
	for i := -1; i <= len(text)+1; i++ {
		before, after := text.SplitAt(i)
		if before+after != text {
			t.Fatalf("SplitAt(%d) lost data: %q + %q", i, before, after)
		}
		for _, half := range []Text{before, after} {
			for _, r := range string(half) {
				if r == unicode.ReplacementChar {
					t.Errorf("SplitAt(%d) produced invalid text %q", i, half)
				}
			}
		}
	}
}

func TestTextSplitAtKeepsInvalidBytesApart(t *testing.T) {
	for _, text := range []Text{"a\x80b", "\xe6\x97a", "日\x80\x80本", "\xff"} {
		for i := range text.All() {
			before, after := text.SplitAt(i)
			if len(before) != i || before+after != text {
				t.Errorf("SplitAt(%d) on %q = (%q, %q), want split at %d", i, text, before, after, i)
			}
		}
	}
}

func TestItemAfterInvalidByte(t *testing.T) {
	rest, got, err := Item[Text, rune]('a')(Text("a\x80"))
	if err != nil || got != 'a' || rest != "\x80" {
		t.Errorf("Item = (%q, %q, %v), want ('a', \"\\x80\", nil)", got, rest, err)
	}
	rest, got, err = Satisfy[Text, rune](func(r rune) bool { return r == utf8.RuneError }, "expected invalid byte")(rest)
	if err != nil || got != utf8.RuneError || rest != "" {
		t.Errorf("Satisfy = (%q, %q, %v)", got, rest, err)
	}
}

func TestBoundary(t *testing.T) {
	text := Text("aé日")
	tests := []struct {
		n    int
		want int
		ok   bool
	}{
		{0, 0, true},
		{1, 1, true},
		{2, 3, true},
		{3, 6, true},
		{4, 0, false},
	}
	for _, tt := range tests {
		got, ok := text.Boundary(tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Boundary(%d) = (%d, %v), want (%d, %v)", tt.n, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRunText(t *testing.T) {
	rest, got, err := RunText(Take[Text, rune](3), "abcdef")
	if err != nil || got != "abc" || rest != "def" {
		t.Errorf("RunText = (%q, %q, %v)", rest, got, err)
	}
}
