package combinator

import "fmt"

func quote(v any) string {
	switch v := v.(type) {
	case rune, string:
		return fmt.Sprintf("%q", v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
