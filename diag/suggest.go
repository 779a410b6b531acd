package diag

import (
	"slices"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidates closest to word, if they are within
// maxDistance edits. Ties are all returned, sorted.
func Suggest(word string, candidates []string, maxDistance int) []string {
	closest := []string{}
	best := maxDistance + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(word, c)
		switch {
		case d < best:
			closest = []string{c}
			best = d
		case d == best:
			closest = append(closest, c)
		}
	}
	slices.Sort(closest)
	return closest
}
