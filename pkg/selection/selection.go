// Package selection parses file-selection expressions like "1,3,5-7" into
// zero-based index lists.
package selection

import (
	"sort"
	"strconv"
	"strings"
)

// Parse expands a comma-separated list of 1-based singles and ranges into a
// sorted, de-duplicated slice of 0-based indices clipped to [1, max].
// Malformed or out-of-range elements are dropped, not errored; an empty
// result is a valid outcome.
func Parse(expr string, max int) []int {
	seen := make(map[int]bool)

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if lo, hi, ok := splitRange(part); ok {
			for n := lo; n <= hi; n++ {
				if n >= 1 && n <= max {
					seen[n-1] = true
				}
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > max {
			continue
		}
		seen[n-1] = true
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func splitRange(part string) (lo, hi int, ok bool) {
	dash := strings.Index(part, "-")
	if dash <= 0 || dash == len(part)-1 {
		return 0, 0, false
	}
	lo, errLo := strconv.Atoi(strings.TrimSpace(part[:dash]))
	hi, errHi := strconv.Atoi(strings.TrimSpace(part[dash+1:]))
	if errLo != nil || errHi != nil || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}
