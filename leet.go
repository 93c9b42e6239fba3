package passcheck

import (
	"sort"
	"strings"
)

// leetMap maps leet-speak characters to the letters they commonly replace.
// The first entry is the most common reading.
var leetMap = map[rune][]rune{
	'@': {'a'},
	'4': {'a'},
	'8': {'b'},
	'(': {'c'},
	'{': {'c'},
	'3': {'e'},
	'6': {'g'},
	'#': {'h'},
	'!': {'i'},
	'1': {'i', 'l'},
	'|': {'i', 'l'},
	'0': {'o'},
	'9': {'g', 'q'},
	'5': {'s'},
	'$': {'s'},
	'7': {'t'},
	'+': {'t'},
	'2': {'z'},
	'%': {'x'},
}

// maxLeetAmbiguities bounds variant expansion to 2^n readings.
const maxLeetAmbiguities = 2

// leetNormalize replaces every leet character with its first reading.
func leetNormalize(s string) string {
	return strings.Map(func(r rune) rune {
		if readings, ok := leetMap[r]; ok {
			return readings[0]
		}
		return r
	}, s)
}

// leetVariants returns the primary normalization followed by the readings
// of the first ambiguous positions, deduplicated and excluding s itself.
func leetVariants(s string) []string {
	primary := []rune(leetNormalize(s))

	var ambiguous []int
	for i, r := range []rune(s) {
		if len(leetMap[r]) > 1 {
			ambiguous = append(ambiguous, i)
			if len(ambiguous) == maxLeetAmbiguities {
				break
			}
		}
	}

	src := []rune(s)
	seen := map[string]bool{s: true}
	var out []string
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	add(string(primary))

	var extra []string
	combos := 1 << len(ambiguous)
	for mask := 0; mask < combos; mask++ {
		v := make([]rune, len(primary))
		copy(v, primary)
		for bit, pos := range ambiguous {
			readings := leetMap[src[pos]]
			v[pos] = readings[(mask>>bit)&1]
		}
		extra = append(extra, string(v))
	}
	sort.Strings(extra)
	for _, v := range extra {
		add(v)
	}
	return out
}
