package domain

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// NaturalSort orders items by name using natural sort order, so "tree_2"
// sorts before "tree_10". Ties are broken by identity.
func NaturalSort(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		if c := naturalCompare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Identity, b.Identity)
	})
}

// naturalCompare compares two strings case-insensitively, treating runs of
// digits as numbers.
func naturalCompare(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)

	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		if isDigit(a[ai]) && isDigit(b[bi]) {
			aNum, aEnd := extractNumber(a, ai)
			bNum, bEnd := extractNumber(b, bi)
			if c := cmp.Compare(aNum, bNum); c != 0 {
				return c
			}
			// Same value: fewer digits first ("1" < "01" < "001").
			if c := cmp.Compare(aEnd-ai, bEnd-bi); c != 0 {
				return c
			}
			ai, bi = aEnd, bEnd
			continue
		}
		if a[ai] != b[bi] {
			return cmp.Compare(a[ai], b[bi])
		}
		ai++
		bi++
	}
	return cmp.Compare(len(a)-ai, len(b)-bi)
}

func isDigit(c byte) bool {
	return c < unicode.MaxASCII && unicode.IsDigit(rune(c))
}

func extractNumber(s string, start int) (uint64, int) {
	var num uint64
	i := start
	for i < len(s) && isDigit(s[i]) {
		num = num*10 + uint64(s[i]-'0')
		i++
	}
	return num, i
}
