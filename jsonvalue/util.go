package jsonvalue

import "sort"

// sortStrings sorts s in place by code point (byte-wise, since Go strings
// are UTF-8 and byte order matches code-point order for valid UTF-8).
func sortStrings(s []string) {
	sort.Strings(s)
}
