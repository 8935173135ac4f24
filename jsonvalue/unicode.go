package jsonvalue

import "golang.org/x/text/unicode/norm"

// NormalizeNFC returns s normalized to Unicode Normalization Form C. By
// default, string and key comparisons throughout this package are
// byte-exact, per the engine's value-equality contract; this helper lets
// callers opt into Unicode-aware comparison by normalizing both sides
// themselves before calling [Value.Equal] or [Value.Contains].
func NormalizeNFC(s string) string {
	return norm.NFC.String(s)
}
