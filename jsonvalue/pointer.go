package jsonvalue

import (
	"strconv"
	"strings"
)

// At navigates v per the RFC 6901 JSON-Pointer ptr and returns the
// referenced Value, or panics with an [*Error] on an invalid pointer. Use
// [Value.AtSafe] for a no-throw variant.
func (v Value) At(ptr string) Value {
	val, err := v.AtSafe(ptr)
	if err != nil {
		panic(err)
	}
	return val
}

// AtSafe navigates v per the RFC 6901 JSON-Pointer ptr. An empty pointer
// ("") or "/" alone both resolve to v itself. Returns [ErrOutOfRange] when
// an array index is missing or out of range, and [ErrType] when a token
// is applied to a scalar or a non-canonical token is used to index an
// array.
func (v Value) AtSafe(ptr string) (Value, error) {
	if ptr == "" {
		return v, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return Value{}, newError(ErrUnexpectedChar, "JSON pointer must start with '/'")
	}

	cur := v
	for _, tok := range strings.Split(ptr[1:], "/") {
		tok = decodePointerToken(tok)
		switch cur.kind {
		case KindObject:
			val, ok := cur.obj.get(tok)
			if !ok {
				return Value{}, newError(ErrOutOfRange, "no such key: "+tok)
			}
			cur = *val
		case KindArray:
			idx, ok := canonicalArrayIndex(tok)
			if !ok {
				return Value{}, newError(ErrType, "invalid array index: "+tok)
			}
			if idx < 0 || idx >= len(cur.arr) {
				return Value{}, newError(ErrOutOfRange, "array index out of range: "+tok)
			}
			cur = cur.arr[idx]
		default:
			return Value{}, newError(ErrType, "cannot navigate into a "+cur.kind.String())
		}
	}
	return cur, nil
}

// decodePointerToken decodes the '~1' -> '/' and '~0' -> '~' escapes, in
// that order, per RFC 6901 §4.
func decodePointerToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

// canonicalArrayIndex returns the non-negative integer value of tok and
// true if tok is a canonical array index token: "0", or a nonzero digit
// sequence with no leading zero.
func canonicalArrayIndex(tok string) (int, bool) {
	if tok == "" {
		return 0, false
	}
	if tok == "0" {
		return 0, true
	}
	if tok[0] == '0' || tok[0] < '0' || tok[0] > '9' {
		return 0, false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}
