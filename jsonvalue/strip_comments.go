package jsonvalue

import "github.com/tidwall/jsonc"

// StripComments removes "//" and "/* */" comments from src, returning
// standard JSON. It's a standalone pre-pass for callers who want comment
// handling without invoking the full parser's AllowComments option — for
// example, to normalize a config file before handing it to another JSON
// decoder entirely.
func StripComments(src []byte) []byte {
	return jsonc.ToJSON(src)
}
