/*
Package jsonvalue provides the JSON value model at the core of the
engine: a tagged union of null, bool, number, string, array, and object
([Value]), a dual-tag numeric primitive with lossless integer/double
distinction ([Number]), a configurable recursive-descent parser, a
configurable serializer, and RFC 6901 JSON-Pointer navigation.

# Safe accessors

Typed accessors never panic. [Value.GetBool], [Value.GetNumber],
[Value.GetInteger], [Value.GetString], [Value.GetArray], and
[Value.GetObject] each return a value and an "ok" bool; the defaulted
variants ([Value.ToBool] and friends) collapse that into a single return
by substituting a caller-supplied default on failure.

# Mutation

[Value.SetIndex] and [Value.SetField] grow-on-write: indexing past the end
of an array null-pads it to the requested length, and writing a key into a
non-object replaces it with an empty object first. Reads never do this —
[Value.Index] and [Value.Field] return a shared null sentinel on a miss
rather than mutating or panicking.

# Parsing

[Parse] and [ParseWithOptions] implement strict JSON plus optional
extensions ([ParseOptions]): comments, trailing commas, NaN/Infinity
literals, a configurable recursion depth limit, and a recovery mode that
substitutes null for malformed array elements and skips malformed object
pairs rather than failing the whole document.

# Serialization

[Value.Serialize] and [Value.String] control pretty vs. compact output,
key sorting, Unicode escaping, and special-number policy via
[SerializeOptions].
*/
package jsonvalue
