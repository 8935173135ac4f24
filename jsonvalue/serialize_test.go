package jsonvalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/theory/jsonengine/jsonvalue"
)

func TestSerializeCompactIsDefault(t *testing.T) {
	t.Parallel()
	v := jsonvalue.MustParse(`{"b":2,"a":1}`)
	assert.Equal(t, `{"b":2,"a":1}`, v.String())
}

func TestSerializeSortKeys(t *testing.T) {
	t.Parallel()
	v := jsonvalue.MustParse(`{"b":2,"a":1}`)
	opt := jsonvalue.DefaultSerializeOptions()
	opt.SortKeys = true
	assert.Equal(t, `{"a":1,"b":2}`, v.Serialize(opt))
}

func TestSerializePrettyIndent(t *testing.T) {
	t.Parallel()
	v := jsonvalue.MustParse(`{"a":[1,2]}`)
	opt := jsonvalue.DefaultSerializeOptions()
	opt.Indent = 2
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}", v.Serialize(opt))
}

func TestSerializeCompactArraysUnderPretty(t *testing.T) {
	t.Parallel()
	v := jsonvalue.MustParse(`{"a":[1,2]}`)
	opt := jsonvalue.DefaultSerializeOptions()
	opt.Indent = 2
	opt.CompactArrays = true
	assert.Equal(t, "{\n  \"a\": [1,2]\n}", v.Serialize(opt))
}

func TestSerializeSpecialNumbersAsNullByDefault(t *testing.T) {
	t.Parallel()
	v := jsonvalue.Num(jsonvalue.NaN())
	assert.Equal(t, "null", v.String())

	opt := jsonvalue.DefaultSerializeOptions()
	opt.AllowSpecialNumbers = true
	assert.Equal(t, "NaN", v.Serialize(opt))
}

func TestSerializeUnicodeEscaping(t *testing.T) {
	t.Parallel()
	v := jsonvalue.Str("é")
	assert.Equal(t, "\"é\"", v.String())

	opt := jsonvalue.DefaultSerializeOptions()
	opt.EscapeUnicode = true
	assert.Equal(t, `"\u00e9"`, v.Serialize(opt))
}

func TestSerializeSurrogatePairEscape(t *testing.T) {
	t.Parallel()
	v := jsonvalue.Str("\U0001F600")
	opt := jsonvalue.DefaultSerializeOptions()
	opt.EscapeUnicode = true
	assert.Equal(t, `"\ud83d\ude00"`, v.Serialize(opt))
}

func TestSerializeRoundTripStability(t *testing.T) {
	t.Parallel()
	src := `{"name":"John","age":30,"city":"New York"}`
	v := jsonvalue.MustParse(src)
	assert.Equal(t, src, v.String())
	assert.Equal(t, v.String(), v.String())
}
