package jsonvalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/jsonengine/jsonvalue"
)

func TestParseBasicDocument(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	v, err := jsonvalue.Parse(`{"name":"John","age":30,"city":"New York"}`)
	r.NoError(err)
	a.True(v.IsObject())

	name, ok := v.Field("name").GetString()
	a.True(ok)
	a.Equal("John", name)

	age, ok := v.Field("age").GetInteger()
	a.True(ok)
	a.Equal(int64(30), age)
}

func TestParseRejectsTrailingData(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := jsonvalue.Parse(`1 2`)
	a.Error(err)
	a.ErrorIs(err, jsonvalue.ErrParse)
}

func TestParseStrictModeRejectsLeadingZero(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := jsonvalue.Parse(`01`)
	a.Error(err)
}

func TestParseDepthLimit(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	opt := jsonvalue.DefaultParseOptions()
	opt.MaxDepth = 2
	_, err := jsonvalue.ParseWithOptions(`[[[1]]]`, opt)
	a.Error(err)
	var perr *jsonvalue.Error
	a.ErrorAs(err, &perr)
	a.Equal(jsonvalue.ErrDepth, perr.Code)
}

func TestParseLeniencyExtensions(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	opt := jsonvalue.DefaultParseOptions()
	opt.AllowComments = true
	opt.AllowTrailingCommas = true
	opt.AllowSpecialNumbers = true
	opt.StrictMode = false

	v, err := jsonvalue.ParseWithOptions(`{
		// a comment
		"a": 1,
		"b": NaN,
		"c": Infinity,
		"d": -Infinity,
	}`, opt)
	r.NoError(err)

	a.True(v.Field("b").IsNaN())
	a.True(v.Field("c").IsInfinity())
	a.True(v.Field("d").IsInfinity())
}

func TestParseRecoveryModeSubstitutesNull(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	opt := jsonvalue.DefaultParseOptions()
	opt.AllowRecovery = true

	v, err := jsonvalue.ParseWithOptions(`[1, @, 3]`, opt)
	r.NoError(err)
	a.Equal(3, v.Size())
	a.True(v.Index(1).IsNull())
}

func TestParseUnicodeEscapesAndSurrogatePairs(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	v, err := jsonvalue.Parse("\"\\u0041\\ud83d\\ude00\"")
	r.NoError(err)
	s, ok := v.GetString()
	a.True(ok)
	a.Equal("A\U0001F600", s)
}

func TestParseBigIntegerPreservedEndToEnd(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	v, err := jsonvalue.Parse(`{"id": 9007199254740993}`)
	r.NoError(err)
	a.Equal(`{"id":9007199254740993}`, v.String())
}
