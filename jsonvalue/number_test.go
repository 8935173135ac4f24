package jsonvalue_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/theory/jsonengine/jsonvalue"
)

func TestNumberTagsAndString(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	for _, tc := range []struct {
		name string
		n    jsonvalue.Number
		str  string
		isI  bool
	}{
		{"int", jsonvalue.NewInt(42), "42", true},
		{"negint", jsonvalue.NewInt(-7), "-7", true},
		{"float", jsonvalue.NewFloat(3.5), "3.5", false},
		{"nan", jsonvalue.NaN(), "NaN", false},
		{"inf", jsonvalue.Inf(), "Infinity", false},
		{"neginf", jsonvalue.NegInf(), "-Infinity", false},
	} {
		a.Equal(tc.str, tc.n.String(), tc.name)
		a.Equal(tc.isI, tc.n.IsInteger(), tc.name)
	}
}

func TestNumberBigIntegerPreserved(t *testing.T) {
	t.Parallel()
	n := jsonvalue.NewInt(9007199254740993) // 2^53 + 1
	assert.Equal(t, "9007199254740993", n.String())
	assert.True(t, n.IsInteger())
	assert.False(t, n.IsInSafeIntegerRange())
}

func TestNumberUint64Widens(t *testing.T) {
	t.Parallel()
	n := jsonvalue.NewUint64(math.MaxInt64)
	assert.True(t, n.IsInteger())

	n = jsonvalue.NewUint64(math.MaxUint64)
	assert.True(t, n.IsDouble())
}

func TestNumberAsInteger(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	i, ok := jsonvalue.NewInt(5).AsInteger()
	a.True(ok)
	a.Equal(int64(5), i)

	i, ok = jsonvalue.NewFloat(5.0).AsInteger()
	a.True(ok)
	a.Equal(int64(5), i)

	_, ok = jsonvalue.NewFloat(5.5).AsInteger()
	a.False(ok)

	_, ok = jsonvalue.NaN().AsInteger()
	a.False(ok)
}

func TestNumberEqualAndNaN(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.True(jsonvalue.NewInt(3).Equal(jsonvalue.NewFloat(3.0)))
	a.False(jsonvalue.NaN().Equal(jsonvalue.NaN()))
}

func TestNumberArithmeticOverflowWidensToDouble(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	sum := jsonvalue.NewInt(math.MaxInt64).Add(jsonvalue.NewInt(1))
	a.True(sum.IsDouble())

	diff := jsonvalue.NewInt(math.MinInt64).Sub(jsonvalue.NewInt(1))
	a.True(diff.IsDouble())

	prod := jsonvalue.NewInt(math.MaxInt64).Mul(jsonvalue.NewInt(2))
	a.True(prod.IsDouble())

	sum2 := jsonvalue.NewInt(2).Add(jsonvalue.NewInt(3))
	a.True(sum2.IsInteger())
	a.InDelta(5.0, sum2.AsDouble(), 0)
}

func TestNumberDivisionAlwaysDouble(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	q, err := jsonvalue.NewInt(6).Div(jsonvalue.NewInt(3))
	a.NoError(err)
	a.True(q.IsDouble())
	a.InDelta(2.0, q.AsDouble(), 0)

	_, err = jsonvalue.NewInt(1).Div(jsonvalue.NewInt(0))
	a.ErrorIs(err, jsonvalue.ErrDivisionByZero)
}
