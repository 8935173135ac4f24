package exec_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theory/jsonengine/jsonpath/exec"
	"github.com/theory/jsonengine/jsonpath/parser"
	"github.com/theory/jsonengine/jsonvalue"
)

func paths(results []exec.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Path
	}
	return out
}

func TestQueryProperty(t *testing.T) {
	t.Parallel()

	root := jsonvalue.MustParse(`{"store":{"name":"Acme"}}`)
	a, err := parser.Parse("$.store.name")
	require.NoError(t, err)

	results, err := exec.Query(a, root)
	require.NoError(t, err)
	require.Len(t, results, 1)
	s, ok := results[0].Value.GetString()
	require.True(t, ok)
	assert.Equal(t, "Acme", s)
	assert.Equal(t, "$.store.name", results[0].Path)
}

func TestQueryWildcardOverArray(t *testing.T) {
	t.Parallel()

	root := jsonvalue.MustParse(`{"items":[1,2,3]}`)
	a, err := parser.Parse("$.items[*]")
	require.NoError(t, err)

	results, err := exec.Query(a, root)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"$.items[0]", "$.items[1]", "$.items[2]"}, paths(results))
}

func TestQueryRecursiveDescent(t *testing.T) {
	t.Parallel()

	root := jsonvalue.MustParse(`{"a":{"id":1,"b":{"id":2}},"id":3}`)
	a, err := parser.Parse("$..id")
	require.NoError(t, err)

	results, err := exec.Query(a, root)
	require.NoError(t, err)
	require.Len(t, results, 3)

	var got []int64
	for _, r := range results {
		n, ok := r.Value.GetInteger()
		require.True(t, ok)
		got = append(got, n)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestQueryFilterOverArray(t *testing.T) {
	t.Parallel()

	root := jsonvalue.MustParse(`{"items":[{"price":5},{"price":25}]}`)
	a, err := parser.Parse("$.items[?(@.price>10)]")
	require.NoError(t, err)

	results, err := exec.Query(a, root)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "$.items[1]", results[0].Path)
}

func TestQuerySlice(t *testing.T) {
	t.Parallel()

	root := jsonvalue.MustParse(`{"items":[0,1,2,3,4]}`)
	a, err := parser.Parse("$.items[1:4]")
	require.NoError(t, err)

	results, err := exec.Query(a, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"$.items[1]", "$.items[2]", "$.items[3]"}, paths(results))
}

func TestQueryIndexUnion(t *testing.T) {
	t.Parallel()

	root := jsonvalue.MustParse(`{"items":["a","b","c","d"]}`)
	a, err := parser.Parse("$.items[0,2]")
	require.NoError(t, err)

	results, err := exec.Query(a, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"$.items[0]", "$.items[2]"}, paths(results))
}

func TestQueryTopLevelPathUnion(t *testing.T) {
	t.Parallel()

	root := jsonvalue.MustParse(`{"a":1,"b":2}`)
	a, err := parser.Parse("$.a,$.b")
	require.NoError(t, err)

	results, err := exec.Query(a, root)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "$.a", results[0].Path)
	assert.Equal(t, "$.b", results[1].Path)
}

func TestQueryMissingPropertyReturnsNoResults(t *testing.T) {
	t.Parallel()

	root := jsonvalue.MustParse(`{"a":1}`)
	a, err := parser.Parse("$.b")
	require.NoError(t, err)

	results, err := exec.Query(a, root)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQueryMutableWritesThrough(t *testing.T) {
	t.Parallel()

	root := jsonvalue.MustParse(`{"items":[{"price":5},{"price":25}]}`)
	a, err := parser.Parse("$.items[*].price")
	require.NoError(t, err)

	results, err := exec.QueryMutable(a, &root)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		n, _ := r.Value().GetInteger()
		r.Set(jsonvalue.Int(n * 10))
	}

	check, err := parser.Parse("$.items[*].price")
	require.NoError(t, err)
	after, err := exec.Query(check, root)
	require.NoError(t, err)

	var got []int64
	for _, r := range after {
		n, _ := r.Value.GetInteger()
		got = append(got, n)
	}
	assert.Equal(t, []int64{50, 250}, got)
}
