package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeStringForms(t *testing.T) {
	t.Parallel()

	end := -3
	for _, tc := range []struct {
		name string
		node Node
		want string
	}{
		{"property", Property{Name: "age"}, ".age"},
		{"index", Index{Value: 2}, "[2]"},
		{"index_negative", Index{Value: -1}, "[-1]"},
		{"wildcard", Wildcard{}, "[*]"},
		{"recursive_named", Recursive{Property: "id"}, "..id"},
		{"recursive_bare", Recursive{}, ".."},
		{"filter", Filter{Expr: "@.age>18"}, "[?(@.age>18)]"},
		{"union_indices", Union{Indices: []int{0, 2, 4}}, "[0,2,4]"},
		{"slice_defaults", Slice{Step: 1}, "[:]"},
		{"slice_bounded", Slice{Start: intPtr(1), End: intPtr(3), Step: 1}, "[1:3]"},
		{"slice_stepped", Slice{Start: intPtr(0), End: intPtr(10), Step: 2}, "[0:10:2]"},
		{"slice_negative_end", Slice{End: &end, Step: -1}, "[:-3:-1]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.node.String())
		})
	}
}

func TestASTString(t *testing.T) {
	t.Parallel()

	a := &AST{Steps: []Node{Property{Name: "a"}, Index{Value: 0}, Wildcard{}}}
	assert.Equal(t, "$.a[0][*]", a.String())

	empty := &AST{}
	assert.Equal(t, "$", empty.String())
}

func TestASTStringTopLevelUnion(t *testing.T) {
	t.Parallel()

	sub1 := &AST{Steps: []Node{Property{Name: "a"}}}
	sub2 := &AST{Steps: []Node{Property{Name: "b"}}}
	a := &AST{Steps: []Node{Union{Paths: []*AST{sub1, sub2}}}}

	assert.Equal(t, "$.a,$.b", a.String())

	union, ok := a.IsTopLevelUnion()
	assert.True(t, ok)
	assert.Len(t, union.Paths, 2)
}

func TestASTIsTopLevelUnionFalseCases(t *testing.T) {
	t.Parallel()

	ordinary := &AST{Steps: []Node{Property{Name: "a"}, Property{Name: "b"}}}
	_, ok := ordinary.IsTopLevelUnion()
	assert.False(t, ok)

	indexUnion := &AST{Steps: []Node{Union{Indices: []int{0, 1}}}}
	_, ok = indexUnion.IsTopLevelUnion()
	assert.False(t, ok)
}

func intPtr(i int) *int { return &i }
