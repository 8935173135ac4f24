package lazy

import (
	"fmt"

	"github.com/theory/jsonengine/jsonpath/ast"
	"github.com/theory/jsonengine/jsonpath/exec"
	"github.com/theory/jsonengine/jsonpath/filter"
	"github.com/theory/jsonengine/jsonvalue"
)

// cursor enumerates the children a frame's node step produces from its
// value, one at a time. advanceStep reports whether the produced child
// should move on to the next node in the path (true for every node kind
// except a Recursive step's own descent children, which must revisit the
// same Recursive node).
type cursor interface {
	next() (value jsonvalue.Value, path string, advanceStep bool, ok bool)
}

// newCursor builds the cursor for a single frame the first time that
// frame is visited.
func newCursor(node ast.Node, value jsonvalue.Value, path string, reg *filter.Registry, c *cache, useCache bool) cursor {
	switch n := node.(type) {
	case ast.Property:
		ok := value.IsObject() && value.Contains(n.Name)
		var child jsonvalue.Value
		if ok {
			child = value.Field(n.Name)
		}
		return &onceCursor{value: child, path: path + "." + n.Name, ok: ok}
	case ast.Index:
		idx, ok := normalizeIndex(n.Value, size(value))
		var child jsonvalue.Value
		var p string
		if ok {
			child = value.Index(idx)
			p = fmt.Sprintf("%s[%d]", path, idx)
		}
		return &onceCursor{value: child, path: p, ok: ok && value.IsArray()}
	case ast.Wildcard:
		return newWildcardCursor(value, path)
	case ast.Slice:
		return newSliceCursor(n, value, path)
	case ast.Union:
		return newUnionCursor(n, value, path)
	case ast.Filter:
		return newFilterCursor(n, value, path, reg, c, useCache)
	case ast.Recursive:
		return &recursiveCursor{property: n.Property, value: value, path: path}
	default:
		return &onceCursor{ok: false}
	}
}

func size(v jsonvalue.Value) int {
	if v.IsArray() {
		return v.Size()
	}
	return 0
}

func normalizeIndex(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// onceCursor yields at most one child, for Property and Index steps.
type onceCursor struct {
	value jsonvalue.Value
	path  string
	ok    bool
	done  bool
}

func (c *onceCursor) next() (jsonvalue.Value, string, bool, bool) {
	if c.done || !c.ok {
		c.done = true
		return jsonvalue.Value{}, "", true, false
	}
	c.done = true
	return c.value, c.path, true, true
}

type wildcardCursor struct {
	value  jsonvalue.Value
	path   string
	isObj  bool
	keys   []string
	length int
	idx    int
}

func newWildcardCursor(value jsonvalue.Value, path string) *wildcardCursor {
	c := &wildcardCursor{value: value, path: path}
	switch {
	case value.IsObject():
		c.isObj = true
		c.keys, _ = value.GetObject()
	case value.IsArray():
		c.length = value.Size()
	}
	return c
}

func (c *wildcardCursor) next() (jsonvalue.Value, string, bool, bool) {
	if c.isObj {
		if c.idx >= len(c.keys) {
			return jsonvalue.Value{}, "", true, false
		}
		k := c.keys[c.idx]
		c.idx++
		return c.value.Field(k), c.path + "." + k, true, true
	}
	if c.idx >= c.length {
		return jsonvalue.Value{}, "", true, false
	}
	i := c.idx
	c.idx++
	return c.value.Index(i), fmt.Sprintf("%s[%d]", c.path, i), true, true
}

type sliceCursor struct {
	value jsonvalue.Value
	path  string
	i     int
	end   int
	step  int
	ok    bool
}

func newSliceCursor(n ast.Slice, value jsonvalue.Value, path string) *sliceCursor {
	if !value.IsArray() {
		return &sliceCursor{}
	}
	start, end, step, ok := exec.SliceBounds(n, value.Size())
	return &sliceCursor{value: value, path: path, i: start, end: end, step: step, ok: ok}
}

func (c *sliceCursor) next() (jsonvalue.Value, string, bool, bool) {
	if !c.ok {
		return jsonvalue.Value{}, "", true, false
	}
	if c.step > 0 && c.i >= c.end || c.step < 0 && c.i <= c.end {
		return jsonvalue.Value{}, "", true, false
	}
	i := c.i
	c.i += c.step
	return c.value.Index(i), fmt.Sprintf("%s[%d]", c.path, i), true, true
}

type unionCursor struct {
	value   jsonvalue.Value
	path    string
	indices []int
	idx     int
	length  int
	ok      bool
}

func newUnionCursor(n ast.Union, value jsonvalue.Value, path string) *unionCursor {
	if len(n.Indices) == 0 || !value.IsArray() {
		return &unionCursor{}
	}
	return &unionCursor{value: value, path: path, indices: n.Indices, length: value.Size(), ok: true}
}

func (c *unionCursor) next() (jsonvalue.Value, string, bool, bool) {
	for c.ok && c.idx < len(c.indices) {
		raw := c.indices[c.idx]
		c.idx++
		idx, ok := normalizeIndex(raw, c.length)
		if !ok {
			continue
		}
		return c.value.Index(idx), fmt.Sprintf("%s[%d]", c.path, idx), true, true
	}
	return jsonvalue.Value{}, "", true, false
}

type filterCursor struct {
	value    jsonvalue.Value
	path     string
	expr     string
	reg      *filter.Registry
	cache    *cache
	useCache bool
	isArray  bool
	length   int
	idx      int
	objDone  bool
}

func newFilterCursor(n ast.Filter, value jsonvalue.Value, path string, reg *filter.Registry, c *cache, useCache bool) *filterCursor {
	fc := &filterCursor{value: value, path: path, expr: n.Expr, reg: reg, cache: c, useCache: useCache}
	if value.IsArray() {
		fc.isArray = true
		fc.length = value.Size()
	}
	return fc
}

func (c *filterCursor) matches(candidate jsonvalue.Value, candidatePath string) bool {
	if c.useCache {
		if v, ok := c.cache.get(candidatePath, c.expr); ok {
			return v
		}
		result := filter.Evaluate(c.expr, candidate, c.reg)
		c.cache.put(candidatePath, c.expr, result)
		return result
	}
	return filter.Evaluate(c.expr, candidate, c.reg)
}

func (c *filterCursor) next() (jsonvalue.Value, string, bool, bool) {
	if c.isArray {
		for c.idx < c.length {
			i := c.idx
			c.idx++
			elem := c.value.Index(i)
			p := fmt.Sprintf("%s[%d]", c.path, i)
			if c.matches(elem, p) {
				return elem, p, true, true
			}
		}
		return jsonvalue.Value{}, "", true, false
	}
	if !c.objDone && c.value.IsObject() {
		c.objDone = true
		if c.matches(c.value, c.path) {
			return c.value, c.path, true, true
		}
	}
	c.objDone = true
	return jsonvalue.Value{}, "", true, false
}

// recursiveCursor implements the {None → SearchingSelf →
// SearchingChildren} state machine: a self match (when Property is
// matched, or unconditionally when Property is empty) is yielded with
// advanceStep=true since it is a completed match for the rest of the
// path; every child is yielded with advanceStep=false so the same
// Recursive step continues descending into it.
type recursiveCursor struct {
	property string
	value    jsonvalue.Value
	path     string

	state       recState
	selfYielded bool
	isObj       bool
	isArr       bool
	keys        []string
	length      int
	idx         int
}

type recState int

const (
	recSelf recState = iota
	recChildren
	recDone
)

func (c *recursiveCursor) next() (jsonvalue.Value, string, bool, bool) {
	for {
		switch c.state {
		case recSelf:
			c.state = recChildren
			if c.selfYielded {
				continue
			}
			c.selfYielded = true
			if c.property == "" {
				return c.value, c.path, true, true
			}
			if c.value.IsObject() && c.value.Contains(c.property) {
				return c.value.Field(c.property), c.path + "." + c.property, true, true
			}
		case recChildren:
			if !c.isObj && !c.isArr && c.keys == nil && c.length == 0 {
				switch {
				case c.value.IsObject():
					c.isObj = true
					c.keys, _ = c.value.GetObject()
				case c.value.IsArray():
					c.isArr = true
					c.length = c.value.Size()
				default:
					c.state = recDone
					continue
				}
			}
			if c.isObj {
				if c.idx >= len(c.keys) {
					c.state = recDone
					continue
				}
				k := c.keys[c.idx]
				c.idx++
				return c.value.Field(k), c.path + "." + k, false, true
			}
			if c.isArr {
				if c.idx >= c.length {
					c.state = recDone
					continue
				}
				i := c.idx
				c.idx++
				return c.value.Index(i), fmt.Sprintf("%s[%d]", c.path, i), false, true
			}
			c.state = recDone
		case recDone:
			return jsonvalue.Value{}, "", true, false
		}
	}
}
