package exec

import (
	"fmt"

	"github.com/theory/jsonengine/jsonpath/ast"
	"github.com/theory/jsonengine/jsonpath/filter"
	"github.com/theory/jsonengine/jsonvalue"
)

// candidate is one live location in the tree being walked: get reads its
// current value, and set (nil in read-only Query) writes a replacement
// back through every enclosing container up to the root.
type candidate struct {
	path string
	get  func() jsonvalue.Value
	set  func(jsonvalue.Value)
}

// childField builds the candidate for parent's "name" field, threading a
// setter through parent's own set when mutation is in play.
func childField(parent candidate, name string) candidate {
	c := candidate{
		path: parent.path + "." + name,
		get:  func() jsonvalue.Value { return parent.get().Field(name) },
	}
	if parent.set != nil {
		c.set = func(v jsonvalue.Value) {
			p := parent.get()
			p.SetField(name, v)
			parent.set(p)
		}
	}
	return c
}

// childIndex builds the candidate for parent's element at idx (already
// normalized and range-checked by the caller).
func childIndex(parent candidate, idx int) candidate {
	c := candidate{
		path: fmt.Sprintf("%s[%d]", parent.path, idx),
		get:  func() jsonvalue.Value { return parent.get().Index(idx) },
	}
	if parent.set != nil {
		c.set = func(v jsonvalue.Value) {
			p := parent.get()
			p.SetIndex(idx, v)
			parent.set(p)
		}
	}
	return c
}

func evaluateSteps(steps []ast.Node, in []candidate, reg *filter.Registry) ([]candidate, error) {
	cur := in
	for _, step := range steps {
		next, err := applyStep(step, cur, reg)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func applyStep(step ast.Node, in []candidate, reg *filter.Registry) ([]candidate, error) {
	switch n := step.(type) {
	case ast.Property:
		return applyProperty(n, in), nil
	case ast.Index:
		return applyIndex(n, in), nil
	case ast.Slice:
		return applySlice(n, in), nil
	case ast.Wildcard:
		return applyWildcard(in), nil
	case ast.Recursive:
		return applyRecursive(n, in), nil
	case ast.Filter:
		return applyFilter(n, in, reg), nil
	case ast.Union:
		return applyUnion(n, in, reg)
	default:
		return nil, fmt.Errorf("jsonpath: unhandled step type %T", step)
	}
}

func applyProperty(n ast.Property, in []candidate) []candidate {
	var out []candidate
	for _, c := range in {
		cur := c.get()
		if !cur.IsObject() || !cur.Contains(n.Name) {
			continue
		}
		out = append(out, childField(c, n.Name))
	}
	return out
}

// normalizeIndex maps a possibly-negative offset into [0,length), or
// returns ok=false if it falls outside the array even after wraparound.
func normalizeIndex(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

func applyIndex(n ast.Index, in []candidate) []candidate {
	var out []candidate
	for _, c := range in {
		cur := c.get()
		if !cur.IsArray() {
			continue
		}
		idx, ok := normalizeIndex(n.Value, cur.Size())
		if !ok {
			continue
		}
		out = append(out, childIndex(c, idx))
	}
	return out
}

func applyWildcard(in []candidate) []candidate {
	var out []candidate
	for _, c := range in {
		cur := c.get()
		switch {
		case cur.IsObject():
			keys, _ := cur.GetObject()
			for _, k := range keys {
				out = append(out, childField(c, k))
			}
		case cur.IsArray():
			for i := 0; i < cur.Size(); i++ {
				out = append(out, childIndex(c, i))
			}
		}
	}
	return out
}

func applyRecursive(n ast.Recursive, in []candidate) []candidate {
	var out []candidate
	for _, c := range in {
		collectRecursive(c, n.Property, &out)
	}
	return out
}

// collectRecursive performs the pre-order descent described on
// [ast.Recursive]: a matching node is emitted before its own children are
// visited, and descent continues regardless of whether the current level
// matched.
func collectRecursive(c candidate, property string, out *[]candidate) {
	cur := c.get()
	if property == "" {
		*out = append(*out, c)
	} else if cur.IsObject() && cur.Contains(property) {
		*out = append(*out, childField(c, property))
	}

	switch {
	case cur.IsObject():
		keys, _ := cur.GetObject()
		for _, k := range keys {
			collectRecursive(childField(c, k), property, out)
		}
	case cur.IsArray():
		for i := 0; i < cur.Size(); i++ {
			collectRecursive(childIndex(c, i), property, out)
		}
	}
}

func applyFilter(n ast.Filter, in []candidate, reg *filter.Registry) []candidate {
	var out []candidate
	for _, c := range in {
		cur := c.get()
		switch {
		case cur.IsArray():
			for i := 0; i < cur.Size(); i++ {
				elem := childIndex(c, i)
				if filter.Evaluate(n.Expr, elem.get(), reg) {
					out = append(out, elem)
				}
			}
		case cur.IsObject():
			if filter.Evaluate(n.Expr, cur, reg) {
				out = append(out, c)
			}
		}
	}
	return out
}

func applyUnion(n ast.Union, in []candidate, reg *filter.Registry) ([]candidate, error) {
	if len(n.Paths) > 0 {
		var out []candidate
		for _, c := range in {
			for _, sub := range n.Paths {
				res, err := evaluateSteps(sub.Steps, []candidate{c}, reg)
				if err != nil {
					return nil, err
				}
				out = append(out, res...)
			}
		}
		return out, nil
	}
	var out []candidate
	for _, c := range in {
		cur := c.get()
		if !cur.IsArray() {
			continue
		}
		length := cur.Size()
		for _, raw := range n.Indices {
			idx, ok := normalizeIndex(raw, length)
			if !ok {
				continue
			}
			out = append(out, childIndex(c, idx))
		}
	}
	return out, nil
}
