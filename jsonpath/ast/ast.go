// Package ast provides the node types produced by parsing a JSONPath
// expression: an ordered list of steps applied to an implicit root. The
// parser constructs these nodes; the exec and lazy packages walk them.
//
// The complete list of types that implement [Node]:
//
//   - [Property]
//   - [Index]
//   - [Slice]
//   - [Wildcard]
//   - [Recursive]
//   - [Filter]
//   - [Union]
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a single step along a JSONPath expression.
type Node interface {
	// String returns the canonical textual form of the step.
	String() string
	isNode()
}

// Property selects the named field of an Object.
type Property struct {
	Name string
}

func (Property) isNode() {}

func (p Property) String() string {
	return "." + p.Name
}

// Index selects the element at a (possibly negative) array offset.
// Negative values count from the end of the array.
type Index struct {
	Value int
}

func (Index) isNode() {}

func (n Index) String() string {
	return fmt.Sprintf("[%d]", n.Value)
}

// Slice selects a range of array elements. Start and End are nil when
// unspecified in the source text: a nil Start means "from the beginning"
// (index 0 for Step > 0, the last index for Step < 0); a nil End means
// "through the end" (through the last index for Step > 0, through index 0
// for Step < 0). A literal -1 end bound is represented as End: a pointer
// to -1, never as the nil sentinel — see [Slice.String].
type Slice struct {
	Start *int
	End   *int
	Step  int
}

func (Slice) isNode() {}

func (s Slice) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if s.Start != nil {
		b.WriteString(strconv.Itoa(*s.Start))
	}
	b.WriteByte(':')
	if s.End != nil {
		b.WriteString(strconv.Itoa(*s.End))
	}
	if s.Step != 1 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.Step))
	}
	b.WriteByte(']')
	return b.String()
}

// Wildcard selects every child of an Array or Object.
type Wildcard struct{}

func (Wildcard) isNode() {}

func (Wildcard) String() string {
	return "[*]"
}

// Recursive performs a pre-order descent from each input node. When
// Property is empty, every reached node (including the input itself) is
// emitted. When Property is set, only Object nodes containing that
// property contribute a result (the matched child), but descent continues
// into every Object and Array child regardless of whether the current
// level matched.
type Recursive struct {
	Property string
}

func (Recursive) isNode() {}

func (r Recursive) String() string {
	return ".." + r.Property
}

// Filter evaluates Expr (the inner text of a `?(...)` bracket selector)
// against each candidate, keeping only the ones for which it is true. Expr
// is parsed by the filter package at evaluation time, not at path-parse
// time, matching the source's string-based filter representation.
type Filter struct {
	Expr string
}

func (Filter) isNode() {}

func (f Filter) String() string {
	return "[?(" + f.Expr + ")]"
}

// Union is either a list of array indices applied to each input Array, or
// a list of independently-evaluated sub-paths whose results are
// concatenated in listed order. Exactly one of Indices or Paths is
// populated.
type Union struct {
	Indices []int
	Paths   []*AST
}

func (Union) isNode() {}

func (u Union) String() string {
	parts := make([]string, 0, len(u.Indices)+len(u.Paths))
	if len(u.Paths) > 0 {
		for _, p := range u.Paths {
			parts = append(parts, p.String())
		}
		return strings.Join(parts, ",")
	}
	for _, i := range u.Indices {
		parts = append(parts, strconv.Itoa(i))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// AST is a parsed JSONPath expression: an ordered list of steps applied to
// an implicit root ("$"). A top-level union of whole sub-paths (e.g.
// "$.a,$.b") is represented as a single-step AST whose step is a [Union]
// with Paths populated.
type AST struct {
	Steps []Node
}

// String returns the canonical textual form of the path, always starting
// with "$".
func (a *AST) String() string {
	if len(a.Steps) == 1 {
		if u, ok := a.Steps[0].(Union); ok && len(u.Paths) > 0 {
			return u.String()
		}
	}
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range a.Steps {
		b.WriteString(s.String())
	}
	return b.String()
}

// IsTopLevelUnion reports whether a represents a top-level union of whole
// sub-paths rather than an ordinary step sequence.
func (a *AST) IsTopLevelUnion() (Union, bool) {
	if len(a.Steps) != 1 {
		return Union{}, false
	}
	u, ok := a.Steps[0].(Union)
	if !ok || len(u.Paths) == 0 {
		return Union{}, false
	}
	return u, true
}
