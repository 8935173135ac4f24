// Package exec applies a parsed JSONPath [ast.AST] to a [jsonvalue.Value],
// level by level: each step consumes the current set of candidates and
// produces the next. Both read-only ([Query]) and mutable ([QueryMutable])
// evaluation share one internal walk; the mutable variant additionally
// threads a chain of get/set closures (a zipper, in effect) back to the
// root so a caller can write through a result without the evaluator ever
// reaching into jsonvalue's unexported storage.
package exec

import (
	"github.com/theory/jsonengine/jsonpath/ast"
	"github.com/theory/jsonengine/jsonpath/filter"
	"github.com/theory/jsonengine/jsonvalue"
)

// Option configures a [Query] or [QueryMutable] call.
type Option func(*options)

type options struct {
	registry *filter.Registry
}

// WithRegistry supplies the filter-method registry consulted for
// user-defined method terminals in `[?(...)]` expressions. Without this
// option, [filter.DefaultRegistry] is used.
func WithRegistry(r *filter.Registry) Option {
	return func(o *options) { o.registry = r }
}

func resolveOptions(opt []Option) options {
	var o options
	for _, f := range opt {
		f(&o)
	}
	return o
}

// Result is one match produced by [Query]: the matched Value and the
// informational path string that reached it.
type Result struct {
	Value jsonvalue.Value
	Path  string
}

// Query evaluates path against root and returns every match. Evaluation
// never fails outright — a path that matches nothing returns an empty,
// nil-error result.
func Query(path *ast.AST, root jsonvalue.Value, opt ...Option) ([]Result, error) {
	o := resolveOptions(opt)
	rootCopy := root
	initial := candidate{
		path: "$",
		get:  func() jsonvalue.Value { return rootCopy },
	}
	out, err := evaluateSteps(path.Steps, []candidate{initial}, o.registry)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(out))
	for i, c := range out {
		results[i] = Result{Value: c.get(), Path: c.path}
	}
	return results, nil
}

// MutableResult is one match produced by [QueryMutable]: the matched
// Value, its informational path, and a way to write a replacement back
// into the source tree.
type MutableResult struct {
	Path string
	get  func() jsonvalue.Value
	set  func(jsonvalue.Value)
}

// Value returns the current value at this result's location.
func (m MutableResult) Value() jsonvalue.Value { return m.get() }

// Set writes v at this result's location in the tree QueryMutable was
// called on. Per the engine's lifecycle contract, writing through one
// result while holding others live may invalidate them if they share a
// mutated container.
func (m MutableResult) Set(v jsonvalue.Value) { m.set(v) }

// QueryMutable evaluates path against *root and returns every match as a
// [MutableResult], each able to write its value back into *root.
func QueryMutable(path *ast.AST, root *jsonvalue.Value, opt ...Option) ([]MutableResult, error) {
	o := resolveOptions(opt)
	initial := candidate{
		path: "$",
		get:  func() jsonvalue.Value { return *root },
		set:  func(v jsonvalue.Value) { *root = v },
	}
	out, err := evaluateSteps(path.Steps, []candidate{initial}, o.registry)
	if err != nil {
		return nil, err
	}
	results := make([]MutableResult, len(out))
	for i, c := range out {
		results[i] = MutableResult{Path: c.path, get: c.get, set: c.set}
	}
	return results, nil
}
