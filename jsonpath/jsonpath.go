// Package jsonpath provides JSONPath parsing and evaluation over
// [jsonvalue.Value] documents: eager queries (immutable and mutable) and
// a lazy, stack-driven streaming generator. See the subpackages for the
// pieces this facade wires together: ast (node types), lexer and parser
// (text to AST), filter ([?(...)] predicate evaluation), exec (eager
// evaluation), and lazy (the streaming generator).
package jsonpath

import (
	"errors"
	"fmt"

	"github.com/theory/jsonengine/jsonpath/ast"
	"github.com/theory/jsonengine/jsonpath/exec"
	"github.com/theory/jsonengine/jsonpath/filter"
	"github.com/theory/jsonengine/jsonpath/lazy"
	"github.com/theory/jsonengine/jsonpath/parser"
	"github.com/theory/jsonengine/jsonvalue"
)

// ErrPath wraps parse failures returned by [Parse].
var ErrPath = errors.New("jsonpath")

// Path is a parsed JSONPath expression ready to evaluate against any
// number of Values.
type Path struct {
	*ast.AST
}

// Parse parses expr and returns the resulting Path, or an error wrapping
// [ErrPath] (itself wrapping [parser.ErrParse]) on failure.
func Parse(expr string) (*Path, error) {
	a, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPath, err)
	}
	return &Path{a}, nil
}

// MustParse is like Parse but panics on parse failure.
func MustParse(expr string) *Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// New wraps an already-built AST (as produced directly by the parser
// package) as a Path.
func New(a *ast.AST) *Path {
	return &Path{a}
}

// String returns the canonical textual form of the path.
func (p *Path) String() string {
	return p.AST.String()
}

// Query evaluates p against root and returns every match, in the order
// described by the engine's ordering guarantees (input order for
// wildcards/slices, pre-order for recursive descent, listed order for
// unions).
func (p *Path) Query(root jsonvalue.Value, opt ...exec.Option) ([]exec.Result, error) {
	return exec.Query(p.AST, root, opt...)
}

// QueryMutable evaluates p against *root and returns every match as a
// [exec.MutableResult], each able to write its value back into *root.
func (p *Path) QueryMutable(root *jsonvalue.Value, opt ...exec.Option) ([]exec.MutableResult, error) {
	return exec.QueryMutable(p.AST, root, opt...)
}

// First returns the first match of p against root, and false if there
// are none.
func (p *Path) First(root jsonvalue.Value, opt ...exec.Option) (jsonvalue.Value, bool, error) {
	results, err := exec.Query(p.AST, root, opt...)
	if err != nil {
		return jsonvalue.Value{}, false, err
	}
	if len(results) == 0 {
		return jsonvalue.Value{}, false, nil
	}
	return results[0].Value, true, nil
}

// Exists reports whether p matches anything in root.
func (p *Path) Exists(root jsonvalue.Value, opt ...exec.Option) (bool, error) {
	results, err := exec.Query(p.AST, root, opt...)
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}

// Lazy builds a [lazy.Generator] streaming p's matches against root one
// at a time.
func (p *Path) Lazy(root jsonvalue.Value, gOpts lazy.GeneratorOptions, opt ...lazy.Option) *lazy.Generator {
	return lazy.New(p.AST, root, gOpts, opt...)
}

// Registry re-exports [filter.Registry] so callers can register filter
// methods without importing the filter subpackage directly.
type Registry = filter.Registry

// RegisterMethod adds fn to the process-wide default filter-method
// registry under name, for use as a `.name()` terminal in `[?(...)]`
// filter expressions.
func RegisterMethod(name string, fn filter.MethodFunc) {
	filter.Register(name, fn)
}
