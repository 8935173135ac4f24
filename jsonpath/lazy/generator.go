// Package lazy implements a single-consumer, stack-driven iterator over a
// parsed JSONPath applied to a source Value: one result is produced per
// advance() rather than the whole match set up front, so a consumer can
// stop after the first few results without paying for the rest.
package lazy

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/theory/jsonengine/jsonpath/ast"
	"github.com/theory/jsonengine/jsonpath/filter"
	"github.com/theory/jsonengine/jsonvalue"
)

// State is the generator's lifecycle state.
type State int

const (
	Ready State = iota
	Running
	Completed
	Terminated
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Strategy names the evaluation approach chosen at construction time as a
// performance hint. Every strategy produces identical results; only
// [StrategyAdvanced] enables the sub-expression cache.
type Strategy int

const (
	StrategySimple Strategy = iota
	StrategyFilter
	StrategyAdvanced
)

func (s Strategy) String() string {
	switch s {
	case StrategySimple:
		return "Simple"
	case StrategyFilter:
		return "Filter"
	case StrategyAdvanced:
		return "Advanced"
	default:
		return "Unknown"
	}
}

func chooseStrategy(steps []ast.Node) Strategy {
	hasFilter, hasRecursive := false, false
	for _, s := range steps {
		switch s.(type) {
		case ast.Filter:
			hasFilter = true
		case ast.Recursive:
			hasRecursive = true
		}
	}
	switch {
	case hasFilter && hasRecursive:
		return StrategyAdvanced
	case hasFilter:
		return StrategyFilter
	default:
		return StrategySimple
	}
}

// GeneratorOptions configures a Generator's output bound and iteration
// behavior.
type GeneratorOptions struct {
	// MaxResults caps the number of results produced; 0 means unlimited.
	MaxResults int
	// StopOnFirstMatch terminates the generator after its first result.
	StopOnFirstMatch bool
	// BatchSize is the count reported by [Generator.DefaultBatchSize].
	// NextBatch always takes its count explicitly and does not read it.
	BatchSize int
	// EnableEarlyTermination allows a yield/forEach callback returning
	// false to stop generation before MaxResults is reached.
	EnableEarlyTermination bool
}

// Option configures a Generator beyond GeneratorOptions.
type Option func(*genConfig)

type genConfig struct {
	registry *filter.Registry
}

// WithRegistry supplies the filter-method registry consulted for method
// terminals in filter steps. Defaults to [filter.DefaultRegistry].
func WithRegistry(r *filter.Registry) Option {
	return func(c *genConfig) { c.registry = r }
}

// Result is one match produced by the generator.
type Result struct {
	Value jsonvalue.Value
	Path  string
}

// ErrExhausted is returned by Next when the generator has no further
// results; callers should gate on HasNext instead of relying on this
// error in steady-state use.
var ErrExhausted = errors.New("jsonpath: lazy generator exhausted")

// frame is one entry in the evaluation stack: "at step `step` of the
// path, process this value with this path," plus the lazily-built cursor
// enumerating its children one at a time.
type frame struct {
	value jsonvalue.Value
	path  string
	step  int
	cur   cursor
}

// Generator is a single-consumer iterator over a Path applied to a source
// Value. It is not safe for concurrent use.
type Generator struct {
	id       uuid.UUID
	steps    []ast.Node
	source   jsonvalue.Value
	reg      *filter.Registry
	opts     GeneratorOptions
	strategy Strategy
	cache    *cache

	// subs holds one Generator per sub-path when the path is a top-level
	// union ("$.a,$.b"); when non-nil it takes over evaluation entirely.
	subs   []*Generator
	subIdx int

	stack   []frame
	pending *Result
	state   State
	results int
}

// New builds a Generator evaluating path against source.
func New(path *ast.AST, source jsonvalue.Value, gOpts GeneratorOptions, opts ...Option) *Generator {
	cfg := genConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	reg := cfg.registry

	g := &Generator{id: uuid.New(), source: source, reg: reg, opts: gOpts, state: Ready}

	if u, ok := path.IsTopLevelUnion(); ok {
		g.subs = make([]*Generator, len(u.Paths))
		for i, sub := range u.Paths {
			g.subs[i] = New(sub, source, GeneratorOptions{}, opts...)
		}
		g.strategy = chooseStrategy(nil)
		return g
	}

	g.steps = path.Steps
	g.strategy = chooseStrategy(path.Steps)
	g.cache = newCache()
	g.stack = []frame{{value: source, path: "$", step: 0}}
	return g
}

// ID returns a diagnostic identifier unique to this generator instance.
func (g *Generator) ID() uuid.UUID { return g.id }

// Strategy reports the evaluation strategy chosen at construction.
func (g *Generator) Strategy() Strategy { return g.strategy }

// CacheStats reports the sub-expression cache's size and cumulative
// hit/miss counts. Always zero unless the chosen strategy is
// [StrategyAdvanced].
func (g *Generator) CacheStats() (size, hits, misses int) {
	if g.cache == nil {
		return 0, 0, 0
	}
	return g.cache.Stats()
}

// ClearCache empties the sub-expression cache and its statistics.
func (g *Generator) ClearCache() {
	if g.cache != nil {
		g.cache.Clear()
	}
}

// State reports the generator's current lifecycle state.
func (g *Generator) State() State { return g.state }

func (g *Generator) atLimit() bool {
	if g.opts.MaxResults > 0 && g.results >= g.opts.MaxResults {
		return true
	}
	if g.opts.StopOnFirstMatch && g.results >= 1 {
		return true
	}
	return false
}

// HasNext reports whether a further result is available, advancing
// internal state as needed to find out.
func (g *Generator) HasNext() bool {
	if g.state == Completed || g.state == Terminated {
		return false
	}
	if g.atLimit() {
		g.state = Completed
		return false
	}
	if g.state == Ready {
		g.state = Running
	}

	if g.subs != nil {
		for g.subIdx < len(g.subs) {
			if g.subs[g.subIdx].HasNext() {
				return true
			}
			g.subIdx++
		}
		g.state = Completed
		return false
	}

	if g.pending == nil {
		res, ok := g.advance()
		if !ok {
			g.state = Completed
			return false
		}
		g.pending = &res
	}
	return true
}

// advance runs the frame stack forward until it produces a result or
// exhausts, for the non-union case only.
func (g *Generator) advance() (Result, bool) {
	useCache := g.strategy == StrategyAdvanced
	for len(g.stack) > 0 {
		top := &g.stack[len(g.stack)-1]
		if top.step == len(g.steps) {
			res := Result{Value: top.value, Path: top.path}
			g.stack = g.stack[:len(g.stack)-1]
			return res, true
		}
		if top.cur == nil {
			top.cur = newCursor(g.steps[top.step], top.value, top.path, g.reg, g.cache, useCache)
		}
		val, path, advanceStep, ok := top.cur.next()
		if !ok {
			g.stack = g.stack[:len(g.stack)-1]
			continue
		}
		nextStep := top.step
		if advanceStep {
			nextStep++
		}
		g.stack = append(g.stack, frame{value: val, path: path, step: nextStep})
	}
	return Result{}, false
}

// Next returns the next result and advances, or fails with
// [ErrExhausted] if none remains.
func (g *Generator) Next() (Result, error) {
	if !g.HasNext() {
		return Result{}, fmt.Errorf("%w", ErrExhausted)
	}
	if g.subs != nil {
		res, err := g.subs[g.subIdx].Next()
		if err != nil {
			return Result{}, err
		}
		g.results++
		return res, nil
	}
	res := *g.pending
	g.pending = nil
	g.results++
	return res, nil
}

// NextBatch pulls up to n results, returning short (with no error) on
// exhaustion.
func (g *Generator) NextBatch(n int) ([]Result, error) {
	out := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		if !g.HasNext() {
			break
		}
		res, err := g.Next()
		if err != nil {
			break
		}
		out = append(out, res)
	}
	return out, nil
}

// DefaultBatchSize returns opts.BatchSize, or 1 if it was left at zero.
func (g *Generator) DefaultBatchSize() int {
	if g.opts.BatchSize <= 0 {
		return 1
	}
	return g.opts.BatchSize
}

// Reset rewinds the generator to the start of its node list over the
// same source. The sub-expression cache and its statistics survive a
// reset.
func (g *Generator) Reset() {
	g.state = Ready
	g.results = 0
	if g.subs != nil {
		for _, s := range g.subs {
			s.Reset()
		}
		g.subIdx = 0
		return
	}
	g.pending = nil
	g.stack = []frame{{value: g.source, path: "$", step: 0}}
}

// Terminate marks the generator Terminated; subsequent HasNext calls
// return false.
func (g *Generator) Terminate() {
	g.state = Terminated
}

// ForEach applies fn to every remaining result; fn returning false stops
// generation early (subject to EnableEarlyTermination).
func (g *Generator) ForEach(fn func(Result) bool) error {
	for g.HasNext() {
		res, err := g.Next()
		if err != nil {
			return err
		}
		if !fn(res) && g.opts.EnableEarlyTermination {
			g.Terminate()
			return nil
		}
	}
	return nil
}

// Yield is an alias for ForEach, named to match the generator's
// callback-driven consumption API.
func (g *Generator) Yield(fn func(Result) bool) error {
	return g.ForEach(fn)
}

// Collect drains every remaining result into a slice.
func (g *Generator) Collect() ([]Result, error) {
	var out []Result
	err := g.ForEach(func(r Result) bool {
		out = append(out, r)
		return true
	})
	return out, err
}
