// Package parser builds a [ast.AST] from a JSONPath expression string. It
// is a hand-rolled recursive-descent parser over the lexer package's
// token stream, following the grammar in §6.3: a leading top-level-comma
// scan (done on the raw text, before tokenizing) detects a union of whole
// sub-paths; otherwise tokens are consumed one step at a time.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theory/jsonengine/jsonpath/ast"
	"github.com/theory/jsonengine/jsonpath/lexer"
)

// ErrParse wraps every parse failure, each carrying a byte position where
// available.
var ErrParse = errors.New("jsonpath: parse")

// Parse parses src as a JSONPath expression and returns its AST, or an
// error wrapping [ErrParse] on failure.
func Parse(src string) (*ast.AST, error) {
	parts := splitTopLevel(src)
	if len(parts) > 1 {
		paths := make([]*ast.AST, len(parts))
		for i, part := range parts {
			sub, err := parseSinglePath(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			paths[i] = sub
		}
		return &ast.AST{Steps: []ast.Node{ast.Union{Paths: paths}}}, nil
	}
	return parseSinglePath(strings.TrimSpace(src))
}

// splitTopLevel splits src on commas that appear outside every bracket,
// paren, and quoted string. A single-element result means no top-level
// union was found.
func splitTopLevel(src string) []string {
	var parts []string
	depth := 0
	var quote byte
	last := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, src[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, src[last:])
	return parts
}

// parser consumes one step at a time from a single (non-union) path
// expression.
type parser struct {
	lex *lexer.Lexer
	tok lexer.Token
}

func parseSinglePath(src string) (*ast.AST, error) {
	p := &parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if p.tok.Kind != lexer.Root {
		return nil, fmt.Errorf("%w: path must start with '$' (position %d)", ErrParse, p.tok.Pos)
	}
	if err := p.advance(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	result := &ast.AST{}
	for p.tok.Kind != lexer.EOF {
		node, err := p.parseStep()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		result.Steps = append(result.Steps, node)
	}
	return result, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseStep() (ast.Node, error) {
	switch p.tok.Kind {
	case lexer.Dot:
		return p.parseDotStep()
	case lexer.DotDot:
		return p.parseRecursiveStep()
	case lexer.LBracket:
		return p.parseBracketStep()
	default:
		return nil, fmt.Errorf("unexpected token %s at position %d", p.tok.Kind, p.tok.Pos)
	}
}

func (p *parser) parseDotStep() (ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Kind == lexer.Wildcard {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Wildcard{}, nil
	}
	if p.tok.Kind != lexer.Ident {
		return nil, fmt.Errorf("expected identifier after '.' at position %d", p.tok.Pos)
	}
	name := p.tok.Lit
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.Property{Name: name}, nil
}

func (p *parser) parseRecursiveStep() (ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Kind == lexer.Ident {
		name := p.tok.Lit
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Recursive{Property: name}, nil
	}
	return ast.Recursive{}, nil
}

func (p *parser) parseBracketStep() (ast.Node, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	switch p.tok.Kind {
	case lexer.String:
		name := p.tok.Lit
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		return ast.Property{Name: name}, nil
	case lexer.Wildcard:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		return ast.Wildcard{}, nil
	case lexer.QuestionParen:
		expr := p.tok.Lit
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		return ast.Filter{Expr: expr}, nil
	case lexer.Number, lexer.Colon:
		return p.parseIndexSliceOrUnion()
	default:
		return nil, fmt.Errorf("unexpected token %s inside '[...]' at position %d", p.tok.Kind, p.tok.Pos)
	}
}

// expect consumes tok.Kind == want, failing otherwise.
func (p *parser) expect(want lexer.Kind) error {
	if p.tok.Kind != want {
		return fmt.Errorf("expected %s, got %s at position %d", want, p.tok.Kind, p.tok.Pos)
	}
	return p.advance()
}

func (p *parser) parseInt() (int, error) {
	n, err := strconv.Atoi(p.tok.Lit)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q at position %d", p.tok.Lit, p.tok.Pos)
	}
	return n, nil
}

func (p *parser) parseIndexSliceOrUnion() (ast.Node, error) {
	var start *int
	if p.tok.Kind == lexer.Number {
		n, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		start = &n
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	switch p.tok.Kind {
	case lexer.Colon:
		return p.parseSlice(start)
	case lexer.Comma:
		if start == nil {
			return nil, fmt.Errorf("unexpected ',' at position %d", p.tok.Pos)
		}
		return p.parseIndexUnion(*start)
	case lexer.RBracket:
		if start == nil {
			return nil, fmt.Errorf("empty '[]' selector at position %d", p.tok.Pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Index{Value: *start}, nil
	default:
		return nil, fmt.Errorf("unexpected token %s inside '[...]' at position %d", p.tok.Kind, p.tok.Pos)
	}
}

func (p *parser) parseIndexUnion(first int) (ast.Node, error) {
	indices := []int{first}
	for p.tok.Kind == lexer.Comma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.Number {
			return nil, fmt.Errorf("expected integer in union at position %d", p.tok.Pos)
		}
		n, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		indices = append(indices, n)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	return ast.Union{Indices: indices}, nil
}

func (p *parser) parseSlice(start *int) (ast.Node, error) {
	if err := p.advance(); err != nil { // consume ':'
		return nil, err
	}
	var end *int
	if p.tok.Kind == lexer.Number {
		n, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		end = &n
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	step := 1
	if p.tok.Kind == lexer.Colon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind == lexer.Number {
			n, err := p.parseInt()
			if err != nil {
				return nil, err
			}
			step = n
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	return ast.Slice{Start: start, End: end, Step: step}, nil
}
