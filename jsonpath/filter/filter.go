// Package filter evaluates the inner text of a JSONPath `[?(...)]`
// selector against a candidate Value. Evaluation never fails: malformed
// or unrecognized syntax evaluates to false, per §4.11's documented
// leniency, so the rest of the engine can treat a filter purely as a
// predicate.
package filter

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/theory/jsonengine/jsonvalue"
)

// floatTolerance is the absolute tolerance for numeric equality
// comparisons. Not configurable: it mirrors a hard-coded constant in the
// engine this package is modeled on, and nothing in this module's
// call sites needs it to vary.
const floatTolerance = 1e-9

// Evaluate reports whether expr — the inner text of a `?(...)` selector —
// holds for ctx, the `@` context Value. reg supplies user-registered
// method terminals; pass nil to fall back to [DefaultRegistry].
func Evaluate(expr string, ctx jsonvalue.Value, reg *Registry) bool {
	expr = stripOuterParens(expr)

	if idx := findTopLevel(expr, "||"); idx >= 0 {
		return Evaluate(expr[:idx], ctx, reg) || Evaluate(expr[idx+2:], ctx, reg)
	}
	if idx := findTopLevel(expr, "&&"); idx >= 0 {
		return Evaluate(expr[:idx], ctx, reg) && Evaluate(expr[idx+2:], ctx, reg)
	}
	if applied, result := tryNestedFilter(expr, ctx, reg); applied {
		return result
	}
	if applied, result := tryRegexMatch(expr, ctx, reg); applied {
		return result
	}
	if applied, result := tryMembership(expr, ctx, reg); applied {
		return result
	}
	return tryComparison(expr, ctx, reg)
}

// stripOuterParens removes a pair of matching outer parentheses that wrap
// the entire expression, repeating until none remain. It leaves
// "(a)&&(b)" alone, since neither paren there spans the whole string.
func stripOuterParens(s string) string {
	for {
		t := strings.TrimSpace(s)
		if !strings.HasPrefix(t, "(") || !strings.HasSuffix(t, ")") {
			return t
		}
		depth := 0
		closedEarly := false
		var quote byte
		for i := 0; i < len(t); i++ {
			c := t[i]
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
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 && i != len(t)-1 {
					closedEarly = true
				}
			}
		}
		if closedEarly {
			return t
		}
		s = t[1 : len(t)-1]
	}
}

// findTopLevel returns the byte index of the first occurrence of op at
// paren/bracket/quote depth 0, or -1 if none exists.
func findTopLevel(s, op string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
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
		if depth == 0 && strings.HasPrefix(s[i:], op) {
			return i
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
	}
	return -1
}

var comparisonOps = []string{"==", "!=", "<=", ">=", "<", ">"}

// findComparisonOp scans s for the first top-level comparison operator,
// checking two-character operators before their one-character prefixes so
// "<=" is never mistaken for "<".
func findComparisonOp(s string) (idx int, op string, ok bool) {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
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
			continue
		case '(', '[':
			depth++
			continue
		case ')', ']':
			depth--
			continue
		}
		if depth != 0 {
			continue
		}
		for _, o := range comparisonOps {
			if strings.HasPrefix(s[i:], o) {
				return i, o, true
			}
		}
	}
	return 0, "", false
}

// tryNestedFilter handles the "@.prop[?(sub)]" form: true iff any element
// of @.prop (which must be an array) matches sub.
func tryNestedFilter(expr string, ctx jsonvalue.Value, reg *Registry) (applied, result bool) {
	idx := findTopLevel(expr, "[?(")
	if idx < 0 || !strings.HasSuffix(expr, ")]") {
		return false, false
	}
	pathPart := strings.TrimSpace(expr[:idx])
	if !strings.HasPrefix(pathPart, "@") {
		return false, false
	}
	sub := expr[idx+3 : len(expr)-2]
	arr, found := resolveAccess(ctx, pathPart, reg)
	if !found || !arr.IsArray() {
		return true, false
	}
	elems, _ := arr.GetArray()
	for _, el := range elems {
		if Evaluate(sub, el, reg) {
			return true, true
		}
	}
	return true, false
}

// tryRegexMatch handles "@.prop =~ /pattern/".
func tryRegexMatch(expr string, ctx jsonvalue.Value, reg *Registry) (applied, result bool) {
	idx := findTopLevel(expr, "=~")
	if idx < 0 {
		return false, false
	}
	left := strings.TrimSpace(expr[:idx])
	right := strings.TrimSpace(expr[idx+2:])
	if len(right) < 2 || right[0] != '/' || right[len(right)-1] != '/' {
		return true, false
	}
	val, found := resolveAccess(ctx, left, reg)
	if !found {
		return true, false
	}
	s, ok := val.GetString()
	if !ok {
		return true, false
	}
	re, err := regexp.Compile(right[1 : len(right)-1])
	if err != nil {
		return true, false
	}
	return true, re.MatchString(s)
}

// tryMembership handles "'value' in @.prop".
func tryMembership(expr string, ctx jsonvalue.Value, reg *Registry) (applied, result bool) {
	idx := findTopLevel(expr, " in ")
	if idx < 0 {
		return false, false
	}
	litPart := strings.TrimSpace(expr[:idx])
	accessPart := strings.TrimSpace(expr[idx+4:])
	if !strings.HasPrefix(accessPart, "@") {
		return false, false
	}
	lit, ok := parseLiteral(litPart)
	if !ok || !lit.IsString() {
		return true, false
	}
	target, found := resolveAccess(ctx, accessPart, reg)
	if !found || !target.IsArray() {
		return true, false
	}
	want, _ := lit.GetString()
	elems, _ := target.GetArray()
	for _, e := range elems {
		if s, ok := e.GetString(); ok && s == want {
			return true, true
		}
	}
	return true, false
}

// tryComparison handles the fallback "@access [op literal]" form,
// including the bare-access existence check when no operator is present.
func tryComparison(expr string, ctx jsonvalue.Value, reg *Registry) bool {
	accessPart := strings.TrimSpace(expr)
	var op, rhsText string
	if idx, o, ok := findComparisonOp(expr); ok {
		op = o
		accessPart = strings.TrimSpace(expr[:idx])
		rhsText = strings.TrimSpace(expr[idx+len(o):])
	}
	if !strings.HasPrefix(accessPart, "@") {
		return false
	}
	val, found := resolveAccess(ctx, accessPart, reg)
	if op == "" {
		return found
	}
	if !found {
		return false
	}
	rhs, ok := parseLiteral(rhsText)
	if !ok {
		return false
	}
	return compareValues(val, rhs, op)
}

// resolveAccess walks a "@"-rooted access expression (dot and bracket
// notation, with an optional terminal "name()" method call) against ctx.
// It reports false whenever any segment does not exist, distinguishing a
// genuinely absent key from one present with a null value.
func resolveAccess(ctx jsonvalue.Value, expr string, reg *Registry) (jsonvalue.Value, bool) {
	if !strings.HasPrefix(expr, "@") {
		return jsonvalue.Value{}, false
	}
	rest := expr[1:]
	cur := ctx
	for len(rest) > 0 {
		switch {
		case strings.HasPrefix(rest, "."):
			rest = rest[1:]
			i := 0
			for i < len(rest) && isNameByte(rest[i]) {
				i++
			}
			if i == 0 {
				return jsonvalue.Value{}, false
			}
			name := rest[:i]
			rest = rest[i:]
			if strings.HasPrefix(rest, "()") {
				rest = rest[2:]
				val, ok := applyMethod(cur, name, reg)
				if !ok {
					return jsonvalue.Value{}, false
				}
				cur = val
				continue
			}
			if !cur.IsObject() || !cur.Contains(name) {
				return jsonvalue.Value{}, false
			}
			cur = cur.Field(name)
		case strings.HasPrefix(rest, "["):
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return jsonvalue.Value{}, false
			}
			tok := strings.Trim(rest[1:end], "'\"")
			rest = rest[end+1:]
			if !cur.IsObject() || !cur.Contains(tok) {
				return jsonvalue.Value{}, false
			}
			cur = cur.Field(tok)
		default:
			return jsonvalue.Value{}, false
		}
	}
	return cur, true
}

func isNameByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// applyMethod resolves a terminal "name()" call on cur: the three
// built-in methods (length, max, sum, the last with its preserved
// string-length quirk) plus any method registered in reg (falling back to
// [DefaultRegistry] when reg is nil).
func applyMethod(cur jsonvalue.Value, name string, reg *Registry) (jsonvalue.Value, bool) {
	switch name {
	case "length":
		switch {
		case cur.IsString():
			s, _ := cur.GetString()
			return jsonvalue.Int(int64(len(s))), true
		case cur.IsArray(), cur.IsObject():
			return jsonvalue.Int(int64(cur.Size())), true
		default:
			return jsonvalue.Value{}, false
		}
	case "max":
		if !cur.IsArray() {
			return jsonvalue.Value{}, false
		}
		elems, _ := cur.GetArray()
		if len(elems) == 0 {
			return jsonvalue.Value{}, false
		}
		max := elems[0].ToDouble(math.Inf(-1))
		for _, e := range elems[1:] {
			if d := e.ToDouble(math.Inf(-1)); d > max {
				max = d
			}
		}
		return jsonvalue.Float(max), true
	case "sum":
		// Preserved quirk: sum() on a string returns the string length.
		if cur.IsString() {
			s, _ := cur.GetString()
			return jsonvalue.Int(int64(len(s))), true
		}
		if !cur.IsArray() {
			return jsonvalue.Value{}, false
		}
		elems, _ := cur.GetArray()
		total := 0.0
		for _, e := range elems {
			total += e.ToDouble(0)
		}
		return jsonvalue.Float(total), true
	default:
		if reg == nil {
			reg = DefaultRegistry
		}
		if fn, ok := reg.lookup(name); ok {
			return fn(cur)
		}
		return jsonvalue.Value{}, false
	}
}

// parseLiteral parses a filter right-hand-side literal: a quoted string,
// true/false/null, or a number.
func parseLiteral(s string) (jsonvalue.Value, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return jsonvalue.Str(s[1 : len(s)-1]), true
	}
	switch s {
	case "true":
		return jsonvalue.Bool(true), true
	case "false":
		return jsonvalue.Bool(false), true
	case "null":
		return jsonvalue.Null(), true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return jsonvalue.Int(n), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return jsonvalue.Float(f), true
	}
	return jsonvalue.Value{}, false
}

// compareValues applies op to left and right per §4.8: string comparisons
// are lexicographic, numeric comparisons widen to double with an
// absolute equality tolerance, bool/null only support equality, and
// cross-type comparisons are unequal (equal only never).
func compareValues(left, right jsonvalue.Value, op string) bool {
	switch {
	case left.IsString() && right.IsString():
		ls, _ := left.GetString()
		rs, _ := right.GetString()
		switch op {
		case "==":
			return ls == rs
		case "!=":
			return ls != rs
		case "<":
			return ls < rs
		case "<=":
			return ls <= rs
		case ">":
			return ls > rs
		case ">=":
			return ls >= rs
		}
	case left.IsNumber() && right.IsNumber():
		lf, _ := left.GetNumber()
		rf, _ := right.GetNumber()
		switch op {
		case "==":
			return math.Abs(lf-rf) <= floatTolerance
		case "!=":
			return math.Abs(lf-rf) > floatTolerance
		case "<":
			return lf < rf
		case "<=":
			return lf <= rf
		case ">":
			return lf > rf
		case ">=":
			return lf >= rf
		}
	case left.IsBool() && right.IsBool():
		lb, _ := left.GetBool()
		rb, _ := right.GetBool()
		switch op {
		case "==":
			return lb == rb
		case "!=":
			return lb != rb
		}
	case left.IsNull() && right.IsNull():
		return op == "=="
	default:
		return op == "!="
	}
	return false
}
