package exec

import "github.com/theory/jsonengine/jsonpath/ast"

// SliceBounds resolves a Slice's Start/End/Step against an array of the
// given length into a concrete (start, end, step) triple ready to drive a
// for loop, applying the default-bound and clamping rules: forward slices
// default to [0, length) and clamp into that range; reverse slices default
// to [length-1, -1] and clamp into [-1, length-1], so that the "no end" nil
// sentinel and any end below -length stop just before index 0. An explicit
// -1 end bound is normalized like any other negative bound, to length-1.
// Exported for reuse by the lazy generator, which
// needs the same bounds to iterate a slice one index at a time.
func SliceBounds(s ast.Slice, length int) (start, end, step int, ok bool) {
	step = s.Step
	if step == 0 {
		return 0, 0, 0, false
	}

	if step > 0 {
		if s.Start != nil {
			start = normalize(*s.Start, length)
		} else {
			start = 0
		}
		if s.End != nil {
			end = normalize(*s.End, length)
		} else {
			end = length
		}
		start = clamp(start, 0, length)
		end = clamp(end, 0, length)
		return start, end, step, true
	}

	if s.Start != nil {
		start = normalize(*s.Start, length)
	} else {
		start = length - 1
	}
	if s.End != nil {
		end = normalize(*s.End, length)
	} else {
		end = -1
	}
	start = clamp(start, -1, length-1)
	end = clamp(end, -1, length-1)
	return start, end, step, true
}

func normalize(i, length int) int {
	if i < 0 {
		return i + length
	}
	return i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func applySlice(n ast.Slice, in []candidate) []candidate {
	var out []candidate
	for _, c := range in {
		cur := c.get()
		if !cur.IsArray() {
			continue
		}
		start, end, step, ok := SliceBounds(n, cur.Size())
		if !ok {
			continue
		}
		if step > 0 {
			for i := start; i < end; i += step {
				out = append(out, childIndex(c, i))
			}
		} else {
			for i := start; i > end; i += step {
				out = append(out, childIndex(c, i))
			}
		}
	}
	return out
}
