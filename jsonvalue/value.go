package jsonvalue

import (
	"fmt"

	"golang.org/x/exp/maps"
)

// Kind identifies which of the six JSON variants a Value holds.
type Kind uint8

//revive:disable:exported
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a short name for k.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// object is an insertion-ordered string-keyed map. Parsed objects iterate
// in the order their keys first appeared; serialization may reorder via
// SerializeOptions.SortKeys.
type object struct {
	keys []string
	vals map[string]*Value
}

func newObject() *object {
	return &object{vals: make(map[string]*Value)}
}

func (o *object) get(key string) (*Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

func (o *object) set(key string, v Value) {
	if existing, ok := o.vals[key]; ok {
		*existing = v
		return
	}
	o.keys = append(o.keys, key)
	cp := v
	o.vals[key] = &cp
}

func (o *object) delete(key string) bool {
	if _, ok := o.vals[key]; !ok {
		return false
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

func (o *object) clone() *object {
	n := &object{keys: append([]string(nil), o.keys...), vals: make(map[string]*Value, len(o.vals))}
	for k, v := range o.vals {
		cp := v.Clone()
		n.vals[k] = &cp
	}
	return n
}

// sortedKeys returns o's keys sorted by code point, leaving insertion order
// untouched.
func (o *object) sortedKeys() []string {
	keys := maps.Keys(o.vals)
	sortStrings(keys)
	return keys
}

// nullValue is the shared immutable sentinel returned by out-of-range or
// missing-key reads. Callers must never observe a mutation of it — readers
// only ever receive a copy.
var nullValue = Value{kind: KindNull}

// Value is the tagged union representing any JSON node: null, bool,
// number, string, array, or object.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  string
	arr  []Value
	obj  *object
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Value wrapping b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a Value wrapping an Integer-tagged Number.
func Int(i int64) Value { return Value{kind: KindNumber, num: NewInt(i)} }

// Float returns a Value wrapping a Double-tagged Number.
func Float(f float64) Value { return Value{kind: KindNumber, num: NewFloat(f)} }

// Num returns a Value wrapping n directly.
func Num(n Number) Value { return Value{kind: KindNumber, num: n} }

// Str returns a Value wrapping s.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Arr returns an array Value containing a copy of elems.
func Arr(elems ...Value) Value {
	return Value{kind: KindArray, arr: append([]Value(nil), elems...)}
}

// Obj returns an empty object Value.
func Obj() Value {
	return Value{kind: KindObject, obj: newObject()}
}

// Kind returns v's variant tag.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsInteger returns true if v is a Number holding an Integer tag.
func (v Value) IsInteger() bool { return v.kind == KindNumber && v.num.IsInteger() }

// IsDouble returns true if v is a Number holding a Double tag.
func (v Value) IsDouble() bool { return v.kind == KindNumber && v.num.IsDouble() }

// IsNaN returns true if v is a Number that is NaN.
func (v Value) IsNaN() bool { return v.kind == KindNumber && v.num.IsNaN() }

// IsInfinity returns true if v is a Number that is ±∞.
func (v Value) IsInfinity() bool { return v.kind == KindNumber && v.num.IsInfinity() }

// IsFinite returns true unless v is a non-finite Number. Non-numbers are
// considered finite.
func (v Value) IsFinite() bool { return v.kind != KindNumber || v.num.IsFinite() }

// GetBool returns v's boolean value and true when v IsBool, else
// (false, false).
func (v Value) GetBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// GetNumber returns v's double value and true when v IsNumber, else
// (0, false).
func (v Value) GetNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num.AsDouble(), true
}

// GetInteger returns v's integer value and true when v IsNumber and its
// Number converts losslessly to an integer, else (0, false).
func (v Value) GetInteger() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num.AsInteger()
}

// GetString returns v's string and true when v IsString, else ("", false).
func (v Value) GetString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// GetArray returns v's elements and true when v IsArray, else (nil, false).
// The returned slice aliases v's storage; callers must not mutate it.
func (v Value) GetArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// GetObject returns v's keys, in insertion order, and true when v IsObject,
// else (nil, false).
func (v Value) GetObject() ([]string, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return append([]string(nil), v.obj.keys...), true
}

// ToBool returns v's boolean value or def if v is not a bool.
func (v Value) ToBool(def bool) bool {
	if b, ok := v.GetBool(); ok {
		return b
	}
	return def
}

// ToInt returns v's integer value or def if unavailable.
func (v Value) ToInt(def int) int {
	if i, ok := v.GetInteger(); ok {
		return int(i)
	}
	return def
}

// ToLongLong returns v's integer value or def if unavailable.
func (v Value) ToLongLong(def int64) int64 {
	if i, ok := v.GetInteger(); ok {
		return i
	}
	return def
}

// ToDouble returns v's double value or def if v is not a number.
func (v Value) ToDouble(def float64) float64 {
	if f, ok := v.GetNumber(); ok {
		return f
	}
	return def
}

// ToString returns v's string value or def if v is not a string.
func (v Value) ToString(def string) string {
	if s, ok := v.GetString(); ok {
		return s
	}
	return def
}

// Size returns the element count for Array and key count for Object, else
// 0.
func (v Value) Size() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj.keys)
	default:
		return 0
	}
}

// Empty reports whether Size() == 0.
func (v Value) Empty() bool { return v.Size() == 0 }

// Append adds elem to v's array, converting v to an empty array first if it
// is not already an array.
func (v *Value) Append(elem Value) {
	if v.kind != KindArray {
		*v = Value{kind: KindArray}
	}
	v.arr = append(v.arr, elem)
}

// Index returns a copy of the element at i. Reading out of range returns
// the shared null sentinel; it never panics. Writes go through
// [Value.SetIndex], which grows the array (filling with null).
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return nullValue
	}
	return v.arr[i]
}

// SetIndex writes val at index i, converting v to an array first if
// necessary and growing it (with null padding) if i is out of range.
func (v *Value) SetIndex(i int, val Value) {
	if v.kind != KindArray {
		*v = Value{kind: KindArray}
	}
	if i < 0 {
		return
	}
	for len(v.arr) <= i {
		v.arr = append(v.arr, Null())
	}
	v.arr[i] = val
}

// Field returns a copy of the value at key, or the shared null
// sentinel if v is not an object or the key is absent. It never panics.
func (v Value) Field(key string) Value {
	if v.kind != KindObject {
		return nullValue
	}
	if val, ok := v.obj.get(key); ok {
		return *val
	}
	return nullValue
}

// SetField inserts or replaces key with val, converting v to an empty
// object first if it is not already one.
func (v *Value) SetField(key string, val Value) {
	if v.kind != KindObject {
		*v = Value{kind: KindObject, obj: newObject()}
	}
	v.obj.set(key, val)
}

// Contains reports whether v is an object containing key.
func (v Value) Contains(key string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj.get(key)
	return ok
}

// Erase removes key from v and reports whether it was present. A no-op
// (returns false) unless v is an object.
func (v *Value) Erase(key string) bool {
	if v.kind != KindObject {
		return false
	}
	return v.obj.delete(key)
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = e.Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.clone()}
	default:
		return v
	}
}

// Equal reports whether v and other are structurally and value-equal.
// Numbers compare numerically across tags; NaN is never equal to anything.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num.Equal(other.num)
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj.keys) != len(other.obj.keys) {
			return false
		}
		for _, k := range v.obj.keys {
			a, ok := v.obj.get(k)
			if !ok {
				continue
			}
			b, ok := other.obj.get(k)
			if !ok || !a.Equal(*b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// GoString supports %#v debug formatting.
func (v Value) GoString() string {
	return fmt.Sprintf("jsonvalue.Value{%s: %s}", v.kind, v.String())
}
