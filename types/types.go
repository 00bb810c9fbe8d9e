// Package types classifies host values and compares and hashes them
// structurally, treating persistent lists and their pair-shaped host
// equivalents as the same sequence.
package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
	"iter"
	"math"
	"reflect"

	"github.com/dball/huet/list"
	"github.com/dball/huet/runtime"
	"github.com/fatih/structs"
	"github.com/spaolacci/murmur3"
)

// IsListLike is true for a host sequence that has the shape of a list in
// pair form: empty, or a head and a list-like tail.
func IsListLike(value any) bool {
	if Classify(value) != Sequence {
		return false
	}
	switch Len(value) {
	case 0:
		return true
	case 2:
		tail, _ := runtime.Nth(Elements(value), 1)
		return list.IsList(tail) || IsListLike(tail)
	default:
		return false
	}
}

// listView iterates a list, or a list-like host value decoded from pair form
func listView(value any) (iter.Seq[any], bool) {
	if l, valid := value.(list.Listed); valid {
		return l.Values(), true
	}
	if !IsListLike(value) {
		return nil, false
	}
	return func(yield func(any) bool) {
		current := value
		for {
			if l, valid := current.(list.Listed); valid {
				for item := range l.Values() {
					if !yield(item) {
						return
					}
				}
				return
			}
			if Len(current) == 0 {
				return
			}
			pair := runtime.IntoSlice(Elements(current))
			if !yield(pair[0]) {
				return
			}
			current = pair[1]
		}
	}, true
}

// Equals compares two sequences structurally. Lists and list-like host values
// compare element by element regardless of representation; a list never
// equals a value that is not list-like. Values that are neither fall back to
// DeepEqual.
func Equals(this any, that any) bool {
	thisSeq, thisValid := listView(this)
	thatSeq, thatValid := listView(that)
	switch {
	case thisValid && thatValid:
		return runtime.Equal(thisSeq, thatSeq, equalItems)
	case thisValid || thatValid:
		return false
	default:
		return DeepEqual(this, that)
	}
}

func equalItems(this any, that any) bool {
	if list.IsList(this) || list.IsList(that) || IsListLike(this) || IsListLike(that) {
		return Equals(this, that)
	}
	return DeepEqual(this, that)
}

// DeepEqual compares values by content. Two nils are equal, byte slices
// compare bytewise, numbers compare by value across widths, maps and sets
// ignore order, records compare by exported field and may equal the
// map[string]any they convert to, and any value containing a list defers to
// Equals.
func DeepEqual(this any, that any) bool {
	if isNil(this) || isNil(that) {
		return isNil(this) && isNil(that)
	}
	if list.IsList(this) || list.IsList(that) {
		return Equals(this, that)
	}
	if thisBytes, valid := this.([]byte); valid {
		thatBytes, valid := that.([]byte)
		return valid && bytes.Equal(thisBytes, thatBytes)
	}
	if equal, numeric := numbersEqual(this, that); numeric {
		return equal
	}
	thisKind, thatKind := Classify(this), Classify(that)
	switch {
	case thisKind == Sequence && thatKind == Sequence:
		return Len(this) == Len(that) && runtime.Equal(Elements(this), Elements(that), DeepEqual)
	case thisKind == Set && thatKind == Set:
		return Len(this) == Len(that) && runtime.All(Members(this), func(member any) bool {
			return runtime.Some(Members(that), func(other any) bool { return DeepEqual(member, other) })
		})
	case isKeyedOrRecord(thisKind) && isKeyedOrRecord(thatKind):
		if thisKind != thatKind && !recordMatchesMap(this, that) {
			return false
		}
		return Len(this) == Len(that) && allEntries(this, func(k, v any) bool {
			return someEntry(that, func(k2, v2 any) bool { return DeepEqual(k, k2) && DeepEqual(v, v2) })
		})
	case thisKind != thatKind:
		return false
	}
	if reflect.TypeOf(this) != reflect.TypeOf(that) {
		return false
	}
	return reflect.DeepEqual(this, that)
}

func isKeyedOrRecord(kind Kind) bool {
	return kind == Keyed || kind == Record
}

// a record only equals a map keyed by strings
func recordMatchesMap(this any, that any) bool {
	for _, v := range []any{this, that} {
		if Classify(v) != Keyed {
			continue
		}
		t := reflect.TypeOf(v)
		if t.Kind() != reflect.Map || t.Key().Kind() != reflect.String {
			return false
		}
	}
	return true
}

func allEntries(value any, pred func(k, v any) bool) bool {
	for k, v := range Entries(value) {
		if !pred(k, v) {
			return false
		}
	}
	return true
}

func someEntry(value any, pred func(k, v any) bool) bool {
	return !allEntries(value, func(k, v any) bool { return !pred(k, v) })
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		// nil lists and nil slices are empty sequences, not absent values
		if rv.Kind() == reflect.Slice || list.IsList(value) {
			return false
		}
		return rv.IsNil()
	}
	return false
}

type number struct {
	kind reflect.Kind
	i    int64
	u    uint64
	f    float64
}

func asNumber(value any) (number, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: reflect.Int64, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: reflect.Uint64, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: reflect.Float64, f: rv.Float()}, true
	}
	return number{}, false
}

func (n number) float() float64 {
	switch n.kind {
	case reflect.Int64:
		return float64(n.i)
	case reflect.Uint64:
		return float64(n.u)
	default:
		return n.f
	}
}

func numbersEqual(this any, that any) (bool, bool) {
	thisNum, thisValid := asNumber(this)
	thatNum, thatValid := asNumber(that)
	if !thisValid || !thatValid {
		return false, thisValid || thatValid
	}
	switch {
	case thisNum.kind == reflect.Int64 && thatNum.kind == reflect.Int64:
		return thisNum.i == thatNum.i, true
	case thisNum.kind == reflect.Uint64 && thatNum.kind == reflect.Uint64:
		return thisNum.u == thatNum.u, true
	case thisNum.kind == reflect.Int64 && thatNum.kind == reflect.Uint64:
		return thisNum.i >= 0 && uint64(thisNum.i) == thatNum.u, true
	case thisNum.kind == reflect.Uint64 && thatNum.kind == reflect.Int64:
		return thatNum.i >= 0 && thisNum.u == uint64(thatNum.i), true
	default:
		return thisNum.float() == thatNum.float(), true
	}
}

func hashAnyValue(h hash.Hash32, value any) {
	if isNil(value) {
		h.Write([]byte{0})
		return
	}
	if items, valid := listView(value); valid {
		h.Write([]byte("("))
		for item := range items {
			hashAnyValue(h, item)
		}
		h.Write([]byte(")"))
		return
	}
	if n, valid := asNumber(value); valid {
		b := make([]byte, 9)
		b[0] = '#'
		f := n.float()
		if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
			binary.LittleEndian.PutUint64(b[1:], uint64(int64(f)))
		} else {
			binary.LittleEndian.PutUint64(b[1:], math.Float64bits(f))
		}
		h.Write(b)
		return
	}
	switch v := value.(type) {
	case []byte:
		h.Write(append([]byte("b"), v...))
		return
	case string:
		h.Write(append([]byte(v), '"'))
		return
	case Symbol:
		h.Write(append([]byte(v), '\''))
		return
	case Keyword:
		h.Write(append([]byte(v), ':'))
		return
	case bool:
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{2})
		}
		return
	}
	switch Classify(value) {
	case Sequence:
		h.Write([]byte("["))
		for item := range Elements(value) {
			hashAnyValue(h, item)
		}
		h.Write([]byte("]"))
	case Set:
		h.Write([]byte("#{}"))
		writeUnordered(h, runtime.Reduce(Members(value), uint32(0), func(sum uint32, member any) uint32 {
			return sum + Hash(member)
		}))
	case Keyed, Record:
		h.Write([]byte("{}"))
		var sum uint32
		for k, v := range Entries(value) {
			sum += Hash(k)*31 + Hash(v)
		}
		writeUnordered(h, sum)
	default:
		// equal leaves share a type, so the type name is a safe if coarse hash
		h.Write([]byte(fmt.Sprintf("%T", value)))
	}
}

func writeUnordered(h hash.Hash32, sum uint32) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, sum)
	h.Write(b)
}

// Hash computes a murmur3 hash of the given value that agrees with Equals
// and DeepEqual: equal values hash the same
func Hash(value any) uint32 {
	h := murmur3.New32()
	hashAnyValue(h, value)
	return h.Sum32()
}

// Hasher lets lists and other structured values key an immutable.Map
type Hasher struct{}

// Hash hashes a key
func (Hasher) Hash(key interface{}) uint32 {
	return Hash(key)
}

// Equal compares keys
func (Hasher) Equal(a, b interface{}) bool {
	return DeepEqual(a, b)
}

// Fields returns the exported fields of a record keyed by name
func Fields(value any) map[string]any {
	if Classify(value) != Record {
		return nil
	}
	return structs.Map(value)
}
