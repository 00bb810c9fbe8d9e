package types

import (
	"iter"
	"reflect"

	"github.com/benbjohnson/immutable"
	"github.com/dball/huet/list"
	"github.com/fatih/structs"
)

// Kind classifies values by how nested conversion and equality recurse into them
type Kind int

const (
	// Leaf values are never recursed into
	Leaf Kind = iota
	// Sequence is an ordered host collection: slices, arrays, immutable lists
	Sequence
	// Keyed is a key to value host collection: maps, immutable maps
	Keyed
	// Set is a map whose values carry no information, map[K]struct{}
	Set
	// Record is a struct with exported fields
	Record
	// List is a persistent list
	List
)

func (kind Kind) String() string {
	switch kind {
	case Sequence:
		return "sequence"
	case Keyed:
		return "keyed"
	case Set:
		return "set"
	case Record:
		return "record"
	case List:
		return "list"
	default:
		return "leaf"
	}
}

var emptyStruct = reflect.TypeOf(struct{}{})

// Classify determines the kind of a value
func Classify(value any) Kind {
	switch v := value.(type) {
	case nil:
		return Leaf
	case list.Listed:
		return List
	case *immutable.List:
		if v == nil {
			return Leaf
		}
		return Sequence
	case *immutable.Map:
		if v == nil {
			return Leaf
		}
		return Keyed
	case []byte, string, Symbol, Keyword:
		return Leaf
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return Sequence
	case reflect.Map:
		if rv.Type().Elem() == emptyStruct {
			return Set
		}
		return Keyed
	case reflect.Struct:
		if len(structs.Fields(value)) > 0 {
			return Record
		}
	case reflect.Ptr:
		if !rv.IsNil() && rv.Elem().Kind() == reflect.Struct && len(structs.Fields(value)) > 0 {
			return Record
		}
	}
	return Leaf
}

// IsSequence is true for ordered host collections; lists are not host collections
func IsSequence(value any) bool { return Classify(value) == Sequence }

// IsKeyed is true for maps
func IsKeyed(value any) bool { return Classify(value) == Keyed }

// IsSet is true for map[K]struct{}
func IsSet(value any) bool { return Classify(value) == Set }

// IsRecord is true for structs with exported fields
func IsRecord(value any) bool { return Classify(value) == Record }

// Len counts the items of a sequence, list, map, set or record; leaves have none
func Len(value any) int {
	switch v := value.(type) {
	case list.Listed:
		return v.Len()
	case *immutable.List:
		if v == nil {
			return 0
		}
		return v.Len()
	case *immutable.Map:
		if v == nil {
			return 0
		}
		return v.Len()
	}
	switch Classify(value) {
	case Sequence, Keyed, Set:
		return reflect.ValueOf(value).Len()
	case Record:
		return len(structs.Map(value))
	default:
		return 0
	}
}

// Elements iterates the items of a sequence or list
func Elements(value any) iter.Seq[any] {
	return func(yield func(any) bool) {
		switch v := value.(type) {
		case list.Listed:
			for item := range v.Values() {
				if !yield(item) {
					return
				}
			}
			return
		case *immutable.List:
			if v == nil {
				return
			}
			itr := v.Iterator()
			for !itr.Done() {
				_, item := itr.Next()
				if !yield(item) {
					return
				}
			}
			return
		}
		if Classify(value) != Sequence {
			return
		}
		rv := reflect.ValueOf(value)
		for i := 0; i < rv.Len(); i++ {
			if !yield(rv.Index(i).Interface()) {
				return
			}
		}
	}
}

// Entries iterates the key value pairs of a keyed value or record. Records
// are keyed by field name.
func Entries(value any) iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		if m, valid := value.(*immutable.Map); valid {
			if m == nil {
				return
			}
			itr := m.Iterator()
			for !itr.Done() {
				k, v := itr.Next()
				if !yield(k, v) {
					return
				}
			}
			return
		}
		switch Classify(value) {
		case Keyed:
			itr := reflect.ValueOf(value).MapRange()
			for itr.Next() {
				if !yield(itr.Key().Interface(), itr.Value().Interface()) {
					return
				}
			}
		case Record:
			for k, v := range structs.Map(value) {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Members iterates the members of a set
func Members(value any) iter.Seq[any] {
	return func(yield func(any) bool) {
		if Classify(value) != Set {
			return
		}
		itr := reflect.ValueOf(value).MapRange()
		for itr.Next() {
			if !yield(itr.Key().Interface()) {
				return
			}
		}
	}
}
