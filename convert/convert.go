// Package convert moves values between host collections and persistent
// lists, optionally at every depth.
package convert

import (
	"reflect"

	"github.com/benbjohnson/immutable"
	"github.com/dball/huet/list"
	"github.com/dball/huet/runtime"
	"github.com/dball/huet/types"
)

var (
	anyType     = reflect.TypeOf((*any)(nil)).Elem()
	emptyStruct = reflect.ValueOf(struct{}{})
)

// ToList converts a host sequence or list into a list of its top-level items.
// Other values are not sequences and return false.
func ToList(value any) (*list.List[any], bool) {
	switch types.Classify(value) {
	case types.List:
		if l, valid := value.(*list.List[any]); valid {
			if l == nil {
				return list.Empty[any](), true
			}
			return l, true
		}
		fallthrough
	case types.Sequence:
		return list.FromSlice(runtime.IntoSlice(types.Elements(value))), true
	default:
		return nil, false
	}
}

// NestedToList converts a host sequence into a list. When recursive, every
// sequence found at any depth is converted too, including those held by
// maps, sets and records; maps keep their key type and records become
// map[string]any. Without recursive, only a top-level sequence is converted.
// Leaves, and kinds the classification does not know, come back unchanged.
// The input is never modified.
func NestedToList(value any, recursive bool) any {
	convertItem := func(item any) any { return item }
	if recursive {
		convertItem = func(item any) any { return NestedToList(item, true) }
	}
	switch types.Classify(value) {
	case types.Sequence:
		return list.FromSlice(runtime.IntoSlice(runtime.Map(types.Elements(value), convertItem)))
	case types.List:
		if l, valid := value.(*list.List[any]); valid && !recursive && l != nil {
			return l
		}
		return list.FromSlice(runtime.IntoSlice(runtime.Map(types.Elements(value), convertItem)))
	case types.Keyed:
		if !recursive {
			return value
		}
		return mapValues(value, convertItem)
	case types.Set:
		if !recursive {
			return value
		}
		return mapMembers(value, convertItem)
	case types.Record:
		if !recursive {
			return value
		}
		fields := types.Fields(value)
		converted := make(map[string]any, len(fields))
		for k, v := range fields {
			converted[k] = NestedToList(v, true)
		}
		return converted
	default:
		return value
	}
}

// SequencesToList converts a host sequence into a list, along with every
// sequence reachable from it through sequences and lists. Maps, sets and
// records are leaves: they come back unchanged, whatever they hold.
func SequencesToList(value any) any {
	switch types.Classify(value) {
	case types.Sequence, types.List:
		return list.FromSlice(runtime.IntoSlice(runtime.Map(types.Elements(value), SequencesToList)))
	default:
		return value
	}
}

// ToSliceNested replaces every list found at any depth with a []any of its
// items. Containers holding no lists are returned as they are; those that do
// are rebuilt: sequences as []any, maps with their key type and any values,
// records as map[string]any, and sets as map[any]struct{} whose list members
// become [N]any arrays so they stay hashable.
func ToSliceNested(value any) any {
	switch types.Classify(value) {
	case types.List:
		items := make([]any, 0, types.Len(value))
		for item := range types.Elements(value) {
			items = append(items, ToSliceNested(item))
		}
		return items
	case types.Sequence:
		if !containsList(value) {
			return value
		}
		if _, valid := value.(*immutable.List); valid {
			b := immutable.NewListBuilder(immutable.NewList())
			for item := range types.Elements(value) {
				b.Append(ToSliceNested(item))
			}
			return b.List()
		}
		return runtime.IntoSlice(runtime.Map(types.Elements(value), ToSliceNested))
	case types.Keyed:
		if !containsList(value) {
			return value
		}
		return mapValues(value, ToSliceNested)
	case types.Set:
		if !containsList(value) {
			return value
		}
		return mapMembers(value, toArrayNested)
	case types.Record:
		if !containsList(value) {
			return value
		}
		fields := types.Fields(value)
		converted := make(map[string]any, len(fields))
		for k, v := range fields {
			converted[k] = ToSliceNested(v)
		}
		return converted
	default:
		return value
	}
}

// toArrayNested is ToSliceNested for values that must stay comparable
func toArrayNested(value any) any {
	if !list.IsList(value) {
		return ToSliceNested(value)
	}
	items := runtime.IntoSlice(types.Elements(value))
	array := reflect.New(reflect.ArrayOf(len(items), anyType)).Elem()
	for i, item := range items {
		array.Index(i).Set(anyValue(toArrayNested(item)))
	}
	return array.Interface()
}

func containsList(value any) bool {
	switch types.Classify(value) {
	case types.List:
		return true
	case types.Sequence:
		return runtime.Some(types.Elements(value), containsList)
	case types.Set:
		return runtime.Some(types.Members(value), containsList)
	case types.Keyed, types.Record:
		for k, v := range types.Entries(value) {
			if containsList(k) || containsList(v) {
				return true
			}
		}
	}
	return false
}

// mapValues rebuilds a keyed value with the same keys and converted values
func mapValues(value any, convertItem func(any) any) any {
	if m, valid := value.(*immutable.Map); valid {
		b := immutable.NewMapBuilder(immutable.NewMap(types.Hasher{}))
		for k, v := range types.Entries(m) {
			b.Set(k, convertItem(v))
		}
		return b.Map()
	}
	rv := reflect.ValueOf(value)
	converted := reflect.MakeMapWithSize(reflect.MapOf(rv.Type().Key(), anyType), rv.Len())
	itr := rv.MapRange()
	for itr.Next() {
		converted.SetMapIndex(itr.Key(), anyValue(convertItem(itr.Value().Interface())))
	}
	return converted.Interface()
}

// mapMembers rebuilds a set with converted members. A member whose
// conversion is not hashable is kept as it was.
func mapMembers(value any, convertItem func(any) any) any {
	rv := reflect.ValueOf(value)
	converted := reflect.MakeMapWithSize(reflect.MapOf(anyType, emptyStruct.Type()), rv.Len())
	itr := rv.MapRange()
	for itr.Next() {
		member := itr.Key().Interface()
		convertedMember := convertItem(member)
		if convertedMember != nil && !reflect.TypeOf(convertedMember).Comparable() {
			convertedMember = member
		}
		converted.SetMapIndex(anyValue(convertedMember), emptyStruct)
	}
	return converted.Interface()
}

func anyValue(value any) reflect.Value {
	if value == nil {
		return reflect.Zero(anyType)
	}
	return reflect.ValueOf(value)
}
