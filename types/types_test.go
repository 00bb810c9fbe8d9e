package types_test

import (
	"testing"
	"time"

	"github.com/benbjohnson/immutable"
	"github.com/dball/huet/list"
	"github.com/dball/huet/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int
	Y int
}

type hidden struct {
	x int
}

func pairs(items ...any) any {
	var result any = []any{}
	for i := len(items) - 1; i >= 0; i-- {
		result = []any{items[i], result}
	}
	return result
}

func TestClassify(t *testing.T) {
	var nilImmutable *immutable.List
	cases := []struct {
		name  string
		value any
		kind  types.Kind
	}{
		{"nil", nil, types.Leaf},
		{"int", 42, types.Leaf},
		{"string", "abc", types.Leaf},
		{"bytes", []byte("abc"), types.Leaf},
		{"keyword", types.Keyword("a"), types.Leaf},
		{"time", time.Time{}, types.Leaf},
		{"unexported struct", hidden{x: 1}, types.Leaf},
		{"func", func() {}, types.Leaf},
		{"slice", []int{1}, types.Sequence},
		{"array", [2]string{"a", "b"}, types.Sequence},
		{"immutable list", immutable.NewList(), types.Sequence},
		{"nil immutable list", nilImmutable, types.Leaf},
		{"map", map[string]int{}, types.Keyed},
		{"immutable map", immutable.NewMap(nil), types.Keyed},
		{"set", map[int]struct{}{}, types.Set},
		{"record", point{1, 2}, types.Record},
		{"record pointer", &point{1, 2}, types.Record},
		{"list", list.New(1), types.List},
		{"empty list", list.Empty[any](), types.List},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.kind, types.Classify(tc.value), tc.kind.String())
		})
	}
}

func TestLenAndElements(t *testing.T) {
	imm := immutable.NewList().Append(1).Append(2)
	require.Equal(t, 2, types.Len(imm))
	require.Equal(t, []any{1, 2}, collect(types.Elements(imm)))
	require.Equal(t, []any{"a", "b"}, collect(types.Elements([2]string{"a", "b"})))
	require.Equal(t, []any{1, 2}, collect(types.Elements(list.New(1, 2))))
	require.Empty(t, collect(types.Elements(42)))
	require.Equal(t, 2, types.Len(point{}))
	require.Equal(t, 0, types.Len("abc"))
	require.Equal(t, map[string]any{"X": 1, "Y": 2}, types.Fields(point{1, 2}))
}

func collect(seq func(func(any) bool)) []any {
	var items []any
	for item := range seq {
		items = append(items, item)
	}
	return items
}

func TestIsListLike(t *testing.T) {
	cases := []struct {
		value    any
		listLike bool
	}{
		{[]any{}, true},
		{[]int{}, true},
		{pairs(1), true},
		{pairs(1, 2, 3), true},
		{[]any{1, list.New(2)}, true},
		{[]any{1, 2}, false},
		{[]any{1, 2, 3}, false},
		{[]any{1, []any{2}}, false},
		{list.New(1), false},
		{"ab", false},
		{nil, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.listLike, types.IsListLike(tc.value), "%v", tc.value)
	}
}

func TestEquals(t *testing.T) {
	var nilList *list.List[int]
	cases := []struct {
		name  string
		this  any
		that  any
		equal bool
	}{
		{"same list", list.New(1, 2, 3), list.New(1, 2, 3), true},
		{"list and pairs", list.New(1, 2, 3), pairs(1, 2, 3), true},
		{"pairs and list", pairs(1, 2, 3), list.New(1, 2, 3), true},
		{"empty list and empty slice", list.Empty[any](), []any{}, true},
		{"nil list and empty slice", nilList, []int{}, true},
		{"two empties", list.Empty[int](), list.Empty[string](), true},
		{"different lengths", list.New(1, 2), list.New(1, 2, 3), false},
		{"different items", list.New(1, 2), list.New(1, 3), false},
		{"list and flat slice", list.New(1, 2), []any{1, 2}, false},
		{"list and leaf", list.New(1), 1, false},
		{"nested", list.New[any](list.New(1), 2), pairs(pairs(1), 2), true},
		{"nested mismatch", list.New[any](list.New(1), 2), pairs([]any{1}, 2), false},
		{"numeric widths", list.New(1), list.New(int64(1)), true},
		{"leaves", "a", "a", true},
		{"flat slices", []any{1, 2, 3}, []int{1, 2, 3}, true},
		{"bytes", list.New([]byte("ab")), list.New([]byte("ab")), true},
		{"bytes differ", list.New([]byte("ab")), list.New([]byte("ac")), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.equal, types.Equals(tc.this, tc.that))
			require.Equal(t, tc.equal, types.Equals(tc.that, tc.this))
		})
	}
}

func TestEqualsReflexive(t *testing.T) {
	for _, l := range []*list.List[any]{
		list.Empty[any](),
		list.New[any](1),
		list.New[any](1, list.New[any]("a", nil), map[string]any{"k": list.New(2)}),
	} {
		require.True(t, types.Equals(l, l), l.String())
	}
}

func TestDeepEqual(t *testing.T) {
	var nilPoint *point
	cases := []struct {
		name  string
		this  any
		that  any
		equal bool
	}{
		{"nils", nil, nil, true},
		{"nil pointers", nilPoint, nil, true},
		{"nil and value", nil, 0, false},
		{"ints", 1, int64(1), true},
		{"uint and int", uint8(3), 3, true},
		{"negative and uint", -1, uint(1), false},
		{"float and int", 2.0, 2, true},
		{"number and string", 1, "1", false},
		{"strings", "a", "a", true},
		{"symbol and string", types.Symbol("a"), "a", false},
		{"bytes", []byte{1, 2}, []byte{1, 2}, true},
		{"bytes and slice", []byte{1, 2}, []int{1, 2}, false},
		{"maps", map[string]any{"a": 1, "b": []int{2}}, map[string]any{"b": []any{2}, "a": 1}, true},
		{"maps differ", map[string]any{"a": 1}, map[string]any{"a": 2}, false},
		{"map sizes", map[string]any{"a": 1}, map[string]any{"a": 1, "b": 1}, false},
		{"sets", map[int]struct{}{1: {}, 2: {}}, map[int64]struct{}{2: {}, 1: {}}, true},
		{"sets differ", map[int]struct{}{1: {}}, map[int]struct{}{2: {}}, false},
		{"set and map", map[int]struct{}{1: {}}, map[int]int{1: 0}, false},
		{"records", point{1, 2}, point{1, 2}, true},
		{"record and map", point{1, 2}, map[string]any{"X": 1, "Y": 2}, true},
		{"record and int map", point{1, 2}, map[int]any{1: 1, 2: 2}, false},
		{"list inside map", map[string]any{"a": list.New(1)}, map[string]any{"a": pairs(1)}, true},
		{"immutable map", immutable.NewMap(nil).Set("a", 1), map[string]int{"a": 1}, true},
		{"arrays", [2]int{1, 2}, []any{1, 2}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.equal, types.DeepEqual(tc.this, tc.that))
			require.Equal(t, tc.equal, types.DeepEqual(tc.that, tc.this))
		})
	}
}

func TestHashAgreesWithEquals(t *testing.T) {
	cases := [][2]any{
		{list.New(1, 2), pairs(1, 2)},
		{list.Empty[any](), []any{}},
		{1, int64(1)},
		{2.0, uint(2)},
		{point{1, 2}, map[string]any{"X": 1, "Y": 2}},
		{map[string]any{"a": 1, "b": 2}, map[string]any{"b": 2, "a": 1}},
		{map[int]struct{}{1: {}, 2: {}}, map[int]struct{}{2: {}, 1: {}}},
		{[]byte("ab"), []byte("ab")},
	}
	for _, tc := range cases {
		require.True(t, types.DeepEqual(tc[0], tc[1]) || types.Equals(tc[0], tc[1]))
		require.Equal(t, types.Hash(tc[0]), types.Hash(tc[1]), "%v %v", tc[0], tc[1])
	}
	require.NotEqual(t, types.Hash("a"), types.Hash(types.Keyword("a")))
	require.NotEqual(t, types.Hash(list.New(1, 2)), types.Hash(list.New(2, 1)))
}

func TestHasherKeysImmutableMap(t *testing.T) {
	m := immutable.NewMap(types.Hasher{})
	m = m.Set(list.New[any](1, 2), "list")
	m = m.Set(point{1, 2}, "point")

	value, found := m.Get(pairs(1, 2))
	require.True(t, found)
	require.Equal(t, "list", value)

	value, found = m.Get(map[string]any{"X": 1, "Y": 2})
	require.True(t, found)
	require.Equal(t, "point", value)

	_, found = m.Get(list.New(2, 1))
	require.False(t, found)
}
