package printer

import (
	"errors"
	"strings"
	"testing"

	"github.com/benbjohnson/immutable"
	"github.com/dball/huet/list"
	"github.com/dball/huet/types"
	"github.com/stretchr/testify/assert"
)

type point struct {
	X int
	Y int
}

func TestPrintStr(t *testing.T) {
	plain := Config{}
	readably := Config{Readably: true}
	pairs := Config{Pairs: true}
	short := Config{MaxSeqLength: 2}
	shortPairs := Config{Pairs: true, MaxSeqLength: 2}

	cases := []struct {
		name   string
		config Config
		value  any
		out    string
	}{
		{"nil", plain, nil, "nil"},
		{"bool", plain, true, "true"},
		{"int", plain, int64(-3), "-3"},
		{"float", plain, 1.5, "1.5"},
		{"string", plain, "a\"b", "a\"b"},
		{"readable string", readably, "a\"b\n", `"a\"b\n"`},
		{"symbol", readably, types.Symbol("s"), "s"},
		{"keyword", plain, types.Keyword("k"), ":k"},
		{"list", plain, list.New[any](1, list.New[any](2), 3), "(1 (2) 3)"},
		{"empty list", plain, list.Empty[any](), "()"},
		{"pairs", pairs, list.New[any](1, list.New[any](2), 3), "[1,[[2,[]],[3,[]]]]"},
		{"empty pairs", pairs, list.Empty[any](), "[]"},
		{"slice", plain, []any{1, []any{2}, "x"}, "[1 [2] x]"},
		{"typed slice", plain, []int{1, 2}, "[1 2]"},
		{"immutable list", plain, immutable.NewList().Append(1), "[1]"},
		{"map", plain, map[any]any{"b": 2, types.Keyword("a"): []any{1}}, "{:a [1] b 2}"},
		{"immutable map", plain, immutable.NewMap(types.Hasher{}).Set(types.Keyword("a"), 1), "{:a 1}"},
		{"record", readably, point{1, 2}, `{"X" 1 "Y" 2}`},
		{"set", plain, map[int]struct{}{2: {}, 1: {}}, "#{1 2}"},
		{"elided", short, []any{1, 2, 3}, "[1 2 ...]"},
		{"not elided", short, []any{1, 2}, "[1 2]"},
		{"elided list", short, list.New(1, 2, 3), "(1 2 ...)"},
		{"elided pairs", shortPairs, list.New(1, 2, 3), "[1,[2,...]]"},
		{"not elided pairs", shortPairs, list.New(1, 2), "[1,[2,[]]]"},
		{"error", readably, errors.New("boom"), `"boom"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, PrintStr(tc.config, tc.value))
		})
	}
}

func TestPairsMatchesListString(t *testing.T) {
	l := list.New[any](0, list.New[any](1, 3, 4), 2)
	assert.Equal(t, l.String(), PrintStr(Config{Pairs: true}, l))
}

func TestColor(t *testing.T) {
	colored := PrintStr(Config{Color: true}, []any{1, "a", types.Keyword("k"), nil})
	assert.True(t, strings.Contains(colored, "\x1b["), colored)
	assert.Equal(t, "[1 a :k nil]", PrintStr(Config{}, []any{1, "a", types.Keyword("k"), nil}))
	assert.Equal(t, "sym", PrintStr(Config{Color: true}, types.Symbol("sym")))
}

func TestColorErrors(t *testing.T) {
	colored := PrintStr(Config{Color: true}, errors.New("boom"))
	assert.NotEqual(t, "boom", colored)
	assert.Contains(t, colored, "boom")
}
