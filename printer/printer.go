package printer

import (
	"fmt"
	"iter"
	"sort"
	"strconv"
	"strings"

	"github.com/dball/huet/list"
	"github.com/dball/huet/runtime"
	"github.com/dball/huet/types"
	"github.com/fatih/color"
)

// Config controls printing behavior
type Config struct {
	// Readably quotes and escapes strings
	Readably bool
	// Pairs prints lists as nested [head,tail] pairs instead of (a b c)
	Pairs bool
	// Color highlights scalars with terminal escapes
	Color bool
	// MaxSeqLength elides items past this many in a sequence; zero prints all
	MaxSeqLength int
}

var (
	numberColor  = color.New(color.FgCyan)
	stringColor  = color.New(color.FgGreen)
	keywordColor = color.New(color.FgYellow)
	literalColor = color.New(color.FgMagenta)
	errorColor   = color.New(color.FgRed)
)

func init() {
	for _, c := range []*color.Color{numberColor, stringColor, keywordColor, literalColor, errorColor} {
		c.EnableColor()
	}
}

func paint(config Config, c *color.Color, s string) string {
	if !config.Color {
		return s
	}
	return c.Sprint(s)
}

// PrintStr prints values
func PrintStr(config Config, value any) string {
	switch v := value.(type) {
	case nil:
		return paint(config, literalColor, "nil")
	case bool:
		return paint(config, literalColor, strconv.FormatBool(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return paint(config, numberColor, fmt.Sprint(v))
	case float32:
		return paint(config, numberColor, strconv.FormatFloat(float64(v), 'g', -1, 32))
	case float64:
		return paint(config, numberColor, strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		return paint(config, stringColor, printString(config, v))
	case types.Symbol:
		return string(v)
	case types.Keyword:
		return paint(config, keywordColor, ":"+string(v))
	case []byte:
		return paint(config, stringColor, printString(config, string(v)))
	case list.Listed:
		if config.Pairs {
			return printPairs(config, v.Values())
		}
		return printSeq(config, v.Values(), "(", ")")
	case error:
		return paint(config, errorColor, printString(config, v.Error()))
	}
	switch types.Classify(value) {
	case types.Sequence:
		return printSeq(config, types.Elements(value), "[", "]")
	case types.Set:
		return printSet(config, value)
	case types.Keyed, types.Record:
		return printMap(config, value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func printSeq(config Config, seq iter.Seq[any], first string, last string) string {
	var items []any
	var rest iter.Seq[any]
	if config.MaxSeqLength > 0 {
		var err error
		items, rest, err = runtime.TakeDrop(config.MaxSeqLength, seq)
		if err != nil {
			return fmt.Sprintf("#ERROR: %v", err)
		}
	} else {
		items = runtime.IntoSlice(seq)
	}
	var sb strings.Builder
	sb.WriteString(first)
	for i, item := range items {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(PrintStr(config, item))
	}
	if rest != nil && !runtime.Empty(rest) {
		sb.WriteString(" ...")
	}
	sb.WriteString(last)
	return sb.String()
}

func printPairs(config Config, seq iter.Seq[any]) string {
	var sb strings.Builder
	depth := 0
	tail := "[]"
	for item := range seq {
		if config.MaxSeqLength > 0 && depth == config.MaxSeqLength {
			tail = "..."
			break
		}
		sb.WriteRune('[')
		sb.WriteString(PrintStr(config, item))
		sb.WriteRune(',')
		depth++
	}
	sb.WriteString(tail)
	sb.WriteString(strings.Repeat("]", depth))
	return sb.String()
}

func printMap(config Config, value any) string {
	printed := make(map[string]string, types.Len(value))
	keys := make([]string, 0, types.Len(value))
	for k, v := range types.Entries(value) {
		key := PrintStr(config, k)
		keys = append(keys, key)
		printed[key] = PrintStr(config, v)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteRune('{')
	for i, key := range keys {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(key)
		sb.WriteRune(' ')
		sb.WriteString(printed[key])
	}
	sb.WriteRune('}')
	return sb.String()
}

func printSet(config Config, value any) string {
	var printed []string
	for member := range types.Members(value) {
		printed = append(printed, PrintStr(config, member))
	}
	sort.Strings(printed)
	return "#{" + strings.Join(printed, " ") + "}"
}

// When print_readably is true, doublequotes, newlines, and backslashes are translated into their printed representations (the reverse of the reader)
func printString(config Config, s string) string {
	if !config.Readably {
		return s
	}
	var sb strings.Builder
	sb.WriteRune('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune('"')
	return sb.String()
}
