package reader

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	"github.com/dball/huet/list"
	"github.com/dball/huet/types"
)

var tokenRegexp = regexp.MustCompile(`[\s,]*(~@|[\[\]{}()'` + "`" +
	`~^@]|"(?:\\.|[^\\"])*"?|;.*|[^\s\[\]{}('"` + "`" +
	`,;)]*)`)

var integerRegexp = regexp.MustCompile(`^-?\d+$`)

var floatRegexp = regexp.MustCompile(`^-?\d+\.\d+$`)

// Reader reads tokens
type Reader struct {
	tokens []string
	offset int
}

// Error is a reader error
type Error struct {
	Message string
	Err     error
}

func (err Error) Unwrap() error { return err.Err }

func (err Error) String() string {
	if err.Err == nil {
		return "reader error: " + err.Message
	}
	return fmt.Sprintf("reader error: %v: %v", err.Message, err.Err)
}

func (err Error) Error() string {
	return err.String()
}

// Comment is an error indicating no token
type Comment struct{}

func (Comment) Error() string {
	return "Comment token"
}

func (reader *Reader) peek() *string {
	if reader.offset == len(reader.tokens) {
		return nil
	}
	return &reader.tokens[reader.offset]
}

func (reader *Reader) next() *string {
	token := reader.peek()
	if token != nil {
		reader.offset++
	}
	return token
}

func tokenize(s string) []string {
	matches := tokenRegexp.FindAllStringSubmatch(s, -1)
	tokens := make([]string, 0, len(matches))
	for _, match := range matches {
		if match[1] != "" {
			tokens = append(tokens, match[1])
		}
	}
	return tokens
}

// ReadStr reads the first form in s. Square brackets read as []any,
// parentheses as lists and braces as map[any]any.
func ReadStr(s string) (any, error) {
	return readForm(&Reader{tokenize(s), 0})
}

func readForm(reader *Reader) (any, error) {
	for {
		token := reader.peek()
		if token == nil {
			return nil, Error{"Unexpected end of input reading form", nil}
		}
		switch *token {
		case "(":
			reader.next()
			items, err := readItems(reader, ")")
			if err != nil {
				return nil, err
			}
			return list.FromSlice(items), nil
		case "[":
			reader.next()
			items, err := readItems(reader, "]")
			if err != nil {
				return nil, err
			}
			if items == nil {
				items = []any{}
			}
			return items, nil
		case "{":
			reader.next()
			items, err := readItems(reader, "}")
			if err != nil {
				return nil, err
			}
			return buildMap(items)
		case ")", "]", "}":
			return nil, Error{"Unexpected " + *token, nil}
		default:
			val, err := readAtom(reader)
			if err != nil {
				if _, comment := err.(Comment); comment {
					continue
				}
				return nil, err
			}
			return val, nil
		}
	}
}

func readItems(reader *Reader, end string) ([]any, error) {
	var items []any
	for {
		token := reader.peek()
		if token == nil {
			return nil, Error{"Unexpected end of input reading list", nil}
		}
		if *token == end {
			reader.next()
			return items, nil
		}
		if (*token)[0] == ';' {
			reader.next()
			continue
		}
		value, err := readForm(reader)
		if err != nil {
			return nil, Error{"Error reading list", err}
		}
		items = append(items, value)
	}
}

func buildMap(items []any) (any, error) {
	if len(items)%2 != 0 {
		return nil, Error{"Unbalanced map input", nil}
	}
	m := make(map[any]any, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		k := items[i]
		if k != nil && !reflect.TypeOf(k).Comparable() {
			return nil, Error{fmt.Sprintf("Unhashable map key %v", k), nil}
		}
		m[k] = items[i+1]
	}
	return m, nil
}

func readAtom(reader *Reader) (any, error) {
	token := *reader.next()
	if integerRegexp.MatchString(token) {
		value, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, Error{"Unparseable integer", err}
		}
		return value, nil
	}
	if floatRegexp.MatchString(token) {
		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, Error{"Unparseable float", err}
		}
		return value, nil
	}
	runes := []rune(token)
	switch runes[0] {
	case ';':
		return nil, Comment{}
	case '"':
		return parseString(runes)
	case ':':
		return types.Keyword(runes[1:]), nil
	default:
		switch token {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "nil":
			return nil, nil
		default:
			return types.Symbol(token), nil
		}
	}
}

func parseString(runes []rune) (any, error) {
	last := len(runes) - 1
	if last == 0 || runes[last] != '"' {
		return nil, Error{"String quotes are unbalanced", nil}
	}
	var result []rune
	var escaping bool
	for _, r := range runes[1:last] {
		if !escaping {
			if r == '\\' {
				escaping = true
			} else {
				result = append(result, r)
			}
		} else {
			switch r {
			case '\\':
				result = append(result, r)
			case '"':
				result = append(result, r)
			case 'n':
				result = append(result, '\n')
			default:
				return nil, Error{"String escape sequence is invalid", nil}
			}
			escaping = false
		}
	}
	if escaping {
		return nil, Error{"String slashes are unbalanced", nil}
	}
	return string(result), nil
}
