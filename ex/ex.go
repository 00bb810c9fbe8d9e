package ex

import (
	"fmt"
	"sort"
	"strings"
)

// Ex is an error with a code, possibly an error, and a context map
type Ex struct {
	Code    string
	Err     error
	Context map[string]interface{}
}

func (ex Ex) Unwrap() error { return ex.Err }

// Is matches any Ex with the same code, so a bare Ex{Code: ...} works as a
// sentinel for errors.Is
func (ex Ex) Is(target error) bool {
	switch t := target.(type) {
	case Ex:
		return t.Code == ex.Code
	case *Ex:
		return t != nil && t.Code == ex.Code
	default:
		return false
	}
}

// With returns a copy of ex with one more context entry
func (ex Ex) With(key string, value interface{}) Ex {
	context := make(map[string]interface{}, len(ex.Context)+1)
	for k, v := range ex.Context {
		context[k] = v
	}
	context[key] = value
	return Ex{Code: ex.Code, Err: ex.Err, Context: context}
}

// Wrap returns a copy of ex caused by err
func (ex Ex) Wrap(err error) Ex {
	return Ex{Code: ex.Code, Err: err, Context: ex.Context}
}

func (ex Ex) String() string {
	var sb strings.Builder
	sb.WriteString("error: ")
	sb.WriteString(ex.Code)
	if len(ex.Context) > 0 {
		keys := make([]string, 0, len(ex.Context))
		for k := range ex.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %v=%v", k, ex.Context[k])
		}
	}
	if ex.Err != nil {
		fmt.Fprintf(&sb, ": %v", ex.Err)
	}
	return sb.String()
}

func (ex Ex) Error() string {
	return ex.String()
}
