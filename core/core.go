// Package core holds the zipper explorer: a session owning the current
// location, its undo history and a table of named commands.
package core

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/dball/huet/convert"
	"github.com/dball/huet/ex"
	"github.com/dball/huet/list"
	"github.com/dball/huet/printer"
	"github.com/dball/huet/reader"
	"github.com/dball/huet/runtime"
	"github.com/dball/huet/stack"
	"github.com/dball/huet/zipper"
	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
)

var (
	// ErrUnknownCommand is returned for a name missing from the command table
	ErrUnknownCommand = ex.Ex{Code: "unknown command"}
	// ErrMissingArgument is returned when a command needs a form and got none
	ErrMissingArgument = ex.Ex{Code: "missing argument"}
	// ErrNothingToUndo is returned by undo with an empty history
	ErrNothingToUndo = ex.Ex{Code: "nothing to undo"}
	// ErrInvalidQuery is returned when a find expression fails to compile or run
	ErrInvalidQuery = ex.Ex{Code: "invalid query"}
)

// Command is a named session operation. Arg is the rest of the line after
// the command name, trimmed.
type Command struct {
	Usage string
	Fn    func(session *Session, arg string) (any, error)
}

// Session explores one tree at a time
type Session struct {
	Config   printer.Config
	loc      zipper.Loc
	history  stack.Stack[zipper.Loc]
	commands *immutable.Map
}

// NewSession starts a session focused on an empty tree
func NewSession(config printer.Config) *Session {
	return &Session{
		Config:   config,
		loc:      zipper.New([]any{}),
		commands: buildCommands(),
	}
}

// Loc returns the current location
func (session *Session) Loc() zipper.Loc {
	return session.loc
}

// History counts the locations undo can return to
func (session *Session) History() int {
	return session.history.Len()
}

// Commands lists the command names in order
func (session *Session) Commands() []string {
	names := make([]string, 0, session.commands.Len())
	itr := session.commands.Iterator()
	for !itr.Done() {
		k, _ := itr.Next()
		names = append(names, k.(string))
	}
	sort.Strings(names)
	return names
}

func (session *Session) command(name string) (Command, bool) {
	value, found := session.commands.Get(name)
	if !found {
		return Command{}, false
	}
	return value.(Command), true
}

// Blank is true for lines holding nothing but whitespace or a comment
func Blank(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, ";")
}

// Eval runs one line and returns its result. Blank lines and comments return
// nil.
func (session *Session) Eval(line string) (any, error) {
	if Blank(line) {
		return nil, nil
	}
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	cmd, found := session.command(name)
	if !found {
		return nil, ErrUnknownCommand.With("name", name)
	}
	return cmd.Fn(session, strings.TrimSpace(arg))
}

// Rep evaluates one line and prints the result or the error
func (session *Session) Rep(line string) string {
	value, err := session.Eval(line)
	if err != nil {
		return "#ERROR: " + printer.PrintStr(printer.Config{Color: session.Config.Color}, err)
	}
	if Blank(line) {
		return ""
	}
	return printer.PrintStr(session.Config, value)
}

func (session *Session) push(loc zipper.Loc) {
	session.history = session.history.Push(session.loc)
	session.loc = loc
}

func readArg(name string, arg string) (any, error) {
	if arg == "" {
		return nil, ErrMissingArgument.With("command", name)
	}
	return reader.ReadStr(arg)
}

func move(fn func(zipper.Loc) (zipper.Loc, error)) func(*Session, string) (any, error) {
	return func(session *Session, _ string) (any, error) {
		loc, err := fn(session.loc)
		if err != nil {
			return nil, err
		}
		session.push(loc)
		return loc.Node(), nil
	}
}

func edit(name string, fn func(zipper.Loc, any) (zipper.Loc, error)) func(*Session, string) (any, error) {
	return func(session *Session, arg string) (any, error) {
		value, err := readArg(name, arg)
		if err != nil {
			return nil, err
		}
		loc, err := fn(session.loc, value)
		if err != nil {
			return nil, err
		}
		session.push(loc)
		return loc.Root().Node(), nil
	}
}

func total(fn func(zipper.Loc) zipper.Loc) func(zipper.Loc) (zipper.Loc, error) {
	return func(loc zipper.Loc) (zipper.Loc, error) {
		return fn(loc), nil
	}
}

// query is what a find expression sees at each location
type query struct {
	Node  any  `expr:"node"`
	Leaf  bool `expr:"leaf"`
	Depth int  `expr:"depth"`
}

func queryAt(loc zipper.Loc) query {
	return query{
		Node:  loc.Node(),
		Leaf:  !list.IsList(loc.NodeRaw()),
		Depth: loc.Depth(),
	}
}

func find(session *Session, arg string) (any, error) {
	if arg == "" {
		return nil, ErrMissingArgument.With("command", "find")
	}
	program, err := expr.Compile(arg, expr.Env(query{}), expr.AsBool())
	if err != nil {
		return nil, ErrInvalidQuery.With("query", arg).Wrap(err)
	}
	found := []any{}
	for loc := range zipper.Walk(session.loc) {
		out, err := expr.Run(program, queryAt(loc))
		if err != nil {
			return nil, ErrInvalidQuery.With("query", arg).Wrap(err)
		}
		if out.(bool) {
			found = append(found, loc.Node())
		}
	}
	return found, nil
}

func buildCommands() *immutable.Map {
	b := immutable.NewMapBuilder(immutable.NewMap(nil))
	b.Set("load", Command{
		Usage: "load FORM: focus the root of a new tree",
		Fn: func(session *Session, arg string) (any, error) {
			value, err := readArg("load", arg)
			if err != nil {
				return nil, err
			}
			loc := zipper.New(value)
			session.push(loc)
			return loc.Node(), nil
		},
	})
	b.Set("down", Command{Usage: "down: focus the first child", Fn: move(zipper.Loc.MoveDown)})
	b.Set("up", Command{Usage: "up: focus the parent", Fn: move(zipper.Loc.MoveUp)})
	b.Set("left", Command{Usage: "left: focus the left sibling", Fn: move(zipper.Loc.MoveLeft)})
	b.Set("right", Command{Usage: "right: focus the right sibling", Fn: move(zipper.Loc.MoveRight)})
	b.Set("leftmost", Command{Usage: "leftmost: focus the first sibling", Fn: move(total(zipper.Loc.Leftmost))})
	b.Set("rightmost", Command{Usage: "rightmost: focus the last sibling", Fn: move(total(zipper.Loc.Rightmost))})
	b.Set("root", Command{Usage: "root: focus the whole tree", Fn: move(total(zipper.Loc.Root))})
	b.Set("next", Command{Usage: "next: step a depth first walk", Fn: move(total(zipper.Loc.Next))})
	b.Set("end?", Command{
		Usage: "end?: true once a walk is finished",
		Fn: func(session *Session, _ string) (any, error) {
			return session.loc.EndOfDFS(), nil
		},
	})
	b.Set("change", Command{
		Usage: "change FORM: replace the focus",
		Fn: edit("change", func(loc zipper.Loc, value any) (zipper.Loc, error) {
			return loc.Change(convert.SequencesToList(value)), nil
		}),
	})
	b.Set("insert-left", Command{Usage: "insert-left FORM: add a left sibling", Fn: edit("insert-left", zipper.Loc.InsertLeft)})
	b.Set("insert-right", Command{Usage: "insert-right FORM: add a right sibling", Fn: edit("insert-right", zipper.Loc.InsertRight)})
	b.Set("insert-down", Command{Usage: "insert-down FORM: add a first child and focus it", Fn: edit("insert-down", zipper.Loc.InsertDown)})
	b.Set("delete", Command{
		Usage: "delete: remove the focus",
		Fn: func(session *Session, _ string) (any, error) {
			loc, err := session.loc.Delete()
			if err != nil {
				return nil, err
			}
			session.push(loc)
			return loc.Root().Node(), nil
		},
	})
	b.Set("node", Command{
		Usage: "node: print the focus",
		Fn: func(session *Session, _ string) (any, error) {
			return session.loc.Node(), nil
		},
	})
	b.Set("raw", Command{
		Usage: "raw: print the focus as stored",
		Fn: func(session *Session, _ string) (any, error) {
			return session.loc.NodeRaw(), nil
		},
	})
	b.Set("json", Command{
		Usage: "json: print the focus as stored, in JSON",
		Fn: func(session *Session, _ string) (any, error) {
			bs, err := json.Marshal(session.loc.NodeRaw())
			if err != nil {
				return nil, err
			}
			return string(bs), nil
		},
	})
	b.Set("yaml", Command{
		Usage: "yaml: print the focus as YAML",
		Fn: func(session *Session, _ string) (any, error) {
			bs, err := yaml.Marshal(session.loc.Node())
			if err != nil {
				return nil, err
			}
			return strings.TrimSuffix(string(bs), "\n"), nil
		},
	})
	b.Set("find", Command{
		Usage: "find EXPR: print the nodes from the focus on where EXPR holds; EXPR sees node, leaf and depth",
		Fn:    find,
	})
	b.Set("tree", Command{
		Usage: "tree: print the whole tree",
		Fn: func(session *Session, _ string) (any, error) {
			return session.loc.Root().Node(), nil
		},
	})
	b.Set("depth", Command{
		Usage: "depth: count the levels above the focus",
		Fn: func(session *Session, _ string) (any, error) {
			return session.loc.Depth(), nil
		},
	})
	b.Set("walk", Command{
		Usage: "walk: print every node from the focus on in depth first order",
		Fn: func(session *Session, _ string) (any, error) {
			return runtime.IntoSlice(runtime.Map(zipper.Walk(session.loc), zipper.Loc.Node)), nil
		},
	})
	b.Set("undo", Command{
		Usage: "undo: return to the previous location",
		Fn: func(session *Session, _ string) (any, error) {
			loc, found := session.history.Peek()
			if !found {
				return nil, ErrNothingToUndo
			}
			session.history = session.history.Pop()
			session.loc = loc
			return loc.Node(), nil
		},
	})
	b.Set("help", Command{
		Usage: "help: list the commands",
		Fn: func(session *Session, _ string) (any, error) {
			var sb strings.Builder
			for i, name := range session.Commands() {
				if i > 0 {
					sb.WriteRune('\n')
				}
				cmd, _ := session.command(name)
				sb.WriteString(cmd.Usage)
			}
			return sb.String(), nil
		},
	})
	return b.Map()
}
