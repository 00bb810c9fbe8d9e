package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dball/huet/core"
	"github.com/dball/huet/ex"
	"github.com/dball/huet/printer"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/peterh/liner"
)

// ErrScript is returned for the first failing line of a script
var ErrScript = ex.Ex{Code: "script failed"}

func historyPath() string {
	if path := os.Getenv("HUET_HISTORY"); path != "" {
		return path
	}
	path, err := homedir.Expand("~/.huet_history")
	if err != nil {
		return filepath.Join(os.TempDir(), ".huet_history")
	}
	return path
}

func colorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runScript(session *core.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text()
		if core.Blank(text) {
			continue
		}
		value, err := session.Eval(text)
		if err != nil {
			return ErrScript.With("line", n).Wrap(err)
		}
		fmt.Fprintln(out, printer.PrintStr(session.Config, value))
	}
	return scanner.Err()
}

func interactiveRepl(session *core.Session) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(text string) []string {
		var matches []string
		for _, name := range session.Commands() {
			if strings.HasPrefix(name, text) {
				matches = append(matches, name)
			}
		}
		return matches
	})
	historyFile := historyPath()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	for {
		text, err := line.Prompt("huet> ")
		if err == nil {
			line.AppendHistory(text)
			os.Stdout.WriteString(session.Rep(text))
			os.Stdout.WriteString("\n")
		} else if err == liner.ErrPromptAborted {
		} else if err == io.EOF {
			break
		} else {
			log.Fatalf("liner err %v", err)
		}
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
}

func main() {
	config := printer.Config{
		Readably:     true,
		Color:        colorEnabled(os.Stdout),
		MaxSeqLength: 64,
	}
	session := core.NewSession(config)
	if len(os.Args) < 2 {
		interactiveRepl(session)
		return
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("open script %v", err)
	}
	err = runScript(session, f, os.Stdout)
	f.Close()
	if err != nil {
		log.Fatalf("%v", err)
	}
}
