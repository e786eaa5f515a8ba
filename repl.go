package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/hardik-vala/gopy/codegen"
	"github.com/hardik-vala/gopy/diag"
	"github.com/hardik-vala/gopy/frontend"
)

const (
	historyFile = ".gopy_history"
	promptMain  = "gopy> "
	promptCont  = "  ... "
	replName    = "<repl>"
)

const replBanner = `gopy interactive session
Declarations (func, type, var) go to the package; anything else is appended
to main. Commands: :run, :py, :reset, :quit`

// session accumulates REPL entries into one GoLite program.
type session struct {
	opts  codegen.Options
	decls []string
	body  []string

	// py is the translation of the current program.
	py string
}

func newSession(opts codegen.Options) *session {
	s := &session{opts: opts}
	s.reset()
	return s
}

func (s *session) reset() {
	s.decls, s.body = nil, nil
	py, err := compileSource(replName, []byte(s.source()), s.opts, false)
	if err != nil {
		panic(fmt.Sprintf("empty session does not compile: %v", err))
	}
	s.py = py
}

func isDecl(entry string) bool {
	for _, kw := range []string{"func", "type", "var"} {
		if rest, ok := strings.CutPrefix(entry, kw); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '(') {
			return true
		}
	}
	return false
}

func (s *session) source() string {
	var sb strings.Builder
	sb.WriteString("package main\n\n")
	for _, d := range s.decls {
		sb.WriteString(d)
		sb.WriteString("\n\n")
	}
	sb.WriteString("func main() {\n")
	for _, st := range s.body {
		sb.WriteString(st)
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// add appends entry to the program and returns the Python lines it
// introduced. On error the session is left unchanged, and the returned
// source is the rejected program, for error display.
func (s *session) add(entry string) (added []string, src string, err error) {
	entry = strings.TrimSpace(entry)
	decls, body := s.decls, s.body
	if isDecl(entry) {
		if strings.HasPrefix(entry, "func main(") {
			return nil, "", errors.New("main is the session itself; write statements directly")
		}
		s.decls = append(s.decls[:len(s.decls):len(s.decls)], entry)
	} else {
		s.body = append(s.body[:len(s.body):len(s.body)], entry)
	}

	src = s.source()
	py, err := compileSource(replName, []byte(src), s.opts, false)
	if err != nil {
		s.decls, s.body = decls, body
		return nil, src, err
	}
	added = newLines(stripPreamble(s.py), stripPreamble(py))
	s.py = py
	return added, src, nil
}

// newLines returns the lines of after that replace lines of before, found
// by trimming the common prefix and suffix.
func newLines(before, after string) []string {
	b := strings.Split(before, "\n")
	a := strings.Split(after, "\n")
	p := 0
	for p < len(a) && p < len(b) && a[p] == b[p] {
		p++
	}
	q := 0
	for q < len(a)-p && q < len(b)-p && a[len(a)-1-q] == b[len(b)-1-q] {
		q++
	}
	return a[p : len(a)-q]
}

// incomplete reports whether entry is the start of a longer one, i.e. it
// only fails to parse because it ends too early.
func incomplete(entry string) bool {
	src := "package main\n" + entry + "\n"
	if !isDecl(strings.TrimSpace(entry)) {
		src = "package main\nfunc main() {\n" + entry + "\n}\n"
	}
	_, err := frontend.ParseFile(replName, []byte(src))
	var de *diag.Error
	return errors.As(err, &de) && de.Kind == diag.Syntax && strings.Contains(de.Msg, "EOF")
}

func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			log.Printf("reading input: %v", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// repl runs the interactive session and returns the process exit code.
func repl(opts codegen.Options, python string) int {
	fmt.Println(replBanner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	} else {
		log.Printf("history disabled: %v", err)
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession(opts)
	for {
		entry, ok := readEntry(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))

		if strings.HasPrefix(entry, ":") {
			switch entry {
			case ":quit":
				return 0
			case ":reset":
				s.reset()
			case ":py":
				fmt.Print(s.py)
			case ":run":
				if err := executePython(python, s.py); err != nil {
					fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
				}
			default:
				fmt.Printf("unknown command %s. Commands: :run, :py, :reset, :quit\n", entry)
			}
			continue
		}

		added, src, err := s.add(entry)
		if err != nil {
			reportError(replName, []byte(src), err)
			continue
		}
		for _, l := range added {
			fmt.Println(l)
		}
	}
}
