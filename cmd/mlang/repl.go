package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/driver"
	"mlang/interpreter-go/pkg/interpreter"
	"mlang/interpreter-go/pkg/parser"
	"mlang/interpreter-go/pkg/runtime"
)

const (
	promptMain  = "mlang> "
	promptCont  = "...... "
	historyFile = ".mlang_history"
)

// prompter is the part of liner.State the read loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

type replSession struct {
	interp *interpreter.Interpreter
	mode   driver.TypecheckMode
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) historyPath() string {
	if c.cfg.HistoryFile != "" {
		return c.cfg.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func (c *cli) repl() int {
	fmt.Fprintf(c.stdout, "%s (:quit to exit)\n", cliToolVersion)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := c.historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	session := &replSession{
		interp: c.newInterpreter(),
		mode:   c.cfg.Typecheck,
		stdout: c.stdout,
		stderr: c.stderr,
	}
	session.loop(ln, func(entry string) {
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
	})
	return 0
}

// loop reads and evaluates entries until end of input or :quit.
func (s *replSession) loop(p prompter, remember func(string)) {
	for {
		entry, ok := readEntry(p, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(s.stdout)
			return
		}
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q", ":exit":
				return
			case ":vars":
				s.printVars()
			default:
				fmt.Fprintln(s.stdout, "unknown command. Type :vars to list variables or :quit to exit.")
			}
			continue
		}
		if remember != nil {
			remember(entry)
		}
		s.eval(entry)
	}
}

// readEntry collects lines until they parse or fail for a reason other than
// running out of input. An entry ending in an if without else stays open until
// an else or a blank line arrives. ok is false at end of input.
func readEntry(p prompter, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}
		line, err := p.Prompt(current)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), true
			}
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		program, diags := parser.ParseProgram([]byte(src))
		if parser.IsIncomplete(diags) {
			continue
		}
		if len(diags) == 0 && strings.TrimSpace(line) != "" && awaitsElse(program) {
			continue
		}
		return src, true
	}
}

func awaitsElse(program *ast.Block) bool {
	if len(program.Body) == 0 {
		return false
	}
	return ast.EndsWithOpenIf(program.Body[len(program.Body)-1])
}

// printVars lists the global bindings with their checked types when known.
func (s *replSession) printVars() {
	env := s.interp.GlobalEnvironment()
	values := env.Snapshot()
	types := make(map[string]string)
	for _, sym := range s.interp.Checker().Global().Symbols() {
		if sym.Type != nil {
			types[sym.Name] = sym.Type.Name()
		}
	}
	for _, name := range env.Keys() {
		if typ, ok := types[name]; ok {
			fmt.Fprintf(s.stdout, "%s: %s = %s\n", name, typ, runtime.Format(values[name]))
			continue
		}
		fmt.Fprintf(s.stdout, "%s = %s\n", name, runtime.Format(values[name]))
	}
}

func (s *replSession) eval(entry string) {
	source := []byte(entry)
	if _, syntax := parser.ParseProgram(source); len(syntax) > 0 {
		for i := range syntax {
			fmt.Fprintln(s.stderr, syntax[i].Error())
		}
		return
	}
	result, err := s.interp.EvaluateSource(source, interpreter.ProgramOptions{
		SkipTypecheck:    s.mode == driver.TypecheckOff,
		AllowDiagnostics: s.mode == driver.TypecheckWarn,
	})
	for _, diag := range result.Diagnostics {
		fmt.Fprintln(s.stderr, diag.Error())
	}
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return
	}
	if text := formatResult(result.Value); text != "" {
		fmt.Fprintln(s.stdout, text)
	}
}
