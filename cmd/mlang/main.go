package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/driver"
	"mlang/interpreter-go/pkg/interpreter"
	"mlang/interpreter-go/pkg/parser"
	"mlang/interpreter-go/pkg/runtime"
)

const cliToolVersion = "mlang 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *driver.Config
	loader *driver.Loader
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h", "help":
			printUsage(stdout)
			return 0
		case "--version", "-V", "version":
			fmt.Fprintln(stdout, cliToolVersion)
			return 0
		}
	}

	cfg, err := driver.ResolveConfig(".")
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	if cfg.MaxStackMB > 0 {
		debug.SetMaxStack(cfg.MaxStackMB << 20)
	}
	c := &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		loader: &driver.Loader{Stdin: stdin},
	}

	if len(args) == 0 {
		if stdinIsTerminal(stdin) {
			return c.repl()
		}
		return c.runFile(driver.StdinPath)
	}

	switch args[0] {
	case "run":
		path, ok := c.singlePath("run", args[1:])
		if !ok {
			return 1
		}
		return c.runFile(path)
	case "check":
		path, ok := c.singlePath("check", args[1:])
		if !ok {
			return 1
		}
		return c.checkFile(path)
	case "parse":
		return c.parseCommand(args[1:])
	case "fmt":
		path, ok := c.singlePath("fmt", args[1:])
		if !ok {
			return 1
		}
		return c.formatFile(path)
	case "tokens":
		path, ok := c.singlePath("tokens", args[1:])
		if !ok {
			return 1
		}
		return c.dumpTokens(path)
	case "repl":
		if len(args) > 1 {
			fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
			return 1
		}
		return c.repl()
	default:
		if strings.HasPrefix(args[0], "-") && args[0] != driver.StdinPath {
			fmt.Fprintf(c.stderr, "unknown flag %s\n", args[0])
			printUsage(c.stderr)
			return 1
		}
		path, ok := c.singlePath("run", args)
		if !ok {
			return 1
		}
		return c.runFile(path)
	}
}

func (c *cli) singlePath(command string, args []string) (string, bool) {
	switch len(args) {
	case 0:
		fmt.Fprintf(c.stderr, "mlang %s requires a source file (use - for stdin)\n", command)
		return "", false
	case 1:
		return args[0], true
	default:
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return "", false
	}
}

func (c *cli) newInterpreter() *interpreter.Interpreter {
	scope, err := interpreter.ParseScopeMode(c.cfg.Scope)
	if err != nil {
		scope = interpreter.ScopeFlat
	}
	return interpreter.New(interpreter.Config{
		Stdout:    c.stdout,
		Scoping:   scope,
		Broadcast: c.cfg.Broadcast,
	})
}

// load reads and parses path, reporting syntax errors. ok is false when the
// file could not be read or did not parse.
func (c *cli) load(path string) (*driver.Program, bool) {
	prog, err := c.loader.Load(path)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return nil, false
	}
	c.reportSyntax(prog.Syntax)
	return prog, len(prog.Syntax) == 0
}

func (c *cli) reportSyntax(diags []parser.Diagnostic) {
	for i := range diags {
		fmt.Fprintln(c.stderr, diags[i].Error())
	}
}

// typecheck runs the checker per the configured mode and reports whether the
// program may be evaluated.
func (c *cli) typecheck(interp *interpreter.Interpreter, root *ast.Block) bool {
	if c.cfg.Typecheck == driver.TypecheckOff {
		return true
	}
	diags, err := interp.Typecheck(root)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return false
	}
	for _, diag := range diags {
		fmt.Fprintln(c.stderr, diag.Error())
	}
	return len(diags) == 0 || c.cfg.Typecheck == driver.TypecheckWarn
}

func (c *cli) runFile(path string) int {
	prog, ok := c.load(path)
	if !ok {
		return 1
	}
	interp := c.newInterpreter()
	if !c.typecheck(interp, prog.Root) {
		return 1
	}
	if _, err := interp.EvaluateProgram(prog.Root); err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	return 0
}

func (c *cli) checkFile(path string) int {
	prog, ok := c.load(path)
	if !ok {
		return 1
	}
	interp := c.newInterpreter()
	diags, err := interp.Typecheck(prog.Root)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return 1
	}
	for _, diag := range diags {
		fmt.Fprintln(c.stderr, diag.Error())
	}
	if len(diags) > 0 {
		return 1
	}
	return 0
}

func (c *cli) parseCommand(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	asJSON := fs.Bool("json", false, "print the AST as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	path, ok := c.singlePath("parse", fs.Args())
	if !ok {
		return 1
	}
	prog, err := c.loader.Load(path)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return 1
	}
	c.reportSyntax(prog.Syntax)

	if *asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(prog.Root); err != nil {
			fmt.Fprintf(c.stderr, "encode ast: %v\n", err)
			return 1
		}
	} else if err := ast.DumpTree(c.stdout, prog.Root); err != nil {
		fmt.Fprintf(c.stderr, "write ast: %v\n", err)
		return 1
	}
	if len(prog.Syntax) > 0 {
		return 1
	}
	return 0
}

func (c *cli) formatFile(path string) int {
	prog, ok := c.load(path)
	if !ok {
		return 1
	}
	if _, err := io.WriteString(c.stdout, ast.FormatProgram(prog.Root)); err != nil {
		fmt.Fprintf(c.stderr, "write: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) dumpTokens(path string) int {
	var (
		source []byte
		err    error
	)
	if path == driver.StdinPath {
		source, err = io.ReadAll(c.stdin)
	} else {
		source, err = os.ReadFile(path)
	}
	if err != nil {
		fmt.Fprintf(c.stderr, "read %s: %v\n", path, err)
		return 1
	}
	toks, diags := parser.Tokenize(source)
	for _, tok := range toks {
		if tok.Kind == parser.EOF {
			break
		}
		fmt.Fprintf(c.stdout, "(%d): %s(%s)\n", tok.Line, tok.Kind, tok.Literal)
	}
	c.reportSyntax(diags)
	if len(diags) > 0 {
		return 1
	}
	return 0
}

func formatResult(v runtime.Value) string {
	if v == nil {
		return ""
	}
	return runtime.Format(v)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  mlang [run] <file>        run a program (- reads stdin)")
	fmt.Fprintln(w, "  mlang check <file>        report syntax and type errors")
	fmt.Fprintln(w, "  mlang parse [-json] <file> print the syntax tree")
	fmt.Fprintln(w, "  mlang fmt <file>          print the program in canonical form")
	fmt.Fprintln(w, "  mlang tokens <file>       print the token stream")
	fmt.Fprintln(w, "  mlang repl                start an interactive session")
	fmt.Fprintln(w, "  mlang --version           print the version")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "settings are read from %s and the MLANG_* environment variables\n", driver.ConfigFileName)
}
