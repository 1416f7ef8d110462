package driver

import (
	"fmt"
	"io"
	"os"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/parser"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// Program is a parsed source file.
type Program struct {
	Path   string
	Source []byte
	Root   *ast.Block
	// Syntax holds lexer and parser diagnostics; Root is still usable and
	// carries ErrorNode placeholders for the failed statements.
	Syntax []parser.Diagnostic
}

// Loader reads and parses program files.
type Loader struct {
	// Stdin is read for StdinPath; os.Stdin when nil.
	Stdin io.Reader
}

// NewLoader constructs a loader reading standard input from os.Stdin.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the whole file at path (or stdin for "-") and parses it.
func (l *Loader) Load(path string) (*Program, error) {
	if path == "" {
		return nil, fmt.Errorf("loader: empty path")
	}
	var (
		source []byte
		err    error
	)
	if path == StdinPath {
		in := l.Stdin
		if in == nil {
			in = os.Stdin
		}
		source, err = io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("loader: read stdin: %w", err)
		}
	} else {
		source, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loader: read %s: %w", path, err)
		}
	}
	return Parse(path, source), nil
}

// Parse builds a Program from source already in memory.
func Parse(path string, source []byte) *Program {
	root, syntax := parser.ParseProgram(source)
	return &Program{Path: path, Source: source, Root: root, Syntax: syntax}
}
