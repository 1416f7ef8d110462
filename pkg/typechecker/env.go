package typechecker

import "sort"

// Symbol binds a variable name to the type of its most recent assignment.
type Symbol struct {
	Name string
	Type Type
}

// Environment is one scope of the symbol table.
type Environment struct {
	parent  *Environment
	symbols map[string]Symbol
}

// NewEnvironment creates a new environment with an optional parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		parent:  parent,
		symbols: make(map[string]Symbol),
	}
}

// Define binds a name to a type in the current scope, replacing any earlier
// binding of that name in this scope.
func (e *Environment) Define(name string, typ Type) {
	e.symbols[name] = Symbol{Name: name, Type: typ}
}

// Lookup searches for a name in the current scope chain.
func (e *Environment) Lookup(name string) (Symbol, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Symbols lists the bindings of this scope only, sorted by name.
func (e *Environment) Symbols() []Symbol {
	out := make([]Symbol, 0, len(e.symbols))
	for _, sym := range e.symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Extend returns a child environment for an if/else/while/for body.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
