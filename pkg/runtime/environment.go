package runtime

import (
	"fmt"
	"sort"
)

// UndefinedNameError reports a read of a name with no binding in scope.
type UndefinedNameError struct {
	Name string
}

func (e *UndefinedNameError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'", e.Name)
}

// Environment provides scoping for runtime values.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Snapshot returns a copy of the bindings of this scope only.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Set updates the binding in the nearest scope that holds name, defining it in
// the current scope when no scope does.
func (e *Environment) Set(name string, value Value) {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.values[name]; ok {
			scope.values[name] = value
			return
		}
	}
	e.values[name] = value
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.values[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedNameError{Name: name}
}

// Keys returns the bindings of this scope in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend creates a child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
