package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DumpTree writes an indented outline of node, one element per line, with each
// nesting level prefixed by "|  ".
func DumpTree(w io.Writer, node Node) error {
	d := &treeDumper{w: w}
	d.node(node, 0)
	return d.err
}

type treeDumper struct {
	w   io.Writer
	err error
}

func (d *treeDumper) line(depth int, text string) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintln(d.w, strings.Repeat("|  ", depth)+text)
}

func (d *treeDumper) node(node Node, depth int) {
	switch n := node.(type) {
	case nil:
	case *IntegerLiteral:
		d.line(depth, strconv.FormatInt(n.Value, 10))
	case *FloatLiteral:
		d.line(depth, FormatFloat(n.Value))
	case *StringLiteral:
		d.line(depth, n.Value)
	case *Identifier:
		d.line(depth, n.Name)
	case *BinaryExpression:
		d.line(depth, string(n.Operator))
		d.node(n.Left, depth+1)
		d.node(n.Right, depth+1)
	case *RelationalExpression:
		d.line(depth, string(n.Operator))
		d.node(n.Left, depth+1)
		d.node(n.Right, depth+1)
	case *AssignmentStatement:
		d.line(depth, string(n.Operator))
		d.node(n.Target, depth+1)
		d.node(n.Value, depth+1)
	case *UnaryExpression:
		d.line(depth, string(n.Operator))
		d.node(n.Operand, depth+1)
	case *IfStatement:
		d.line(depth, "IF")
		d.node(n.Condition, depth+1)
		d.line(depth, "THEN")
		d.node(n.Then, depth+1)
		if n.Else != nil {
			d.line(depth, "ELSE")
			d.node(n.Else, depth+1)
		}
	case *WhileLoop:
		d.line(depth, "WHILE")
		d.node(n.Condition, depth+1)
		d.node(n.Body, depth+1)
	case *ForLoop:
		d.line(depth, "FOR")
		d.line(depth+1, n.Variable)
		if n.Range != nil {
			d.node(n.Range, depth+1)
		}
		d.node(n.Body, depth+1)
	case *RangeExpression:
		d.line(depth, "RANGE")
		d.node(n.Start, depth+1)
		d.node(n.End, depth+1)
	case *BreakStatement:
		d.line(depth, "BREAK")
	case *ContinueStatement:
		d.line(depth, "CONTINUE")
	case *ReturnStatement:
		d.line(depth, "RETURN")
		d.node(n.Argument, depth+1)
	case *PrintStatement:
		d.line(depth, "PRINT")
		for _, arg := range n.Arguments {
			d.node(arg, depth+1)
		}
	case *Block:
		for _, stmt := range n.Body {
			d.node(stmt, depth)
		}
	case *VectorLiteral:
		d.line(depth, "VECTOR")
		for _, elem := range n.Elements {
			d.node(elem, depth+1)
		}
	case *IndexExpression:
		d.line(depth, "REF")
		d.line(depth+1, n.Name)
		for _, idx := range n.Indices {
			d.node(idx, depth+1)
		}
	case *BuiltinCall:
		d.line(depth, string(n.Name))
		for _, arg := range n.Arguments {
			d.node(arg, depth+1)
		}
	case *TransposeExpression:
		d.line(depth, "TRANSPOSE")
		d.node(n.Operand, depth+1)
	case *ErrorNode:
	}
}
