package ast

import (
	"strconv"
	"strings"
)

const indentUnit = "    "

// FormatProgram renders a program root as canonical source text. Parsing the
// output and formatting it again yields the same text.
func FormatProgram(program *Block) string {
	if program == nil {
		return ""
	}
	var lines []string
	for _, stmt := range program.Body {
		if text := formatStatement(stmt, 0); text != "" {
			lines = append(lines, text)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Format renders a single node. Blocks are rendered with braces.
func Format(node Node) string {
	switch n := node.(type) {
	case Statement:
		return formatStatement(n, 0)
	case Expression:
		return formatExpression(n)
	default:
		return ""
	}
}

func pad(depth int) string { return strings.Repeat(indentUnit, depth) }

func formatStatement(stmt Statement, depth int) string {
	switch s := stmt.(type) {
	case nil:
		return ""
	case *Block:
		return formatBlock(s, depth)
	case *AssignmentStatement:
		return formatExpression(s.Target.(Expression)) + " " + string(s.Operator) + " " + formatExpression(s.Value) + ";"
	case *IfStatement:
		then := s.Then
		if s.Else != nil && EndsWithOpenIf(then) {
			then = NewBlock([]Statement{then}, then.Line())
		}
		var b strings.Builder
		b.WriteString("if (")
		b.WriteString(formatExpression(s.Condition))
		b.WriteString(")")
		thenText := formatBody(then, depth)
		b.WriteString(thenText)
		if s.Else != nil {
			if strings.HasPrefix(thenText, " {") {
				b.WriteString(" else")
			} else {
				b.WriteString("\n" + pad(depth) + "else")
			}
			if elseIf, ok := s.Else.(*IfStatement); ok {
				b.WriteString(" " + formatStatement(elseIf, depth))
			} else {
				b.WriteString(formatBody(s.Else, depth))
			}
		}
		return b.String()
	case *WhileLoop:
		return "while (" + formatExpression(s.Condition) + ")" + formatBody(s.Body, depth)
	case *ForLoop:
		rng := ""
		if s.Range != nil {
			rng = formatExpression(s.Range)
		}
		return "for " + s.Variable + " = " + rng + formatBody(s.Body, depth)
	case *BreakStatement:
		return "break;"
	case *ContinueStatement:
		return "continue;"
	case *ReturnStatement:
		if s.Argument == nil {
			return "return;"
		}
		return "return " + formatExpression(s.Argument) + ";"
	case *PrintStatement:
		return "print " + formatList(s.Arguments) + ";"
	case *ErrorNode:
		return ""
	default:
		return ""
	}
}

func formatBlock(block *Block, depth int) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, stmt := range block.Body {
		text := formatStatement(stmt, depth+1)
		if text == "" {
			continue
		}
		b.WriteString(pad(depth + 1))
		b.WriteString(text)
		b.WriteString("\n")
	}
	b.WriteString(pad(depth))
	b.WriteString("}")
	return b.String()
}

// formatBody renders a loop or branch body. A body that prints nothing, such
// as an ErrorNode, becomes an empty block so the next statement is not
// captured on re-parse.
func formatBody(body Statement, depth int) string {
	if block, ok := body.(*Block); ok {
		return " " + formatBlock(block, depth)
	}
	text := formatStatement(body, depth+1)
	if text == "" {
		return " {\n" + pad(depth) + "}"
	}
	return "\n" + pad(depth+1) + text
}

// EndsWithOpenIf reports whether an `else` following stmt would be captured by
// an if nested inside it.
func EndsWithOpenIf(stmt Statement) bool {
	switch s := stmt.(type) {
	case *IfStatement:
		if s.Else == nil {
			return true
		}
		return EndsWithOpenIf(s.Else)
	case *WhileLoop:
		return EndsWithOpenIf(s.Body)
	case *ForLoop:
		return EndsWithOpenIf(s.Body)
	}
	return false
}

func formatList(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = formatExpression(e)
	}
	return strings.Join(parts, ", ")
}

func formatExpression(expr Expression) string {
	switch e := expr.(type) {
	case nil:
		return ""
	case *IntegerLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *FloatLiteral:
		return FormatFloat(e.Value)
	case *StringLiteral:
		return `"` + e.Value + `"`
	case *Identifier:
		return e.Name
	case *VectorLiteral:
		return "[" + formatList(e.Elements) + "]"
	case *IndexExpression:
		return e.Name + "[" + formatList(e.Indices) + "]"
	case *BuiltinCall:
		return string(e.Name) + "(" + formatList(e.Arguments) + ")"
	case *UnaryExpression:
		return string(e.Operator) + formatOperand(e.Operand)
	case *BinaryExpression:
		return formatOperand(e.Left) + " " + string(e.Operator) + " " + formatOperand(e.Right)
	case *RelationalExpression:
		return formatOperand(e.Left) + " " + string(e.Operator) + " " + formatOperand(e.Right)
	case *TransposeExpression:
		if _, ok := e.Operand.(*UnaryExpression); ok {
			return "(" + formatExpression(e.Operand) + ")'"
		}
		return formatOperand(e.Operand) + "'"
	case *RangeExpression:
		return formatExpression(e.Start) + ":" + formatExpression(e.End)
	default:
		return ""
	}
}

func formatOperand(expr Expression) string {
	switch expr.(type) {
	case *BinaryExpression, *RelationalExpression:
		return "(" + formatExpression(expr) + ")"
	}
	return formatExpression(expr)
}

// FormatFloat renders a float so that it always reads back as a float literal.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}
