package ast

type NodeType string

const (
	NodeIdentifier           NodeType = "Identifier"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeVectorLiteral        NodeType = "VectorLiteral"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeRelationalExpression NodeType = "RelationalExpression"
	NodeTransposeExpression  NodeType = "TransposeExpression"
	NodeIndexExpression      NodeType = "IndexExpression"
	NodeBuiltinCall          NodeType = "BuiltinCall"
	NodeRangeExpression      NodeType = "RangeExpression"
	NodeAssignmentStatement  NodeType = "AssignmentStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeWhileLoop            NodeType = "WhileLoop"
	NodeForLoop              NodeType = "ForLoop"
	NodeBreakStatement       NodeType = "BreakStatement"
	NodeContinueStatement    NodeType = "ContinueStatement"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodePrintStatement       NodeType = "PrintStatement"
	NodeBlock                NodeType = "Block"
	NodeError                NodeType = "ErrorNode"
)

type Node interface {
	NodeType() NodeType
	Line() int
	isNode()
}

type nodeImpl struct {
	Type   NodeType `json:"type"`
	LineNo int      `json:"line"`
}

func newNodeImpl(kind NodeType, line int) nodeImpl {
	return nodeImpl{Type: kind, LineNo: line}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.LineNo }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// AssignmentTarget is either an *Identifier or an *IndexExpression.
type AssignmentTarget interface {
	Node
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Name string `json:"name"`
}

func NewIdentifier(name string, line int) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier, line), Name: name}
}

// Literals

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string, line int) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral, line), Value: value}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64, line int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral, line), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64, line int) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral, line), Value: value}
}

// VectorLiteral holds either scalar elements (a vector) or VectorLiteral rows (a matrix).
type VectorLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewVectorLiteral(elements []Expression, line int) *VectorLiteral {
	return &VectorLiteral{nodeImpl: newNodeImpl(NodeVectorLiteral, line), Elements: elements}
}

// Operators

type UnaryOperator string

const (
	UnaryOperatorNegate UnaryOperator = "-"
)

type BinaryOperator string

const (
	BinaryOperatorAdd    BinaryOperator = "+"
	BinaryOperatorSub    BinaryOperator = "-"
	BinaryOperatorMul    BinaryOperator = "*"
	BinaryOperatorDiv    BinaryOperator = "/"
	BinaryOperatorDotAdd BinaryOperator = ".+"
	BinaryOperatorDotSub BinaryOperator = ".-"
	BinaryOperatorDotMul BinaryOperator = ".*"
	BinaryOperatorDotDiv BinaryOperator = "./"
)

// IsElementWise reports whether op is one of the dotted operators.
func (op BinaryOperator) IsElementWise() bool {
	switch op {
	case BinaryOperatorDotAdd, BinaryOperatorDotSub, BinaryOperatorDotMul, BinaryOperatorDotDiv:
		return true
	}
	return false
}

// Linear maps a dotted operator to its scalar counterpart.
func (op BinaryOperator) Linear() BinaryOperator {
	switch op {
	case BinaryOperatorDotAdd:
		return BinaryOperatorAdd
	case BinaryOperatorDotSub:
		return BinaryOperatorSub
	case BinaryOperatorDotMul:
		return BinaryOperatorMul
	case BinaryOperatorDotDiv:
		return BinaryOperatorDiv
	}
	return op
}

type RelationalOperator string

const (
	RelationalOperatorLess         RelationalOperator = "<"
	RelationalOperatorGreater      RelationalOperator = ">"
	RelationalOperatorLessEqual    RelationalOperator = "<="
	RelationalOperatorGreaterEqual RelationalOperator = ">="
	RelationalOperatorNotEqual     RelationalOperator = "!="
	RelationalOperatorEqual        RelationalOperator = "=="
)

type AssignmentOperator string

const (
	AssignmentAssign AssignmentOperator = "="
	AssignmentAdd    AssignmentOperator = "+="
	AssignmentSub    AssignmentOperator = "-="
	AssignmentMul    AssignmentOperator = "*="
	AssignmentDiv    AssignmentOperator = "/="
)

// BinaryOperator returns the arithmetic operator a compound assignment applies.
func (op AssignmentOperator) BinaryOperator() (BinaryOperator, bool) {
	switch op {
	case AssignmentAdd:
		return BinaryOperatorAdd, true
	case AssignmentSub:
		return BinaryOperatorSub, true
	case AssignmentMul:
		return BinaryOperatorMul, true
	case AssignmentDiv:
		return BinaryOperatorDiv, true
	}
	return "", false
}

// Expressions

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression, line int) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression, line), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression, line int) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression, line), Operator: operator, Left: left, Right: right}
}

type RelationalExpression struct {
	nodeImpl
	expressionMarker

	Operator RelationalOperator `json:"operator"`
	Left     Expression         `json:"left"`
	Right    Expression         `json:"right"`
}

func NewRelationalExpression(operator RelationalOperator, left, right Expression, line int) *RelationalExpression {
	return &RelationalExpression{nodeImpl: newNodeImpl(NodeRelationalExpression, line), Operator: operator, Left: left, Right: right}
}

type TransposeExpression struct {
	nodeImpl
	expressionMarker

	Operand Expression `json:"operand"`
}

func NewTransposeExpression(operand Expression, line int) *TransposeExpression {
	return &TransposeExpression{nodeImpl: newNodeImpl(NodeTransposeExpression, line), Operand: operand}
}

// IndexExpression addresses one element of a vector (1 index) or matrix (2 indices).
type IndexExpression struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Name    string       `json:"name"`
	Indices []Expression `json:"indices"`
}

func NewIndexExpression(name string, indices []Expression, line int) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression, line), Name: name, Indices: indices}
}

type BuiltinName string

const (
	BuiltinEye   BuiltinName = "eye"
	BuiltinZeros BuiltinName = "zeros"
	BuiltinOnes  BuiltinName = "ones"
)

type BuiltinCall struct {
	nodeImpl
	expressionMarker

	Name      BuiltinName  `json:"name"`
	Arguments []Expression `json:"arguments"`
}

func NewBuiltinCall(name BuiltinName, args []Expression, line int) *BuiltinCall {
	return &BuiltinCall{nodeImpl: newNodeImpl(NodeBuiltinCall, line), Name: name, Arguments: args}
}

// RangeExpression only appears as the bound of a for loop.
type RangeExpression struct {
	nodeImpl
	expressionMarker

	Start Expression `json:"start"`
	End   Expression `json:"end"`
}

func NewRangeExpression(start, end Expression, line int) *RangeExpression {
	return &RangeExpression{nodeImpl: newNodeImpl(NodeRangeExpression, line), Start: start, End: end}
}

// Statements

type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Operator AssignmentOperator `json:"operator"`
	Target   AssignmentTarget   `json:"target"`
	Value    Expression         `json:"value"`
}

func NewAssignmentStatement(operator AssignmentOperator, target AssignmentTarget, value Expression, line int) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement, line), Operator: operator, Target: target, Value: value}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then, elseBody Statement, line int) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement, line), Condition: condition, Then: then, Else: elseBody}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileLoop(condition Expression, body Statement, line int) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop, line), Condition: condition, Body: body}
}

type ForLoop struct {
	nodeImpl
	statementMarker

	Variable string           `json:"variable"`
	Range    *RangeExpression `json:"range"`
	Body     Statement        `json:"body"`
}

func NewForLoop(variable string, rng *RangeExpression, body Statement, line int) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop, line), Variable: variable, Range: rng, Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement(line int) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement, line)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement(line int) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement, line)}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression, line int) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement, line), Argument: argument}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Arguments []Expression `json:"arguments"`
}

func NewPrintStatement(args []Expression, line int) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement, line), Arguments: args}
}

// Block is both the `{ ... }` statement and the program root.
type Block struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement, line int) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock, line), Body: body}
}

// ErrorNode stands in for a statement the parser could not recognise.
type ErrorNode struct {
	nodeImpl
	statementMarker
}

func NewErrorNode(line int) *ErrorNode {
	return &ErrorNode{nodeImpl: newNodeImpl(NodeError, line)}
}
