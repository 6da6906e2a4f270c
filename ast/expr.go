// Package ast defines the expression and statement node types produced by
// the parser and walked by the resolver and interpreter.
package ast

import (
	"github.com/devraj/rlox/lexer"
	"github.com/devraj/rlox/value"
)

// nextExprID hands out the identity each Expr node carries for its
// lifetime. Two distinct occurrences of the same textual name get two
// distinct IDs, which is what lets the resolver's depth map
// (map[int]int) and the interpreter's lookup agree on the same node
// without requiring pointer-address stability.
var nextExprID int

func newExprID() int {
	nextExprID++
	return nextExprID
}

// exprID is embedded in every Expr node to supply NodeID().
type exprID struct{ id int }

// NodeID returns this node's stable identity.
func (e exprID) NodeID() int { return e.id }

// Expr is implemented by every expression AST node. It carries no
// evaluation logic itself — the resolver and interpreter dispatch on the
// concrete type with a type switch.
type Expr interface {
	NodeID() int
	exprNode()
}

// Assign represents `name = value`.
type Assign struct {
	exprID
	Name  lexer.Token
	Value Expr
}

func (*Assign) exprNode() {}

// NewAssign constructs an Assign with a fresh identity.
func NewAssign(name lexer.Token, val Expr) *Assign {
	return &Assign{exprID: exprID{newExprID()}, Name: name, Value: val}
}

// Binary represents `left op right` for arithmetic, relational, and
// equality operators (but not `and`/`or` — see Logical).
type Binary struct {
	exprID
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (*Binary) exprNode() {}

func NewBinary(left Expr, op lexer.Token, right Expr) *Binary {
	return &Binary{exprID: exprID{newExprID()}, Left: left, Operator: op, Right: right}
}

// Call represents `callee(arguments...)`. Paren is the closing `)` token,
// kept for error line reporting.
type Call struct {
	exprID
	Callee    Expr
	Paren     lexer.Token
	Arguments []Expr
}

func (*Call) exprNode() {}

func NewCall(callee Expr, paren lexer.Token, args []Expr) *Call {
	return &Call{exprID: exprID{newExprID()}, Callee: callee, Paren: paren, Arguments: args}
}

// Grouping represents a parenthesized expression `(expr)`.
type Grouping struct {
	exprID
	Expression Expr
}

func (*Grouping) exprNode() {}

func NewGrouping(expr Expr) *Grouping {
	return &Grouping{exprID: exprID{newExprID()}, Expression: expr}
}

// Literal represents a number, string, boolean, or nil constant lifted
// from a token at parse time.
type Literal struct {
	exprID
	Value value.Value
}

func (*Literal) exprNode() {}

func NewLiteral(v value.Value) *Literal {
	return &Literal{exprID: exprID{newExprID()}, Value: v}
}

// Logical represents `left and right` / `left or right`. Kept distinct
// from Binary so the interpreter can short-circuit without evaluating
// Right unconditionally.
type Logical struct {
	exprID
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (*Logical) exprNode() {}

func NewLogical(left Expr, op lexer.Token, right Expr) *Logical {
	return &Logical{exprID: exprID{newExprID()}, Left: left, Operator: op, Right: right}
}

// Unary represents `-right` or `!right`.
type Unary struct {
	exprID
	Operator lexer.Token
	Right    Expr
}

func (*Unary) exprNode() {}

func NewUnary(op lexer.Token, right Expr) *Unary {
	return &Unary{exprID: exprID{newExprID()}, Operator: op, Right: right}
}

// Variable represents a bare identifier used as an expression.
type Variable struct {
	exprID
	Name lexer.Token
}

func (*Variable) exprNode() {}

func NewVariable(name lexer.Token) *Variable {
	return &Variable{exprID: exprID{newExprID()}, Name: name}
}
