// Package resolver performs a single static pass over the parsed AST to
// compute, for every variable reference, how many enclosing scopes
// separate it from its declaration. The interpreter consults this
// distance map instead of searching the environment chain at runtime,
// which is what gives closures and shadowed locals their correct,
// lexically-scoped behavior.
package resolver

import (
	"fmt"

	"github.com/devraj/rlox/ast"
	"github.com/devraj/rlox/lexer"
)

type functionKind int

const (
	kindNone functionKind = iota
	kindFunction
)

// Resolver walks the AST once, before interpretation, threading a stack
// of lexical scopes. Each scope maps a name to whether its declaration
// has finished being processed yet (false = declared, true = defined),
// which is what lets it catch `var a = a;` as a use of the variable in
// its own initializer.
type Resolver struct {
	scopes          []map[string]bool
	locals          map[int]int
	errors          []string
	currentFunction functionKind
}

// New creates a Resolver ready to resolve a whole program.
func New() *Resolver {
	return &Resolver{locals: make(map[int]int)}
}

// HasErrors reports whether any resolution error was recorded.
func (r *Resolver) HasErrors() bool {
	return len(r.errors) > 0
}

// GetErrors returns every resolution error recorded, in source order.
func (r *Resolver) GetErrors() []string {
	return r.errors
}

// Locals returns the completed ExprID -> scope-depth map.
func (r *Resolver) Locals() map[int]int {
	return r.locals
}

func (r *Resolver) addError(tok lexer.Token, msg string) {
	r.errors = append(r.errors, fmt.Sprintf("[line %d] Error at '%s': %s", tok.Line, tok.Lexeme, msg))
}

// Resolve resolves an entire program's statements.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name) // lets the function recursively refer to itself
		r.resolveFunction(s, kindFunction)
	case *ast.Expression:
		r.resolveExpr(s.Expr)
	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.Return:
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	case *ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.Break:
		// no names to resolve
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.addError(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e.NodeID(), e.Name)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.NodeID(), e.Name)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}
	case *ast.Grouping:
		r.resolveExpr(e.Expression)
	case *ast.Literal:
		// nothing to resolve
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.addError(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(exprID int, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[exprID] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any local scope: treat as global, resolved directly
	// against the interpreter's global environment at runtime.
}
