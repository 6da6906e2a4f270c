// Package interpreter tree-walks a resolved program, evaluating
// expressions to values and executing statements for their side
// effects (variable binding, printing, control flow, function calls).
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/devraj/rlox/ast"
	"github.com/devraj/rlox/callable"
	"github.com/devraj/rlox/environment"
	"github.com/devraj/rlox/lexer"
	"github.com/devraj/rlox/value"
)

// Interpreter holds the runtime state of a single program: the global
// scope, the currently active scope, the resolver's variable-depth map,
// and the writer `print` sends its output to.
type Interpreter struct {
	Globals *environment.Environment
	env     *environment.Environment
	locals  map[int]int
	Stdout  io.Writer
}

// New creates an Interpreter with a fresh global scope populated with
// the native functions, and a resolver distance map to consult during
// variable lookup. Pass the map produced by resolver.Resolve.
func New(locals map[int]int) *Interpreter {
	globals := environment.New()
	for _, fn := range callable.Globals() {
		globals.Define(fn.Name(), fn)
	}
	return &Interpreter{
		Globals: globals,
		env:     globals,
		locals:  locals,
		Stdout:  os.Stdout,
	}
}

// Resolve records the scope depth for a single resolved expression. It
// lets a long-lived Interpreter (the REPL) absorb the resolver's output
// line by line instead of requiring the whole program up front.
func (in *Interpreter) Resolve(exprID, depth int) {
	in.locals[exprID] = depth
}

// Interpret executes a full program's top-level statements in order,
// stopping at the first runtime error. A `break` or `return` that
// unwinds all the way to the top level means it was never inside a
// loop or function body, which is a runtime error rather than a
// programmer mistake the resolver catches statically.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		sig, err := in.execute(stmt)
		if err != nil {
			return err
		}
		switch sig.kind {
		case signalBreak:
			return newRuntimeError(sig.keyword, "'break' outside loop.")
		case signalReturn:
			return newRuntimeError(sig.keyword, "'return' outside a function.")
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) (signal, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.executeBlock(s.Statements, environment.NewChild(in.env))
	case *ast.Expression:
		_, err := in.evaluate(s.Expr)
		return noSignal, err
	case *ast.Print:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return noSignal, err
		}
		fmt.Fprintln(in.Stdout, v.String())
		return noSignal, nil
	case *ast.Var:
		var v value.Value = value.Nil{}
		if s.Initializer != nil {
			var err error
			v, err = in.evaluate(s.Initializer)
			if err != nil {
				return noSignal, err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return noSignal, nil
	case *ast.Function:
		fn := &UserFunction{declaration: s, closure: in.env, interp: in}
		in.env.Define(s.Name.Lexeme, fn)
		return noSignal, nil
	case *ast.If:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return noSignal, err
		}
		if value.IsTruthy(cond) {
			return in.execute(s.Then)
		} else if s.Else != nil {
			return in.execute(s.Else)
		}
		return noSignal, nil
	case *ast.While:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return noSignal, err
			}
			if !value.IsTruthy(cond) {
				return noSignal, nil
			}
			sig, err := in.execute(s.Body)
			if err != nil {
				return noSignal, err
			}
			switch sig.kind {
			case signalBreak:
				return noSignal, nil
			case signalReturn:
				return sig, nil
			}
		}
	case *ast.Return:
		var v value.Value = value.Nil{}
		if s.Value != nil {
			var err error
			v, err = in.evaluate(s.Value)
			if err != nil {
				return noSignal, err
			}
		}
		return returnSignal(s.Keyword, v), nil
	case *ast.Break:
		return breakSignal(s.Keyword), nil
	default:
		return noSignal, newRuntimeError(lexer.Token{}, "unknown statement type %T", stmt)
	}
}

// executeBlock runs statements in a freshly entered scope, restoring
// the caller's scope before returning regardless of how the block
// exited (normal completion, break, return, or error).
func (in *Interpreter) executeBlock(stmts []ast.Stmt, blockEnv *environment.Environment) (signal, error) {
	previous := in.env
	in.env = blockEnv
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		sig, err := in.execute(stmt)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return noSignal, nil
}
