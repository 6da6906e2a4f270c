package interpreter

import (
	"github.com/devraj/rlox/ast"
	"github.com/devraj/rlox/environment"
	"github.com/devraj/rlox/value"
)

// UserFunction is a function declared in Lox source. It closes over the
// environment active at the point of its declaration, which is what
// makes nested functions behave as closures: looking a variable up
// inside the function body walks outward through that captured
// environment, not through whatever happens to be active when the
// function is later called.
//
// It lives in package interpreter, not package value or package ast,
// because it needs both an *ast.Function body and an
// *environment.Environment closure; value and ast stay free of any
// dependency on interpreter by only exposing the value.Callable
// interface that UserFunction satisfies structurally.
type UserFunction struct {
	declaration *ast.Function
	closure     *environment.Environment
	interp      *Interpreter
}

func (f *UserFunction) Type() value.Type { return value.CallableType }

func (f *UserFunction) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

func (f *UserFunction) Arity() int {
	return len(f.declaration.Params)
}

func (f *UserFunction) Name() string {
	return f.declaration.Name.Lexeme
}

// Call binds the supplied arguments to the function's parameters in a
// fresh scope nested inside its closure, then executes its body. A
// `return` inside the body unwinds exactly to here; falling off the end
// of the body implicitly returns nil.
func (f *UserFunction) Call(args []value.Value) (value.Value, error) {
	callEnv := environment.NewChild(f.closure)
	for i, param := range f.declaration.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	sig, err := f.interp.executeBlock(f.declaration.Body, callEnv)
	if err != nil {
		return nil, err
	}
	switch sig.kind {
	case signalReturn:
		return sig.value, nil
	case signalBreak:
		return nil, newRuntimeError(sig.keyword, "'break' outside loop.")
	}
	return value.Nil{}, nil
}
