// Package callable provides the native (Go-implemented) functions that
// are available to Lox programs without any source-level declaration.
package callable

import (
	"time"

	"github.com/devraj/rlox/value"
)

// NativeFunction adapts a Go function to the value.Callable interface so
// it can be installed into the global environment and invoked exactly
// like a user-defined function.
type NativeFunction struct {
	FnName string
	Arg    int
	Fn     func(args []value.Value) (value.Value, error)
}

func (n *NativeFunction) Type() value.Type   { return value.CallableType }
func (n *NativeFunction) String() string     { return "<native fn>" }
func (n *NativeFunction) Arity() int         { return n.Arg }
func (n *NativeFunction) Name() string       { return n.FnName }
func (n *NativeFunction) Call(args []value.Value) (value.Value, error) {
	return n.Fn(args)
}

// Clock returns the number of seconds elapsed since the Unix epoch as a
// Lox number, giving Lox programs a coarse wall-clock source for timing
// and benchmarking scripts.
func Clock() *NativeFunction {
	return &NativeFunction{
		FnName: "clock",
		Arg:    0,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	}
}

// Globals returns every native function installed into a fresh
// interpreter's global scope.
func Globals() []*NativeFunction {
	return []*NativeFunction{Clock()}
}
