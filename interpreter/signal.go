package interpreter

import (
	"github.com/devraj/rlox/lexer"
	"github.com/devraj/rlox/value"
)

// signalKind distinguishes ordinary fall-through statement execution
// from the two forms of non-local control flow the language supports.
// Keeping these as an explicit return value rather than a panic keeps
// break/return outside the RuntimeError path: they are not failures,
// they are control transfers that unwind exactly as far as their
// matching loop or function call and no further.
type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalReturn
)

// signal is threaded back up through every statement execution. A zero
// signal means "keep going"; signalBreak unwinds to the nearest
// enclosing loop; signalReturn unwinds to the nearest enclosing
// function call, carrying Value as the return value.
type signal struct {
	kind    signalKind
	value   value.Value
	keyword lexer.Token // the `break`/`return` token, for top-level diagnostics
}

var noSignal = signal{kind: signalNone}

func breakSignal(keyword lexer.Token) signal {
	return signal{kind: signalBreak, keyword: keyword}
}

func returnSignal(keyword lexer.Token, v value.Value) signal {
	return signal{kind: signalReturn, value: v, keyword: keyword}
}
