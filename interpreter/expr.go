package interpreter

import (
	"github.com/devraj/rlox/ast"
	"github.com/devraj/rlox/lexer"
	"github.com/devraj/rlox/value"
)

func (in *Interpreter) evaluate(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Grouping:
		return in.evaluate(e.Expression)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Variable:
		return in.lookUpVariable(e.Name, e.NodeID())
	case *ast.Assign:
		return in.evalAssign(e)
	case *ast.Call:
		return in.evalCall(e)
	default:
		return nil, newRuntimeError(lexer.Token{}, "unknown expression type %T", expr)
	}
}

func (in *Interpreter) lookUpVariable(name lexer.Token, exprID int) (value.Value, error) {
	var val value.Value
	var err error
	if depth, ok := in.locals[exprID]; ok {
		val, err = in.env.GetAt(depth, name.Lexeme)
	} else {
		val, err = in.Globals.Get(name.Lexeme)
	}
	if err != nil {
		return nil, newRuntimeError(name, err.Error())
	}
	return val, nil
}

func (in *Interpreter) evalAssign(e *ast.Assign) (value.Value, error) {
	val, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := in.locals[e.NodeID()]; ok {
		if err := in.env.AssignAt(depth, e.Name.Lexeme, val); err != nil {
			return nil, newRuntimeError(e.Name, err.Error())
		}
		return val, nil
	}
	if err := in.Globals.Assign(e.Name.Lexeme, val); err != nil {
		return nil, newRuntimeError(e.Name, err.Error())
	}
	return val, nil
}

func (in *Interpreter) evalLogical(e *ast.Logical) (value.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == lexer.OR {
		if value.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !value.IsTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (value.Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case lexer.MINUS:
		n, ok := right.(value.Number)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	case lexer.BANG:
		return value.Bool(!value.IsTruthy(right)), nil
	}
	return nil, newRuntimeError(e.Operator, "Unknown unary operator '%s'.", e.Operator.Lexeme)
}

func (in *Interpreter) evalBinary(e *ast.Binary) (value.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.EQUAL_EQUAL:
		return value.Bool(value.Equal(left, right)), nil
	case lexer.BANG_EQUAL:
		return value.Bool(!value.Equal(left, right)), nil
	case lexer.COMMA:
		// The comma operator: both operands are evaluated for their
		// side effects, and the result is whichever the right one was.
		return right, nil
	}

	switch e.Operator.Type {
	case lexer.PLUS:
		if ln, ok := left.(value.Number); ok {
			if rn, ok := right.(value.Number); ok {
				return ln + rn, nil
			}
		}
		// A String on either side concatenates, stringifying the other
		// operand whatever its type.
		if _, ok := left.(value.String); ok {
			return value.String(left.String() + right.String()), nil
		}
		if _, ok := right.(value.String); ok {
			return value.String(left.String() + right.String()), nil
		}
		return nil, newRuntimeError(e.Operator, "Operands must be two numbers or involve a string.")
	case lexer.MINUS, lexer.STAR, lexer.SLASH,
		lexer.LESS, lexer.LESS_EQUAL, lexer.GREATER, lexer.GREATER_EQUAL:
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, newRuntimeError(e.Operator, "Operands must be numbers.")
		}
		switch e.Operator.Type {
		case lexer.MINUS:
			return ln - rn, nil
		case lexer.STAR:
			return ln * rn, nil
		case lexer.SLASH:
			// Division by zero follows IEEE-754 float semantics: it
			// yields +Inf/-Inf/NaN rather than a runtime error.
			return ln / rn, nil
		case lexer.LESS:
			return value.Bool(ln < rn), nil
		case lexer.LESS_EQUAL:
			return value.Bool(ln <= rn), nil
		case lexer.GREATER:
			return value.Bool(ln > rn), nil
		case lexer.GREATER_EQUAL:
			return value.Bool(ln >= rn), nil
		}
	}

	return nil, newRuntimeError(e.Operator, "Unknown binary operator '%s'.", e.Operator.Lexeme)
}

func (in *Interpreter) evalCall(e *ast.Call) (value.Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		arg, err := in.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	fn, ok := callee.(value.Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(args)
}
