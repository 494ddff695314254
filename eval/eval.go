// Package eval is a tree-walking evaluator for lox expressions.
package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/token"
)

// Evaluator reduces expression trees to values.
// It keeps no state between evaluations; only Interpret and Execute write to Out.
type Evaluator struct {
	Out io.Writer
}

// NewEvaluator creates an Evaluator printing to stdout.
func NewEvaluator() *Evaluator {
	return &Evaluator{Out: os.Stdout}
}

// RuntimeError is a type mismatch found while evaluating.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

func runtimeError(where token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: where.Line, Message: fmt.Sprintf(format, args...)}
}

// FatalError is a defect that aborts the whole run instead of being reported
// like a RuntimeError. Negating a non-number is the only such case.
type FatalError struct {
	Line    int
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: [line %d] %s", e.Line, e.Message)
}

// Interpret evaluates expr and prints the text form of the result.
func (ev *Evaluator) Interpret(expr ast.Expr) error {
	v, err := ev.Evaluate(expr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ev.Out, Stringify(v))
	return err
}

// Execute runs statements in order and stops at the first error.
func (ev *Evaluator) Execute(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.PrintStmt:
			v, err := ev.Evaluate(s.Expr)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(ev.Out, Stringify(v)); err != nil {
				return runtimeError(s.Keyword, "print: %v", err)
			}
		case *ast.ExprStmt:
			if _, err := ev.Evaluate(s.Expr); err != nil {
				return err
			}
		default:
			panic(fmt.Sprintf("unreachable: unknown statement %T", s))
		}
	}
	return nil
}

// Evaluate reduces expr to a value. Children are evaluated left to right before
// their parent; the first error stops the walk.
func (ev *Evaluator) Evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Value == nil {
			return token.Nil{}, nil
		}
		return e.Value, nil
	case *ast.Grouping:
		return ev.Evaluate(e.Expr)
	case *ast.Unary:
		operand, err := ev.Evaluate(e.Operand)
		if err != nil {
			return nil, err
		}
		return evalUnary(e, operand)
	case *ast.Binary:
		left, err := ev.Evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := ev.Evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		return evalBinary(e, left, right)
	case *ast.Ternary:
		cond, err := ev.Evaluate(e.Cond)
		if err != nil {
			return nil, err
		}
		// only the selected branch is evaluated.
		if IsTruthy(cond) {
			return ev.Evaluate(e.Positive)
		}
		return ev.Evaluate(e.Negative)
	default:
		panic(fmt.Sprintf("unreachable: unknown expression %T", e))
	}
}

func evalUnary(e *ast.Unary, operand Value) (Value, error) {
	where := e.Base()
	//exhaustive:ignore
	switch e.Op.Kind {
	case token.MINUS:
		n, ok := operand.(token.Number)
		if !ok {
			return nil, &FatalError{Line: where.Line, Message: "Operand must be a number"}
		}
		return -n, nil
	case token.BANG:
		return token.Boolean(!IsTruthy(operand)), nil
	default:
		return nil, &FatalError{Line: where.Line, Message: "Invalid operator for an unary expression"}
	}
}

func evalBinary(e *ast.Binary, left, right Value) (Value, error) {
	l, lok := left.(token.Number)
	r, rok := right.(token.Number)
	if lok && rok {
		return arith(l, e.Op, r, e.Base())
	}

	_, lstr := left.(token.String)
	_, rstr := right.(token.String)
	if lstr || rstr {
		// a textual operand turns any operator into concatenation.
		return token.String(Stringify(left) + Stringify(right)), nil
	}

	return nil, runtimeError(e.Base(), "cannot perform `%s` on this expression", e.Op.Lexeme)
}

// arith applies op to two numbers; errors are reported at where.
func arith(l token.Number, op token.Token, r token.Number, where token.Token) (Value, error) {
	//exhaustive:ignore
	switch op.Kind {
	case token.GREATER:
		return token.Boolean(l > r), nil
	case token.GREATEREQUAL:
		return token.Boolean(l >= r), nil
	case token.LESS:
		return token.Boolean(l < r), nil
	case token.LESSEQUAL:
		return token.Boolean(l <= r), nil
	case token.EQUALEQUAL:
		return token.Boolean(l == r), nil
	case token.BANGEQUAL:
		return token.Boolean(l != r), nil
	case token.PLUS:
		return l + r, nil
	case token.MINUS:
		return l - r, nil
	case token.STAR:
		return l * r, nil
	default:
		return nil, runtimeError(where, "invalid operator for a binary expression")
	}
}
