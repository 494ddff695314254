package ast

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/lox/token"
)

// Repr is a bottom-up interpretation of an expression tree.
// Fold visits children before their parent, left to right.
type Repr[T any] interface {
	Literal(tok token.Token, value token.Literal) T
	Grouping(expr T) T
	Unary(op token.Token, operand T) T
	Binary(left T, op token.Token, right T) T
	Ternary(cond T, positive T, negative T) T
}

func Fold[T any](e Expr, r Repr[T]) T {
	switch e := e.(type) {
	case *Literal:
		return r.Literal(e.Token, e.Value)
	case *Grouping:
		return r.Grouping(Fold(e.Expr, r))
	case *Unary:
		return r.Unary(e.Op, Fold(e.Operand, r))
	case *Binary:
		left := Fold(e.Left, r)
		right := Fold(e.Right, r)
		return r.Binary(left, e.Op, right)
	case *Ternary:
		cond := Fold(e.Cond, r)
		positive := Fold(e.Positive, r)
		negative := Fold(e.Negative, r)
		return r.Ternary(cond, positive, negative)
	default:
		panic(fmt.Sprintf("unreachable: unknown expression %T", e))
	}
}

// Printer renders a tree in fully parenthesized prefix form,
// e.g. `(* (- 123) (group 45.67))`.
type Printer struct{}

var _ Repr[string] = Printer{}

// Print renders e with Printer. A nil tree renders as "<nil>".
func Print(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return Fold[string](e, Printer{})
}

func (Printer) Literal(_ token.Token, value token.Literal) string {
	if value == nil {
		return "nil"
	}
	return value.String()
}

func (Printer) Grouping(expr string) string {
	return parenthesize("group", expr)
}

func (Printer) Unary(op token.Token, operand string) string {
	return parenthesize(op.Lexeme, operand)
}

func (Printer) Binary(left string, op token.Token, right string) string {
	return parenthesize(op.Lexeme, left, right)
}

func (Printer) Ternary(cond, positive, negative string) string {
	return parenthesize("?:", cond, positive, negative)
}

// Counter counts the nodes of a tree.
type Counter struct{}

var _ Repr[int] = Counter{}

func (Counter) Literal(token.Token, token.Literal) int { return 1 }
func (Counter) Grouping(expr int) int                  { return expr + 1 }
func (Counter) Unary(_ token.Token, operand int) int   { return operand + 1 }
func (Counter) Binary(left int, _ token.Token, right int) int {
	return left + right + 1
}
func (Counter) Ternary(cond, positive, negative int) int {
	return cond + positive + negative + 1
}

func parenthesize(head string, elems ...string) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(head)
	for _, elem := range elems {
		b.WriteString(" ")
		b.WriteString(elem)
	}
	b.WriteString(")")
	return b.String()
}
