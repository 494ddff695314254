package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/token"
)

func number(lexeme string, value float64) *ast.Literal {
	return &ast.Literal{
		Token: token.Token{Kind: token.NUMBER, Lexeme: lexeme, Line: 1, Literal: token.Number(value)},
		Value: token.Number(value),
	}
}

func op(kind token.Kind, lexeme string) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme, Line: 1}
}

func TestPrint(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		expr     ast.Expr
		expected string
	}{
		{
			expr: &ast.Binary{
				Left:  &ast.Unary{Op: op(token.MINUS, "-"), Operand: number("123", 123)},
				Op:    op(token.STAR, "*"),
				Right: &ast.Grouping{Expr: number("45.67", 45.67)},
			},
			expected: "(* (- 123) (group 45.67))",
		},
		{
			expr: &ast.Ternary{
				Cond:     &ast.Literal{Token: op(token.TRUE, "true"), Value: token.Boolean(true)},
				Positive: &ast.Literal{Token: op(token.STRING, `"yes"`), Value: token.String("yes")},
				Negative: &ast.Literal{Token: op(token.NIL, "nil"), Value: token.Nil{}},
			},
			expected: "(?: true yes nil)",
		},
		{
			expr:     &ast.Literal{Token: op(token.NIL, "nil")},
			expected: "nil",
		},
		{
			expr:     nil,
			expected: "<nil>",
		},
	}

	for _, testcase := range testcases {
		if diff := cmp.Diff(testcase.expected, ast.Print(testcase.expr)); diff != "" {
			t.Errorf("Print mismatch (-want +got):\n%s", diff)
		}
		if testcase.expr != nil && testcase.expr.String() != testcase.expected {
			t.Errorf("String() = %q, expected %q", testcase.expr.String(), testcase.expected)
		}
	}
}

func TestBase(t *testing.T) {
	t.Parallel()

	star := op(token.STAR, "*")
	binary := &ast.Binary{Left: number("1", 1), Op: star, Right: number("2", 2)}
	if binary.Base() != star {
		t.Errorf("Binary.Base() = %v, expected %v", binary.Base(), star)
	}

	grouping := &ast.Grouping{Expr: binary}
	if grouping.Base() != star {
		t.Errorf("Grouping.Base() = %v, expected %v", grouping.Base(), star)
	}
}

func TestCounter(t *testing.T) {
	t.Parallel()

	expr := &ast.Ternary{
		Cond:     &ast.Grouping{Expr: number("1", 1)},
		Positive: &ast.Unary{Op: op(token.BANG, "!"), Operand: number("2", 2)},
		Negative: &ast.Binary{Left: number("3", 3), Op: op(token.PLUS, "+"), Right: number("4", 4)},
	}

	if actual := ast.Fold[int](expr, ast.Counter{}); actual != 8 {
		t.Errorf("Counter returned %d, expected 8", actual)
	}
}

func TestStmtString(t *testing.T) {
	t.Parallel()

	sum := &ast.Binary{Left: number("1", 1), Op: op(token.PLUS, "+"), Right: number("2", 2)}
	testcases := []struct {
		stmt     ast.Stmt
		expected string
	}{
		{&ast.PrintStmt{Keyword: op(token.PRINT, "print"), Expr: sum}, "(print (+ 1 2))"},
		{&ast.ExprStmt{Expr: sum}, "(expr (+ 1 2))"},
	}

	for _, testcase := range testcases {
		if diff := cmp.Diff(testcase.expected, testcase.stmt.String()); diff != "" {
			t.Errorf("String mismatch (-want +got):\n%s", diff)
		}
	}
}
