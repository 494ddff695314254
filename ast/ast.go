// Package ast defines the expression tree built by the parser.
package ast

import (
	"github.com/takoeight0821/lox/token"
)

// Expr is a node of the expression tree.
// Each node owns its children; trees are never mutated after construction.
type Expr interface {
	String() string
	// Base returns the token used to locate the node in diagnostics.
	Base() token.Token
	expr()
}

type Literal struct {
	Token token.Token
	Value token.Literal
}

func (l *Literal) String() string {
	return Print(l)
}

func (l *Literal) Base() token.Token {
	return l.Token
}

func (*Literal) expr() {}

var _ Expr = &Literal{}

type Grouping struct {
	Expr Expr
}

func (g *Grouping) String() string {
	return Print(g)
}

func (g *Grouping) Base() token.Token {
	return g.Expr.Base()
}

func (*Grouping) expr() {}

var _ Expr = &Grouping{}

type Unary struct {
	Op      token.Token
	Operand Expr
}

func (u *Unary) String() string {
	return Print(u)
}

func (u *Unary) Base() token.Token {
	return u.Op
}

func (*Unary) expr() {}

var _ Expr = &Unary{}

type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (b *Binary) String() string {
	return Print(b)
}

func (b *Binary) Base() token.Token {
	return b.Op
}

func (*Binary) expr() {}

var _ Expr = &Binary{}

// Ternary is `Cond ? Positive : Negative`.
type Ternary struct {
	Cond     Expr
	Positive Expr
	Negative Expr
}

func (t *Ternary) String() string {
	return Print(t)
}

func (t *Ternary) Base() token.Token {
	return t.Cond.Base()
}

func (*Ternary) expr() {}

var _ Expr = &Ternary{}

// Stmt is a top-level statement.
type Stmt interface {
	String() string
	stmt()
}

// PrintStmt evaluates Expr and writes its text form.
type PrintStmt struct {
	Keyword token.Token
	Expr    Expr
}

func (p *PrintStmt) String() string {
	return parenthesize("print", Print(p.Expr))
}

func (*PrintStmt) stmt() {}

var _ Stmt = &PrintStmt{}

// ExprStmt evaluates Expr and discards the value.
type ExprStmt struct {
	Expr Expr
}

func (e *ExprStmt) String() string {
	return parenthesize("expr", Print(e.Expr))
}

func (*ExprStmt) stmt() {}

var _ Stmt = &ExprStmt{}
