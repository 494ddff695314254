// Package parser is a recursive-descent parser for lox expressions and statements.
package parser

import (
	"errors"
	"fmt"
	"slices"

	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/token"
)

type Parser struct {
	tokens  []token.Token
	current int
	errs    []error
}

// NewParser creates a parser over tokens. The slice must end with an EOF token,
// as returned by lexer.Lex.
func NewParser(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(slices.Clip(tokens), token.Token{Kind: token.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Error is a syntax error.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

func errorAt(where token.Token, format string, args ...any) *Error {
	return &Error{Line: where.Line, Message: fmt.Sprintf(format, args...)}
}

// ParseExpr parses the whole token sequence as one expression.
// When the returned error is non-nil it joins every *Error found; the returned
// tree is the best-effort result, or nil if a fatal error stopped the parse.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	p.errs = nil
	expr, err := p.expression()
	if err != nil {
		p.recover(err)
		return nil, errors.Join(p.errs...)
	}
	if !p.IsAtEnd() {
		p.recover(errorAt(p.peek(), "unexpected `%s` after expression", p.peek().Lexeme))
	}

	return expr, errors.Join(p.errs...)
}

// ParseStmts parses the token sequence as a program.
// A statement that fails to parse is skipped up to the next statement boundary,
// so one call reports the errors of every statement.
func (p *Parser) ParseStmts() ([]ast.Stmt, error) {
	p.errs = nil
	stmts := []ast.Stmt{}
	for !p.IsAtEnd() {
		start := p.current
		stmt, err := p.statement()
		if err != nil {
			p.recover(err)
			p.synchronize(start)
			continue
		}
		stmts = append(stmts, stmt)
	}

	return stmts, errors.Join(p.errs...)
}

// statement = "print" expression ";" | expression ";" ;
func (p *Parser) statement() (ast.Stmt, error) {
	if p.match(token.PRINT) {
		keyword := p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.SEMICOLON, "expected `;` after value"); err != nil {
			return nil, err
		}
		return &ast.PrintStmt{Keyword: keyword, Expr: expr}, nil
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "expected `;` after expression"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

// expression = sequence ;
func (p *Parser) expression() (ast.Expr, error) {
	return p.sequence()
}

// sequence = ternary ("," ternary)* ;
func (p *Parser) sequence() (ast.Expr, error) {
	return p.leftAssoc(p.ternary, token.COMMA)
}

// ternary = equality ("?" ternary ":" ternary)? ;
func (p *Parser) ternary() (ast.Expr, error) {
	cond, err := p.equality()
	if err != nil {
		return nil, err
	}
	if !p.match(token.QUESTION) {
		return cond, nil
	}
	p.advance()

	positive, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.COLON, "expected `:` after expression"); err != nil {
		return nil, err
	}
	negative, err := p.ternary()
	if err != nil {
		return nil, err
	}

	return &ast.Ternary{Cond: cond, Positive: positive, Negative: negative}, nil
}

// equality = comparison (("==" | "!=") comparison)* ;
func (p *Parser) equality() (ast.Expr, error) {
	return p.leftAssoc(p.comparison, token.EQUALEQUAL, token.BANGEQUAL)
}

// comparison = term ((">" | ">=" | "<" | "<=") term)* ;
func (p *Parser) comparison() (ast.Expr, error) {
	return p.leftAssoc(p.term, token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL)
}

// term = factor (("+" | "-") factor)* ;
func (p *Parser) term() (ast.Expr, error) {
	return p.leftAssoc(p.factor, token.PLUS, token.MINUS)
}

// factor = unary (("*" | "/") unary)* ;
func (p *Parser) factor() (ast.Expr, error) {
	return p.leftAssoc(p.unary, token.STAR, token.SLASH)
}

// leftAssoc parses `operand (op operand)*` and folds it to the left.
func (p *Parser) leftAssoc(operand func() (ast.Expr, error), ops ...token.Kind) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}

	return expr, nil
}

// unary = ("!" | "-") unary | primary ;
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.BANG, token.MINUS) {
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Operand: operand}, nil
	}

	return p.primary()
}

// binaryOperators are the tokens that can only appear between two operands.
var binaryOperators = []token.Kind{
	token.COMMA,
	token.EQUALEQUAL, token.BANGEQUAL,
	token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL,
	token.PLUS,
	token.STAR, token.SLASH,
}

// primary = NUMBER | STRING | IDENT | "true" | "false" | "nil" | "(" expression ")" ;
func (p *Parser) primary() (ast.Expr, error) {
	//exhaustive:ignore
	switch tok := p.peek(); tok.Kind {
	case token.NUMBER, token.STRING, token.IDENT:
		p.advance()
		return &ast.Literal{Token: tok, Value: tok.Literal}, nil
	case token.TRUE:
		p.advance()
		return &ast.Literal{Token: tok, Value: token.Boolean(true)}, nil
	case token.FALSE:
		p.advance()
		return &ast.Literal{Token: tok, Value: token.Boolean(false)}, nil
	case token.NIL:
		p.advance()
		return &ast.Literal{Token: tok, Value: token.Nil{}}, nil
	case token.LEFTPAREN:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHTPAREN, "expected `)` after expression"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expr: expr}, nil
	default:
		if slices.Contains(binaryOperators, tok.Kind) {
			// The left operand is missing. Report it, drop the operator and
			// keep whatever follows as a grouped sub-expression.
			p.recover(errorAt(tok, "expected operand before `%s`", tok.Lexeme))
			p.advance()
			expr, err := p.expression()
			if err != nil {
				return nil, err
			}
			return &ast.Grouping{Expr: expr}, nil
		}

		return nil, errorAt(tok, "expected expression, found %s", describe(tok))
	}
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return t.Pretty()
	}
	return fmt.Sprintf("`%s`", t.Lexeme)
}

// synchronize discards tokens until the start of the next statement: just past
// a `;`, or before a keyword that begins a statement. At least one token is
// discarded when the failed statement started at the current token.
func (p *Parser) synchronize(start int) {
	if p.current == start && !p.IsAtEnd() {
		if p.advance().Kind == token.SEMICOLON {
			return
		}
	}

	for !p.IsAtEnd() {
		//exhaustive:ignore
		switch p.peek().Kind {
		case token.SEMICOLON:
			p.advance()
			return
		case token.CLASS, token.FN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}

		p.advance()
	}
}

func (p *Parser) recover(err error) {
	p.errs = append(p.errs, err)
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.IsAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

// match compares token kinds only; the lexeme is not inspected.
func (p Parser) match(kinds ...token.Kind) bool {
	if p.IsAtEnd() {
		return false
	}

	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.match(kind) {
		return p.advance(), nil
	}

	return p.peek(), errorAt(p.peek(), "%s", message)
}
