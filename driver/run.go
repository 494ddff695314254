// Package driver runs source text through the lexer, the parser and the evaluator.
package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/eval"
	"github.com/takoeight0821/lox/lexer"
	"github.com/takoeight0821/lox/logging"
	"github.com/takoeight0821/lox/parser"
	"github.com/takoeight0821/lox/token"
)

// Phase tells which stage of the pipeline reported an error.
type Phase int

const (
	Scan Phase = iota
	Parse
	Runtime
)

func (p Phase) String() string {
	switch p {
	case Scan:
		return "scan"
	case Parse:
		return "parse"
	case Runtime:
		return "runtime"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Error is a pipeline error of any phase. It always renders as `[line N] message`.
type Error struct {
	Phase   Phase
	Line    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Program is a parsed source: either a single expression or a list of statements.
type Program struct {
	Expr  ast.Expr
	Stmts []ast.Stmt
}

func (p Program) String() string {
	if p.Stmts == nil {
		return ast.Print(p.Expr)
	}
	var b strings.Builder
	for i, stmt := range p.Stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stmt.String())
	}
	return b.String()
}

// Runner holds the collaborators of one pipeline. A Runner is not safe for
// concurrent use; create one per goroutine.
type Runner struct {
	evaluator *eval.Evaluator
	logger    *slog.Logger
}

func NewRunner(out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{evaluator: &eval.Evaluator{Out: out}, logger: logger}
}

// Lex scans source. Scan errors are returned as joined *Error values.
func (r *Runner) Lex(source string) ([]token.Token, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		errs := convert(Scan, err)
		r.logger.Debug("lex failed", "errors", len(errs))
		return nil, errors.Join(errs...)
	}
	r.logger.Debug("lexed", "tokens", len(tokens))

	return tokens, nil
}

// Parse builds a Program from tokens. Sources that are empty, contain a `;` or
// start with `print` are parsed as statements, anything else as a single expression.
func (r *Runner) Parse(tokens []token.Token) (Program, error) {
	p := parser.NewParser(tokens)
	if isProgram(tokens) {
		stmts, err := p.ParseStmts()
		if err != nil {
			errs := convert(Parse, err)
			r.logger.Debug("parse failed", "mode", "statements", "errors", len(errs))
			return Program{Stmts: stmts}, errors.Join(errs...)
		}
		r.logger.Debug("parsed", "mode", "statements", "statements", len(stmts))
		return Program{Stmts: stmts}, nil
	}

	expr, err := p.ParseExpr()
	if err != nil {
		errs := convert(Parse, err)
		r.logger.Debug("parse failed", "mode", "expression", "errors", len(errs))
		return Program{Expr: expr}, errors.Join(errs...)
	}
	r.logger.Debug("parsed", "mode", "expression", "nodes", ast.Fold[int](expr, ast.Counter{}))

	return Program{Expr: expr}, nil
}

func isProgram(tokens []token.Token) bool {
	// an empty source is an empty program.
	if len(tokens) == 0 || tokens[0].Kind == token.EOF || tokens[0].Kind == token.PRINT {
		return true
	}
	for _, t := range tokens {
		if t.Kind == token.SEMICOLON {
			return true
		}
	}
	return false
}

// Run lexes, parses and evaluates source. A single expression has its value
// printed; statements print only through `print`.
//
// The returned error joins *Error values of one phase. An *eval.FatalError is
// returned unwrapped so that callers can abort.
func (r *Runner) Run(source string) error {
	tokens, err := r.Lex(source)
	if err != nil {
		return err
	}

	program, err := r.Parse(tokens)
	if err != nil {
		return err
	}

	if program.Stmts != nil {
		err = r.evaluator.Execute(program.Stmts)
	} else {
		err = r.evaluator.Interpret(program.Expr)
	}
	if err != nil {
		var fatal *eval.FatalError
		if errors.As(err, &fatal) {
			r.logger.Error("fatal evaluation error", "line", fatal.Line, "message", fatal.Message)
			return fatal
		}
		r.logger.Debug("evaluation failed", "error", err)
		return errors.Join(convert(Runtime, err)...)
	}

	return nil
}

// Errors flattens an error returned by Run into its *Error values.
// Errors of other types are skipped.
func Errors(err error) []*Error {
	var out []*Error
	for _, e := range flatten(err) {
		var pe *Error
		if errors.As(e, &pe) {
			out = append(out, pe)
		}
	}
	return out
}

func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

func convert(phase Phase, err error) []error {
	var out []error
	for _, e := range flatten(err) {
		var (
			lexErr     *lexer.Error
			parseErr   *parser.Error
			runtimeErr *eval.RuntimeError
		)
		switch {
		case errors.As(e, &lexErr):
			out = append(out, &Error{Phase: phase, Line: lexErr.Line, Message: lexErr.Message, Err: e})
		case errors.As(e, &parseErr):
			out = append(out, &Error{Phase: phase, Line: parseErr.Line, Message: parseErr.Message, Err: e})
		case errors.As(e, &runtimeErr):
			out = append(out, &Error{Phase: phase, Line: runtimeErr.Line, Message: runtimeErr.Message, Err: e})
		default:
			// I/O failures of the output writer carry no line.
			out = append(out, &Error{Phase: phase, Line: 0, Message: e.Error(), Err: e})
		}
	}
	return out
}
