// Package lexer turns source text into tokens.
package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/lox/token"
)

// Lex scans the whole source. Every lexical error is collected; if there is
// at least one, the tokens are discarded and the joined *Error values are returned.
// On success the token sequence always ends with a single EOF token.
func Lex(source string) ([]token.Token, error) {
	l := lexer{
		source:  source,
		tokens:  []token.Token{},
		start:   0,
		current: 0,
		line:    1,
	}

	var errs []error

	for !l.isAtEnd() {
		if err := l.scanToken(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Lexeme: "", Line: l.line, Literal: nil})

	return l.tokens, nil
}

type lexer struct {
	source string
	tokens []token.Token

	start   int // start of current lexeme
	current int // current position in source
	line    int // current line number
}

// Error is a lexical error.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return r
}

func (l lexer) peekNext() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	_, width := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+width >= len(l.source) {
		return '\x00'
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current+width:])

	return r
}

func (l *lexer) advance() rune {
	r, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return r
}

// match consumes the next rune if it is expected.
func (l *lexer) match(expected rune) bool {
	if l.isAtEnd() || l.peek() != expected {
		return false
	}
	l.advance()

	return true
}

func (l *lexer) addToken(kind token.Kind, literal token.Literal) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: text, Line: l.line, Literal: literal})
}

func (l *lexer) errorf(format string, args ...any) error {
	return &Error{Line: l.line, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) scanToken() error {
	l.start = l.current
	char := l.advance()
	switch char {
	case '(':
		l.addToken(token.LEFTPAREN, nil)
	case ')':
		l.addToken(token.RIGHTPAREN, nil)
	case '{':
		l.addToken(token.LEFTBRACE, nil)
	case '}':
		l.addToken(token.RIGHTBRACE, nil)
	case ',':
		l.addToken(token.COMMA, nil)
	case '.':
		l.addToken(token.DOT, nil)
	case '-':
		l.addToken(token.MINUS, nil)
	case '+':
		l.addToken(token.PLUS, nil)
	case ';':
		l.addToken(token.SEMICOLON, nil)
	case '*':
		l.addToken(token.STAR, nil)
	case '?':
		l.addToken(token.QUESTION, nil)
	case ':':
		l.addToken(token.COLON, nil)
	case '!':
		l.addToken(l.either('=', token.BANGEQUAL, token.BANG), nil)
	case '=':
		l.addToken(l.either('=', token.EQUALEQUAL, token.EQUAL), nil)
	case '<':
		l.addToken(l.either('=', token.LESSEQUAL, token.LESS), nil)
	case '>':
		l.addToken(l.either('=', token.GREATEREQUAL, token.GREATER), nil)
	case '/':
		if l.match('/') {
			// a comment goes until the end of the line.
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else {
			l.addToken(token.SLASH, nil)
		}
	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		l.line++
	case '"':
		return l.string()
	default:
		if isDigit(char) {
			return l.number()
		}
		if unicode.IsLetter(char) {
			l.identifier()

			return nil
		}

		return l.errorf("Unexpected character: %c", char)
	}

	return nil
}

func (l *lexer) either(next rune, matched, otherwise token.Kind) token.Kind {
	if l.match(next) {
		return matched
	}

	return otherwise
}

// string scans a string literal. There are no escape sequences.
func (l *lexer) string() error {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		return l.errorf("Unterminated string.")
	}

	// the closing quote.
	l.advance()

	value := l.source[l.start+1 : l.current-1]
	l.addToken(token.STRING, token.String(value))

	return nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNumeric(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func (l *lexer) number() error {
	for isDigit(l.peek()) {
		l.advance()
	}

	// a fractional part needs at least one digit after the dot.
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	// literals beyond float64 range become ±Inf.
	value, err := strconv.ParseFloat(l.source[l.start:l.current], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.errorf("Invalid number: %s", l.source[l.start:l.current])
	}
	l.addToken(token.NUMBER, token.Number(value))

	return nil
}

func (l *lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	value := l.source[l.start:l.current]

	if k, ok := token.LookupKeyword(value); ok {
		l.addToken(k, nil)
	} else {
		l.addToken(token.IDENT, token.String(value))
	}
}
