package token

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN
	LEFTBRACE
	RIGHTBRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR
	QUESTION
	COLON

	// One or two character tokens.
	BANG
	BANGEQUAL
	EQUAL
	EQUALEQUAL
	GREATER
	GREATEREQUAL
	LESS
	LESSEQUAL

	// Literals and identifiers.
	IDENT
	STRING
	NUMBER

	// Keywords.
	AND
	CLASS
	ELSE
	FALSE
	FN
	FOR
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
)

var kindNames = [...]string{
	EOF:          "EOF",
	LEFTPAREN:    "LEFTPAREN",
	RIGHTPAREN:   "RIGHTPAREN",
	LEFTBRACE:    "LEFTBRACE",
	RIGHTBRACE:   "RIGHTBRACE",
	COMMA:        "COMMA",
	DOT:          "DOT",
	MINUS:        "MINUS",
	PLUS:         "PLUS",
	SEMICOLON:    "SEMICOLON",
	SLASH:        "SLASH",
	STAR:         "STAR",
	QUESTION:     "QUESTION",
	COLON:        "COLON",
	BANG:         "BANG",
	BANGEQUAL:    "BANGEQUAL",
	EQUAL:        "EQUAL",
	EQUALEQUAL:   "EQUALEQUAL",
	GREATER:      "GREATER",
	GREATEREQUAL: "GREATEREQUAL",
	LESS:         "LESS",
	LESSEQUAL:    "LESSEQUAL",
	IDENT:        "IDENT",
	STRING:       "STRING",
	NUMBER:       "NUMBER",
	AND:          "AND",
	CLASS:        "CLASS",
	ELSE:         "ELSE",
	FALSE:        "FALSE",
	FN:           "FN",
	FOR:          "FOR",
	IF:           "IF",
	NIL:          "NIL",
	OR:           "OR",
	PRINT:        "PRINT",
	RETURN:       "RETURN",
	SUPER:        "SUPER",
	THIS:         "THIS",
	TRUE:         "TRUE",
	VAR:          "VAR",
	WHILE:        "WHILE",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Keywords maps every reserved word to its token kind.
// It is read-only after package initialization.
var keywords = map[string]Kind{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"fn":     FN,
	"for":    FOR,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// LookupKeyword reports the keyword kind of ident, if it is reserved.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Token is a lexical unit. Tokens are never mutated after the lexer emits them.
type Token struct {
	Kind    Kind
	Lexeme  string
	Line    int
	Literal Literal // nil unless Kind is IDENT, STRING or NUMBER
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d, %v}", t.Kind, t.Lexeme, t.Line, t.Literal)
}

// Pretty returns the text used to name the token in diagnostics.
func (t Token) Pretty() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return t.Lexeme
}
