package eval

import (
	"fmt"

	"github.com/takoeight0821/lox/token"
)

// Value is a runtime value. Lexical literals and runtime values share one type.
type Value = token.Literal

// IsTruthy maps a value to a boolean: numbers are truthy iff nonzero,
// strings are always truthy and nil is always falsy.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case token.Number:
		return v != 0
	case token.Boolean:
		return bool(v)
	case token.String:
		return true
	case token.Nil:
		return false
	default:
		panic(fmt.Sprintf("unreachable: unknown value %T", v))
	}
}

// Stringify returns the canonical text form of v.
func Stringify(v Value) string {
	switch v := v.(type) {
	case token.Number, token.Boolean, token.String, token.Nil:
		return v.String()
	default:
		panic(fmt.Sprintf("unreachable: unknown value %T", v))
	}
}
