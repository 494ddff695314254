package token

import (
	"math"
	"strconv"
)

// Literal is a lexical literal and, at the same time, a runtime value.
// The set of implementations is closed: String, Number, Boolean and Nil.
type Literal interface {
	String() string
	literal()
}

type String string

func (s String) String() string {
	return string(s)
}

func (String) literal() {}

type Number float64

// String formats n in the shortest form that parses back to the same float64,
// without an exponent and without a trailing ".0".
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (Number) literal() {}

type Boolean bool

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

func (Boolean) literal() {}

type Nil struct{}

func (Nil) String() string {
	return "nil"
}

func (Nil) literal() {}

var (
	_ Literal = String("")
	_ Literal = Number(0)
	_ Literal = Boolean(false)
	_ Literal = Nil{}
)
