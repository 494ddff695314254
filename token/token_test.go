package token_test

import (
	"math"
	"testing"

	"github.com/takoeight0821/lox/token"
)

func TestNumberString(t *testing.T) {
	t.Parallel()

	// runtime values, so that the sum is rounded like a float64 addition.
	a, b := 0.1, 0.2

	testcases := []struct {
		input    float64
		expected string
	}{
		{7, "7"},
		{1.5, "1.5"},
		{45.67, "45.67"},
		{-123, "-123"},
		{a + b, "0.30000000000000004"},
		{1e21, "1000000000000000000000"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "NaN"},
	}

	for _, testcase := range testcases {
		actual := token.Number(testcase.input).String()
		if actual != testcase.expected {
			t.Errorf("Number(%v).String() returned %q, expected %q", testcase.input, actual, testcase.expected)
		}
	}
}

func TestLiteralString(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    token.Literal
		expected string
	}{
		{token.String("hello"), "hello"},
		{token.Boolean(true), "true"},
		{token.Boolean(false), "false"},
		{token.Nil{}, "nil"},
	}

	for _, testcase := range testcases {
		if actual := testcase.input.String(); actual != testcase.expected {
			t.Errorf("%#v.String() returned %q, expected %q", testcase.input, actual, testcase.expected)
		}
	}
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	words := []string{
		"and", "class", "else", "false", "fn", "for", "if", "nil",
		"or", "print", "return", "super", "this", "true", "var", "while",
	}
	for _, word := range words {
		if _, ok := token.LookupKeyword(word); !ok {
			t.Errorf("LookupKeyword(%q) reported not a keyword", word)
		}
	}

	for _, word := range []string{"fun", "Print", "x", ""} {
		if k, ok := token.LookupKeyword(word); ok {
			t.Errorf("LookupKeyword(%q) returned %v", word, k)
		}
	}
}

func TestTokenString(t *testing.T) {
	t.Parallel()

	tok := token.Token{Kind: token.NUMBER, Lexeme: "1.5", Line: 3, Literal: token.Number(1.5)}
	if actual, expected := tok.String(), `{NUMBER, "1.5", 3, 1.5}`; actual != expected {
		t.Errorf("String() returned %q, expected %q", actual, expected)
	}

	eof := token.Token{Kind: token.EOF, Line: 1}
	if actual, expected := eof.String(), `{EOF, "", 1, <nil>}`; actual != expected {
		t.Errorf("String() returned %q, expected %q", actual, expected)
	}
	if actual := token.Kind(99).String(); actual != "Kind(99)" {
		t.Errorf("Kind(99).String() returned %q", actual)
	}
}
