package driver_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/lox/driver"
	"github.com/takoeight0821/lox/eval"
	"github.com/takoeight0821/lox/parser"
	"github.com/takoeight0821/lox/utils"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	testfiles, err := utils.FindSourceFiles("../testdata")
	require.NoError(t, err)
	require.NotEmpty(t, testfiles)

	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))

	for _, testfile := range testfiles {
		source, err := os.ReadFile(testfile)
		require.NoError(t, err)

		name := strings.TrimSuffix(filepath.Base(testfile), filepath.Ext(testfile))

		var out bytes.Buffer
		r := driver.NewRunner(&out, nil)
		require.NoError(t, r.Run(string(source)), testfile)
		g.Assert(t, name, out.Bytes())

		tokens, err := r.Lex(string(source))
		require.NoError(t, err, testfile)
		program, err := r.Parse(tokens)
		require.NoError(t, err, testfile)
		g.Assert(t, name+".ast", []byte(program.String()+"\n"))
	}
}

func run(t *testing.T, source string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := driver.NewRunner(&out, nil).Run(source)

	return out.String(), err
}

func messages(err error) []string {
	var out []string
	for _, e := range driver.Errors(err) {
		out = append(out, e.Error())
	}
	return out
}

func TestRunExpression(t *testing.T) {
	t.Parallel()

	out, err := run(t, "(1 + 2) * 3")
	require.NoError(t, err)
	assert.Equal(t, "9\n", out)

	out, err = run(t, `"a" + 1`)
	require.NoError(t, err)
	assert.Equal(t, "a1\n", out)
}

func TestRunStatements(t *testing.T) {
	t.Parallel()

	out, err := run(t, "print 1;\n2 + 2;\nprint \"two\";")
	require.NoError(t, err)
	assert.Equal(t, "1\ntwo\n", out)

	out, err = run(t, "print 1 + 1")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []string{"[line 1] expected `;` after value"}, messages(err))
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	for _, source := range []string{"", "   \n", "// comment"} {
		out, err := run(t, source)
		require.NoError(t, err, "%q", source)
		assert.Empty(t, out, "%q", source)
	}
}

func TestRunPhases(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		source   string
		phase    driver.Phase
		expected []string
	}{
		{"1 + @ + #", driver.Scan, []string{
			"[line 1] Unexpected character: @",
			"[line 1] Unexpected character: #",
		}},
		{"(* 1", driver.Parse, []string{
			"[line 1] expected operand before `*`",
			"[line 1] expected `)` after expression",
		}},
		{"print (1;\nprint 2 +;", driver.Parse, []string{
			"[line 1] expected `)` after expression",
			"[line 2] expected expression, found `;`",
		}},
		{"true +\n1", driver.Runtime, []string{
			"[line 1] cannot perform `+` on this expression",
		}},
	}

	for _, testcase := range testcases {
		out, err := run(t, testcase.source)
		require.Error(t, err, testcase.source)
		assert.Empty(t, out, testcase.source)
		assert.Equal(t, testcase.expected, messages(err), testcase.source)
		for _, e := range driver.Errors(err) {
			assert.Equal(t, testcase.phase, e.Phase, testcase.source)
		}
	}
}

func TestParseErrorUnwraps(t *testing.T) {
	t.Parallel()

	_, err := run(t, "+ 1")
	errs := driver.Errors(err)
	require.Len(t, errs, 1)

	var parseErr *parser.Error
	require.ErrorAs(t, errs[0], &parseErr)
	assert.Equal(t, 1, parseErr.Line)
}

func TestRunFatal(t *testing.T) {
	t.Parallel()

	out, err := run(t, "print 1;\nprint -\"a\";\nprint 3;")
	assert.Equal(t, "1\n", out)

	var fatal *eval.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, 2, fatal.Line)
	assert.Empty(t, driver.Errors(err))
}

func TestErrorsSkipsForeignErrors(t *testing.T) {
	t.Parallel()

	assert.Empty(t, driver.Errors(nil))
	assert.Empty(t, driver.Errors(errors.New("plain")))

	pe := &driver.Error{Phase: driver.Runtime, Line: 4, Message: "boom"}
	assert.Equal(t, []*driver.Error{pe}, driver.Errors(errors.Join(errors.New("plain"), pe)))
	assert.Equal(t, "[line 4] boom", pe.Error())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestRunWriterError(t *testing.T) {
	t.Parallel()

	err := driver.NewRunner(failingWriter{}, nil).Run("1")
	errs := driver.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, driver.Runtime, errs[0].Phase)
	assert.Equal(t, "[line 0] closed", errs[0].Error())

	err = driver.NewRunner(failingWriter{}, nil).Run("2;\nprint 1;")
	errs = driver.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "[line 2] print: closed", errs[0].Error())
}

func TestPhaseString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "scan", driver.Scan.String())
	assert.Equal(t, "parse", driver.Parse.String())
	assert.Equal(t, "runtime", driver.Runtime.String())
	assert.Equal(t, "Phase(9)", driver.Phase(9).String())
}
