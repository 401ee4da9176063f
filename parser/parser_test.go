package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisp-lang/wisp/lisp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		source   string
		rendered string
	}{
		{`0`, `0`},
		{`123`, `123`},
		{`-7`, `-7`},
		{`+5`, `5`},
		{`"abc"`, `"abc"`},
		{`"tab\there"`, `"tab\there"`},
		{`""`, `""`},
		{`:kw`, `:kw`},
		{`abc`, `abc`},
		{`+`, `+`},
		{`<=`, `<=`},
		{`empty?`, `empty?`},
		{`swap!`, `swap!`},
		{`nil`, `nil`},
		{`true`, `true`},
		{`false`, `false`},
		{`()`, `()`},
		{`(+ 1 2)`, `(+ 1 2)`},
		{`( + 1 (  * 2 3 ) )`, `(+ 1 (* 2 3))`},
		{`[]`, `[]`},
		{`[1 2 3]`, `[1 2 3]`},
		{`(list [1 2] (3 4))`, `(list [1 2] (3 4))`},
		{`{}`, `{}`},
		{`{"a" 1}`, `{"a" 1}`},
		{`{:b 2 "a" 1}`, `{:b 2 "a" 1}`},
		{`@a`, `(deref a)`},
		{`@(atom 1)`, `(deref (atom 1))`},
		{`(def! x 1) ; trailing comment`, `(def! x 1)`},
		{"; leading comment\n(+ 1 2)", `(+ 1 2)`},
	}
	for _, test := range tests {
		v, complete, err := Parse([]byte(test.source))
		if !assert.NoError(t, err, "source: %s", test.source) {
			continue
		}
		if !assert.True(t, complete, "source: %s", test.source) {
			continue
		}
		if !assert.Len(t, v, 1, "source: %s", test.source) {
			continue
		}
		assert.Equal(t, test.rendered, lisp.PrintString(v[0], true), "source: %s", test.source)
	}
}

func TestParseMulti(t *testing.T) {
	v, complete, err := Parse([]byte("(def! x 1)\nx\n[x x]\n"))
	require.NoError(t, err)
	require.True(t, complete)
	require.Len(t, v, 3)
	assert.Equal(t, `(def! x 1)`, v[0].String())
	assert.Equal(t, `x`, v[1].String())
	assert.Equal(t, `[x x]`, v[2].String())
}

func TestParseEmpty(t *testing.T) {
	for _, source := range []string{"", "   \n\t", "; nothing here", ";; a\n;; b\n"} {
		v, complete, err := Parse([]byte(source))
		require.NoError(t, err, "source: %q", source)
		assert.True(t, complete, "source: %q", source)
		assert.Len(t, v, 0, "source: %q", source)
	}
}

func TestParseIncomplete(t *testing.T) {
	for _, source := range []string{"(+ 1", "[1 2", "{\"a\" 1", `"abc`, "(def! f (fn* (x)"} {
		_, complete, err := Parse([]byte(source))
		require.NoError(t, err, "source: %q", source)
		assert.False(t, complete, "source: %q", source)
	}
}

func TestParseError(t *testing.T) {
	for _, source := range []string{"{\"a\"}", "{1 2}", "{(list) 2}"} {
		_, _, err := Parse([]byte(source))
		assert.Error(t, err, "source: %q", source)
	}
}

func TestReader(t *testing.T) {
	r := NewReader()
	v, err := r.Read("test", strings.NewReader("(+ 1 2) 3"))
	require.NoError(t, err)
	require.Len(t, v, 2)
	assert.Equal(t, `(+ 1 2)`, v[0].String())

	_, err = r.Read("test", strings.NewReader("(+ 1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "test")
}
