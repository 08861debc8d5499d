package basic_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/basic"
)

func FuzzTokenize(f *testing.F) {
	f.Add("(1+1) + 2 * (3^2)")
	f.Add(`"Hello, World"`)
	f.Add("1.2.3e-4")
	f.Fuzz(func(t *testing.T, s string) {
		toks, err := basic.Tokenize(s)
		if err != nil {
			var le *basic.LexError
			if !errors.As(err, &le) {
				t.Fatalf("%q: non-lex error %v", s, err)
			}
			return
		}
		for i, tok := range toks {
			if (tok.Kind == basic.TokenEnd) != (i == len(toks)-1) {
				t.Fatalf("%q: end token misplaced: %v", s, toks)
			}
		}
	})
}

func FuzzEval(f *testing.F) {
	f.Add("(1+1) + 2 * (3^2)")
	f.Add("-5 + 3")
	f.Add("1/0")
	f.Fuzz(func(t *testing.T, s string) {
		root, err := basic.ParseString(s)
		if err != nil {
			return
		}
		if _, err := basic.Evaluate(root); err != nil {
			var ne *basic.NumberError
			if !errors.As(err, &ne) {
				t.Fatalf("%q: unexpected evaluation error %v", s, err)
			}
		}
	})
}
