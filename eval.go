package basic

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// Evaluate computes the value of a parse tree. Division by zero and overflow
// are not errors; they produce infinities or NaN exactly as float64 arithmetic
// does. The only error is a *NumberError for a number token that has no
// value, such as a lone ".".
func Evaluate(n Node) (float64, error) {
	switch n := n.(type) {
	case *Root:
		return Evaluate(n.Expr)
	case *Expr:
		l, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		for _, op := range n.Rest {
			r, err := Evaluate(op.Term)
			if err != nil {
				return 0, err
			}
			switch op.Op.Text {
			case "+":
				l += r
			case "-":
				l -= r
			default:
				panic("basic: invalid additive operator " + op.Op.String())
			}
		}
		return l, nil
	case *Term:
		l, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		for _, op := range n.Rest {
			r, err := Evaluate(op.Factor)
			if err != nil {
				return 0, err
			}
			switch op.Op.Text {
			case "*":
				l *= r
			case "/":
				l /= r
			default:
				panic("basic: invalid multiplicative operator " + op.Op.String())
			}
		}
		return l, nil
	case *Paren:
		return Evaluate(n.Inner)
	case *SignedNumber:
		v, err := Evaluate(n.Power)
		if n.Neg {
			v = -v
		}
		return v, err
	case *Power:
		base, err := num(n.Base)
		if err != nil {
			return 0, err
		}
		if n.Exp == nil {
			return base, nil
		}
		exp, err := num(*n.Exp)
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	default:
		panic("basic: invalid parse tree node")
	}
}

// num converts a number token to its value. Numbers too large to represent
// become infinities.
func num(tok Token) (float64, error) {
	f, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &NumberError{Col: tok.Pos, Text: tok.Text}
	}
	return f, nil
}

// Eval is a shortcut to tokenize, parse, and evaluate an expression.
func Eval(src io.RuneScanner) (float64, error) {
	r, err := ParseReader(src)
	if err != nil {
		return 0, err
	}
	return Evaluate(r)
}

// EvalString is a shortcut to tokenize, parse, and evaluate a string
// expression.
func EvalString(src string) (float64, error) {
	return Eval(strings.NewReader(src))
}
