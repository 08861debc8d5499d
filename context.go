package basic

import (
	"errors"
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Context evaluates parse trees with arbitrary-precision arithmetic. It is not
// safe to use a Context concurrently.
type Context struct {
	nums map[string]*big.Float
	prec uint
	err  error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: 64}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case precopt:
			ctx.prec = uint(opt)
		default:
			panic("basic: unknown option type")
		}
	}
	return &ctx
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Err returns the error from the last evaluation, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Eval evaluates a parse tree and returns the result. Unlike Evaluate, an
// operation with no real result, e.g. 0/0 or (-8)^0.5, is an error, because
// big.Float has no NaN. If an error occurs, the result is nil and ctx.Err
// returns the error.
func (ctx *Context) Eval(n Node) *big.Float {
	r, err := ctx.eval(n)
	ctx.err = err
	if err != nil {
		return nil
	}
	return r
}

func (ctx *Context) eval(n Node) (*big.Float, error) {
	switch n := n.(type) {
	case *Root:
		return ctx.eval(n.Expr)
	case *Expr:
		l, err := ctx.eval(n.Left)
		if err != nil {
			return nil, err
		}
		for _, op := range n.Rest {
			r, err := ctx.eval(op.Term)
			if err != nil {
				return nil, err
			}
			switch op.Op.Text {
			case "+":
				// Guard against inf + -inf.
				if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
					return nil, &DomainError{X: r, Func: "+"}
				}
				l.Add(l, r)
			case "-":
				if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
					return nil, &DomainError{X: r, Func: "-"}
				}
				l.Sub(l, r)
			default:
				panic("basic: invalid additive operator " + op.Op.String())
			}
		}
		return l, nil
	case *Term:
		l, err := ctx.eval(n.Left)
		if err != nil {
			return nil, err
		}
		for _, op := range n.Rest {
			r, err := ctx.eval(op.Factor)
			if err != nil {
				return nil, err
			}
			switch op.Op.Text {
			case "*":
				if l.Sign() == 0 && r.IsInf() || l.IsInf() && r.Sign() == 0 {
					return nil, &DomainError{X: r, Func: "*"}
				}
				l.Mul(l, r)
			case "/":
				// Guard against invalid divisions, 0/0 or inf/inf.
				if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
					return nil, &DomainError{X: r, Func: "/"}
				}
				l.Quo(l, r)
			default:
				panic("basic: invalid multiplicative operator " + op.Op.String())
			}
		}
		return l, nil
	case *Paren:
		return ctx.eval(n.Inner)
	case *SignedNumber:
		v, err := ctx.eval(n.Power)
		if err != nil {
			return nil, err
		}
		if n.Neg {
			v.Neg(v)
		}
		return v, nil
	case *Power:
		base, err := ctx.num(n.Base)
		if err != nil {
			return nil, err
		}
		r := new(big.Float).SetPrec(ctx.prec).Set(base)
		if n.Exp == nil {
			return r, nil
		}
		exp, err := ctx.num(*n.Exp)
		if err != nil {
			return nil, err
		}
		return pow(r, base, exp)
	default:
		panic("basic: invalid parse tree node")
	}
}

// pow sets z to x^y and returns it.
func pow(z, x, y *big.Float) (r *big.Float, err error) {
	switch {
	case y.Sign() == 0:
		return z.SetInt64(1), nil
	case x.IsInf() || y.IsInf():
		// Infinities are exact in float64, and so are the results of pow on
		// them.
		xf, _ := x.Float64()
		yf, _ := y.Float64()
		f := math.Pow(xf, yf)
		if math.IsNaN(f) {
			return nil, &DomainError{X: x, Func: "^"}
		}
		return z.SetFloat64(f), nil
	case x.Sign() == 0:
		odd := oddInt(y)
		if y.Sign() < 0 {
			return z.SetInf(odd && x.Signbit()), nil
		}
		z.SetInt64(0)
		if odd && x.Signbit() {
			z.Neg(z)
		}
		return z, nil
	case x.Sign() < 0:
		// A negative base has a real result only for integer exponents.
		if !y.IsInt() {
			return nil, &DomainError{X: x, Func: "^"}
		}
		a := new(big.Float).SetPrec(z.Prec()).Neg(x)
		if _, err := pow(z, a, y); err != nil {
			return nil, err
		}
		if oddInt(y) {
			z.Neg(z)
		}
		return z, nil
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err = r.(error) // panic if not error
		if errors.As(err, &big.ErrNaN{}) {
			err = &DomainError{X: x, Func: "^"}
			return
		}
		panic(err)
	}()
	return bigfloat.Pow(z, x, y), nil
}

// oddInt reports whether x is an odd integer.
func oddInt(x *big.Float) bool {
	if !x.IsInt() || x.IsInf() {
		return false
	}
	i, _ := x.Int(nil)
	return i.Bit(0) == 1
}

// num gets a possibly cached number from its token. The result must not be
// modified.
func (ctx *Context) num(tok Token) (*big.Float, error) {
	s := tok.Text
	if r := ctx.nums[s]; r != nil {
		return r, nil
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// Literals are never signed, so overflow is always positive.
		r = new(big.Float).SetPrec(ctx.prec).SetInf(false)
	default:
		return nil, &NumberError{Col: tok.Pos, Text: s}
	}
	ctx.nums[s] = r
	return r, nil
}

// DomainError is an error returned when an operation has no real result for
// its operands.
type DomainError struct {
	// X is the out-of-domain operand.
	X *big.Float
	// Func is the operator.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
