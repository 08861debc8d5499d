package basic

import (
	"strings"
)

// Node is a node in the parse tree of an expression. Each node type
// corresponds to one rule of the grammar: *Root, *Expr, *Term, *Paren,
// *SignedNumber, and *Power. There are no other node types.
type Node interface {
	// String formats the node with alternating round and square brackets
	// grouping each operation.
	String() string

	fmt(b *strings.Builder, square bool)
}

// Factor is a node that can be an operand of * and /. It is either a *Paren
// or a *SignedNumber.
type Factor interface {
	Node
	factor()
}

// Root is the node for an entire expression.
type Root struct {
	Expr *Expr
	// End is the end token that followed the expression.
	End Token
}

// Expr is a left-associative chain of additions and subtractions.
type Expr struct {
	Left *Term
	Rest []AddOp
}

// AddOp is a + or - operator followed by its right operand.
type AddOp struct {
	Op   Token
	Term *Term
}

// Term is a left-associative chain of multiplications and divisions.
type Term struct {
	Left Factor
	Rest []MulOp
}

// MulOp is a * or / operator followed by its right operand.
type MulOp struct {
	Op     Token
	Factor Factor
}

// Paren is a parenthesized subexpression.
type Paren struct {
	Open  Token
	Inner *Expr
	Close Token
}

// SignedNumber is a power with an optional leading minus.
type SignedNumber struct {
	Neg   bool
	Power *Power
}

// Power is a number optionally raised to another number. Exp is nil when
// there is no exponent.
type Power struct {
	Base Token
	Exp  *Token
}

func (*Paren) factor()        {}
func (*SignedNumber) factor() {}

func (n *Root) String() string         { return nodeString(n) }
func (n *Expr) String() string         { return nodeString(n) }
func (n *Term) String() string         { return nodeString(n) }
func (n *Paren) String() string        { return nodeString(n) }
func (n *SignedNumber) String() string { return nodeString(n) }
func (n *Power) String() string        { return nodeString(n) }

func nodeString(n Node) string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *Root) fmt(b *strings.Builder, square bool) {
	n.Expr.fmt(b, square)
}

func (n *Expr) fmt(b *strings.Builder, square bool) {
	if len(n.Rest) == 0 {
		n.Left.fmt(b, square)
		return
	}
	l, r := brackets(square)
	b.WriteByte(l)
	defer b.WriteByte(r)
	n.Left.fmt(b, !square)
	for _, op := range n.Rest {
		b.WriteByte(' ')
		b.WriteString(op.Op.Text)
		b.WriteByte(' ')
		op.Term.fmt(b, !square)
	}
}

func (n *Term) fmt(b *strings.Builder, square bool) {
	if len(n.Rest) == 0 {
		n.Left.fmt(b, square)
		return
	}
	l, r := brackets(square)
	b.WriteByte(l)
	defer b.WriteByte(r)
	n.Left.fmt(b, !square)
	for _, op := range n.Rest {
		b.WriteByte(' ')
		b.WriteString(op.Op.Text)
		b.WriteByte(' ')
		op.Factor.fmt(b, !square)
	}
}

func (n *Paren) fmt(b *strings.Builder, square bool) {
	// Brackets in the output already group every operation.
	n.Inner.fmt(b, square)
}

func (n *SignedNumber) fmt(b *strings.Builder, square bool) {
	if n.Neg {
		b.WriteByte('-')
	}
	n.Power.fmt(b, square)
}

func (n *Power) fmt(b *strings.Builder, square bool) {
	b.WriteString(n.Base.Text)
	if n.Exp != nil {
		b.WriteByte('^')
		b.WriteString(n.Exp.Text)
	}
}

func brackets(square bool) (byte, byte) {
	if square {
		return '[', ']'
	}
	return '(', ')'
}
