package basic

import (
	"io"
	"strconv"
	"unicode/utf8"
)

// root          = expr END
// expr          = term { ('+' | '-') term }
// term          = factor { ('*' | '/') factor }
// factor        = '(' expr ')' | signed-number
// signed-number = [ '-' ] power
// power         = NUMBER [ '^' NUMBER ]
//
// A factor that starts with '(' never takes a leading minus, so -(1+2) is
// rejected. An exponent is a bare number, so 2^3^2 and 2^(1+1) are rejected.

// parser is a recursive-descent parser with one token of lookahead.
type parser struct {
	toks []Token
	pos  int
}

// Parse parses a token sequence into a parse tree. The first token that
// violates the grammar ends parsing with a *ParseError.
func Parse(toks []Token) (*Root, error) {
	p := parser{toks: toks}
	return p.root()
}

// ParseString tokenizes and parses an expression.
func ParseString(src string) (*Root, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// ParseReader tokenizes and parses an expression read from src.
func ParseReader(src io.RuneScanner) (*Root, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// peek returns the next token without consuming it. Past the end of the
// tokens, the result is an end token.
func (p *parser) peek() Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	col := 1
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		col = last.Pos + utf8.RuneCountInString(last.Text)
	}
	return Token{Kind: TokenEnd, Pos: col}
}

// next consumes the next token.
func (p *parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

// matchKind consumes the next token if it has kind k.
func (p *parser) matchKind(k TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != k {
		return Token{}, &ParseError{Col: tok.Pos, Want: kindName(k), Got: tok}
	}
	return p.next(), nil
}

// matchLit consumes the next token if its text is s.
func (p *parser) matchLit(s string) (Token, error) {
	tok := p.peek()
	if tok.Text != s {
		return Token{}, &ParseError{Col: tok.Pos, Want: strconv.Quote(s), Got: tok}
	}
	return p.next(), nil
}

// peekLit reports whether the next token's text is any of lits.
func (p *parser) peekLit(lits ...string) bool {
	t := p.peek().Text
	for _, s := range lits {
		if t == s {
			return true
		}
	}
	return false
}

func (p *parser) root() (*Root, error) {
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	end, err := p.matchKind(TokenEnd)
	if err != nil {
		return nil, err
	}
	return &Root{Expr: e, End: end}, nil
}

func (p *parser) expr() (*Expr, error) {
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	n := Expr{Left: t}
	for p.peekLit("+", "-") {
		op := p.next()
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		n.Rest = append(n.Rest, AddOp{Op: op, Term: t})
	}
	return &n, nil
}

func (p *parser) term() (*Term, error) {
	f, err := p.factor()
	if err != nil {
		return nil, err
	}
	n := Term{Left: f}
	for p.peekLit("*", "/") {
		op := p.next()
		f, err := p.factor()
		if err != nil {
			return nil, err
		}
		n.Rest = append(n.Rest, MulOp{Op: op, Factor: f})
	}
	return &n, nil
}

func (p *parser) factor() (Factor, error) {
	if !p.peekLit("(") {
		return p.signedNumber()
	}
	open, err := p.matchLit("(")
	if err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	cl, err := p.matchLit(")")
	if err != nil {
		return nil, err
	}
	return &Paren{Open: open, Inner: e, Close: cl}, nil
}

func (p *parser) signedNumber() (*SignedNumber, error) {
	var n SignedNumber
	if p.peekLit("-") {
		p.next()
		n.Neg = true
	}
	pw, err := p.power()
	if err != nil {
		return nil, err
	}
	n.Power = pw
	return &n, nil
}

func (p *parser) power() (*Power, error) {
	base, err := p.matchKind(TokenNum)
	if err != nil {
		return nil, err
	}
	n := Power{Base: base}
	if p.peekLit("^") {
		p.next()
		exp, err := p.matchKind(TokenNum)
		if err != nil {
			return nil, err
		}
		n.Exp = &exp
	}
	return &n, nil
}

// kindName names a token kind in error messages.
func kindName(k TokenKind) string {
	switch k {
	case TokenNum:
		return "number"
	case TokenEnd:
		return "end of expression"
	case TokenOp:
		return "operator"
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	default:
		return k.String()
	}
}
