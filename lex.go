package basic

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Token is a classified fragment of expression source text.
type Token struct {
	// Kind is the class of the token.
	Kind TokenKind
	// Text is the exact source text of the token. Numbers keep their literal
	// spelling and string literals include their quotes. The end token has
	// no text.
	Text string
	// Pos is the 1-based rune column at which the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// describe names the token for an error message.
func (t Token) describe() string {
	if t.Kind == TokenEnd {
		return "end of expression"
	}
	return strconv.Quote(t.Text)
}

// TokenKind is the class of a token.
type TokenKind int

const (
	// TokenInvalid is the zero TokenKind. The lexer never produces it.
	TokenInvalid TokenKind = iota
	// TokenOp is an operator or parenthesis.
	TokenOp
	// TokenIdent is a single ASCII letter.
	TokenIdent
	// TokenNum is a numeric literal.
	TokenNum
	// TokenString is a double-quoted string literal.
	TokenString
	// TokenEnd marks the end of the input.
	TokenEnd
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token

// Operators contains the runes which are lexed as single-rune operator
// tokens. Parentheses are operators as far as the lexer is concerned.
const Operators = "()+-*/^"

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
}

// Tokenize scans an expression into tokens. The result always ends with
// exactly one TokenEnd token.
func Tokenize(src string) ([]Token, error) {
	return Lex(strings.NewReader(src))
}

// Lex scans all tokens from src. The result always ends with exactly one
// TokenEnd token. The first invalid token ends scanning with a *LexError.
func Lex(src io.RuneScanner) ([]Token, error) {
	l := lexer{src: src, rune: 1}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEnd {
			return toks, nil
		}
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// result is an end token.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		pos := l.rune
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Token{Kind: TokenEnd, Pos: pos}, nil
			}
			return Token{}, err
		}
		switch {
		case r == ' ', r == '\t':
			continue
		case strings.ContainsRune(Operators, r):
			return Token{Kind: TokenOp, Text: string(r), Pos: pos}, nil
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			// Identifiers are only ever one letter long.
			return Token{Kind: TokenIdent, Text: string(r), Pos: pos}, nil
		case isDigit(r), r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return Token{}, err
			}
			return Token{Kind: TokenNum, Text: l.buf.String(), Pos: pos}, nil
		case r == '"':
			l.buf.WriteRune(r)
			if err := l.scanString(pos); err != nil {
				return Token{}, err
			}
			return Token{Kind: TokenString, Text: l.buf.String(), Pos: pos}, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return Token{}, l.error("", pos)
		}
	}
}

// scanNum greedily scans digits, then an optional fraction, then an optional
// exponent with an optional minus sign. It never fails on malformed numbers;
// e.g. a lone "." is a number token.
func (l *lexer) scanNum() error {
	if err := l.acceptRun(isDigit); err != nil {
		return err
	}
	dot, err := l.accept(func(r rune) bool { return r == '.' })
	if err != nil {
		return err
	}
	if dot {
		if err := l.acceptRun(isDigit); err != nil {
			return err
		}
	}
	e, err := l.accept(func(r rune) bool { return r == 'e' || r == 'E' })
	if err != nil {
		return err
	}
	if e {
		if _, err := l.accept(func(r rune) bool { return r == '-' }); err != nil {
			return err
		}
		if err := l.acceptRun(isDigit); err != nil {
			return err
		}
	}
	return nil
}

// scanString scans through the closing quote of a string literal whose
// opening quote is already in the buffer.
func (l *lexer) scanString(start int) error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return l.error("string", start)
			}
			return err
		}
		l.buf.WriteRune(r)
		if r == '"' {
			return nil
		}
	}
}

// accept consumes the next rune into the buffer if ok reports true for it.
func (l *lexer) accept(ok func(rune) bool) (bool, error) {
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	if !ok(r) {
		l.unreadRune()
		return false, nil
	}
	l.buf.WriteRune(r)
	return true, nil
}

// acceptRun consumes runes into the buffer while ok reports true for them.
func (l *lexer) acceptRun(ok func(rune) bool) error {
	for {
		more, err := l.accept(ok)
		if err != nil || !more {
			return err
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *lexer) error(kind string, col int) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  col,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the text the lexer had scanned for the invalid token. For an
	// unknown character, it is that character.
	Text string
	// Kind is the type of token the lexer was scanning. This is "string" for
	// an unterminated string literal or the empty string for a character that
	// begins no token.
	Kind string
	// Col is the column of the first rune of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "string" {
		return "unterminated string at " + pos + ": " + err.Text
	}
	return "unknown token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}
