package basic

import "strconv"

// ParseError is an error indicating a token that does not fit the grammar. It
// implements InputError.
type ParseError struct {
	// Col is the position of the unexpected token.
	Col int
	// Want describes what the grammar required at this point, either a
	// quoted literal like "\")\"" or a token class like "number".
	Want string
	// Got is the token that was found instead.
	Got Token
}

func (err *ParseError) Error() string {
	return errpos(err.Col, "expected "+err.Want+", found "+err.Got.describe())
}

func (err *ParseError) Pos() int {
	return err.Col
}

// NumberError is an error indicating a number token whose text cannot be
// converted to a value, e.g. a lone ".". It implements InputError.
type NumberError struct {
	// Col is the position of the number.
	Col int
	// Text is the number's text.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the start of the token that
	// caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*NumberError)(nil)
)
