package program

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/basic"
)

// Keyword identifies the kind of a statement.
type Keyword int

const (
	// None is the zero Keyword. No statement has it.
	None Keyword = iota
	End
	Print
	Let
	For
	Next
	Goto
	If
	Def
	Read
	Data
)

var keywordNames = [...]string{
	None:  "NONE",
	End:   "END",
	Print: "PRINT",
	Let:   "LET",
	For:   "FOR",
	Next:  "NEXT",
	Goto:  "GOTO",
	If:    "IF",
	Def:   "DEF",
	Read:  "READ",
	Data:  "DATA",
}

func (k Keyword) String() string {
	if k < 0 || int(k) >= len(keywordNames) {
		return "Keyword(" + strconv.Itoa(int(k)) + ")"
	}
	return keywordNames[k]
}

// keywords maps the upper-case spelling of each statement keyword.
var keywords = map[string]Keyword{
	"END":   End,
	"PRINT": Print,
	"LET":   Let,
	"FOR":   For,
	"NEXT":  Next,
	"GO":    Goto,
	"GOTO":  Goto,
	"IF":    If,
	"DEF":   Def,
	"READ":  Read,
	"DATA":  Data,
}

// Statement is a parsed statement. Only PRINT statements do anything; the
// others record their argument text.
type Statement struct {
	Keyword Keyword
	// Args is the text following the keyword, with surrounding whitespace
	// removed.
	Args string
	// Expr is the parsed expression of a PRINT statement.
	Expr *basic.Root
	// Value is the value of Expr.
	Value float64
	// Big is the value of Expr at Options.Prec bits, or nil if Prec is 0.
	Big *big.Float
}

// Options controls statement parsing.
type Options struct {
	// Prec is the precision in bits at which PRINT statements are evaluated
	// in addition to float64. Zero means float64 only.
	Prec uint
	// Logger receives diagnostics. A nil Logger discards them.
	Logger *zerolog.Logger
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

// ParseStatement parses the text of a statement, without its line number. A
// PRINT statement's expression is evaluated immediately.
func ParseStatement(text string, opts Options) (*Statement, error) {
	word, args := splitWord(text)
	if word == "" {
		return nil, &StatementError{Msg: "empty statement"}
	}
	kw, ok := keywords[strings.ToUpper(word)]
	if !ok {
		return nil, &StatementError{Keyword: word, Msg: "unknown statement"}
	}
	s := Statement{Keyword: kw, Args: args}
	switch kw {
	case End:
		if args != "" {
			return nil, &StatementError{Keyword: kw.String(), Msg: "takes no arguments"}
		}
	case Print:
		if args == "" {
			return nil, &StatementError{Keyword: kw.String(), Msg: "requires an expression"}
		}
		if err := s.print(opts); err != nil {
			return nil, &StatementError{Keyword: kw.String(), Err: err}
		}
	case Let:
		if args == "" {
			return nil, &StatementError{Keyword: kw.String(), Msg: "requires an assignment"}
		}
	}
	return &s, nil
}

// print parses and evaluates the PRINT expression.
func (s *Statement) print(opts Options) error {
	root, err := basic.ParseString(s.Args)
	if err != nil {
		return err
	}
	v, err := basic.Evaluate(root)
	if err != nil {
		return err
	}
	s.Expr, s.Value = root, v
	if opts.Prec > 0 {
		ctx := basic.NewContext(basic.Prec(opts.Prec))
		s.Big = ctx.Eval(root)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// splitWord splits off the first whitespace-delimited word of s.
func splitWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	k := strings.IndexFunc(s, unicode.IsSpace)
	if k < 0 {
		return s, ""
	}
	return s[:k], strings.TrimSpace(s[k:])
}

// StatementError is an error in the text of a statement.
type StatementError struct {
	// Keyword is the statement keyword as written, if there was one.
	Keyword string
	// Msg describes the problem. It is empty when Err is set.
	Msg string
	// Err is the error from the statement's expression, if any.
	Err error
}

func (err *StatementError) Error() string {
	msg := err.Msg
	if err.Err != nil {
		msg = err.Err.Error()
	}
	if err.Keyword == "" {
		return msg
	}
	return err.Keyword + ": " + msg
}

func (err *StatementError) Unwrap() error {
	return err.Err
}
