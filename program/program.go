// Package program reads numbered BASIC program lines and dispatches each
// statement by keyword. PRINT statements are evaluated with package basic;
// every other statement is recorded without being executed.
package program

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/btree"
)

// MaxLine is the largest valid line number. The smallest is 1.
const MaxLine = 99999

var (
	// ErrSyntax is the cause of a LineError for a line that does not start
	// with a line number followed by a statement.
	ErrSyntax = errors.New("invalid syntax")
	// ErrLineNumber is the cause of a LineError for a line number outside
	// 1..MaxLine.
	ErrLineNumber = errors.New("line number out of range 1.." + strconv.Itoa(MaxLine))
)

// Line is a numbered statement.
type Line struct {
	Number    int
	Statement *Statement
}

// LineError is an error in a program line.
type LineError struct {
	// Number is the line number, or 0 if the line has no valid number.
	Number int
	// Source is the text of the line.
	Source string
	// Err is the cause.
	Err error
}

func (err *LineError) Error() string {
	return fmt.Sprintf("%v at line %q", err.Err, err.Source)
}

func (err *LineError) Unwrap() error {
	return err.Err
}

// ParseLine parses a numbered program line, e.g. "10 PRINT 1+2". Errors are
// always of type *LineError.
func ParseLine(src string, opts Options) (Line, error) {
	num, rest := splitWord(src)
	if rest == "" {
		return Line{}, &LineError{Source: src, Err: ErrSyntax}
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return Line{}, &LineError{Source: src, Err: ErrSyntax}
	}
	if n <= 0 || n > MaxLine {
		return Line{}, &LineError{Source: src, Err: ErrLineNumber}
	}
	s, err := ParseStatement(rest, opts)
	if err != nil {
		return Line{}, &LineError{Number: n, Source: src, Err: err}
	}
	return Line{Number: n, Statement: s}, nil
}

// Program is a set of lines ordered by line number.
type Program struct {
	lines *btree.BTreeG[Line]
}

// New creates an empty program.
func New() *Program {
	return &Program{lines: btree.NewG(4, func(a, b Line) bool { return a.Number < b.Number })}
}

// Load reads a program. Blank lines are skipped. Every invalid line is
// reported, joined into the returned error, and left out of the program; the
// program of valid lines is returned even when there are errors. A line
// number given more than once keeps its last statement.
func Load(r io.Reader, opts Options) (*Program, error) {
	log := opts.logger()
	p := New()
	var errs []error
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		src := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)
		if src == "" {
			continue
		}
		line, err := ParseLine(src, opts)
		if err != nil {
			log.Warn().Err(err).Msg("rejected line")
			errs = append(errs, err)
			continue
		}
		log.Debug().Int("line", line.Number).Stringer("keyword", line.Statement.Keyword).Msg("accepted line")
		p.Set(line)
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, err)
	}
	return p, errors.Join(errs...)
}

// Set adds a line, replacing any line with the same number.
func (p *Program) Set(l Line) {
	p.lines.ReplaceOrInsert(l)
}

// Get returns the line with the given number.
func (p *Program) Get(n int) (Line, bool) {
	return p.lines.Get(Line{Number: n})
}

// Len returns the number of lines in the program.
func (p *Program) Len() int {
	return p.lines.Len()
}

// Ascend calls f for each line in order of line number until f returns false.
func (p *Program) Ascend(f func(Line) bool) {
	p.lines.Ascend(f)
}

// Print writes the value of each PRINT statement in line order, one per line,
// formatted with verb. Values computed at higher precision are preferred.
func (p *Program) Print(w io.Writer, verb string) error {
	if verb == "" {
		verb = "%g"
	}
	verb += "\n"
	var err error
	p.Ascend(func(l Line) bool {
		s := l.Statement
		if s.Keyword != Print {
			return true
		}
		var v any = s.Value
		if s.Big != nil {
			v = s.Big
		}
		_, err = fmt.Fprintf(w, verb, v)
		return err == nil
	})
	return err
}
