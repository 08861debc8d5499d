package program

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	l, err := ParseLine("10 PRINT (1+1) + 2 * (3^2)", Options{})
	require.NoError(t, err)
	assert.Equal(t, 10, l.Number)
	assert.Equal(t, Print, l.Statement.Keyword)
	assert.Equal(t, 20.0, l.Statement.Value)

	l, err = ParseLine("  99999\tend  ", Options{})
	require.NoError(t, err)
	assert.Equal(t, MaxLine, l.Number)
	assert.Equal(t, End, l.Statement.Keyword)
}

func TestParseLineErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		num   int
		cause error
	}{
		{"no-statement", "40", 0, ErrSyntax},
		{"no-number", "PRINT 1", 0, ErrSyntax},
		{"bad-number", "1O PRINT 1", 0, ErrSyntax},
		{"zero", "0 PRINT 1", 0, ErrLineNumber},
		{"negative", "-5 PRINT 1", 0, ErrLineNumber},
		{"too-big", "100000 PRINT 1", 0, ErrLineNumber},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseLine(c.src, Options{})
			var le *LineError
			require.True(t, errors.As(err, &le), "want *LineError, got %v", err)
			assert.Equal(t, c.num, le.Number)
			assert.Equal(t, c.src, le.Source)
			assert.ErrorIs(t, err, c.cause)
		})
	}
}

func TestParseLineStatementError(t *testing.T) {
	_, err := ParseLine("20 PRINT 2^3^2", Options{})
	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 20, le.Number)
	var se *StatementError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "PRINT", se.Keyword)
	assert.EqualError(t, err, `PRINT: 4: expected end of expression, found "^" at line "20 PRINT 2^3^2"`)
}

const mixed = `
10 PRINT 1
20 LET X = 5
10 PRINT 2^10

40
30 PRINT 14/2
100000 PRINT 3
50 REM not a statement
`

func TestLoad(t *testing.T) {
	p, err := Load(strings.NewReader(mixed), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.ErrorIs(t, err, ErrLineNumber)
	var se *StatementError
	assert.True(t, errors.As(err, &se))

	require.NotNil(t, p)
	assert.Equal(t, 3, p.Len())
	var nums []int
	p.Ascend(func(l Line) bool {
		nums = append(nums, l.Number)
		return true
	})
	assert.Equal(t, []int{10, 20, 30}, nums)

	l, ok := p.Get(10)
	require.True(t, ok)
	assert.Equal(t, "2^10", l.Statement.Args)
	_, ok = p.Get(40)
	assert.False(t, ok)

	var b bytes.Buffer
	require.NoError(t, p.Print(&b, ""))
	assert.Equal(t, "1024\n7\n", b.String())
}

func TestLoadClean(t *testing.T) {
	src := "30 PRINT 3\r\n10 PRINT 1/0\r\n20 END\r\n"
	p, err := Load(strings.NewReader(src), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	var b bytes.Buffer
	require.NoError(t, p.Print(&b, "%.2f"))
	assert.Equal(t, "+Inf\n3.00\n", b.String())
}

func TestLoadPrec(t *testing.T) {
	p, err := Load(strings.NewReader("10 PRINT 2/3\n"), Options{Prec: 128})
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, p.Print(&b, "%.30g"))
	assert.Equal(t, "0.666666666666666666666666666667\n", b.String())
}

func TestLoadLogs(t *testing.T) {
	var b bytes.Buffer
	log := zerolog.New(&b).Level(zerolog.DebugLevel)
	_, err := Load(strings.NewReader("10 PRINT 1\n20 PRNT 2\n"), Options{Logger: &log})
	require.Error(t, err)
	out := b.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"line":10`)
	assert.Contains(t, out, `"keyword":"PRINT"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"message":"rejected line"`)
	assert.Contains(t, out, "PRNT: unknown statement")
}

func TestPrintStopsOnWriteError(t *testing.T) {
	p, err := Load(strings.NewReader("10 PRINT 1\n20 PRINT 2\n"), Options{})
	require.NoError(t, err)
	w := &failWriter{}
	err = p.Print(w, "%g")
	assert.ErrorIs(t, err, errWrite)
	assert.Equal(t, 1, w.calls)
}

var errWrite = errors.New("write failed")

type failWriter struct {
	calls int
}

func (w *failWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errWrite
}
