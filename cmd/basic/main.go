package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/zephyrtronium/basic"
	"github.com/zephyrtronium/basic/program"
)

// customized at build time
var (
	Version = "development"
	GitHash = "unknown"
)

func main() {
	cfg := defaultConfig()

	app := kingpin.New("basic", "Evaluate BASIC expressions and programs.")
	app.Version(Version + " (" + GitHash + ")")
	app.Flag("config", "Configuration in YAML format. Flags after it override its settings.").SetValue(&configValue{c: &cfg})
	app.Flag("log-level", "Log level: debug, info, warn, error (default info).").StringVar(&cfg.LogLevel)
	app.Flag("fmt", "Result formatting string (default %g).").StringVar(&cfg.Format)
	app.Flag("precision", "Precision of calculations in bits; 0 for float64.").Short('p').UintVar(&cfg.Precision)
	app.Flag("echo", "Print parse trees.").BoolVar(&cfg.Echo)

	evalCmd := app.Command("eval", "Evaluate expressions given as arguments, or one per line from stdin.")
	exprs := evalCmd.Arg("expr", "Expressions to evaluate.").Strings()

	runCmd := app.Command("run", "Load a program and print the values of its PRINT statements.")
	file := runCmd.Arg("file", "Program file.").Required().ExistingFile()
	watching := runCmd.Flag("watch", "Run again whenever the file changes.").Short('w').Bool()

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	log := newLogger(cfg.LogLevel)

	switch cmd {
	case evalCmd.FullCommand():
		srcs := *exprs
		if len(srcs) == 0 {
			var err error
			srcs, err = readLines(os.Stdin)
			if err != nil {
				log.Fatal().Err(err).Msg("reading stdin")
			}
		}
		if err := evalAll(os.Stdout, log, cfg, srcs); err != nil {
			os.Exit(1)
		}

	case runCmd.FullCommand():
		err := runFile(os.Stdout, log, cfg, *file)
		if !*watching {
			if err != nil {
				os.Exit(1)
			}
			return
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = watch(ctx, *file, log, func() {
			runFile(os.Stdout, log, cfg, *file)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("watch failed")
		}
	}
}

func newLogger(lvl string) zerolog.Logger {
	level, err := zerolog.ParseLevel(lvl)
	if err != nil || lvl == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(level)
}

// readLines reads the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var v []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			v = append(v, s)
		}
	}
	return v, sc.Err()
}

// evaluate parses and evaluates one expression, at the configured precision.
func evaluate(cfg Config, src string) (*basic.Root, any, error) {
	root, err := basic.ParseString(src)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Precision > 0 {
		ctx := basic.NewContext(basic.Prec(cfg.Precision))
		r := ctx.Eval(root)
		return root, r, ctx.Err()
	}
	v, err := basic.Evaluate(root)
	return root, v, err
}

// evalAll evaluates each expression and writes its result. Failures are
// logged, and the result is all of them joined.
func evalAll(w io.Writer, log zerolog.Logger, cfg Config, srcs []string) error {
	verb := cfg.Format + "\n"
	var errs []error
	for _, src := range srcs {
		root, v, err := evaluate(cfg, src)
		if err != nil {
			log.Error().Err(err).Str("expr", src).Msg("evaluation failed")
			errs = append(errs, err)
			continue
		}
		if cfg.Echo {
			fmt.Fprintf(w, "%v : ", root)
		}
		fmt.Fprintf(w, verb, v)
	}
	return errors.Join(errs...)
}

// runFile loads the program at path and prints its PRINT values. Errors in
// individual lines are logged by the loader and returned joined.
func runFile(w io.Writer, log zerolog.Logger, cfg Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Msg("opening program")
		return err
	}
	defer f.Close()
	p, lerr := program.Load(f, program.Options{Prec: cfg.Precision, Logger: &log})
	log.Info().Str("file", path).Int("lines", p.Len()).Msg("loaded program")
	if cfg.Echo {
		p.Ascend(func(l program.Line) bool {
			s := l.Statement
			if s.Expr != nil {
				fmt.Fprintf(w, "%d %v %v\n", l.Number, s.Keyword, s.Expr)
			} else {
				fmt.Fprintf(w, "%d %v %s\n", l.Number, s.Keyword, s.Args)
			}
			return true
		})
	}
	if err := p.Print(w, cfg.Format); err != nil {
		return err
	}
	return lerr
}
