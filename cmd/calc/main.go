package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/history"
)

func main() {
	var (
		cfgname, histname string
		rad, echo, verbose bool
	)
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.StringVar(&histname, "history", "", "SQLite history database (overrides config)")
	flag.BoolVar(&rad, "rad", false, "start in radian mode")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&verbose, "v", false, "log debug messages")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	cfg, err := config.Load(cfgname)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	if histname != "" {
		cfg.History.Path = histname
	}
	level, _ := cfg.LogLevel()
	if verbose {
		level = zerolog.DebugLevel
	}
	log = log.Level(level)
	mode, _ := cfg.AngleMode()
	if rad {
		mode = calc.Radians
	}

	var h hist
	if cfg.History.Path != "" {
		store, err := history.Open(context.Background(), cfg.History.Path, log)
		if err != nil {
			log.Fatal().Err(err).Msg("opening history")
		}
		defer store.Close()
		sh := store.Session()
		log.Debug().Stringer("session", sh.ID()).Msg("recording history")
		h = storeHist{sh}
	} else {
		h = logHist{new(history.Log)}
	}

	r := repl{
		s:    calc.NewSession(calc.WithHistory(h), calc.WithLogger(log), calc.WithAngleMode(mode)),
		h:    h,
		echo: echo,
		out:  os.Stdout,
	}
	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			r.line(arg)
		}
		return
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := r.interactive(); err != nil {
			log.Fatal().Err(err).Msg("terminal")
		}
		return
	}
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if r.line(sc.Text()) {
			break
		}
	}
	if err := sc.Err(); err != nil {
		log.Fatal().Err(err).Msg("reading input")
	}
}

// hist is a session history that can be listed and cleared.
type hist interface {
	calc.History
	entries() ([]history.Entry, error)
	clear() error
}

type logHist struct{ *history.Log }

func (h logHist) entries() ([]history.Entry, error) { return h.Entries(), nil }
func (h logHist) clear() error                       { h.Clear(); return nil }

type storeHist struct{ *history.SessionHistory }

func (h storeHist) entries() ([]history.Entry, error) {
	return h.Entries(context.Background())
}

func (h storeHist) clear() error {
	return h.Clear(context.Background())
}

type repl struct {
	s    *calc.Session
	h    hist
	echo bool
	out  io.Writer
}

func (r *repl) interactive() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	r.out = rl.Stdout()
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		if r.line(line) {
			return nil
		}
		rl.SetPrompt(r.prompt())
	}
}

func (r *repl) prompt() string {
	return r.s.AngleMode().String() + "> "
}

// line evaluates one line of input. It reports whether the user asked to quit.
func (r *repl) line(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if strings.HasPrefix(text, ":") {
		return r.command(text)
	}
	if r.echo {
		if e, err := calc.ParseString(text); err == nil {
			fmt.Fprintf(r.out, "%v : ", e)
		}
	}
	r.s.Clear()
	r.s.Append(text)
	v, err := r.s.Evaluate()
	if err != nil {
		fmt.Fprintln(r.out, err)
		return false
	}
	fmt.Fprintln(r.out, v)
	return false
}

const help = `expressions: 1+2*3  2^3^2  sqrt(-4)  sin(90)  5!  50%  Ans*2  MR+1
commands:
  :deg :rad :mode     set or show the angle mode
  :mc :mr :m+ EXPR    clear, show, or add to memory
  :ans                show the last answer
  :history            list this session's history
  :clear-history      clear this session's history
  :quit               exit`

func (r *repl) command(text string) bool {
	cmd, arg, _ := strings.Cut(text, " ")
	switch cmd {
	case ":deg":
		r.s.SetAngleMode(calc.Degrees)
	case ":rad":
		r.s.SetAngleMode(calc.Radians)
	case ":mode":
		fmt.Fprintln(r.out, r.s.AngleMode())
	case ":mc":
		r.s.MemoryClear()
	case ":mr":
		v, err := r.s.MemoryRecall()
		r.s.Clear()
		if err != nil {
			fmt.Fprintln(r.out, err)
			break
		}
		fmt.Fprintln(r.out, v)
	case ":m+":
		r.s.Clear()
		r.s.Append(strings.TrimSpace(arg))
		if err := r.s.MemoryAdd(); err != nil {
			fmt.Fprintln(r.out, err)
		}
		r.s.Clear()
	case ":ans":
		fmt.Fprintln(r.out, r.s.LastAnswer())
	case ":history":
		entries, err := r.h.entries()
		if err != nil {
			fmt.Fprintln(r.out, err)
			break
		}
		for _, e := range entries {
			fmt.Fprintln(r.out, e)
		}
	case ":clear-history":
		if err := r.h.clear(); err != nil {
			fmt.Fprintln(r.out, err)
		}
	case ":help":
		fmt.Fprintln(r.out, help)
	case ":quit", ":q", ":exit":
		return true
	default:
		fmt.Fprintf(r.out, "unknown command %s; try :help\n", cmd)
	}
	return false
}
