package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/msto63/chainlib/foundation/chain"
	cllog "github.com/msto63/chainlib/foundation/core/log"
)

// Config holds REPL settings
type Config struct {
	Prompt       string
	HistoryFile  string
	HistoryLimit int
	// Quiet suppresses action results
	Quiet func() bool
	// Banner is printed once on start
	Banner string
}

// Shell is an interactive read-eval-print loop over an engine
type Shell[E any] struct {
	engine   *chain.Engine[E]
	executor E
	config   Config
	logger   *cllog.Logger
}

// New creates a shell executing commands as executor
func New[E any](engine *chain.Engine[E], executor E, config Config, logger *cllog.Logger) *Shell[E] {
	if logger == nil {
		logger = cllog.GetDefault()
	}
	return &Shell[E]{
		engine:   engine,
		executor: executor,
		config:   config,
		logger:   logger.WithField("component", "shell"),
	}
}

// Eval executes one line and writes the result or the diagnostic to w.
// It returns the execution error, if any.
func (s *Shell[E]) Eval(w io.Writer, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	result, err := s.engine.Execute(s.executor, line)
	if err != nil {
		fmt.Fprintln(w, FormatError(err))
		return err
	}
	if s.config.Quiet != nil && s.config.Quiet() {
		return nil
	}
	if out := FormatResult(result); out != "" {
		fmt.Fprintln(w, out)
	}
	return nil
}

// help prints the completions for the line up to pos
func (s *Shell[E]) help(w io.Writer, text string) {
	completions := s.engine.Complete(s.executor, text)
	if len(completions) == 0 {
		fmt.Fprintln(w, "  (no completions)")
		return
	}
	for _, c := range completions {
		fmt.Fprintf(w, "  %s\n", c.Text)
	}
}

// Run reads lines until EOF or "exit"
func (s *Shell[E]) Run() error {
	var rl *readline.Instance
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.config.Prompt,
		HistoryFile:     s.config.HistoryFile,
		HistoryLimit:    s.config.HistoryLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewCompleter(s.engine, s.executor),
		Listener: readline.FuncListener(func(line []rune, pos int, key rune) ([]rune, int, bool) {
			if key != '?' || pos < 1 {
				return line, pos, false
			}
			// strip the '?' readline already inserted
			clean := make([]rune, 0, len(line)-1)
			clean = append(clean, line[:pos-1]...)
			clean = append(clean, line[pos:]...)
			s.help(rl.Stdout(), string(clean[:pos-1]))
			return clean, pos - 1, true
		}),
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	if s.config.Banner != "" {
		fmt.Fprintln(rl.Stdout(), s.config.Banner)
	}
	s.logger.Debug("shell started", cllog.Fields{"history": s.config.HistoryFile})

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(line) {
		case "exit", "quit":
			return nil
		}
		_ = s.Eval(rl.Stdout(), line)
	}
}
