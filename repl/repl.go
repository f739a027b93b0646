package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/luthersystems/pairlisp/environ"
	"github.com/luthersystems/pairlisp/eval"
	"github.com/luthersystems/pairlisp/lisp"
)

// Default prompts.  The continuation prompt is shown while parentheses
// remain open.
const (
	DefaultPrompt     = "-> "
	DefaultContPrompt = ".. "
)

// DefaultHistoryFile returns the path of the history file in the user's home
// directory.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pairlisp_history")
}

// Option configures RunRepl.
type Option func(*readline.Config)

// WithHistoryFile returns an Option that persists entered expressions to
// path.  An empty path disables history persistence.
func WithHistoryFile(path string) Option {
	return func(c *readline.Config) {
		c.HistoryFile = path
	}
}

// WithPrompt returns an Option that replaces DefaultPrompt.
func WithPrompt(prompt string) Option {
	return func(c *readline.Config) {
		c.Prompt = prompt
	}
}

// RunRepl runs a simple repl that evaluates expressions in env until the
// input ends.  Ctrl-C discards a partially entered expression.
func RunRepl(ev *eval.Evaluator, env *environ.Environ, opts ...Option) error {
	session := NewSession(ev, env, os.Stdout, os.Stderr)
	cfg := &readline.Config{
		Prompt:                 DefaultPrompt,
		HistoryFile:            DefaultHistoryFile(),
		DisableAutoSaveHistory: true,
		AutoComplete:           &completer{env: env},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	prompt := cfg.Prompt
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			session.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		saveHistory(rl, session.Feed(line))
		if session.Pending() {
			rl.SetPrompt(DefaultContPrompt)
		} else {
			rl.SetPrompt(prompt)
		}
	}
}

type historySaver interface {
	SaveHistory(content string) error
}

// saveHistory records a completed entry.  readline keeps history in memory
// even when no history file is configured.
func saveHistory(h historySaver, entry string) {
	if entry == "" {
		return
	}
	if err := h.SaveHistory(entry); err != nil {
		errln(err)
	}
}

// Session accumulates input lines until their parentheses balance and then
// evaluates them.
type Session struct {
	ev     *eval.Evaluator
	env    *environ.Environ
	stdout io.Writer
	stderr io.Writer
	buf    strings.Builder
	open   int
}

// NewSession returns a Session that evaluates input in env and writes results
// to stdout and errors to stderr.
func NewSession(ev *eval.Evaluator, env *environ.Environ, stdout, stderr io.Writer) *Session {
	return &Session{
		ev:     ev,
		env:    env,
		stdout: stdout,
		stderr: stderr,
	}
}

// Pending returns true if the buffered input has unclosed parentheses.
func (s *Session) Pending() bool {
	return s.open > 0
}

// Reset discards buffered input.
func (s *Session) Reset() {
	s.buf.Reset()
	s.open = 0
}

// Feed adds line to the buffered input.  When the parentheses of the buffered
// input balance it is evaluated and the entry is returned, trimmed, for
// recording in history.  Feed returns an empty string while more input is
// needed, for blank input, and when line closes more parentheses than are open.
func (s *Session) Feed(line string) string {
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	s.open += Balance(line)
	if s.open < 0 {
		fmt.Fprintln(s.stderr, "unbalanced right paren")
		s.Reset()
		return ""
	}
	if s.open > 0 {
		return ""
	}
	entry := strings.TrimSpace(s.buf.String())
	s.Reset()
	if entry == "" {
		return ""
	}
	v, err := s.ev.EvalText(entry, s.env)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		var lerr *lisp.Error
		if errors.As(err, &lerr) && lerr.Stack != nil {
			lerr.Stack.DebugPrint(s.stderr)
		}
		return entry
	}
	fmt.Fprintln(s.stdout, v)
	return entry
}

// Balance returns the number of open parentheses in line minus the number of
// close parentheses.
func Balance(line string) int {
	return strings.Count(line, "(") - strings.Count(line, ")")
}

// completer completes the word under the cursor with primitive names,
// keywords and names bound in the root environment.
type completer struct {
	env *environ.Environ
}

var keywords = []string{"apply", "cond", "define", "f", "lambda", "nil", "t"}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !isDelim(line[start-1]) {
		start--
	}
	prefix := strings.ToLower(string(line[start:pos]))
	if prefix == "" {
		return nil, 0
	}
	var candidates [][]rune
	for _, names := range [][]string{keywords, eval.Primitives(), c.env.Names()} {
		for _, name := range names {
			if strings.HasPrefix(name, prefix) && name != prefix {
				candidates = append(candidates, []rune(name[len(prefix):]))
			}
		}
	}
	return candidates, len([]rune(prefix))
}

func isDelim(r rune) bool {
	return r == '(' || r == ')' || r == ' ' || r == '\t'
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
