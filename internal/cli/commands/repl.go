package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/format"
	"github.com/leapstack-labs/leapsh/pkg/lint"
	"github.com/leapstack-labs/leapsh/pkg/parser"
	"github.com/leapstack-labs/leapsh/pkg/token"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "leapsh> "
	replMorePrompt = "   ...> "
)

// ReplOptions holds options for the repl command.
type ReplOptions struct {
	HistoryFile string
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	opts := &ReplOptions{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse shell snippets",
		Long: `Start an interactive session that parses each entry and prints its tree.

Entries that end inside an open construct (an if without fi, an
unterminated quote) continue on the next line. Type .help for commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.HistoryFile, "history", defaultHistoryFile(), "History file (empty to disable)")
	return cmd
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "leapsh", "repl_history")
}

func runREPL(cmd *cobra.Command, opts *ReplOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if opts.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.HistoryFile), 0o750); err != nil {
			cmdCtx.Logger.Warn("history disabled", "error", err)
			opts.HistoryFile = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	lintCfg, err := cmdCtx.Cfg.Lint.ToLint()
	if err != nil {
		return err
	}
	session := newREPLSession(cmd.OutOrStdout(), cmdCtx.Logger)
	session.formatOpts = cmdCtx.Cfg.Format.FormatOptions()
	session.analyzer = lint.NewAnalyzer(lintCfg)

	_, _ = fmt.Fprintln(session.out, "leapsh REPL")
	_, _ = fmt.Fprintln(session.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(session.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, more := session.eval(line)
		if quit {
			return nil
		}
		if more {
			rl.SetPrompt(replMorePrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
}

// newREPLCompleter completes dot-commands and reserved words.
func newREPLCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, kw := range token.Keywords() {
		items = append(items, readline.PcItem(kw))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".mode",
			readline.PcItem("tree"),
			readline.PcItem("tokens"),
			readline.PcItem("fmt"),
			readline.PcItem("lint"),
		),
		readline.PcItem(".quit"),
	)
	return readline.NewPrefixCompleter(items...)
}

// replSession evaluates REPL input independently of the terminal.
type replSession struct {
	out    io.Writer
	logger *slog.Logger
	mode   string
	buf    strings.Builder

	formatOpts format.Options
	analyzer   *lint.Analyzer
}

func newREPLSession(out io.Writer, logger *slog.Logger) *replSession {
	return &replSession{
		out:        out,
		logger:     logger,
		mode:       "tree",
		formatOpts: format.Options{Indent: format.DefaultIndent},
		analyzer:   lint.NewAnalyzer(nil),
	}
}

func (s *replSession) reset() {
	s.buf.Reset()
}

// eval handles one input line. It reports whether the session should end
// and whether more input is needed to complete the entry.
func (s *replSession) eval(line string) (quit, more bool) {
	if s.buf.Len() == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false, false
		}
		if strings.HasPrefix(trimmed, ".") {
			return s.dotCommand(trimmed), false
		}
	}

	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	src := s.buf.String()

	if s.mode == "tokens" {
		s.reset()
		for _, tok := range parser.Tokenize(src) {
			_, _ = fmt.Fprintf(s.out, "%-6s %s\n", tok.Pos, tok)
		}
		return false, false
	}

	prog, err := parser.ParseWithOptions(src, parser.WithLogger(s.logger))
	if err != nil {
		if incomplete(src, err) {
			return false, true
		}
		s.reset()
		_, _ = fmt.Fprintf(s.out, "error: %v\n", err)
		return false, false
	}
	if needsMore(prog) {
		return false, true
	}
	s.reset()
	s.print(prog)
	return false, false
}

func (s *replSession) print(prog *core.Program) {
	switch s.mode {
	case "fmt":
		_, _ = fmt.Fprint(s.out, format.Program(prog, s.formatOpts))
	case "lint":
		diags := s.analyzer.Analyze(prog)
		if len(diags) == 0 {
			_, _ = fmt.Fprintln(s.out, "no issues")
		}
		for _, d := range diags {
			_, _ = fmt.Fprintln(s.out, d.String())
		}
	default:
		_, _ = fmt.Fprint(s.out, format.Tree(prog))
	}
}

// incomplete reports whether a parse failed only because input ended.
func incomplete(src string, err error) bool {
	var perr *parser.ParseError
	if !errors.As(err, &perr) || perr.Pos == nil {
		return false
	}
	return perr.Pos.Offset >= len(strings.TrimRight(src, " \t\n"))
}

// needsMore reports whether the entry ended inside an open quote or brace.
func needsMore(prog *core.Program) bool {
	for _, w := range prog.Warnings {
		if strings.HasPrefix(w.Message, "unterminated") {
			return true
		}
	}
	return false
}

func (s *replSession) dotCommand(line string) (quit bool) {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		_, _ = fmt.Fprint(s.out, `
Commands:
  .help              Show this help message
  .mode <name>       Output: tree (default), tokens, fmt, lint
  .quit / .exit      Exit the REPL

Tips:
  - Open constructs (if/for/while/function, quotes) continue on the next line
  - Ctrl+C discards the current entry
  - Tab completes reserved words and commands
`)
	case ".mode":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "mode: %s\n", s.mode)
			return false
		}
		switch parts[1] {
		case "tree", "tokens", "fmt", "lint":
			s.mode = parts[1]
			_, _ = fmt.Fprintf(s.out, "mode: %s\n", s.mode)
		default:
			_, _ = fmt.Fprintf(s.out, "unknown mode %q (tree, tokens, fmt, lint)\n", parts[1])
		}
	default:
		_, _ = fmt.Fprintf(s.out, "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false
}
