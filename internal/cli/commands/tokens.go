package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapsh/internal/cli/output"
	"github.com/leapstack-labs/leapsh/internal/workspace"
	"github.com/leapstack-labs/leapsh/pkg/parser"
	"github.com/leapstack-labs/leapsh/pkg/token"
	"github.com/spf13/cobra"
)

// TokenInfo is the structured form of one token.
type TokenInfo struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Offset  int    `json:"offset" yaml:"offset"`
	End     int    `json:"end" yaml:"end"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the token stream of a script",
		Long: `Scan a script and print every token with its position.

With no argument the script is read from standard input.`,
		Example: `  leapsh tokens deploy.sh
  echo 'x=$(ls)' | leapsh tokens -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := workspace.Stdin
			if len(args) == 1 {
				path = args[0]
			}
			return runTokens(cmd, path)
		},
	}
	return cmd
}

func runTokens(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	f, err := workspace.Read(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	lex := parser.NewLexer(f.Source)
	toks := lex.All()
	cmdCtx.printWarnings(f.Name(), lex.Warnings)

	infos := make([]TokenInfo, 0, len(toks))
	for _, tok := range toks {
		infos = append(infos, TokenInfo{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
			Offset:  tok.Pos.Offset,
			End:     tok.Pos.End,
		})
	}

	if ok, err := r.Structured(infos); ok {
		return err
	}
	renderTokenTable(r, toks)
	return nil
}

func renderTokenTable(r *output.Renderer, toks []token.Token) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Type", "Literal", "Pos", "Span"})

	for i, tok := range toks {
		literal := ""
		switch tok.Type {
		case token.EOF:
		case token.NEWLINE:
			literal = `\n`
		default:
			literal = strconv.Quote(tok.Literal)
		}
		t.AppendRow(table.Row{
			i,
			tok.Type.String(),
			literal,
			tok.Pos.String(),
			fmt.Sprintf("%d-%d", tok.Pos.Offset, tok.Pos.End),
		})
	}
	t.Render()
}
