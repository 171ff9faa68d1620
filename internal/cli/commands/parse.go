package commands

import (
	"github.com/leapstack-labs/leapsh/internal/cli/output"
	"github.com/leapstack-labs/leapsh/pkg/format"
	"github.com/spf13/cobra"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	MaxDepth int
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [file|dir|-]...",
		Short: "Print the syntax tree of scripts",
		Long: `Parse shell scripts and print their syntax trees.

With no arguments the script is read from standard input. Directories
are searched for *.sh and *.leapsh files.

Output adapts to --output:
  - text: an indented outline, one node per line
  - json, yaml: the full tree with source positions`,
		Example: `  # Show the tree of a script
  leapsh parse deploy.sh

  # Pipe a snippet through the parser
  echo 'ls | wc -l' | leapsh parse

  # Machine-readable tree
  leapsh parse -o json deploy.sh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "Maximum nesting depth (0 for the default)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	results, err := cmdCtx.parseArgs(cmd.Context(), args, cmd.InOrStdin(), opts.MaxDepth)
	if err != nil {
		return err
	}

	multi := len(results) > 1
	for _, res := range results {
		if res.Err != nil {
			return fileError(res.Name(), res.Err)
		}
		cmdCtx.printWarnings(res.Name(), res.Program.Warnings)

		var data []byte
		switch r.EffectiveMode() {
		case output.ModeJSON:
			data, err = format.TreeJSON(res.Program)
		case output.ModeYAML:
			data, err = format.TreeYAML(res.Program)
		default:
			if multi {
				r.Println(r.Styles().Path.Render("==> " + res.Name() + " <=="))
			}
			data = []byte(format.Tree(res.Program))
		}
		if err != nil {
			return err
		}
		if _, err := r.Writer().Write(data); err != nil {
			return err
		}
	}
	return nil
}
