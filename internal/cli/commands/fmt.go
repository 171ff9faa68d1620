package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/leapsh/internal/workspace"
	"github.com/leapstack-labs/leapsh/pkg/format"
	"github.com/spf13/cobra"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool
	Check bool
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [file|dir|-]...",
		Short: "Format scripts",
		Long: `Reprint scripts in canonical form.

Statements go one per line, bodies are indented, quoted literals are
re-quoted and comments on their own lines are kept. Without --write the
result is printed to standard output.`,
		Example: `  # Print the formatted script
  leapsh fmt deploy.sh

  # Rewrite every script under scripts/ in place with 4-space indents
  leapsh fmt -w --indent 4 scripts/

  # Fail when a file is not formatted
  leapsh fmt --check .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to the source file instead of stdout")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "List files whose formatting differs and fail if any")
	cmd.Flags().Int("indent", 2, "Spaces per indentation level")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	results, err := cmdCtx.parseArgs(cmd.Context(), args, cmd.InOrStdin(), 0)
	if err != nil {
		return err
	}

	fopts := cmdCtx.Cfg.Format.FormatOptions()
	var unformatted []string
	changed := 0
	for _, res := range results {
		if res.Err != nil {
			return fileError(res.Name(), res.Err)
		}
		cmdCtx.printWarnings(res.Name(), res.Program.Warnings)

		out := format.Program(res.Program, fopts)
		switch {
		case opts.Check:
			if out != res.Source {
				unformatted = append(unformatted, res.Name())
				r.Println(res.Name())
			}
		case opts.Write && res.Path != workspace.Stdin:
			if out == res.Source {
				continue
			}
			if err := writeFilePreservingMode(res.Path, out); err != nil {
				return err
			}
			changed++
			cmdCtx.Logger.Debug("formatted file", "path", res.Path)
		default:
			r.Printf("%s", out)
		}
	}

	if opts.Check && len(unformatted) > 0 {
		return fmt.Errorf("%d file(s) not formatted", len(unformatted))
	}
	if opts.Write {
		r.Success(fmt.Sprintf("Formatted %d of %d file(s)", changed, len(results)))
	}
	return nil
}

func writeFilePreservingMode(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
