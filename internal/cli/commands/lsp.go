package commands

import (
	"github.com/leapstack-labs/leapsh/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC and offers
diagnostics, document symbols, formatting and completion for open
scripts. Lint rule selection and the formatting indent come from the
same configuration as 'leapsh lint' and 'leapsh fmt'. Logs go to stderr.`,
		Example: `  # Start LSP server (usually called by an editor)
  leapsh lsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	lintCfg, err := cmdCtx.Cfg.Lint.ToLint()
	if err != nil {
		return err
	}

	server := lsp.NewServerWithLogger(cmd.InOrStdin(), cmd.OutOrStdout(), cmdCtx.Logger,
		lsp.WithLintConfig(lintCfg),
		lsp.WithIndent(cmdCtx.Cfg.Format.Indent),
	)
	return server.Run()
}
