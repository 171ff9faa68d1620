// Package commands implements the leapsh subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapsh/internal/cli/config"
	"github.com/leapstack-labs/leapsh/internal/cli/output"
	"github.com/leapstack-labs/leapsh/internal/workspace"
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/parser"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for command execution.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
// Commands run without the root command (as in tests) load it from their
// own flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}, nil
}

// getConfig returns the current configuration.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	return config.Load("", cmd.Flags())
}

// parserOptions returns the parser options shared by all commands.
func (c *CommandContext) parserOptions(maxDepth int) []parser.Option {
	opts := []parser.Option{parser.WithLogger(c.Logger)}
	if maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(maxDepth))
	}
	return opts
}

// parseArgs expands args and parses every script. With no arguments it
// reads standard input.
func (c *CommandContext) parseArgs(ctx context.Context, args []string, stdin io.Reader, maxDepth int) ([]workspace.Result, error) {
	if len(args) == 0 {
		args = []string{workspace.Stdin}
	}
	paths, err := workspace.Expand(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scripts found in %s", strings.Join(args, ", "))
	}
	c.Logger.Debug("parsing scripts", "count", len(paths))
	return workspace.ParseAll(ctx, paths, workspace.Options{
		Stdin:  stdin,
		Parser: c.parserOptions(maxDepth),
	})
}

// printWarnings reports scanner warnings for a parsed file.
func (c *CommandContext) printWarnings(name string, warnings []core.Warning) {
	for _, w := range warnings {
		c.Renderer.Warning(fmt.Sprintf("%s:%s: %s", name, w.Pos, w.Message))
	}
}

// fileError prefixes a parse error with the file it came from.
func fileError(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}
