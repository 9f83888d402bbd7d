package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tracehook"
	"github.com/aretw0/tracehook/internal/presentation/graph"
	"github.com/aretw0/tracehook/internal/presentation/tui"
	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/observability"
	"github.com/aretw0/tracehook/pkg/plugin"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Code       string // Hex bytecode
	Input      string // Hex calldata
	Deploy     bool
	Gas        uint64
	ConfigPath string
	Overrides  ConfigOverrides
	Debug      bool
	Mermaid    bool
	Quiet      bool

	// Output receives trace lines and the summary (default: os.Stdout).
	Output io.Writer
}

// Run executes the given bytecode with the hello-world inspector attached and
// prints the summary. A reverted execution is reported, not returned as an error.
func Run(ctx context.Context, opts RunOptions) (*domain.Result, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	logger := createLogger(opts.Debug)

	code, err := domain.DecodeHex(opts.Code)
	if err != nil {
		return nil, fmt.Errorf("error parsing code: %w", err)
	}
	input, err := domain.DecodeHex(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("error parsing --input: %w", err)
	}
	if opts.Deploy && len(input) > 0 {
		return nil, fmt.Errorf("--input cannot be used with --deploy")
	}

	cfg, err := ResolveConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, err
	}

	styled := tui.IsTerminal(out)
	if styled && !opts.Quiet {
		tui.PrintBanner(out)
	}

	tree := observability.NewCallTree()
	sessionOpts := []tracehook.Option{
		tracehook.WithPlugin(plugin.New(cfg, plugin.WithLogger(logger), plugin.WithOutput(out))),
		tracehook.WithLogger(logger),
		tracehook.WithGasLimit(opts.Gas),
		tracehook.WithInspectors(createDebugInspectors(logger, opts.Debug)...),
		tracehook.WithInspectors(tree),
	}
	session, err := tracehook.New(sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing session: %w", err)
	}

	var res *domain.Result
	if opts.Deploy {
		res, err = session.Deploy(ctx, code)
	} else {
		res, err = session.Execute(ctx, code, input)
	}
	if err != nil {
		return nil, err
	}

	if !opts.Quiet {
		fmt.Fprintln(out)
		if err := tui.RenderSummary(out, res, styled); err != nil {
			return res, err
		}
	}
	if opts.Mermaid {
		fmt.Fprintln(out)
		fmt.Fprint(out, graph.GenerateMermaid(tree.Roots()))
	}
	if res.Failed() {
		logger.Warn("execution failed", "err", res.Err)
	}
	return res, nil
}

// ListPlugins registers the built-in plugins in a fresh registry and prints their names.
func ListPlugins(w io.Writer) error {
	reg, err := newPluginRegistry(plugin.Default(plugin.WithOutput(io.Discard)))
	if err != nil {
		return err
	}
	for _, name := range reg.Names() {
		fmt.Fprintln(w, name)
	}
	return nil
}
