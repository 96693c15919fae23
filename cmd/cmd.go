// Package cmd wires the engine's cling CLI: evaluate, validate, version.
// Grounded on sentrie's cmd/cmd.go — the same CLI-setup shape (NewCLI,
// pre/post-run logging hooks, one addXCmd per subcommand), generalized
// from sentrie's pack/policy/rule domain to RegelRecht's law/output
// domain.
package cmd

import (
	"context"
	"log/slog"

	"github.com/binaek/cling"
)

// Setup builds the CLI with every subcommand registered.
func Setup(ctx context.Context, appVersion string) *cling.CLI {
	cli := cling.NewCLI("regelrecht", appVersion).
		WithDescription("RegelRecht evaluates Dutch legal rules encoded as machine-readable law documents").
		WithPreRun(func(ctx context.Context, args []string) error {
			slog.DebugContext(ctx, "==> Starting RegelRecht", slog.String("version", appVersion))
			return nil
		}).
		WithPostRun(func(ctx context.Context, args []string) error {
			slog.DebugContext(ctx, "==> Exiting RegelRecht")
			return nil
		})

	addEvaluateCmd(cli)
	addValidateCmd(cli)
	addVersionCmd(cli, appVersion)

	return cli
}

// Execute runs the CLI against argv.
func Execute(ctx context.Context, cli *cling.CLI, args []string) error {
	if cli == nil {
		panic("CLI cannot be NIL")
	}
	return cli.Run(ctx, args)
}
