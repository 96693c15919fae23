package cmd

import (
	"context"
	"fmt"

	"github.com/binaek/cling"

	"github.com/MinBZK/regelrecht-mvp-sub000/version"
)

func addVersionCmd(cli *cling.CLI, appVersion string) {
	cli.WithCommand(
		cling.NewCommand("version", func(ctx context.Context, args []string) error {
			fmt.Println(version.Get("regelrecht-engine", appVersion).String())
			return nil
		}).WithDescription("Print version information"),
	)
}
