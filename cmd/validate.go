package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/binaek/cling"

	"github.com/MinBZK/regelrecht-mvp-sub000/lawdoc"
	"github.com/MinBZK/regelrecht-mvp-sub000/uri"
)

func addValidateCmd(cli *cling.CLI) {
	cli.WithCommand(
		cling.NewCommand("validate", validateCmd).
			WithArgument(cling.NewStringCmdInput("files").
				WithDescription("Law YAML files to validate").
				AsArgument(),
			),
	)
}

type validateCmdArgs struct {
	Files []string `cling-name:"files"`
}

// validateCmd parses each file as a law document and reports OK or
// FAIL <path>: <reason> per file, exiting 1 if any file failed.
func validateCmd(ctx context.Context, args []string) error {
	input := validateCmdArgs{}
	if err := cling.Hydrate(ctx, args, &input); err != nil {
		return err
	}

	anyFailed := false
	for _, path := range input.Files {
		if err := validateFile(path); err != nil {
			fmt.Printf("FAIL %s: %s\n", path, err)
			anyFailed = true
			continue
		}
		fmt.Printf("OK %s\n", path)
	}

	if anyFailed {
		os.Exit(1)
	}
	return nil
}

func validateFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	law, err := lawdoc.FromYAMLString(string(content))
	if err != nil {
		return err
	}
	return validateRequiresURIs(law)
}

// validateRequiresURIs checks that every article's declared `requires`
// dependencies are well-formed references, catching a typo'd URI before
// it fails much later as an unresolved cross-law input.
func validateRequiresURIs(law *lawdoc.ArticleBasedLaw) error {
	for _, article := range law.Articles {
		for _, dep := range article.GetRequires() {
			if _, err := uri.Parse(dep); err != nil {
				return fmt.Errorf("article %s: requires %q: %w", article.Number, dep, err)
			}
		}
	}
	return nil
}
