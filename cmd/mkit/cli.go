// Where: cli/cmd/mkit/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/mkit-dev/mkit/cli/internal/app"
	"github.com/mkit-dev/mkit/cli/internal/infra/interaction"
	"github.com/mkit-dev/mkit/cli/internal/infra/runner"
)

var (
	getwd       = os.Getwd
	newPrompter = interaction.New
)

// buildDependencies constructs the runtime dependencies for the CLI.
// Wrangler stderr is streamed so login prompts and errors stay visible.
func buildDependencies() (app.Dependencies, error) {
	projectDir, err := getwd()
	if err != nil {
		return app.Dependencies{}, err
	}

	return app.Dependencies{
		ProjectDir: projectDir,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		Prompter:   newPrompter(os.Stdin, os.Stdout),
		Runner:     runner.ExecRunner{Stderr: os.Stderr},
	}, nil
}
