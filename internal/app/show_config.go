// Where: cli/internal/app/show_config.go
// What: show-config command.
// Why: Let operators check which wrangler command and paths a setup run would use.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkit-dev/mkit/cli/internal/infra/config"
)

// ShowConfigCmd prints the merged configuration as YAML.
type ShowConfigCmd struct {
	Write bool `help:"Also save the merged configuration to the setup config file"`
}

func runShowConfig(_ context.Context, cli CLI, deps Dependencies) int {
	cfg, err := config.Resolve(deps.ProjectDir, cli.ConfigPath)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	if cli.NoEmoji {
		cfg.NoEmoji = true
	}
	text, err := config.Marshal(cfg)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	fmt.Fprint(deps.Out, text)

	if !cli.ShowConfig.Write {
		return 0
	}
	path := strings.TrimSpace(cli.ConfigPath)
	if path == "" {
		if path, err = config.SetupConfigPath(deps.ProjectDir); err != nil {
			return exitWithError(deps.ErrOut, err)
		}
	}
	if err := config.SaveSetupConfig(path, cfg); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	fmt.Fprintf(deps.ErrOut, "Wrote %s\n", path)
	return 0
}
