// Where: cli/internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mkit-dev/mkit/cli/internal/infra/interaction"
	"github.com/mkit-dev/mkit/cli/internal/infra/runner"
	"github.com/mkit-dev/mkit/cli/internal/logger"
	"github.com/mkit-dev/mkit/cli/internal/meta"
	"github.com/mkit-dev/mkit/cli/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Zero-valued fields fall back to the process defaults.
type Dependencies struct {
	ProjectDir string
	Out        io.Writer
	ErrOut     io.Writer
	Prompter   interaction.Prompter
	Runner     runner.CommandRunner
	// Entropy is the random source for generated keys; nil means crypto/rand.
	Entropy io.Reader
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	ConfigPath string `name:"config" type:"path" help:"Path to setup config (default: .mkit/setup.yaml)"`
	Debug      bool   `help:"Enable debug logging on stderr"`
	NoEmoji    bool   `name:"no-emoji" help:"Disable emoji in output"`

	Setup      SetupCmd      `cmd:"" default:"withargs" help:"Run the interactive setup wizard (default)"`
	Keygen     KeygenCmd     `cmd:"" help:"Print a new cookie encryption key"`
	ShowConfig ShowConfigCmd `cmd:"" name:"show-config" help:"Print the effective setup configuration"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments and dispatches to the matching
// handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) (exitCode int) {
	deps = withDefaults(deps)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(deps.ErrOut, "Setup failed: %v\n", r)
			exitCode = 1
		}
	}()

	cli := CLI{}
	exited := -1
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description(meta.DisplayName+" project setup"),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.Exit(func(code int) { exited = code }),
	)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	kctx, err := parser.Parse(args)
	if exited >= 0 {
		return exited
	}
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	log := logger.Setup(deps.ErrOut, cli.Debug)
	ctx := log.WithContext(context.Background())
	log.Debug().Str("command", kctx.Command()).Str("project_dir", deps.ProjectDir).Msg("dispatch")

	if exitCode, handled := dispatchCommand(ctx, kctx.Command(), cli, deps); handled {
		return exitCode
	}

	fmt.Fprintln(deps.ErrOut, "unknown command")
	return 1
}

type commandHandler func(context.Context, CLI, Dependencies) int

func dispatchCommand(ctx context.Context, command string, cli CLI, deps Dependencies) (int, bool) {
	handlers := map[string]commandHandler{
		"setup":       runSetup,
		"keygen":      runKeygen,
		"show-config": runShowConfig,
		"version":     runVersion,
	}

	if handler, ok := handlers[command]; ok {
		return handler(ctx, cli, deps), true
	}
	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(_ context.Context, _ CLI, deps Dependencies) int {
	fmt.Fprintln(deps.Out, version.GetVersion())
	return 0
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.ProjectDir == "" {
		if wd, err := os.Getwd(); err == nil {
			deps.ProjectDir = wd
		} else {
			deps.ProjectDir = "."
		}
	}
	if deps.Runner == nil {
		deps.Runner = runner.ExecRunner{}
	}
	if deps.Prompter == nil {
		if out, ok := deps.Out.(*os.File); ok {
			deps.Prompter = interaction.New(os.Stdin, out)
		} else {
			deps.Prompter = interaction.NewLinePrompter(os.Stdin, deps.Out)
		}
	}
	return deps
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}
