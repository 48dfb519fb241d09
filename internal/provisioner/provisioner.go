// Where: cli/internal/provisioner/provisioner.go
// What: KV namespace provisioning through the wrangler CLI.
// Why: Create the remote namespaces the worker needs and surface their IDs.
package provisioner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkit-dev/mkit/cli/internal/infra/runner"
	"github.com/rs/zerolog"
)

var (
	// ErrCLIUnavailable is returned when the provisioning CLI cannot be run.
	ErrCLIUnavailable = errors.New("provisioning CLI not available")
	// ErrNamespaceIDNotFound is returned when command output carries no id line.
	ErrNamespaceIDNotFound = errors.New("namespace id not found in command output")
)

// Provisioner runs the external CLI. Command holds the executable and any
// leading arguments, e.g. ["pnpm", "wrangler"].
type Provisioner struct {
	Runner  runner.CommandRunner
	Command []string
	Binding string
	Dir     string
	Timeout time.Duration
}

// New creates a Provisioner for the given command and namespace binding.
func New(r runner.CommandRunner, command []string, binding string) *Provisioner {
	return &Provisioner{
		Runner:  r,
		Command: command,
		Binding: binding,
	}
}

// CheckCLI runs the version command and returns its trimmed output.
// Any failure, including empty output, is reported as ErrCLIUnavailable.
func (p *Provisioner) CheckCLI(ctx context.Context) (string, error) {
	if err := p.ready(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCLIUnavailable, err)
	}
	out, err := p.run(ctx, "--version")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCLIUnavailable, err)
	}
	version := strings.TrimSpace(string(out))
	if version == "" {
		return "", fmt.Errorf("%w: empty version output", ErrCLIUnavailable)
	}
	return version, nil
}

// CreateNamespace creates a KV namespace for the configured binding and
// returns the identifier printed by the CLI. Each call creates a new remote
// namespace.
func (p *Provisioner) CreateNamespace(ctx context.Context, preview bool) (string, error) {
	if err := p.ready(); err != nil {
		return "", fmt.Errorf("create namespace: %w", err)
	}
	args := []string{"kv", "namespace", "create", p.Binding}
	if preview {
		args = append(args, "--preview")
	}

	out, err := p.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("create namespace %s: %w", p.Binding, err)
	}

	id, err := ParseNamespaceID(string(out))
	if err != nil {
		return "", fmt.Errorf("create namespace %s: %w", p.Binding, err)
	}
	zerolog.Ctx(ctx).Debug().
		Str("binding", p.Binding).
		Bool("preview", preview).
		Str("id", id).
		Msg("namespace created")
	return id, nil
}

// ready reports whether the provisioner can run commands. It is safe on a
// nil receiver.
func (p *Provisioner) ready() error {
	if p == nil || p.Runner == nil {
		return errors.New("command runner not configured")
	}
	if len(p.Command) == 0 || strings.TrimSpace(p.Command[0]) == "" {
		return errors.New("provisioning command is empty")
	}
	return nil
}

func (p *Provisioner) run(ctx context.Context, args ...string) ([]byte, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	full := append(append([]string{}, p.Command[1:]...), args...)
	return p.Runner.RunOutput(ctx, p.Dir, p.Command[0], full...)
}
