// Where: cli/internal/infra/runner/runner.go
// What: External command execution with captured stdout.
// Why: Let provisioning code shell out to the wrangler CLI and be faked in tests.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// waitDelay bounds how long output pipes are drained after the process is
// killed; pnpm leaves node children holding them open.
const waitDelay = 5 * time.Second

// CommandRunner defines the interface for executing external commands.
type CommandRunner interface {
	// RunOutput runs name with args in dir and returns its stdout.
	RunOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner is a concrete implementation of CommandRunner using os/exec.
// When Stderr is nil the child's stderr is captured and reported in errors,
// otherwise it is streamed to Stderr.
type ExecRunner struct {
	Stderr io.Writer
}

func (r ExecRunner) RunOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	log := zerolog.Ctx(ctx)
	started := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if r.Stderr != nil {
		cmd.Stderr = r.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	log.Debug().
		Str("command", name).
		Strs("args", args).
		Dur("duration", time.Since(started)).
		Err(err).
		Msg("external command finished")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.DeadlineExceeded) {
			return stdout.Bytes(), fmt.Errorf("run %s: timed out: %w", name, ctxErr)
		}
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return stdout.Bytes(), fmt.Errorf("run %s: %w: %s", name, err, detail)
		}
		return stdout.Bytes(), fmt.Errorf("run %s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
