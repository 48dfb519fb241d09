package app

import (
	"context"
	"fmt"

	"github.com/mkit-dev/mkit/cli/internal/keygen"
)

// KeygenCmd prints a key suitable for COOKIE_ENCRYPTION_KEY.
type KeygenCmd struct{}

func runKeygen(_ context.Context, _ CLI, deps Dependencies) int {
	var (
		key string
		err error
	)
	if deps.Entropy != nil {
		key, err = keygen.GenerateFrom(deps.Entropy)
	} else {
		key, err = keygen.Generate()
	}
	if err != nil {
		return exitWithError(deps.ErrOut, fmt.Errorf("generate key: %w", err))
	}
	fmt.Fprintln(deps.Out, key)
	return 0
}
