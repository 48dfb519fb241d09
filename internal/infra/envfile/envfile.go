// Where: cli/internal/infra/envfile/envfile.go
// What: Render and write the generated .env file.
// Why: Materialize wizard answers as KEY=VALUE lines the worker tooling loads.
package envfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkit-dev/mkit/cli/internal/domain/settings"
	"github.com/mkit-dev/mkit/cli/internal/infra/fileops"
	"github.com/rs/zerolog"
)

// Header is prepended to every generated file.
const Header = "# mKit Environment Configuration\n# Generated by setup script\n\n"

// Render returns the file content for values: the header followed by one
// KEY=VALUE line per non-empty entry in insertion order. Provisioning
// identifiers are skipped. Values are written verbatim without quoting.
func Render(values *settings.Settings) string {
	var b strings.Builder
	b.WriteString(Header)
	for _, entry := range Lines(values) {
		b.WriteString(entry.Key)
		b.WriteByte('=')
		b.WriteString(entry.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

// Lines returns the entries Render emits.
func Lines(values *settings.Settings) []settings.Entry {
	if values == nil {
		return nil
	}
	var lines []settings.Entry
	for _, entry := range values.Entries() {
		if entry.Value == "" || settings.IsProvisioningKey(entry.Key) {
			continue
		}
		lines = append(lines, entry)
	}
	return lines
}

// Exists reports whether a regular file is present at path.
func Exists(path string) bool {
	return fileops.FileExists(path)
}

// Write truncates and writes content to path.
func Write(ctx context.Context, path, content string) error {
	if err := fileops.WriteFile(path, content); err != nil {
		return fmt.Errorf("write env file %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("env file written")
	return nil
}
