// Where: cli/internal/infra/wrangler/patch.go
// What: Substitute provisioned KV namespace IDs into wrangler.jsonc.
// Why: Replace the template placeholders without reformatting the operator's file.
package wrangler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/mkit-dev/mkit/cli/internal/infra/fileops"
	"github.com/rs/zerolog"
)

// Placeholder tokens shipped in the template wrangler.jsonc.
const (
	NamespacePlaceholder = "<YOUR_KV_NAMESPACE_ID>"
	PreviewPlaceholder   = "<YOUR_PREVIEW_KV_NAMESPACE_ID>"
)

var (
	namespacePattern = regexp.MustCompile(`"id":\s*"` + regexp.QuoteMeta(NamespacePlaceholder) + `"`)
	previewPattern   = regexp.MustCompile(`"preview_id":\s*"` + regexp.QuoteMeta(PreviewPlaceholder) + `"`)
)

// Patch returns content with the first namespace placeholder replaced by id
// and, when previewID is set, the first preview placeholder replaced by
// previewID. Missing placeholders leave the content unchanged.
func Patch(content, id, previewID string) string {
	content = replaceFirst(namespacePattern, content, fmt.Sprintf(`"id": "%s"`, id))
	if previewID != "" {
		content = replaceFirst(previewPattern, content, fmt.Sprintf(`"preview_id": "%s"`, previewID))
	}
	return content
}

// PatchNamespaceIDs rewrites the config file at path in full. It reports
// false without error when the file does not exist.
func PatchNamespaceIDs(ctx context.Context, path, id, previewID string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("wrangler config not found, skipping patch")
			return false, nil
		}
		return false, fmt.Errorf("read wrangler config: %w", err)
	}

	patched := Patch(string(data), id, previewID)
	if err := fileops.ReplaceFile(path, patched); err != nil {
		return false, fmt.Errorf("write wrangler config: %w", err)
	}
	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Bool("changed", patched != string(data)).
		Msg("wrangler config patched")
	return true, nil
}

func replaceFirst(pattern *regexp.Regexp, content, replacement string) string {
	loc := pattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]] + replacement + content[loc[1]:]
}
