package envfile

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
	"github.com/mkit-dev/mkit/cli/internal/domain/settings"
)

// Changes lists key names that differ between an existing env file and the
// content about to be written. Values are never included.
type Changes struct {
	Added   []string
	Changed []string
	Removed []string
}

// Empty reports whether the existing file already matches.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Changed) == 0 && len(c.Removed) == 0
}

// Diff parses the existing file at path and compares it to values.
func Diff(path string, values *settings.Settings) (Changes, error) {
	existing, err := godotenv.Read(path)
	if err != nil {
		return Changes{}, fmt.Errorf("parse existing env file %s: %w", path, err)
	}

	var changes Changes
	seen := map[string]bool{}
	for _, entry := range Lines(values) {
		seen[entry.Key] = true
		current, ok := existing[entry.Key]
		switch {
		case !ok:
			changes.Added = append(changes.Added, entry.Key)
		case current != entry.Value:
			changes.Changed = append(changes.Changed, entry.Key)
		}
	}
	for key := range existing {
		if !seen[key] {
			changes.Removed = append(changes.Removed, key)
		}
	}
	sort.Strings(changes.Removed)
	return changes, nil
}
