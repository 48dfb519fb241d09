package provisioner

import "regexp"

// namespaceIDPattern matches the `id = "<value>"` line wrangler prints after
// creating a namespace. The preview call prints `preview_id = "<value>"`,
// which the same unanchored pattern also matches.
var namespaceIDPattern = regexp.MustCompile(`id\s*=\s*"([^"]+)"`)

// ParseNamespaceID extracts the first quoted id value from command output.
func ParseNamespaceID(output string) (string, error) {
	match := namespaceIDPattern.FindStringSubmatch(output)
	if match == nil {
		return "", ErrNamespaceIDNotFound
	}
	return match[1], nil
}
