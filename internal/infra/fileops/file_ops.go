// Where: cli/internal/infra/fileops/file_ops.go
// What: Shared filesystem operations for generated and patched files.
// Why: Keep permissions and existence checks consistent between writers.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

// SecretFileMode is used for files that may hold credentials.
const SecretFileMode os.FileMode = 0o600

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFile truncates and writes content, creating parent directories.
// New files are created with SecretFileMode.
func WriteFile(path, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), SecretFileMode)
}

// ReplaceFile rewrites an existing file in full and keeps its permissions.
func ReplaceFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chmod(path, info.Mode().Perm())
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
