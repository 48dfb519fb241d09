// Where: cli/internal/infra/config/setup_test.go
// What: Tests for setup config resolution.
// Why: Pin precedence between defaults, file, and environment.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeSetupConfig(t *testing.T, projectDir, content string) string {
	t.Helper()
	path, err := SetupConfigPath(projectDir)
	if err != nil {
		t.Fatalf("SetupConfigPath() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestResolveDefaultsWithoutFile(t *testing.T) {
	cfg, err := Resolve(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSetupConfig()) {
		t.Fatalf("Resolve() = %#v, want defaults", cfg)
	}
	if !reflect.DeepEqual(cfg.CLICommand, []string{"pnpm", "wrangler"}) {
		t.Fatalf("CLICommand = %#v", cfg.CLICommand)
	}
}

func TestResolveFileOverridesDefaults(t *testing.T) {
	projectDir := t.TempDir()
	writeSetupConfig(t, projectDir, "cli_command: [npx, wrangler]\ntimeout: 45s\nenv_file: .dev.vars\n")

	cfg, err := Resolve(projectDir, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.CLICommand, []string{"npx", "wrangler"}) {
		t.Fatalf("CLICommand = %#v", cfg.CLICommand)
	}
	if cfg.Timeout != 45*time.Second {
		t.Fatalf("Timeout = %s", cfg.Timeout)
	}
	if cfg.EnvFile != ".dev.vars" {
		t.Fatalf("EnvFile = %q", cfg.EnvFile)
	}
	if cfg.NamespaceBinding != "OAUTH_KV" || cfg.WranglerConfig != "wrangler.jsonc" {
		t.Fatalf("unset fields must keep defaults: %#v", cfg)
	}
}

func TestResolveEnvOverridesFile(t *testing.T) {
	projectDir := t.TempDir()
	writeSetupConfig(t, projectDir, "namespace_binding: FILE_KV\ntimeout: 10s\n")
	t.Setenv("MKIT_SETUP_NAMESPACE_BINDING", "ENV_KV")
	t.Setenv("MKIT_SETUP_CLI", "bunx wrangler")
	t.Setenv("MKIT_SETUP_NO_EMOJI", "true")

	cfg, err := Resolve(projectDir, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.NamespaceBinding != "ENV_KV" {
		t.Fatalf("NamespaceBinding = %q", cfg.NamespaceBinding)
	}
	if !reflect.DeepEqual(cfg.CLICommand, []string{"bunx", "wrangler"}) {
		t.Fatalf("CLICommand = %#v", cfg.CLICommand)
	}
	if !cfg.NoEmoji {
		t.Fatal("NoEmoji must be set from env")
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("Timeout = %s, want file value", cfg.Timeout)
	}
}

func TestResolveExplicitPathMustExist(t *testing.T) {
	_, err := Resolve(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read setup config") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestResolveExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("wrangler_config: infra/wrangler.jsonc\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Resolve(t.TempDir(), path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.WranglerConfig != "infra/wrangler.jsonc" {
		t.Fatalf("WranglerConfig = %q", cfg.WranglerConfig)
	}
}

func TestResolveEmptyFileKeepsDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "blank", content: "  \n"},
		{name: "comments only", content: "\n# nothing yet\n"},
		{name: "document marker", content: "---\n# cli_command: [npx, wrangler]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			projectDir := t.TempDir()
			writeSetupConfig(t, projectDir, tc.content)

			cfg, err := Resolve(projectDir, "")
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !reflect.DeepEqual(cfg, DefaultSetupConfig()) {
				t.Fatalf("Resolve() = %#v, want defaults", cfg)
			}
		})
	}
}

func TestValidateDocumentAcceptsEmptyDocument(t *testing.T) {
	if err := ValidateDocument([]byte("# only a comment\n")); err != nil {
		t.Fatalf("ValidateDocument() error = %v", err)
	}
}

func TestResolveRejectsInvalidEnv(t *testing.T) {
	t.Setenv("MKIT_SETUP_TIMEOUT", "soon")
	if _, err := Resolve(t.TempDir(), ""); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestResolveRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("MKIT_SETUP_TIMEOUT", "0s")
	if _, err := Resolve(t.TempDir(), ""); err == nil || !strings.Contains(err.Error(), "timeout must be positive") {
		t.Fatalf("expected timeout validation error, got %v", err)
	}
}

func TestResolveSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown field", content: "cli: wrangler\n"},
		{name: "wrong type", content: "cli_command: pnpm wrangler\n"},
		{name: "empty command", content: "cli_command: []\n"},
		{name: "bad duration", content: "timeout: 5 minutes\n"},
		{name: "bad binding", content: "namespace_binding: 9-lives\n"},
		{name: "not a mapping", content: "- a\n- b\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "setup.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := Resolve(t.TempDir(), path)
			if err == nil || !strings.Contains(err.Error(), "validate setup config") {
				t.Fatalf("expected schema error, got %v", err)
			}
		})
	}
}

func TestSaveAndResolveSetupConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "setup.yaml")
	want := DefaultSetupConfig()
	want.CLICommand = []string{"npx", "wrangler"}
	want.Timeout = 90 * time.Second
	want.NoEmoji = true

	if err := SaveSetupConfig(path, want); err != nil {
		t.Fatalf("SaveSetupConfig() error = %v", err)
	}
	got, err := Resolve(t.TempDir(), path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Resolve() = %#v, want %#v", got, want)
	}
}

func TestMarshalUsesDurationStrings(t *testing.T) {
	text, err := Marshal(DefaultSetupConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(text, "timeout: 2m0s") {
		t.Fatalf("expected duration string, got:\n%s", text)
	}
	if err := ValidateDocument([]byte(text)); err != nil {
		t.Fatalf("marshalled defaults must satisfy the schema: %v", err)
	}
}

func TestSetupConfigPathRequiresDir(t *testing.T) {
	if _, err := SetupConfigPath("  "); err == nil {
		t.Fatal("expected error for empty project dir")
	}
}
