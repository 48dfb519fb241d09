// Where: cli/internal/infra/config/setup.go
// What: Setup CLI configuration load, env overrides, and save.
// Why: Let a project pin the wrangler invocation and file locations in <project>/.mkit/setup.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mkit-dev/mkit/cli/internal/meta"
	"gopkg.in/yaml.v3"
)

// SetupConfig holds the settings that shape a setup run.
type SetupConfig struct {
	CLICommand       []string      `yaml:"cli_command" env:"CLI" envSeparator:" "`
	Timeout          time.Duration `yaml:"timeout" env:"TIMEOUT"`
	NamespaceBinding string        `yaml:"namespace_binding" env:"NAMESPACE_BINDING"`
	EnvFile          string        `yaml:"env_file" env:"ENV_FILE"`
	WranglerConfig   string        `yaml:"wrangler_config" env:"WRANGLER_CONFIG"`
	DefaultBaseURL   string        `yaml:"default_base_url" env:"DEFAULT_BASE_URL"`
	NoEmoji          bool          `yaml:"no_emoji" env:"NO_EMOJI"`
}

// DefaultTimeout bounds each external CLI invocation.
const DefaultTimeout = 2 * time.Minute

// DefaultSetupConfig returns the built-in settings.
func DefaultSetupConfig() SetupConfig {
	return SetupConfig{
		CLICommand:       strings.Fields(meta.DefaultCLICommand),
		Timeout:          DefaultTimeout,
		NamespaceBinding: meta.DefaultNamespaceBinding,
		EnvFile:          meta.EnvFile,
		WranglerConfig:   meta.WranglerConfigFile,
		DefaultBaseURL:   meta.DefaultBaseURL,
	}
}

// SetupConfigPath returns the default config location for a project directory.
func SetupConfigPath(projectDir string) (string, error) {
	root := strings.TrimSpace(projectDir)
	if root == "" {
		return "", fmt.Errorf("project dir is required")
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return filepath.Join(root, meta.HomeDir, meta.SetupConfigFile), nil
}

// Resolve builds the effective configuration: defaults, then the config
// file, then MKIT_SETUP_* environment variables. An explicit path must
// exist; the default project path is optional.
func Resolve(projectDir, explicitPath string) (SetupConfig, error) {
	cfg := DefaultSetupConfig()

	path := strings.TrimSpace(explicitPath)
	required := path != ""
	if !required {
		var err error
		path, err = SetupConfigPath(projectDir)
		if err != nil {
			return SetupConfig{}, fmt.Errorf("resolve setup config path: %w", err)
		}
	}

	if err := loadInto(path, &cfg); err != nil && (required || !errors.Is(err, fs.ErrNotExist)) {
		return SetupConfig{}, err
	}

	if err := ApplyEnv(&cfg); err != nil {
		return SetupConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SetupConfig{}, err
	}
	return cfg, nil
}

func loadInto(path string, cfg *SetupConfig) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read setup config: %w", err)
	}
	if strings.TrimSpace(string(payload)) == "" {
		return nil
	}
	if err := ValidateDocument(payload); err != nil {
		return fmt.Errorf("validate setup config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(payload, cfg); err != nil {
		return fmt.Errorf("decode setup config: %w", err)
	}
	return nil
}

// ApplyEnv overlays MKIT_SETUP_* environment variables onto cfg.
func ApplyEnv(cfg *SetupConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: meta.EnvPrefix}); err != nil {
		return fmt.Errorf("parse setup env: %w", err)
	}
	return nil
}

// Validate checks the merged configuration.
func (c SetupConfig) Validate() error {
	if len(c.CLICommand) == 0 || strings.TrimSpace(c.CLICommand[0]) == "" {
		return fmt.Errorf("cli command is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if strings.TrimSpace(c.NamespaceBinding) == "" {
		return fmt.Errorf("namespace binding is required")
	}
	if strings.TrimSpace(c.EnvFile) == "" {
		return fmt.Errorf("env file path is required")
	}
	if strings.TrimSpace(c.WranglerConfig) == "" {
		return fmt.Errorf("wrangler config path is required")
	}
	return nil
}

// SaveSetupConfig writes cfg as YAML to path.
func SaveSetupConfig(path string, cfg SetupConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode setup config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create setup config dir: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write setup config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg SetupConfig) (string, error) {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return "", fmt.Errorf("encode setup config: %w", err)
	}
	return string(payload), nil
}
