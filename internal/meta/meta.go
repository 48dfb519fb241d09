// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep product naming and default file locations in one place.
package meta

const (
	// Project Identity
	AppName     = "mkit"
	DisplayName = "mKit"
	EnvPrefix   = "MKIT_SETUP_"

	// File Layout
	HomeDir            = ".mkit"
	SetupConfigFile    = "setup.yaml"
	EnvFile            = ".env"
	WranglerConfigFile = "wrangler.jsonc"

	// Provisioning Defaults
	DefaultCLICommand       = "pnpm wrangler"
	DefaultNamespaceBinding = "OAUTH_KV"
	DefaultBaseURL          = "https://mkit.workers.dev"
)
