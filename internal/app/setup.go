// Where: cli/internal/app/setup.go
// What: Interactive setup wizard.
// Why: Collect worker configuration, provision KV namespaces, and write local config files.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkit-dev/mkit/cli/internal/domain/settings"
	"github.com/mkit-dev/mkit/cli/internal/infra/config"
	"github.com/mkit-dev/mkit/cli/internal/infra/envfile"
	"github.com/mkit-dev/mkit/cli/internal/infra/interaction"
	"github.com/mkit-dev/mkit/cli/internal/infra/ui"
	"github.com/mkit-dev/mkit/cli/internal/infra/wrangler"
	"github.com/mkit-dev/mkit/cli/internal/keygen"
	"github.com/mkit-dev/mkit/cli/internal/meta"
	"github.com/mkit-dev/mkit/cli/internal/provisioner"
	"github.com/rs/zerolog"
)

// SetupCmd runs the wizard. Flags override the setup config.
type SetupCmd struct {
	EnvFile        string        `name:"env-file" help:"Environment file to write (default: .env)"`
	WranglerConfig string        `name:"wrangler-config" help:"Wrangler config to patch (default: wrangler.jsonc)"`
	CLI            string        `name:"cli" help:"Provisioning command (default: 'pnpm wrangler')"`
	Binding        string        `help:"KV namespace binding name (default: OAUTH_KV)"`
	Timeout        time.Duration `help:"Timeout for each provisioning command (default: 2m)"`
}

// errReported marks failures already shown to the operator.
var errReported = errors.New("setup aborted")

func runSetup(ctx context.Context, cli CLI, deps Dependencies) int {
	cfg, err := resolveSetupConfig(cli, deps)
	if err != nil {
		fmt.Fprintf(deps.ErrOut, "Setup failed: %v\n", err)
		return 1
	}

	w := newWizard(cfg, deps)
	if err := w.run(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(deps.ErrOut, "Setup failed: %v\n", err)
		}
		return 1
	}
	return 0
}

func resolveSetupConfig(cli CLI, deps Dependencies) (config.SetupConfig, error) {
	cfg, err := config.Resolve(deps.ProjectDir, cli.ConfigPath)
	if err != nil {
		return config.SetupConfig{}, err
	}

	flags := cli.Setup
	if v := strings.TrimSpace(flags.EnvFile); v != "" {
		cfg.EnvFile = v
	}
	if v := strings.TrimSpace(flags.WranglerConfig); v != "" {
		cfg.WranglerConfig = v
	}
	if fields := strings.Fields(flags.CLI); len(fields) > 0 {
		cfg.CLICommand = fields
	}
	if v := strings.TrimSpace(flags.Binding); v != "" {
		cfg.NamespaceBinding = v
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}
	if cli.NoEmoji {
		cfg.NoEmoji = true
	}
	return cfg, cfg.Validate()
}

type wizard struct {
	cfg         config.SetupConfig
	console     *ui.Console
	errConsole  *ui.Console
	prompter    interaction.Prompter
	provisioner *provisioner.Provisioner
	projectDir  string
	entropy     io.Reader
	values      settings.Settings
}

func newWizard(cfg config.SetupConfig, deps Dependencies) *wizard {
	prov := provisioner.New(deps.Runner, cfg.CLICommand, cfg.NamespaceBinding)
	prov.Dir = deps.ProjectDir
	prov.Timeout = cfg.Timeout

	return &wizard{
		cfg:         cfg,
		console:     ui.NewWithEmoji(deps.Out, !cfg.NoEmoji),
		errConsole:  ui.NewWithEmoji(deps.ErrOut, !cfg.NoEmoji),
		prompter:    deps.Prompter,
		provisioner: prov,
		projectDir:  deps.ProjectDir,
		entropy:     deps.Entropy,
	}
}

func (w *wizard) run(ctx context.Context) error {
	w.console.Banner("🚀", meta.DisplayName+" Setup")
	w.console.Info("This script will help you configure your " + meta.DisplayName + " MCP server.\n")

	if err := w.checkCLI(ctx); err != nil {
		return err
	}

	steps := []func(context.Context) error{
		w.promptBase,
		w.promptOAuth,
		w.promptStripe,
		w.promptSecurity,
		w.provisionNamespaces,
		w.writeEnvFile,
		w.patchWranglerConfig,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}

	w.console.Section("Setup Complete")
	return w.console.PrintNextSteps(ui.NextSteps{
		EnvFile:        w.cfg.EnvFile,
		WranglerConfig: w.cfg.WranglerConfig,
		DevCommand:     "pnpm dev",
		DeployCommand:  "pnpm build-deploy",
	})
}

func (w *wizard) checkCLI(ctx context.Context) error {
	version, err := w.provisioner.CheckCLI(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("version check failed")
		w.errConsole.Error("Wrangler CLI not found. Please run 'pnpm install' first.")
		return errReported
	}
	w.console.Success("Wrangler " + version + "\n")
	return nil
}

func (w *wizard) promptBase(context.Context) error {
	w.console.Section("Base Configuration")

	baseURL, err := w.prompter.Input(
		"Base URL for your worker (e.g., https://mkit.your-subdomain.workers.dev)",
		w.cfg.DefaultBaseURL,
	)
	if err != nil {
		return err
	}
	w.values.Set(settings.BaseURL, baseURL)

	widget, err := w.prompter.Input("Widget domain for OpenAI sandbox (optional, press enter to skip)", "")
	if err != nil {
		return err
	}
	w.values.Set(settings.WidgetDomain, widget)
	return nil
}

func (w *wizard) promptOAuth(context.Context) error {
	w.console.Section("OAuth Configuration")

	groups := []promptGroup{
		{
			question:   "Configure Google OAuth?",
			defaultYes: true,
			fields: []promptField{
				{key: settings.GoogleClientID, question: "Google Client ID"},
				{key: settings.GoogleClientSecret, question: "Google Client Secret", secret: true},
			},
		},
		{
			question:   "Configure GitHub OAuth?",
			defaultYes: true,
			fields: []promptField{
				{key: settings.GitHubClientID, question: "GitHub Client ID"},
				{key: settings.GitHubClientSecret, question: "GitHub Client Secret", secret: true},
			},
		},
		{
			question: "Configure custom OAuth issuer?",
			fields: []promptField{
				{key: settings.OAuthIssuer, question: "OAuth Issuer URL"},
				{key: settings.OAuthJWKSURI, question: "JWKS URI"},
			},
		},
	}
	for _, group := range groups {
		if _, err := w.askGroup(group); err != nil {
			return err
		}
	}
	return nil
}

func (w *wizard) promptStripe(context.Context) error {
	w.console.Section("Stripe Configuration")

	configured, err := w.askGroup(promptGroup{
		question:   "Configure Stripe for paid tools?",
		defaultYes: true,
		fields: []promptField{
			{key: settings.StripePublishableKey, question: "Stripe Publishable Key (pk_...)"},
			{key: settings.StripeSecretKey, question: "Stripe Secret Key (sk_...)", secret: true},
			{key: settings.StripeWebhookSecret, question: "Stripe Webhook Secret (whsec_...)", secret: true},
		},
	})
	if err != nil || !configured {
		return err
	}

	_, err = w.askGroup(promptGroup{
		question: "Configure Stripe price IDs?",
		fields: []promptField{
			{key: settings.StripeSubscriptionPriceID, question: "Subscription Price ID (price_...)"},
			{key: settings.StripeOneTimePriceID, question: "One-time Price ID (price_...)"},
			{key: settings.StripeMeteredPriceID, question: "Metered Price ID (price_...)"},
		},
	})
	return err
}

func (w *wizard) promptSecurity(context.Context) error {
	w.console.Section("Security")

	generate, err := w.prompter.Confirm("Generate a secure cookie encryption key?", true)
	if err != nil {
		return err
	}
	if !generate {
		key, err := w.prompter.Secret("Cookie Encryption Key (32 bytes hex)")
		if err != nil {
			return err
		}
		w.values.Set(settings.CookieEncryptionKey, key)
		return nil
	}

	key, err := w.generateKey()
	if err != nil {
		return fmt.Errorf("generate cookie encryption key: %w", err)
	}
	w.values.Set(settings.CookieEncryptionKey, key)
	w.console.Success(fmt.Sprintf("Generated %d-byte encryption key", keygen.KeySize))
	return nil
}

func (w *wizard) generateKey() (string, error) {
	if w.entropy != nil {
		return keygen.GenerateFrom(w.entropy)
	}
	return keygen.Generate()
}

func (w *wizard) provisionNamespaces(ctx context.Context) error {
	w.console.Section("KV Namespace")

	create, err := w.prompter.Confirm("Create KV namespace for OAuth state?", true)
	if err != nil || !create {
		return err
	}

	w.console.Info("\nCreating KV namespace...")
	if id, err := w.provisioner.CreateNamespace(ctx, false); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("namespace creation failed")
		w.console.Warn("Could not create KV namespace. You may need to log in with 'pnpm wrangler login' first.")
	} else {
		w.values.Set(settings.KVNamespaceID, id)
		w.console.Success("Created KV namespace: " + id)
	}

	preview, err := w.prompter.Confirm("Create preview KV namespace for local dev?", true)
	if err != nil || !preview {
		return err
	}
	if id, err := w.provisioner.CreateNamespace(ctx, true); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("preview namespace creation failed")
		w.console.Warn("Could not create preview KV namespace.")
	} else {
		w.values.Set(settings.KVPreviewID, id)
		w.console.Success("Created preview KV namespace: " + id)
	}
	return nil
}

func (w *wizard) writeEnvFile(ctx context.Context) error {
	w.console.Section("Writing Configuration")

	content := envfile.Render(&w.values)
	path := w.resolvePath(w.cfg.EnvFile)
	name := w.cfg.EnvFile

	if !envfile.Exists(path) {
		if err := envfile.Write(ctx, path, content); err != nil {
			return err
		}
		w.console.Success("Created " + name)
		return nil
	}

	w.reportEnvChanges(path, name)
	overwrite, err := w.prompter.Confirm(name+" already exists. Overwrite?", false)
	if err != nil {
		return err
	}
	if !overwrite {
		w.console.Info("Skipping " + name + " write. Here's what would have been written:\n")
		w.console.Info(content)
		return nil
	}
	if err := envfile.Write(ctx, path, content); err != nil {
		return err
	}
	w.console.Success("Wrote " + name)
	return nil
}

func (w *wizard) reportEnvChanges(path, name string) {
	changes, err := envfile.Diff(path, &w.values)
	if err != nil {
		w.console.Warn("Existing " + name + " could not be parsed; changes unknown.")
		return
	}
	if changes.Empty() {
		w.console.Info("Existing " + name + " already matches the new configuration.")
		return
	}
	w.console.Info("Changes compared to the existing " + name + ":")
	for _, group := range []struct {
		label string
		keys  []string
	}{
		{label: "added", keys: changes.Added},
		{label: "changed", keys: changes.Changed},
		{label: "removed", keys: changes.Removed},
	} {
		if len(group.keys) > 0 {
			w.console.Item(group.label, strings.Join(group.keys, ", "))
		}
	}
}

func (w *wizard) patchWranglerConfig(ctx context.Context) error {
	id := w.values.Value(settings.KVNamespaceID)
	if id == "" {
		return nil
	}

	patched, err := wrangler.PatchNamespaceIDs(ctx, w.resolvePath(w.cfg.WranglerConfig), id, w.values.Value(settings.KVPreviewID))
	if err != nil {
		return err
	}
	if patched {
		w.console.Success("Updated " + w.cfg.WranglerConfig + " with KV namespace IDs")
	}
	return nil
}

func (w *wizard) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.projectDir, path)
}

type promptField struct {
	key      string
	question string
	secret   bool
}

type promptGroup struct {
	question   string
	defaultYes bool
	fields     []promptField
}

// askGroup asks the gating question and, when accepted, each field in order.
func (w *wizard) askGroup(group promptGroup) (bool, error) {
	ok, err := w.prompter.Confirm(group.question, group.defaultYes)
	if err != nil || !ok {
		return false, err
	}
	for _, field := range group.fields {
		var value string
		if field.secret {
			value, err = w.prompter.Secret(field.question)
		} else {
			value, err = w.prompter.Input(field.question, "")
		}
		if err != nil {
			return false, err
		}
		w.values.Set(field.key, value)
	}
	return true, nil
}
