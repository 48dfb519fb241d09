// Where: cli/internal/infra/ui/next_steps.go
// What: Closing summary printed after setup.
// Why: Point the operator at the files written and the commands to run next.
package ui

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const nextStepsTemplate = `Next steps:
{{- range $i, $step := .Steps }}
  {{ add1 $i }}. {{ $step }}
{{- end }}
`

var (
	nextStepsOnce sync.Once
	nextStepsTmpl *template.Template
	nextStepsErr  error
)

// NextSteps describes the closing summary.
type NextSteps struct {
	EnvFile        string
	WranglerConfig string
	DevCommand     string
	DeployCommand  string
}

// Steps returns the ordered list of follow-up actions.
func (n NextSteps) Steps() []string {
	return []string{
		fmt.Sprintf("Review %s and %s", n.EnvFile, n.WranglerConfig),
		fmt.Sprintf("Run '%s' to start local development", n.DevCommand),
		fmt.Sprintf("Run '%s' to deploy to Cloudflare", n.DeployCommand),
	}
}

// RenderNextSteps renders the summary text.
func RenderNextSteps(steps NextSteps) (string, error) {
	nextStepsOnce.Do(func() {
		nextStepsTmpl, nextStepsErr = template.New("next-steps").
			Funcs(sprig.TxtFuncMap()).
			Parse(nextStepsTemplate)
	})
	if nextStepsErr != nil {
		return "", nextStepsErr
	}

	var buf bytes.Buffer
	if err := nextStepsTmpl.Execute(&buf, steps); err != nil {
		return "", fmt.Errorf("render next steps: %w", err)
	}
	return buf.String(), nil
}

// PrintNextSteps renders the summary to the console.
func (c *Console) PrintNextSteps(steps NextSteps) error {
	text, err := RenderNextSteps(steps)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, text)
	return nil
}
