// Where: cli/internal/infra/interaction/huh.go
// What: Terminal prompts rendered with the huh library.
// Why: Give operators on a real TTY an editable prompt with the same answer rules.
package interaction

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

var runInputPrompt = func(title, placeholder string, input *string) error {
	field := huh.NewInput().
		Title(title).
		Value(input)
	if placeholder != "" {
		field.Placeholder(placeholder)
	}
	return field.Run()
}

var runConfirmPrompt = func(title string, confirmed *bool) error {
	return huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(confirmed).
		Run()
}

// HuhPrompter implements the Prompter interface using the huh TUI library.
type HuhPrompter struct{}

func (p HuhPrompter) Input(question, defaultValue string) (string, error) {
	var input string
	if err := runInputPrompt(question, defaultValue, &input); err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	if answer := strings.TrimSpace(input); answer != "" {
		return answer, nil
	}
	return defaultValue, nil
}

func (p HuhPrompter) Secret(question string) (string, error) {
	var input string
	if err := runInputPrompt(question, "", &input); err != nil {
		return "", fmt.Errorf("prompt secret: %w", err)
	}
	return strings.TrimSpace(input), nil
}

func (p HuhPrompter) Confirm(question string, defaultYes bool) (bool, error) {
	confirmed := defaultYes
	if err := runConfirmPrompt(question, &confirmed); err != nil {
		return false, fmt.Errorf("prompt confirm: %w", err)
	}
	return confirmed, nil
}
