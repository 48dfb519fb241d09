// Where: cli/internal/infra/interaction/interaction.go
// What: Interactive primitives for the setup wizard and TTY detection.
// Why: Centralize operator input so the wizard flow only deals with answers.
package interaction

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter defines the interface for interactive operator input.
type Prompter interface {
	// Input asks question and returns the trimmed answer, or defaultValue
	// when the answer is blank.
	Input(question, defaultValue string) (string, error)
	// Secret asks for a sensitive value. Input is not masked.
	Secret(question string) (string, error)
	// Confirm asks a yes/no question. A blank answer selects defaultYes.
	Confirm(question string, defaultYes bool) (bool, error)
}

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New returns a HuhPrompter when both in and out are terminals and a
// LinePrompter otherwise.
func New(in *os.File, out *os.File) Prompter {
	if IsTerminal(in) && IsTerminal(out) {
		return HuhPrompter{}
	}
	return NewLinePrompter(in, out)
}

// LinePrompter reads one line per answer. A single buffered reader is kept
// for the whole session.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from in and writing prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Input(question, defaultValue string) (string, error) {
	suffix := ""
	if defaultValue != "" {
		suffix = fmt.Sprintf(" (%s)", defaultValue)
	}
	answer, err := p.ask(question + suffix)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

func (p *LinePrompter) Secret(question string) (string, error) {
	return p.ask(question)
}

func (p *LinePrompter) Confirm(question string, defaultYes bool) (bool, error) {
	answer, err := p.Input(question+YesNoSuffix(defaultYes), "")
	if err != nil {
		return false, err
	}
	return ParseYesNo(answer, defaultYes), nil
}

func (p *LinePrompter) ask(question string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) {
		// Keep the transcript readable when input ends without a newline.
		_, _ = fmt.Fprintln(p.out)
		// Closed input is not an answer; defaults must not be taken for it.
		if line == "" {
			return "", fmt.Errorf("read answer: %w", io.ErrUnexpectedEOF)
		}
	}
	return strings.TrimSpace(line), nil
}

// YesNoSuffix returns the hint shown after a yes/no question.
func YesNoSuffix(defaultYes bool) string {
	if defaultYes {
		return " (Y/n)"
	}
	return " (y/N)"
}

// ParseYesNo interprets an answer: blank selects defaultYes, anything
// starting with y or Y is yes, everything else is no.
func ParseYesNo(answer string, defaultYes bool) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultYes
	}
	return strings.HasPrefix(strings.ToLower(answer), "y")
}
