// Package notify shows messages to the user and asks simple questions.
package notify

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Notifier is how actions talk back to the user
type Notifier interface {
	Alert(message string) error
	PromptYesNo(ctx context.Context, message string) (bool, error)
	// PromptText returns ok=false when the user cancels
	PromptText(ctx context.Context, message string) (text string, ok bool, err error)
}

// New returns a Terminal notifier when in is a terminal, a Plain one otherwise
func New(in *os.File, out io.Writer) Notifier {
	if term.IsTerminal(int(in.Fd())) {
		return NewTerminal(out)
	}
	return NewPlain(in, out)
}

// Terminal prompts with interactive huh forms
type Terminal struct {
	out io.Writer
}

// NewTerminal creates a Terminal notifier writing alerts to out
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Alert implements Notifier
func (t *Terminal) Alert(message string) error {
	_, err := fmt.Fprintln(t.out, message)
	return err
}

// PromptYesNo implements Notifier
func (t *Terminal) PromptYesNo(ctx context.Context, message string) (bool, error) {
	var answer bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	).WithShowHelp(false)

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to run prompt: %w", err)
	}

	return answer, nil
}

// PromptText implements Notifier
func (t *Terminal) PromptText(ctx context.Context, message string) (string, bool, error) {
	var text string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(message).
				Value(&text),
		),
	).WithShowHelp(false)

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to run prompt: %w", err)
	}

	text = strings.TrimSpace(text)
	return text, text != "", nil
}

// Plain writes messages to out and reads answers line by line from in.
// It is used when input is piped.
type Plain struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlain creates a Plain notifier
func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: bufio.NewReader(in), out: out}
}

// Alert implements Notifier
func (p *Plain) Alert(message string) error {
	_, err := fmt.Fprintln(p.out, message)
	return err
}

// PromptYesNo implements Notifier. Only "y" or "yes" (any case) count as yes.
func (p *Plain) PromptYesNo(ctx context.Context, message string) (bool, error) {
	line, ok, err := p.ask(ctx, message+" [y/N]")
	if err != nil || !ok {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptText implements Notifier. An empty answer or end of input cancels.
func (p *Plain) PromptText(ctx context.Context, message string) (string, bool, error) {
	line, ok, err := p.ask(ctx, message)
	if err != nil || !ok {
		return "", false, err
	}
	return line, line != "", nil
}

func (p *Plain) ask(ctx context.Context, message string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	if _, err := fmt.Fprintf(p.out, "%s ", message); err != nil {
		return "", false, err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("failed to read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", false, nil
	}

	return strings.TrimSpace(line), true, nil
}
