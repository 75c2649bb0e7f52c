// Package clipboard writes generated text to the system clipboard.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupported is returned when no clipboard command is available.
var ErrUnsupported = errors.New("clipboard not supported")

// Sink accepts finished text.
type Sink interface {
	Write(ctx context.Context, text string) error
}

// Command writes to the clipboard by piping text to an external program.
type Command struct {
	// Name and Args override platform detection when Name is set.
	Name string
	Args []string
}

// NewCommand builds a Command from a configured command line such as
// "xclip -selection clipboard". An empty line uses platform detection.
func NewCommand(commandLine string) *Command {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return &Command{}
	}
	return &Command{Name: fields[0], Args: fields[1:]}
}

// Write copies text to the clipboard.
func (c *Command) Write(ctx context.Context, text string) error {
	name, args := c.resolve()
	if name == "" {
		return fmt.Errorf("%w on %s", ErrUnsupported, runtime.GOOS)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("clipboard write via %s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("clipboard write via %s: %w", name, err)
	}
	return nil
}

func (c *Command) resolve() (string, []string) {
	if c != nil && c.Name != "" {
		return c.Name, c.Args
	}
	return clipboardCmd(runtime.GOOS, os.Getenv)
}

// clipboardCmd returns the clipboard command and arguments for goos.
func clipboardCmd(goos string, getenv func(string) string) (string, []string) {
	switch goos {
	case "darwin":
		return "pbcopy", nil
	case "linux", "freebsd", "openbsd":
		if getenv("WAYLAND_DISPLAY") != "" {
			return "wl-copy", nil
		}
		return "xclip", []string{"-selection", "clipboard"}
	case "windows":
		return "clip", nil
	default:
		return "", nil
	}
}

// Memory is a Sink that keeps the last written text.
type Memory struct {
	Text string
	Err  error
}

// Write stores text, or returns m.Err when set.
func (m *Memory) Write(ctx context.Context, text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}
