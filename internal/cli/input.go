package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// bodySource describes where template body text comes from.
type bodySource struct {
	text   string
	file   string
	stdin  bool
	editor bool
}

func (s bodySource) set() bool {
	return s.text != "" || s.file != "" || s.stdin || s.editor
}

// read returns the body. initial pre-fills the editor.
func (s bodySource) read(initial string) (string, error) {
	count := 0
	for _, set := range []bool{s.text != "", s.file != "", s.stdin, s.editor} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", fmt.Errorf("use only one of --body, --file, --stdin or --editor")
	}

	switch {
	case s.text != "":
		return s.text, nil
	case s.file != "":
		data, err := os.ReadFile(s.file)
		if err != nil {
			return "", fmt.Errorf("failed to read body file: %w", err)
		}
		return string(data), nil
	case s.stdin:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case s.editor:
		return editText(initial)
	}
	return "", fmt.Errorf("template body is required (use --body, --file, --stdin or --editor)")
}

func editText(initial string) (string, error) {
	if IsNonInteractive() {
		return "", fmt.Errorf("--editor requires an interactive terminal")
	}

	editor := strings.TrimSpace(os.Getenv("VISUAL"))
	if editor == "" {
		editor = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if editor == "" {
		editor = "vi"
	}

	file, err := os.CreateTemp("", "talk-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.WriteString(initial); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited text: %w", err)
	}
	return string(data), nil
}
