package clipboard

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestClipboardCommand(t *testing.T) {
	t.Parallel()

	noEnv := func(string) string { return "" }
	wayland := func(key string) string {
		if key == "WAYLAND_DISPLAY" {
			return "wayland-0"
		}
		return ""
	}

	tests := []struct {
		name     string
		goos     string
		getenv   func(string) string
		wantCmd  string
		wantArgs []string
	}{
		{"darwin", "darwin", noEnv, "pbcopy", nil},
		{"linux x11", "linux", noEnv, "xclip", []string{"-selection", "clipboard"}},
		{"linux wayland", "linux", wayland, "wl-copy", nil},
		{"windows", "windows", noEnv, "clip", nil},
		{"unsupported", "plan9", noEnv, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := clipboardCmd(tt.goos, tt.getenv)
			if cmd != tt.wantCmd {
				t.Errorf("expected %q, got %q", tt.wantCmd, cmd)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("expected args %v, got %v", tt.wantArgs, args)
			}
		})
	}
}

func TestNewCommandOverride(t *testing.T) {
	t.Parallel()

	cmd := NewCommand("  xsel --clipboard --input ")
	if cmd.Name != "xsel" {
		t.Fatalf("expected xsel, got %q", cmd.Name)
	}
	if !reflect.DeepEqual(cmd.Args, []string{"--clipboard", "--input"}) {
		t.Fatalf("unexpected args %v", cmd.Args)
	}

	if empty := NewCommand(""); empty.Name != "" {
		t.Fatalf("expected platform detection for empty command, got %q", empty.Name)
	}
}

func TestCommandWriteFailure(t *testing.T) {
	t.Parallel()

	cmd := &Command{Name: "talk-clipboard-command-that-does-not-exist"}
	if err := cmd.Write(context.Background(), "text"); err == nil {
		t.Fatal("expected error for missing command")
	}
}

func TestMemory(t *testing.T) {
	t.Parallel()

	sink := &Memory{}
	if err := sink.Write(context.Background(), "hello"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if sink.Text != "hello" {
		t.Fatalf("expected text to be stored, got %q", sink.Text)
	}

	denied := errors.New("permission denied")
	sink = &Memory{Err: denied}
	if err := sink.Write(context.Background(), "x"); !errors.Is(err, denied) {
		t.Fatalf("expected configured error, got %v", err)
	}
}
